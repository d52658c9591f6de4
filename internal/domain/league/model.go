// Package league describes the catalog of league data sources the service
// ingests on startup.
package league

import "fmt"

const (
	FormatJSON = "json"
	FormatCSV  = "csv"
)

// Source is one per-league data file: where to fetch it and how to decode
// it.
type Source struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	File   string `json:"file"`
	Format string `json:"format"`
}

func (s Source) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("league source id is required")
	}
	if s.Name == "" {
		return fmt.Errorf("league source name is required")
	}
	if s.File == "" {
		return fmt.Errorf("league source file is required")
	}
	if s.Format != FormatJSON && s.Format != FormatCSV {
		return fmt.Errorf("league source format must be %q or %q", FormatJSON, FormatCSV)
	}

	return nil
}
