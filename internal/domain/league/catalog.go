package league

// DefaultCatalog lists the league files the service loads when no catalog is
// configured. File paths are relative to the configured source base URL.
func DefaultCatalog() []Source {
	return []Source{
		{ID: "152", Name: "Premier League (England)", File: "leagues/league_152_2025.json", Format: FormatJSON},
		{ID: "153", Name: "Championship (England)", File: "leagues/league_153_2025.json", Format: FormatJSON},
		{ID: "175", Name: "Bundesliga (Germany)", File: "leagues/league_175_2025.json", Format: FormatJSON},
		{ID: "171", Name: "2. Bundesliga (Germany)", File: "leagues/league_171_2025.json", Format: FormatJSON},
		{ID: "168", Name: "Ligue 1 (France)", File: "leagues/league_168_2025.json", Format: FormatJSON},
		{ID: "164", Name: "Ligue 2 (France)", File: "leagues/league_164_2025.json", Format: FormatJSON},
		{ID: "207", Name: "Serie A (Italy)", File: "leagues/league_207_2025.json", Format: FormatJSON},
		{ID: "206", Name: "Serie B (Italy)", File: "leagues/league_206_2025.json", Format: FormatJSON},
		{ID: "302", Name: "La Liga (Spain)", File: "leagues/league_302_2025.json", Format: FormatJSON},
		{ID: "301", Name: "Segunda División (Spain)", File: "leagues/league_301_2025.json", Format: FormatJSON},
		{ID: "266", Name: "Primeira Liga (Portugal)", File: "leagues/league_266_2025.json", Format: FormatJSON},
		{ID: "322", Name: "Süper Lig (Turkey)", File: "leagues/league_322_2025.json", Format: FormatJSON},
		{ID: "63", Name: "First Division A (Belgium)", File: "leagues/league_63_2025.json", Format: FormatJSON},
		{ID: "179", Name: "Eredivisie (Netherlands)", File: "leagues/league_179_2025.json", Format: FormatJSON},
		{ID: "279", Name: "Premiership (Scotland)", File: "leagues/league_279_2025.json", Format: FormatJSON},
		{ID: "178", Name: "Super League 1 (Greece)", File: "leagues/league_178_2025.json", Format: FormatJSON},
		{ID: "135", Name: "Superliga (Denmark)", File: "leagues/league_135_2025.json", Format: FormatJSON},
		{ID: "242", Name: "Eliteserien (Norway)", File: "leagues/league_242_2025.json", Format: FormatJSON},
		{ID: "248", Name: "Allsvenskan (Sweden)", File: "leagues/league_248_2025.json", Format: FormatJSON},
		{ID: "243", Name: "Ekstraklasa (Poland)", File: "leagues/league_243_2025.json", Format: FormatJSON},
		{ID: "272", Name: "Liga I (Romania)", File: "leagues/league_272_2025.json", Format: FormatJSON},
		{ID: "134", Name: "Czech Liga", File: "leagues/league_134_2025.json", Format: FormatJSON},
		{ID: "308", Name: "Super League (Switzerland)", File: "leagues/league_308_2025.json", Format: FormatJSON},
		{ID: "56", Name: "Bundesliga (Austria)", File: "leagues/league_56_2025.json", Format: FormatJSON},
		{ID: "124", Name: "HNL (Croatia)", File: "leagues/league_124_2025.json", Format: FormatJSON},
		{ID: "325", Name: "Premier League (Ukraine)", File: "leagues/league_325_2025.json", Format: FormatJSON},
		{ID: "3", Name: "UEFA Champions League", File: "leagues/league_3_2025.json", Format: FormatJSON},
		{ID: "4", Name: "UEFA Europa League", File: "leagues/league_4_2025.json", Format: FormatJSON},
		{ID: "E0", Name: "Premier League Archive (England)", File: "archive/E0.csv", Format: FormatCSV},
		{ID: "E1", Name: "Championship Archive (England)", File: "archive/E1.csv", Format: FormatCSV},
		{ID: "D1", Name: "Bundesliga Archive (Germany)", File: "archive/D1.csv", Format: FormatCSV},
		{ID: "SP1", Name: "La Liga Archive (Spain)", File: "archive/SP1.csv", Format: FormatCSV},
	}
}
