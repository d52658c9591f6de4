package match

import (
	"testing"
	"time"
)

func TestNormalizeName_DropsFillerTokens(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"FC Porto":        "porto",
		"Porto":           "porto",
		"Real Sociedad":   "sociedad",
		"Sport Lisboa":    "lisboa",
		"St. Pauli":       "pauli",
		"Club Brugge":     "brugge",
		"Manchester City": "manchester city",
	}

	for input, want := range cases {
		if got := NormalizeName(input); got != want {
			t.Fatalf("NormalizeName(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestNormalizeName_FoldsAccentsAndPunctuation(t *testing.T) {
	t.Parallel()

	if NormalizeName("Atlético Madrid") != NormalizeName("atletico madrid") {
		t.Fatalf("accented and plain spellings should fold to the same key")
	}
	if NormalizeName("Saint-Étienne") != NormalizeName("saint etienne") {
		t.Fatalf("hyphenated spelling should fold to the same key")
	}
	if NormalizeName("Beşiktaş") != "besiktas" {
		t.Fatalf("unexpected fold for Beşiktaş: %q", NormalizeName("Beşiktaş"))
	}
}

func TestNormalizeStatus(t *testing.T) {
	t.Parallel()

	if NormalizeStatus("") != StatusScheduled {
		t.Fatalf("empty status should normalize to scheduled")
	}
	if NormalizeStatus("not started") != StatusScheduled {
		t.Fatalf("'not started' should normalize to scheduled")
	}
	if NormalizeStatus("ns") != StatusScheduled {
		t.Fatalf("'ns' should normalize to scheduled")
	}
	if NormalizeStatus("finished") != StatusFinished {
		t.Fatalf("status should be uppercased")
	}
}

func TestStatusPredicates(t *testing.T) {
	t.Parallel()

	for _, status := range []string{StatusFinished, "FT", "AET", "pen"} {
		if !IsFinishedStatus(status) {
			t.Fatalf("expected %q to count as finished", status)
		}
	}
	if IsFinishedStatus(StatusScheduled) || IsFinishedStatus(StatusLive) {
		t.Fatalf("scheduled and live must not count as finished")
	}

	if !IsScheduledStatus("") || !IsScheduledStatus("NS") {
		t.Fatalf("empty and NS should count as scheduled")
	}

	for _, status := range []string{StatusLive, "HT", "1H", "2H"} {
		if !IsLiveStatus(status) {
			t.Fatalf("expected %q to count as live", status)
		}
	}
}

func TestCanonicalMatch_Key(t *testing.T) {
	t.Parallel()

	day := time.Date(2025, 3, 1, 20, 0, 0, 0, time.UTC)
	a := CanonicalMatch{Date: day, HomeTeam: "FC Porto", AwayTeam: "Benfica"}
	b := CanonicalMatch{Date: day.Add(2 * time.Hour), HomeTeam: "Porto", AwayTeam: "benfica"}

	if a.Key() != b.Key() {
		t.Fatalf("decorated and plain spellings on the same day should share a key: %q vs %q", a.Key(), b.Key())
	}

	c := CanonicalMatch{Date: day.AddDate(0, 0, 1), HomeTeam: "Porto", AwayTeam: "Benfica"}
	if a.Key() == c.Key() {
		t.Fatalf("different calendar days must not share a key")
	}
}

func TestSameDay(t *testing.T) {
	t.Parallel()

	a := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	b := time.Date(2025, 3, 10, 23, 59, 59, 0, time.UTC)
	if !SameDay(a, b) {
		t.Fatalf("same calendar day should match regardless of time")
	}
	if SameDay(a, a.AddDate(0, 0, 1)) {
		t.Fatalf("different days must not match")
	}
}
