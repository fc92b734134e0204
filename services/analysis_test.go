package services

import (
	"testing"
	"time"

	"port-inspection-analytics/models"
)

func sampleRecords() []models.AuthorityRecord {
	return []models.AuthorityRecord{
		{Authority: "Tokyo MoU", Phrase: "fire safety equipment", Score: 0.82},
		{Authority: "Tokyo MoU", Phrase: "life saving appliances", Score: 0.61},
		{Authority: "Tokyo MoU", Phrase: "Fire drill records", Score: 0.61},
		{Authority: "Paris MoU", Phrase: "engine room cleanliness", Score: 0.47},
		{Authority: "Paris MoU", Phrase: "oily water separator", Score: 0.90},
	}
}

func TestFilterByAuthority(t *testing.T) {
	filtered := FilterByAuthority(sampleRecords(), "Tokyo MoU")
	if len(filtered) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(filtered))
	}
	for _, rec := range filtered {
		if rec.Authority != "Tokyo MoU" {
			t.Fatalf("row leaked from another authority: %+v", rec)
		}
	}

	if got := FilterByAuthority(sampleRecords(), "Black Sea MoU"); len(got) != 0 {
		t.Fatalf("expected no rows for unknown authority, got %d", len(got))
	}
}

func TestSearchPhrasesCaseInsensitive(t *testing.T) {
	records := sampleRecords()

	// "fire" appears in two phrases with different casing.
	got := SearchPhrases(records, "FIRE")
	if len(got) != 2 {
		t.Fatalf("expected 2 rows for %q, got %d", "FIRE", len(got))
	}

	if got := SearchPhrases(records, "separator"); len(got) != 1 {
		t.Fatalf("expected 1 row, got %d", len(got))
	}

	if got := SearchPhrases(records, ""); len(got) != len(records) {
		t.Fatalf("empty term must be a no-op, got %d rows", len(got))
	}

	if got := SearchPhrases(records, "no such phrase"); len(got) != 0 {
		t.Fatalf("expected 0 rows, got %d", len(got))
	}
}

func TestTopByScoreOrderingAndTies(t *testing.T) {
	records := sampleRecords()

	top := TopByScore(records, 20)
	if len(top) != len(records) {
		t.Fatalf("expected all %d rows, got %d", len(records), len(top))
	}
	for i := 1; i < len(top); i++ {
		if top[i].Score > top[i-1].Score {
			t.Fatalf("rows not descending at %d: %v > %v", i, top[i].Score, top[i-1].Score)
		}
	}

	// Two rows share score 0.61; stable sort keeps source order.
	if top[2].Phrase != "life saving appliances" || top[3].Phrase != "Fire drill records" {
		t.Fatalf("tie-break lost source order: %q then %q", top[2].Phrase, top[3].Phrase)
	}

	if got := TopByScore(records, 2); len(got) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(got))
	}
}

func TestClampTopN(t *testing.T) {
	cases := []struct{ in, want int }{
		{0, TopNDefault},
		{-3, TopNDefault},
		{4, TopNMin},
		{5, 5},
		{13, 13},
		{20, 20},
		{21, TopNMax},
	}
	for _, tc := range cases {
		if got := ClampTopN(tc.in); got != tc.want {
			t.Fatalf("ClampTopN(%d) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestSummarize(t *testing.T) {
	all := sampleRecords()
	filtered := FilterByAuthority(all, "Tokyo MoU")

	summary := Summarize(filtered, all)
	if summary.PhraseCount != 3 {
		t.Fatalf("expected 3 phrases, got %d", summary.PhraseCount)
	}
	wantMean := (0.82 + 0.61 + 0.61) / 3
	if diff := summary.MeanScore - wantMean; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("mean = %v, want %v", summary.MeanScore, wantMean)
	}
	if summary.MaxScore != 0.82 {
		t.Fatalf("max = %v, want 0.82", summary.MaxScore)
	}
	allMean := (0.82 + 0.61 + 0.61 + 0.47 + 0.90) / 5
	wantDelta := wantMean - allMean
	if diff := summary.MeanDelta - wantDelta; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("delta = %v, want %v", summary.MeanDelta, wantDelta)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	summary := Summarize(nil, sampleRecords())
	if summary.PhraseCount != 0 || summary.MeanScore != 0 || summary.MaxScore != 0 {
		t.Fatalf("empty filter should zero the metrics: %+v", summary)
	}
}

func TestFilterByDateRange(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2024, 3, d, 0, 0, 0, 0, time.UTC) }
	records := []models.AuthorityRecord{
		{Authority: "Tokyo MoU", Phrase: "a", Date: day(1)},
		{Authority: "Tokyo MoU", Phrase: "b", Date: day(10)},
		{Authority: "Tokyo MoU", Phrase: "c", Date: day(20)},
	}

	got := FilterByDateRange(records, day(10), day(20))
	if len(got) != 2 {
		t.Fatalf("expected 2 rows (inclusive bounds), got %d", len(got))
	}

	if got := FilterByDateRange(records, time.Time{}, time.Time{}); len(got) != 3 {
		t.Fatalf("open bounds must be a no-op, got %d rows", len(got))
	}

	if got := FilterByDateRange(records, time.Time{}, day(1)); len(got) != 1 {
		t.Fatalf("expected 1 row before %v, got %d", day(1), len(got))
	}
}

func TestAuthoritiesSortedDistinct(t *testing.T) {
	got := Authorities(sampleRecords())
	want := []string{"Paris MoU", "Tokyo MoU"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestVesselsSortedDistinct(t *testing.T) {
	ships := []models.ShipDeficiencyRecord{
		{VesselName: "MV Boreas", Deficiency: "nil"},
		{VesselName: "MV Aurora", Deficiency: "Fire extinguisher missing"},
		{VesselName: "MV Aurora", Deficiency: "nil"},
		{VesselName: "", Deficiency: "orphan row"},
	}
	got := Vessels(ships)
	want := []string{"MV Aurora", "MV Boreas"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestWordCloudWeights(t *testing.T) {
	entries := WordCloud(FilterByAuthority(sampleRecords(), "Paris MoU"))
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Text != "engine room cleanliness" || entries[0].Weight != 0.47 {
		t.Fatalf("unexpected first entry: %+v", entries[0])
	}
}
