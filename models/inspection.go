package models

import "time"

// AuthorityRecord is one inspection-focus phrase observed for one port
// authority, with its precomputed TF-IDF importance score.
// Records are immutable once loaded from the authority workbook.
type AuthorityRecord struct {
	Authority string    `json:"authority"`
	Date      time.Time `json:"date,omitempty"`
	Phrase    string    `json:"phrase"`
	Score     float64   `json:"score"`
}

// ShipDeficiencyRecord is one historical deficiency entry for one vessel.
// Entries recorded as "nil" carry no usable text and are skipped by the
// keyword matcher.
type ShipDeficiencyRecord struct {
	VesselName string `json:"vessel_name"`
	Deficiency string `json:"deficiency"`
}

// Keyword is a ranked phrase extracted from a vessel's combined deficiency
// history. Keywords are transient and recomputed on every vessel selection.
type Keyword struct {
	Phrase string  `json:"phrase"`
	Score  float64 `json:"score"`
}

// Match pairs an extracted keyword with a port focus phrase that contains it.
type Match struct {
	Keyword    string `json:"matched_keyword"`
	PortPhrase string `json:"port_phrase"`
}

// FocusSummary holds the headline metrics for a filtered authority view.
type FocusSummary struct {
	MeanScore   float64 `json:"mean_score"`
	MeanDelta   float64 `json:"mean_delta"` // vs the unfiltered mean
	PhraseCount int     `json:"phrase_count"`
	MaxScore    float64 `json:"max_score"`
}

// WordCloudEntry is one weighted term for the dashboard word cloud.
type WordCloudEntry struct {
	Text   string  `json:"text"`
	Weight float64 `json:"weight"`
}
