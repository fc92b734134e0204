package services

import (
	"sort"
	"strings"
	"time"

	"port-inspection-analytics/models"
)

// Top-N slider bounds for the focus chart.
const (
	TopNMin     = 5
	TopNMax     = 20
	TopNDefault = 10
)

// FilterByAuthority returns the rows whose Authority field exactly equals the
// selected value. Source order is preserved.
func FilterByAuthority(records []models.AuthorityRecord, authority string) []models.AuthorityRecord {
	var filtered []models.AuthorityRecord
	for _, rec := range records {
		if rec.Authority == authority {
			filtered = append(filtered, rec)
		}
	}
	return filtered
}

// SearchPhrases restricts records to those whose Phrase contains term,
// case-insensitively. An empty term returns the input unchanged.
func SearchPhrases(records []models.AuthorityRecord, term string) []models.AuthorityRecord {
	if term == "" {
		return records
	}
	needle := strings.ToLower(term)
	var filtered []models.AuthorityRecord
	for _, rec := range records {
		if strings.Contains(strings.ToLower(rec.Phrase), needle) {
			filtered = append(filtered, rec)
		}
	}
	return filtered
}

// FilterByDateRange keeps rows whose Date falls within [from, to] inclusive.
// Zero bounds are open; rows without a parsed date pass through.
func FilterByDateRange(records []models.AuthorityRecord, from, to time.Time) []models.AuthorityRecord {
	if from.IsZero() && to.IsZero() {
		return records
	}
	var filtered []models.AuthorityRecord
	for _, rec := range records {
		if rec.Date.IsZero() {
			filtered = append(filtered, rec)
			continue
		}
		if !from.IsZero() && rec.Date.Before(from) {
			continue
		}
		if !to.IsZero() && rec.Date.After(to) {
			continue
		}
		filtered = append(filtered, rec)
	}
	return filtered
}

// ClampTopN clamps a requested top-N value to the slider range, falling back
// to the default for non-positive input.
func ClampTopN(n int) int {
	if n <= 0 {
		return TopNDefault
	}
	if n < TopNMin {
		return TopNMin
	}
	if n > TopNMax {
		return TopNMax
	}
	return n
}

// TopByScore returns up to n records ordered by score descending. The sort is
// stable, so ties keep source order.
func TopByScore(records []models.AuthorityRecord, n int) []models.AuthorityRecord {
	ranked := make([]models.AuthorityRecord, len(records))
	copy(ranked, records)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	if n < len(ranked) {
		ranked = ranked[:n]
	}
	return ranked
}

// Summarize computes the headline metrics for a filtered view. The mean delta
// compares against the unfiltered table.
func Summarize(filtered, all []models.AuthorityRecord) models.FocusSummary {
	summary := models.FocusSummary{PhraseCount: len(filtered)}

	if len(filtered) > 0 {
		var sum float64
		for _, rec := range filtered {
			sum += rec.Score
			if rec.Score > summary.MaxScore {
				summary.MaxScore = rec.Score
			}
		}
		summary.MeanScore = sum / float64(len(filtered))
	}

	if len(all) > 0 {
		var sum float64
		for _, rec := range all {
			sum += rec.Score
		}
		summary.MeanDelta = summary.MeanScore - sum/float64(len(all))
	}

	return summary
}

// WordCloud maps each phrase in the filtered view to its score for client-side
// word cloud rendering. Duplicate phrases keep the last score seen, matching
// the source-data expectation that phrases are unique per authority.
func WordCloud(records []models.AuthorityRecord) []models.WordCloudEntry {
	weights := make(map[string]float64, len(records))
	order := make([]string, 0, len(records))
	for _, rec := range records {
		if _, seen := weights[rec.Phrase]; !seen {
			order = append(order, rec.Phrase)
		}
		weights[rec.Phrase] = rec.Score
	}

	entries := make([]models.WordCloudEntry, 0, len(order))
	for _, phrase := range order {
		entries = append(entries, models.WordCloudEntry{Text: phrase, Weight: weights[phrase]})
	}
	return entries
}

// Authorities returns the sorted distinct Authority values.
func Authorities(records []models.AuthorityRecord) []string {
	return sortedDistinct(records, func(rec models.AuthorityRecord) string { return rec.Authority })
}

// Vessels returns the sorted distinct non-empty vessel names.
func Vessels(records []models.ShipDeficiencyRecord) []string {
	seen := make(map[string]bool)
	var names []string
	for _, rec := range records {
		if rec.VesselName == "" || seen[rec.VesselName] {
			continue
		}
		seen[rec.VesselName] = true
		names = append(names, rec.VesselName)
	}
	sort.Strings(names)
	return names
}

// DateBounds returns the earliest and latest dates in the table, ignoring
// rows without a parsed date.
func DateBounds(records []models.AuthorityRecord) (min, max time.Time) {
	for _, rec := range records {
		if rec.Date.IsZero() {
			continue
		}
		if min.IsZero() || rec.Date.Before(min) {
			min = rec.Date
		}
		if max.IsZero() || rec.Date.After(max) {
			max = rec.Date
		}
	}
	return min, max
}

func sortedDistinct(records []models.AuthorityRecord, key func(models.AuthorityRecord) string) []string {
	seen := make(map[string]bool)
	var values []string
	for _, rec := range records {
		v := key(rec)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		values = append(values, v)
	}
	sort.Strings(values)
	return values
}
