package services

import (
	"sort"
	"strings"

	"port-inspection-analytics/models"

	rake "github.com/afjoseph/RAKE.Go"
)

// MaxKeywords caps how many ranked phrases are retained per vessel.
const MaxKeywords = 10

// ShipCheckResult cross-references a vessel's deficiency history against the
// currently selected port's focus phrases. It is recomputed per request and
// never persisted.
type ShipCheckResult struct {
	Vessel                 string           `json:"vessel"`
	Keywords               []models.Keyword `json:"keywords"`
	Matches                []models.Match   `json:"matches"`
	MatchedKeywords        []string         `json:"matched_keywords"`
	AttentionRequired      bool             `json:"attention_required"`
	NoRelevantDeficiencies bool             `json:"no_relevant_deficiencies"`
}

// CheckShip extracts ranked keywords from the vessel's past deficiencies and
// tests each against the filtered port phrases by case-insensitive containment.
func CheckShip(ships []models.ShipDeficiencyRecord, portPhrases []models.AuthorityRecord, vessel string) ShipCheckResult {
	result := ShipCheckResult{Vessel: vessel}

	result.Keywords = ExtractKeywords(ships, vessel)
	if len(result.Keywords) == 0 {
		result.NoRelevantDeficiencies = true
		return result
	}

	result.Matches, result.MatchedKeywords = MatchKeywords(result.Keywords, portPhrases)
	result.AttentionRequired = len(result.MatchedKeywords) > 0
	return result
}

// ExtractKeywords concatenates the vessel's non-"nil" deficiency texts and
// runs RAKE over the combined text, keeping the top MaxKeywords phrases by
// score descending.
func ExtractKeywords(ships []models.ShipDeficiencyRecord, vessel string) []models.Keyword {
	var texts []string
	for _, rec := range ships {
		if rec.VesselName != vessel {
			continue
		}
		text := strings.TrimSpace(rec.Deficiency)
		if text == "" || strings.EqualFold(text, "nil") {
			continue
		}
		texts = append(texts, text)
	}

	combined := strings.Join(texts, " ")
	if combined == "" {
		return nil
	}

	candidates := rake.RunRake(combined)
	keywords := make([]models.Keyword, 0, len(candidates))
	for _, c := range candidates {
		keywords = append(keywords, models.Keyword{Phrase: c.Key, Score: c.Value})
	}

	sort.SliceStable(keywords, func(i, j int) bool {
		return keywords[i].Score > keywords[j].Score
	})
	if len(keywords) > MaxKeywords {
		keywords = keywords[:MaxKeywords]
	}
	return keywords
}

// MatchKeywords records a match for every (keyword, port phrase) pair where
// the keyword is a case-insensitive substring of the phrase. The second return
// is the deduplicated matched-keyword list in first-seen order.
func MatchKeywords(keywords []models.Keyword, portPhrases []models.AuthorityRecord) ([]models.Match, []string) {
	var matches []models.Match
	seen := make(map[string]bool)
	var matched []string

	for _, kw := range keywords {
		needle := strings.ToLower(kw.Phrase)
		if needle == "" {
			continue
		}
		for _, rec := range portPhrases {
			phrase := strings.ToLower(rec.Phrase)
			if strings.Contains(phrase, needle) {
				matches = append(matches, models.Match{Keyword: kw.Phrase, PortPhrase: phrase})
				if !seen[kw.Phrase] {
					seen[kw.Phrase] = true
					matched = append(matched, kw.Phrase)
				}
			}
		}
	}

	return matches, matched
}
