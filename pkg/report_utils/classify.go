package reportutils

import "strings"

const (
	TypeAudioIssue       = "audio_issue"
	TypeTranslationIssue = "translation_issue"
	TypeGrammarIssue     = "grammar_issue"
	TypeContentError     = "content_error"
	TypeTechnicalIssue   = "technical_issue"
	TypeOther            = "other"

	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// keyword rules are matched in order against the lowercased join of
// reasons and description; first hit wins.
var typeRules = []struct {
	keywords   []string
	reportType string
}{
	{[]string{"audio", "sound", "pronunciation", "listening"}, TypeAudioIssue},
	{[]string{"translation", "translate", "meaning"}, TypeTranslationIssue},
	{[]string{"grammar", "conjugation", "tense"}, TypeGrammarIssue},
	{[]string{"wrong answer", "incorrect", "typo", "mistake"}, TypeContentError},
	{[]string{"crash", "bug", "freeze", "loading", "broken"}, TypeTechnicalIssue},
}

var highPriorityKeywords = []string{"crash", "broken", "cannot", "can't", "blocked", "stuck"}
var mediumPriorityKeywords = []string{"audio", "wrong", "incorrect", "poor", "missing"}

// Normalize joins the report text into the single lowercase string the
// keyword rules run against.
func Normalize(reasons []string, description string) string {
	joined := strings.Join(reasons, " ") + " " + description
	return strings.ToLower(joined)
}

// DetermineType tags a report by keyword lookup. Best-effort triage, not
// authoritative.
func DetermineType(text string) string {
	for _, rule := range typeRules {
		for _, kw := range rule.keywords {
			if strings.Contains(text, kw) {
				return rule.reportType
			}
		}
	}
	return TypeOther
}

func DeterminePriority(text string) string {
	for _, kw := range highPriorityKeywords {
		if strings.Contains(text, kw) {
			return PriorityHigh
		}
	}
	for _, kw := range mediumPriorityKeywords {
		if strings.Contains(text, kw) {
			return PriorityMedium
		}
	}
	return PriorityLow
}
