package reportutils

import "testing"

func TestDetermineType(t *testing.T) {

	tests := []struct {
		reasons     []string
		description string
		want        string
	}{
		{[]string{"Audio quality poor"}, "", TypeAudioIssue},
		{[]string{"The translation is wrong"}, "", TypeTranslationIssue},
		{[]string{"Verb conjugation looks off"}, "", TypeGrammarIssue},
		{[]string{"Marked my answer incorrect"}, "", TypeContentError},
		{[]string{"App crash on submit"}, "", TypeTechnicalIssue},
		{[]string{"Something else entirely"}, "", TypeOther},
		// description participates in matching
		{[]string{"Other"}, "the sound cuts out halfway", TypeAudioIssue},
	}

	for _, tt := range tests {
		text := Normalize(tt.reasons, tt.description)
		if got := DetermineType(text); got != tt.want {
			t.Errorf("DetermineType(%q) = %q, want %q", text, got, tt.want)
		}
	}

}

func TestDetermineTypeFirstRuleWins(t *testing.T) {

	// audio keywords outrank translation keywords when both appear
	text := Normalize([]string{"audio and translation both wrong"}, "")
	if got := DetermineType(text); got != TypeAudioIssue {
		t.Errorf("DetermineType() = %q, want %q", got, TypeAudioIssue)
	}

}

func TestDeterminePriority(t *testing.T) {

	tests := []struct {
		reasons     []string
		description string
		want        string
	}{
		{[]string{"Audio quality poor"}, "", PriorityMedium},
		{[]string{"App crash on submit"}, "", PriorityHigh},
		{[]string{"I am stuck on this lesson"}, "", PriorityHigh},
		{[]string{"Wrong picture shown"}, "", PriorityMedium},
		{[]string{"minor typo suggestion"}, "", PriorityLow},
	}

	for _, tt := range tests {
		text := Normalize(tt.reasons, tt.description)
		if got := DeterminePriority(text); got != tt.want {
			t.Errorf("DeterminePriority(%q) = %q, want %q", text, got, tt.want)
		}
	}

}

func TestNormalize(t *testing.T) {

	got := Normalize([]string{"Audio Quality POOR", "Second Reason"}, "More Detail")
	want := "audio quality poor second reason more detail"
	if got != want {
		t.Errorf("Normalize() = %q, want %q", got, want)
	}

}
