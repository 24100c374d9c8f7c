package pipeline

import (
	"strings"
	"testing"
)

func TestSerialize(t *testing.T) {
	t.Parallel()

	questions := []Formatted{
		{Number: 1, Question: "1. What is 2+2?", Answers: []string{"a) 3", "*b) 4"}, Points: 2},
		{Number: 2, Question: "2. Explain.\n" + EssayBlank, Points: 5},
	}

	tests := []struct {
		name     string
		header   Header
		fallback string
		want     string
	}{
		{
			name:     "title and subtitle",
			header:   Header{Title: "Midterm", Subtitle: "Chapter 3"},
			fallback: "exam",
			want: "Quiz title: Midterm\n" +
				"Quiz description: Chapter 3\n" +
				"\n" +
				"Points: 2\n1. What is 2+2?\na) 3\n*b) 4\n\n" +
				"Points: 5\n2. Explain.\n" + EssayBlank + "\n\n",
		},
		{
			name:     "fallback title without description",
			header:   Header{},
			fallback: "week1",
			want: "Quiz title: week1\n" +
				"\n" +
				"Points: 2\n1. What is 2+2?\na) 3\n*b) 4\n\n" +
				"Points: 5\n2. Explain.\n" + EssayBlank + "\n\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Serialize(tt.header, tt.fallback, questions); got != tt.want {
				t.Errorf("Serialize() =\n%s\nwant\n%s", got, tt.want)
			}
		})
	}
}

func TestSerialize_NoQuestions(t *testing.T) {
	t.Parallel()

	got := Serialize(Header{Title: "Empty"}, "x", nil)
	if got != "Quiz title: Empty\n\n" {
		t.Errorf("Serialize() = %q", got)
	}
}

// ---------------------------------------------------------------------------
// End to end through every stage
// ---------------------------------------------------------------------------

func TestStages_EndToEnd(t *testing.T) {
	t.Parallel()

	raw := "\uFEFF| Title: Quiz 1\n" +
		"| Subtitle: Arithmetic\n" +
		"# comment line\n" +
		"\n" +
		"@ What is 2+2?\n" +
		"$ 3\n" +
		"$ [correct] 4\n" +
		"@ Fill in: 2 + ___ = 5 | Points: 4\n" +
		"| Topic: Addition\n"

	text := Clean(raw)
	header := ExtractHeader(text)
	records, err := ParseQuestions(StripHeaderLines(text), testSettings)
	if err != nil {
		t.Fatalf("ParseQuestions: %v", err)
	}
	formatted, err := FormatRecords(records)
	if err != nil {
		t.Fatalf("FormatRecords: %v", err)
	}
	got := Serialize(header, "fallback", formatted)

	want := "Quiz title: Quiz 1\n" +
		"Quiz description: Arithmetic\n" +
		"\n" +
		"Points: 2\n1. What is 2+2?\na) 3\n*b) 4\n\n" +
		"Points: 4\n2. Fill in: 2 + " + BlankRule + " = 5\n" + EssayBlank + "\n\n"

	if got != want {
		t.Errorf("pipeline output =\n%s\nwant\n%s", got, want)
	}
	if !strings.Contains(got, "Quiz title: Quiz 1") {
		t.Error("header title missing")
	}
	if formatted[1].Topic != "Addition" {
		t.Errorf("Topic = %q, want %q", formatted[1].Topic, "Addition")
	}
	if formatted[0].Topic != testSettings.DefaultTopic {
		t.Errorf("Topic = %q, want %q", formatted[0].Topic, testSettings.DefaultTopic)
	}
}
