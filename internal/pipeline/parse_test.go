package pipeline

// Notes:
// - ParseBlock is tested on single blocks; ParseQuestions covers splitting
//   and the dropping of blocks without a question.
// - Malformed Points values are errors, not coerced.

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

// testSettings matches the configuration defaults.
var testSettings = Settings{DefaultPoints: 2, DefaultTopic: "??"}

func TestParseBlock(t *testing.T) {
	t.Parallel()

	defaults := testSettings

	tests := []struct {
		name   string
		block  string
		want   Record
		wantOK bool
	}{
		{
			name:  "question with answers and defaults",
			block: "@ What is 2+2?\n$ 3\n$ [correct] 4",
			want: Record{
				Question: "What is 2+2?",
				Answers:  []string{"3", "[correct] 4"},
				Points:   2,
				Topic:    "??",
			},
			wantOK: true,
		},
		{
			name:  "multi-line body gets line break markup",
			block: "@ Line one\nLine two\n$ [correct] a",
			want: Record{
				Question: "Line one<br>\nLine two",
				Answers:  []string{"[correct] a"},
				Points:   2,
				Topic:    "??",
			},
			wantOK: true,
		},
		{
			name:  "field line sets points and topic",
			block: "@ Q\n| Points: 5 | Topic: Algebra\n$ [correct] a",
			want: Record{
				Question: "Q",
				Answers:  []string{"[correct] a"},
				Points:   5,
				Topic:    "Algebra",
			},
			wantOK: true,
		},
		{
			name:  "inline field stripped from question",
			block: "@ Q | Points: 3\n$ [correct] a",
			want: Record{
				Question: "Q",
				Answers:  []string{"[correct] a"},
				Points:   3,
				Topic:    "??",
			},
			wantOK: true,
		},
		{
			name:  "bare points line",
			block: "@ Q\nPoints: 4\n$ [correct] a",
			want: Record{
				Question: "Q",
				Answers:  []string{"[correct] a"},
				Points:   4,
				Topic:    "??",
			},
			wantOK: true,
		},
		{
			name:  "note line ends the body",
			block: "@ Q\nmore\n% grading note\nhidden\n$ [correct] a",
			want: Record{
				Question: "Q<br>\nmore",
				Answers:  []string{"[correct] a"},
				Points:   2,
				Topic:    "??",
			},
			wantOK: true,
		},
		{
			name:  "indented answers and trailing field on answer",
			block: "@ Q\n  $ [correct] a | Topic: Sets\n  $ b",
			want: Record{
				Question: "Q",
				Answers:  []string{"[correct] a", "b"},
				Points:   2,
				Topic:    "Sets",
			},
			wantOK: true,
		},
		{
			name:  "no answers",
			block: "@ Explain photosynthesis.",
			want: Record{
				Question: "Explain photosynthesis.",
				Points:   2,
				Topic:    "??",
			},
			wantOK: true,
		},
		{
			name:   "no question start",
			block:  "$ orphan answer",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok, err := ParseBlock(tt.block, defaults)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseBlock() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParseBlock_CustomDefaults(t *testing.T) {
	t.Parallel()

	settings := Settings{DefaultPoints: 10, DefaultTopic: "General"}
	got, ok, err := ParseBlock("@ Q\n$ [correct] a", settings)
	if err != nil || !ok {
		t.Fatalf("ParseBlock() ok=%v err=%v", ok, err)
	}
	if got.Points != 10 {
		t.Errorf("Points = %d, want 10", got.Points)
	}
	if got.Topic != "General" {
		t.Errorf("Topic = %q, want %q", got.Topic, "General")
	}
}

func TestParseBlock_InvalidPoints(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		block string
	}{
		{"word", "@ Q\n| Points: two\n$ [correct] a"},
		{"negative", "@ Q\n| Points: -1\n$ [correct] a"},
		{"decimal", "@ Q\n| Points: 1.5\n$ [correct] a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, _, err := ParseBlock(tt.block, testSettings)
			if !errors.Is(err, ErrInvalidPoints) {
				t.Fatalf("error = %v, want ErrInvalidPoints", err)
			}
			if !strings.Contains(err.Error(), "Q") {
				t.Errorf("error %q should quote the question", err)
			}
		})
	}
}

func TestParseQuestions(t *testing.T) {
	t.Parallel()

	text := "preamble\n@ First\n$ [correct] a\n@ Second\n| Topic: Geo\n@ Third\n$ x\n$ [correct] y"

	records, err := ParseQuestions(text, testSettings)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var questions []string
	for _, r := range records {
		questions = append(questions, r.Question)
	}
	want := []string{"First", "Second", "Third"}
	if !reflect.DeepEqual(questions, want) {
		t.Errorf("questions = %q, want %q", questions, want)
	}
	if records[1].Topic != "Geo" {
		t.Errorf("records[1].Topic = %q, want %q", records[1].Topic, "Geo")
	}
}

func TestParseQuestions_NoQuestions(t *testing.T) {
	t.Parallel()

	records, err := ParseQuestions("no markers here", testSettings)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("len(records) = %d, want 0", len(records))
	}
}

func TestParseQuestions_PropagatesError(t *testing.T) {
	t.Parallel()

	_, err := ParseQuestions("@ ok\n$ [correct] a\n@ bad\n| Points: many", testSettings)
	if !errors.Is(err, ErrInvalidPoints) {
		t.Errorf("error = %v, want ErrInvalidPoints", err)
	}
}
