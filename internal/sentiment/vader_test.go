package sentiment

import (
	"testing"
)

func TestAnalyzer_Compound(t *testing.T) {
	analyzer := NewAnalyzer()

	tests := []struct {
		name     string
		text     string
		expected string // positive, negative, or neutral
	}{
		{name: "positive", text: "This is a great and wonderful day", expected: "positive"},
		{name: "negative", text: "This is a terrible, awful mess", expected: "negative"},
		{name: "empty", text: "", expected: "neutral"},
		{name: "whitespace", text: "  \n\t ", expected: "neutral"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score := analyzer.Compound(tt.text)

			var got string
			if score > 0 {
				got = "positive"
			} else if score < 0 {
				got = "negative"
			} else {
				got = "neutral"
			}

			if got != tt.expected {
				t.Errorf("Expected %s sentiment, got %s (score: %.3f)", tt.expected, got, score)
			}
		})
	}
}

func TestAnalyzer_ScoreRange(t *testing.T) {
	analyzer := NewAnalyzer()

	texts := []string{
		"love love love amazing best ever!!!",
		"hate hate worst disaster ever!!!",
		"the meeting is at noon",
	}

	for _, text := range texts {
		score := analyzer.Compound(text)
		if score < -1.0 || score > 1.0 {
			t.Errorf("Score should be between -1.0 and 1.0, got %.3f for: %s", score, text)
		}
	}
}

func TestConvertMarkdownToText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"**bold** and _italic_", "bold and italic"},
		{"see [the docs](https://go.dev/doc) now", "see the docs now"},
		{"raw link https://example.com here", "raw link here"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := ConvertMarkdownToText(tt.in); got != tt.want {
			t.Errorf("ConvertMarkdownToText(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestAnalyzer_MarkdownCompoundEmpty(t *testing.T) {
	if got := NewAnalyzer().MarkdownCompound(""); got != 0 {
		t.Errorf("MarkdownCompound(\"\") = %v, want 0", got)
	}
}

func TestConvertMarkdownToText_KeepsApostrophes(t *testing.T) {
	if got := ConvertMarkdownToText("I don't like it & you"); got != "I don't like it & you" {
		t.Errorf("got %q", got)
	}
}
