// Package colorize tints feedback text by tone for terminal output.
package colorize

import "strings"

const (
	red    = "\033[31m"
	green  = "\033[32m"
	yellow = "\033[33m"
	reset  = "\033[0m"
)

type Tone int

const (
	Neutral Tone = iota
	Negative
	Positive
)

// ToneOf classifies text by keyword. Negative words win over positive ones.
func ToneOf(text string) Tone {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "bad"), strings.Contains(lower, "boring"):
		return Negative
	case strings.Contains(lower, "good"), strings.Contains(lower, "great"):
		return Positive
	default:
		return Neutral
	}
}

func (t Tone) String() string {
	switch t {
	case Negative:
		return "negative"
	case Positive:
		return "positive"
	default:
		return "neutral"
	}
}

// Feedback wraps text in the ANSI colour for its tone. With enabled false the
// text is returned unchanged.
func Feedback(text string, enabled bool) string {
	if !enabled {
		return text
	}
	var c string
	switch ToneOf(text) {
	case Negative:
		c = red
	case Positive:
		c = green
	default:
		c = yellow
	}
	return c + text + reset
}

// Error paints an error line red.
func Error(text string, enabled bool) string {
	if !enabled {
		return text
	}
	return red + text + reset
}

// Hint paints a follow-up hint yellow.
func Hint(text string, enabled bool) string {
	if !enabled {
		return text
	}
	return yellow + text + reset
}
