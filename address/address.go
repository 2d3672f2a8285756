// Package address checks manually typed addresses when the autocomplete widget is
// unavailable. Results are hints for the form; they never block a submission.
package address

import (
	"strings"
	"unicode"
)

// MinLength is the shortest trimmed address accepted
const MinLength = 5

// Hint codes
const (
	HintTooShort    = "TOO_SHORT"
	HintNoNumber    = "NO_NUMBER"
	HintNoLetters   = "NO_LETTERS"
	HintTooFewWords = "TOO_FEW_WORDS"
	HintUnsafeChars = "UNSAFE_CHARACTERS"
)

const unsafeChars = "<>{}[]\\;$|`"

// Hint is one reason an address looks wrong
type Hint struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Result of checking one address
type Result struct {
	Valid bool   `json:"valid"`
	Hints []Hint `json:"hints"`
}

// Validate applies the manual-entry heuristics to s.
func Validate(s string) Result {
	s = strings.TrimSpace(s)
	hints := make([]Hint, 0)

	if len([]rune(s)) < MinLength {
		hints = append(hints, Hint{HintTooShort, "Please enter your full address"})
	}

	var hasDigit, hasLetter bool
	for _, r := range s {
		switch {
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsLetter(r):
			hasLetter = true
		}
	}
	if !hasDigit {
		hints = append(hints, Hint{HintNoNumber, "Include a house or flat number"})
	}
	if !hasLetter {
		hints = append(hints, Hint{HintNoLetters, "Include the street name"})
	}
	if len(strings.Fields(s)) < 2 {
		hints = append(hints, Hint{HintTooFewWords, "Include both the number and the street"})
	}
	if strings.ContainsAny(s, unsafeChars) {
		hints = append(hints, Hint{HintUnsafeChars, "Remove special characters such as < > { } ;"})
	}

	return Result{Valid: len(hints) == 0, Hints: hints}
}

// Join builds a single-line address from its parts, skipping blanks.
func Join(parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, ", ")
}
