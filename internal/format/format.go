// Package format parses bulk recipe text and renders recipe fields for display.
package format

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

var leadingNumber = regexp.MustCompile(`^\d+\.?\s*`)

// ParseIngredients splits text into one trimmed ingredient per non-blank line
func ParseIngredients(text string) []string {
	lines := []string{}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// ParseInstructions is ParseIngredients with step numbering such as "1." removed
func ParseInstructions(text string) []string {
	lines := ParseIngredients(text)
	for i, line := range lines {
		lines[i] = leadingNumber.ReplaceAllString(line, "")
	}
	return lines
}

// ParseInt reads the leading integer of s after optional whitespace and sign.
// It returns 0 when s does not start with a number.
func ParseInt(s string) int {
	n, _ := parseLeadingInt(s)
	return n
}

func parseLeadingInt(s string) (int, bool) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	neg := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}

	n, digits := 0, 0
	for _, r := range s {
		if r < '0' || r > '9' {
			break
		}
		digits++
		if n > (math.MaxInt-9)/10 {
			n = math.MaxInt
			continue
		}
		n = n*10 + int(r-'0')
	}
	if digits == 0 {
		return 0, false
	}
	if neg {
		n = -n
	}
	return n, true
}

// FormatTime renders a minute count as "25 mins", "1 hr" or "1h 30m".
// Empty or non-numeric input renders as "N/A".
func FormatTime(minutes string) string {
	mins, ok := parseLeadingInt(minutes)
	if !ok {
		return "N/A"
	}
	if mins < 60 {
		return fmt.Sprintf("%d %s", mins, plural(mins, "min"))
	}
	hours, rest := mins/60, mins%60
	if rest == 0 {
		return fmt.Sprintf("%d %s", hours, plural(hours, "hr"))
	}
	return fmt.Sprintf("%dh %dm", hours, rest)
}

func plural(n int, unit string) string {
	if n == 1 {
		return unit
	}
	return unit + "s"
}

// FormatDate renders t like "January 2, 2006"
func FormatDate(t time.Time) string {
	return t.Format("January 2, 2006")
}

// TotalTime sums prep and cook minutes, counting non-numeric values as zero
func TotalTime(prepTime, cookTime string) int {
	return ParseInt(prepTime) + ParseInt(cookTime)
}

// Truncate shortens text to max runes and appends "..." when it was cut
func Truncate(text string, max int) string {
	if utf8.RuneCountInString(text) <= max {
		return text
	}
	runes := []rune(text)
	return string(runes[:max]) + "..."
}

func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return ""
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
