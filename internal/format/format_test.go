package format

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseIngredients(t *testing.T) {
	got := ParseIngredients("  2 eggs \n\n1 cup milk\n   \n salt")
	assert.Equal(t, []string{"2 eggs", "1 cup milk", "salt"}, got)

	assert.Empty(t, ParseIngredients(""))
	assert.NotNil(t, ParseIngredients(""))
}

func TestParseInstructions(t *testing.T) {
	text := "1. Preheat oven\n2 Mix flour\n\n10.   Bake 20 minutes\nServe warm"
	got := ParseInstructions(text)
	assert.Equal(t, []string{"Preheat oven", "Mix flour", "Bake 20 minutes", "Serve warm"}, got)
}

func TestParseInt(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"10", 10},
		{"  42 minutes", 42},
		{"12.5", 12},
		{"-3", -3},
		{"+7", 7},
		{"abc", 0},
		{"", 0},
		{"1e3", 1},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseInt(tt.in))
		})
	}
}

func TestFormatTime(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "N/A"},
		{"soon", "N/A"},
		{"0", "0 mins"},
		{"1", "1 min"},
		{"25", "25 mins"},
		{"60", "1 hr"},
		{"120", "2 hrs"},
		{"90", "1h 30m"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatTime(tt.in))
		})
	}
}

func TestFormatDate(t *testing.T) {
	d := time.Date(2024, time.March, 5, 18, 0, 0, 0, time.UTC)
	assert.Equal(t, "March 5, 2024", FormatDate(d))
}

func TestTotalTime(t *testing.T) {
	assert.Equal(t, 25, TotalTime("10", "15"))
	assert.Equal(t, 15, TotalTime("", "15"))
	assert.Equal(t, 0, TotalTime("x", "y"))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "exactly10!", Truncate("exactly10!", 10))
	assert.Equal(t, "abc...", Truncate("abcdef", 3))
	assert.Equal(t, "crème...", Truncate("crème brûlée", 5))
}

func TestCapitalize(t *testing.T) {
	assert.Equal(t, "", Capitalize(""))
	assert.Equal(t, "Invalid credentials", Capitalize("invalid credentials"))
	assert.Equal(t, "Éclair", Capitalize("éclair"))
}
