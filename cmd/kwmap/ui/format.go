package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

// Thousands renders n with comma separators: 1234567 → "1,234,567".
func Thousands(n float64) string {
	return humanize.Commaf(n)
}

// ThousandsText adds separators to numeric text such as a price stored as
// a string. Anything else is returned as is.
func ThousandsText(s string) string {
	n, ok := textNumber(s)
	if !ok {
		return s
	}
	return Thousands(n)
}

// PriceValue is the numeric value of a price stored as text, used to
// order price columns. Empty or non-numeric text counts as 0.
func PriceValue(s string) float64 {
	n, _ := textNumber(s)
	return n
}

func textNumber(s string) (float64, bool) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return 0, false
	}
	n, err := strconv.ParseFloat(strings.ReplaceAll(trimmed, ",", ""), 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Percent renders a growth rate with two decimals: 11.1 → "11.10%".
func Percent(n float64) string {
	return fmt.Sprintf("%.2f%%", n)
}

// Product sales status values with a dedicated color.
const (
	StatusSoldOut      = "품절"
	StatusDiscontinued = "판매중지"
	StatusIncoming     = "입고예정"
)

// Keyword competition levels with a dedicated color.
const (
	CompetitionNormal   = "보통"
	CompetitionHigh     = "높음"
	CompetitionVeryHigh = "매우높음"
)

// StatusColor returns the highlight for a product status, if any.
func StatusColor(status string) (lipgloss.Color, bool) {
	switch strings.TrimSpace(status) {
	case StatusSoldOut:
		return Destructive, true
	case StatusDiscontinued:
		return Caution, true
	case StatusIncoming:
		return Notice, true
	}
	return "", false
}

// CompetitionColor returns the highlight for a competition level, if any.
func CompetitionColor(level string) (lipgloss.Color, bool) {
	switch strings.TrimSpace(level) {
	case CompetitionNormal:
		return Notice, true
	case CompetitionHigh:
		return Caution, true
	case CompetitionVeryHigh:
		return Destructive, true
	}
	return "", false
}

// Colored renders s in c when ok; otherwise s is unchanged.
func Colored(s string, c lipgloss.Color, ok bool) string {
	if !ok {
		return s
	}
	return lipgloss.NewStyle().Foreground(c).Render(s)
}
