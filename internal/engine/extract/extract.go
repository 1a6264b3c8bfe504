// Package extract pulls typed entities out of free-form user text.
package extract

import (
	"regexp"
	"strconv"
	"strings"

	"estate-assistant/internal/models"
)

// Scale multipliers for Indian currency shorthand, in base units (rupees).
const (
	croreInRupees    = 10_000_000
	lakhInRupees     = 100_000
	thousandInRupees = 1_000
)

// Day counts per recognized time unit.
const (
	daysPerYear  = 365
	daysPerMonth = 30
	daysPerWeek  = 7
)

var (
	amountPattern   = regexp.MustCompile(`(?i)\b(\d+)\s*(crores?|lakhs?|thousand|k)\b`)
	durationPattern = regexp.MustCompile(`(?i)\b(\d+)\s*(days?|weeks?|months?|years?)\b`)
)

// locationPatterns are tried in fixed priority order; the first preposition
// whose pattern matches anywhere in the text wins. The captured phrase is a
// single token: it ends at the next whitespace or punctuation boundary.
var locationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bin\s+(\w+)`),
	regexp.MustCompile(`(?i)\bat\s+(\w+)`),
	regexp.MustCompile(`(?i)\bnear\s+(\w+)`),
	regexp.MustCompile(`(?i)\baround\s+(\w+)`),
}

// Extract recognizes monetary amounts, durations and location phrases in text.
// It is pure and total: unparseable input yields an empty result, never an
// error. Each category is matched against the full original text, so entities
// embedded inside one another resolve independently.
func Extract(text string) models.Entities {
	return models.Entities{
		Amount:   extractAmount(text),
		Duration: extractDuration(text),
		Location: extractLocation(text),
	}
}

// extractAmount parses the first "<integer> <scale-word>" occurrence. Bare
// numbers without a recognized scale word produce nothing, which keeps phone
// numbers and bedroom counts from being read as currency.
func extractAmount(text string) *models.MonetaryAmount {
	m := amountPattern.FindStringSubmatch(text)
	if m == nil {
		return nil
	}

	magnitude, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return nil
	}

	var multiplier int64
	switch strings.ToLower(strings.TrimSuffix(m[2], "s")) {
	case "crore":
		multiplier = croreInRupees
	case "lakh":
		multiplier = lakhInRupees
	case "thousand", "k":
		multiplier = thousandInRupees
	default:
		return nil
	}

	return &models.MonetaryAmount{ValueInBaseUnits: magnitude * multiplier}
}

// extractDuration parses the first "<integer> <time-unit>" occurrence and
// normalizes it to days.
func extractDuration(text string) *models.Duration {
	m := durationPattern.FindStringSubmatch(text)
	if m == nil {
		return nil
	}

	magnitude, err := strconv.Atoi(m[1])
	if err != nil {
		return nil
	}

	var days int
	switch strings.ToLower(strings.TrimSuffix(m[2], "s")) {
	case "year":
		days = magnitude * daysPerYear
	case "month":
		days = magnitude * daysPerMonth
	case "week":
		days = magnitude * daysPerWeek
	case "day":
		days = magnitude
	default:
		return nil
	}

	return &models.Duration{ValueInDays: days}
}

func extractLocation(text string) *models.LocationPhrase {
	for _, p := range locationPatterns {
		if m := p.FindStringSubmatch(text); m != nil {
			phrase := strings.TrimSpace(m[1])
			if phrase == "" {
				continue
			}
			return &models.LocationPhrase{Text: phrase}
		}
	}
	return nil
}
