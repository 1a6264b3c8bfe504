package respond

import (
	"fmt"
	"strconv"
)

// FormatAmount renders a rupee amount the way listings do: crores to one
// decimal above 1 crore, lakhs to one decimal above 1 lakh, grouped digits
// below that.
func FormatAmount(baseUnits int64) string {
	switch {
	case baseUnits >= 10_000_000:
		return fmt.Sprintf("₹%.1fCr", float64(baseUnits)/10_000_000)
	case baseUnits >= 100_000:
		return fmt.Sprintf("₹%.1fL", float64(baseUnits)/100_000)
	default:
		return "₹" + groupDigits(baseUnits)
	}
}

// FormatDays renders a day count with its unit label.
func FormatDays(days int) string {
	return strconv.Itoa(days) + " day(s)"
}

// groupDigits inserts Indian-style separators: the last three digits form one
// group, every two digits before that form another (12,34,567).
func groupDigits(v int64) string {
	s := strconv.FormatInt(v, 10)
	if len(s) <= 3 {
		return s
	}

	head, tail := s[:len(s)-3], s[len(s)-3:]
	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	if head != "" {
		groups = append([]string{head}, groups...)
	}
	groups = append(groups, tail)

	out := groups[0]
	for _, g := range groups[1:] {
		out += "," + g
	}
	return out
}
