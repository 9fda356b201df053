package event

import (
	"regexp"
	"time"
)

// Date fragments as they appear in announcement text, tried in order.
var deadlinePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\d{1,2}\s+[A-Za-z]{3,9}\s+\d{4}`),  // 12 Jan 2025
	regexp.MustCompile(`[A-Za-z]{3,9}\s+\d{1,2},\s*\d{4}`), // Jan 12, 2025
	regexp.MustCompile(`\d{4}-\d{2}-\d{2}`),                // 2025-01-22
	regexp.MustCompile(`\d{1,2}/\d{1,2}/\d{4}`),            // 01/12/2025
}

// Layouts tried against an extracted fragment. Order matters: day-first
// slash dates win over month-first, matching the sites being scraped.
var deadlineLayouts = []string{
	"2 Jan 2006",
	"2 January 2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2006-01-02",
	"2/1/2006",
	"1/2/2006",
}

// FindDeadlineText returns the first date-looking fragment in text,
// or "" when none is present.
func FindDeadlineText(text string) string {
	if text == "" {
		return ""
	}
	for _, re := range deadlinePatterns {
		if m := re.FindString(text); m != "" {
			return m
		}
	}
	return ""
}

// ParseDeadline extracts and parses a deadline date from free-form text
// ("Deadline: 15 March 2025", "Apply by Jan 12, 2025", ...).
// Returns time.Time{} (zero value) if no fragment parses; dateless
// announcements are a normal outcome, not an error.
func ParseDeadline(text string) time.Time {
	fragment := FindDeadlineText(text)
	if fragment == "" {
		return time.Time{}
	}
	for _, layout := range deadlineLayouts {
		if t, err := time.Parse(layout, fragment); err == nil {
			return t
		}
	}
	return time.Time{}
}
