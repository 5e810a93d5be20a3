package catalog

import (
	"fmt"
	"regexp"
)

// DefaultCredits is the credit weight of a course whose page has no credit
// annotation.
const DefaultCredits = 0.50

// Course is one course scraped from the calendar. Code is the unique key and
// always looks like "CIS*1300", Subject is the letters before the '*'.
type Course struct {
	Subject     string  `json:"subject"`
	Code        string  `json:"code"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Credits     float64 `json:"credits"`
	Url         string  `json:"url"`
}

var codeRegex = regexp.MustCompile(`([A-Z]{2,4})\*?(\d{4})`)

// ParseCode finds the first course code in text, accepting both "CIS*1300"
// and "CIS1300", and returns it in its canonical "CIS*1300" form.
func ParseCode(text string) (subject, code string, ok bool) {
	groups := codeRegex.FindStringSubmatch(text)
	if len(groups) < 3 {
		return "", "", false
	}
	return groups[1], FormatCode(groups[1], groups[2]), true
}

func FormatCode(subject, number string) string {
	return fmt.Sprintf("%s*%s", subject, number)
}
