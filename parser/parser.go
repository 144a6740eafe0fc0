// Package parser normalizes and validates extracted politician fields.
package parser

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/polwatch/nec-crawler/models"
)

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	emailRe      = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	// A period token starts with a four-digit year followed by '.', '-' or
	// '~', optionally continued by more digit groups ("2020-2024",
	// "2019.03~2023.02").
	careerPeriodRe = regexp.MustCompile(`^(\d{4}[.\-~](?:\d{1,4}[.\-~]?)*)`)
)

// CleanText collapses runs of whitespace to single spaces and trims.
func CleanText(text string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(text, " "))
}

// FormatPhoneNumber applies Korean hyphenation rules to a phone number. The
// Seoul area code (02) takes 9 or 10 digits, every other area code 10 or 11.
// Inputs matching no rule are returned unchanged.
func FormatPhoneNumber(phone string) string {
	digits := stripNonDigits(phone)

	if strings.HasPrefix(digits, "02") {
		switch len(digits) {
		case 9:
			return fmt.Sprintf("%s-%s-%s", digits[:2], digits[2:5], digits[5:])
		case 10:
			return fmt.Sprintf("%s-%s-%s", digits[:2], digits[2:6], digits[6:])
		}
		return phone
	}

	if strings.HasPrefix(digits, "0") {
		switch len(digits) {
		case 10:
			return fmt.Sprintf("%s-%s-%s", digits[:3], digits[3:6], digits[6:])
		case 11:
			return fmt.Sprintf("%s-%s-%s", digits[:3], digits[3:7], digits[7:])
		}
	}
	return phone
}

func stripNonDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// IsValidEmail runs a permissive local@domain.tld check. It is intentionally
// not RFC-complete; the goal is filtering obvious extraction garbage.
func IsValidEmail(email string) bool {
	return emailRe.MatchString(strings.TrimSpace(email))
}

// ParseCareer splits a career block into items, one per non-empty line. A
// line starting with a year-range token gets that token as the period and
// the remainder as the description; lines without one become a description
// with an empty period.
func ParseCareer(text string) []models.CareerItem {
	var items []models.CareerItem
	for _, line := range strings.Split(text, "\n") {
		line = CleanText(line)
		if line == "" {
			continue
		}
		if m := careerPeriodRe.FindString(line); m != "" {
			items = append(items, models.CareerItem{
				Period:      strings.TrimSpace(m),
				Description: CleanText(strings.TrimPrefix(line, m)),
			})
			continue
		}
		items = append(items, models.CareerItem{Description: line})
	}
	return items
}

// Validate is the acceptance gate separating a usable record from a
// discarded one. Party and district may be empty; the name may not.
func Validate(p *models.Politician) error {
	if p == nil {
		return fmt.Errorf("politician is nil")
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("politician missing name")
	}
	return nil
}
