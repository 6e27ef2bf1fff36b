package extract

import "regexp"

var (
	salaryPattern  = regexp.MustCompile(`(?i)[$€£¥]|per\s+|annum|annual|year|month|hour|week`)
	jobTypePattern = regexp.MustCompile(`(?i)\b(Full-time|Part-time|Contract|Temporary|Internship|Casual|Contractor)\b`)
)

// Salary returns the first snippet that looks like pay: a currency symbol or
// a pay period word.
func Salary(snippets []string) string {
	for _, s := range snippets {
		if salaryPattern.MatchString(s) {
			return Clean(s)
		}
	}
	return ""
}

// JobType returns the employment type word found in the first matching
// snippet, without any trailing qualifiers.
func JobType(snippets []string) string {
	for _, s := range snippets {
		if m := jobTypePattern.FindString(s); m != "" {
			return m
		}
	}
	return ""
}
