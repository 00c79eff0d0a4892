package models

import (
	"regexp"
	"strings"
)

// Identifier shape conventions of the source repository:
//
//	article PID  S + 22 characters (23 total), e.g. S0100-19651997000200001
//	issue code   S + 16 characters (17 total), e.g. S0100-196519970002
//	journal PID  an ISSN, e.g. 0100-1965
const (
	articlePIDLen = 23
	issueCodeLen  = 17
)

var (
	issnPattern = regexp.MustCompile(`^[0-9]{4}-[0-9]{3}[0-9xX]$`)
	yearPattern = regexp.MustCompile(`^[0-9]{4}$`)
)

// IsArticlePID reports whether pid has the canonical article identifier shape.
func IsArticlePID(pid string) bool {
	return len(pid) == articlePIDLen && (pid[0] == 'S' || pid[0] == 's')
}

// IsIssueCode reports whether pid has the canonical issue identifier shape.
func IsIssueCode(pid string) bool {
	return len(pid) == issueCodeLen && (pid[0] == 'S' || pid[0] == 's')
}

// IsISSN reports whether s matches the NNNN-NNN[0-9X] journal identifier shape.
func IsISSN(s string) bool {
	return issnPattern.MatchString(s)
}

// NormalizeISSN upper-cases the check digit of an ISSN-shaped string.
func NormalizeISSN(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// ISSNFromArticlePID extracts the journal-code segment embedded in an article
// PID (the nine characters after the leading S). Returns "" when the segment
// is not ISSN-shaped.
func ISSNFromArticlePID(pid string) string {
	if !IsArticlePID(pid) {
		return ""
	}
	issn := NormalizeISSN(pid[1:10])
	if !IsISSN(issn) {
		return ""
	}
	return issn
}

// ISSNFromIssueCode extracts the journal-code segment embedded in an issue
// code, mirroring ISSNFromArticlePID.
func ISSNFromIssueCode(code string) string {
	if !IsIssueCode(code) {
		return ""
	}
	issn := NormalizeISSN(code[1:10])
	if !IsISSN(issn) {
		return ""
	}
	return issn
}

// YearFromPID extracts the 4-digit year embedded right after a PID's leading
// marker character. Returns "" unless the segment is exactly four digits.
func YearFromPID(pid string) string {
	if len(pid) < 5 {
		return ""
	}
	year := pid[1:5]
	if !yearPattern.MatchString(year) {
		return ""
	}
	return year
}

// IsPublicationYear reports whether s is a plausible 4-digit year.
func IsPublicationYear(s string) bool {
	return yearPattern.MatchString(s)
}
