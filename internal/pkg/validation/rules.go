package validation

import (
	"regexp"
)

// Identifier pattern: three letter prefix, four digit year, five digit
// sequence.
var IdentifierPattern = regexp.MustCompile(`^[A-Z]{3}\d{4}\d{5}$`)

var studentCategories = map[string]bool{
	"undergraduate":          true,
	"continuing_education":   true,
	"phd_candidate":          true,
	"international_exchange": true,
}

// IsStudentCategory reports whether the value is a known student category.
func IsStudentCategory(category string) bool {
	return studentCategories[category]
}

// IsIdentifier reports whether the value has valid identifier syntax.
func IsIdentifier(identifier string) bool {
	return IdentifierPattern.MatchString(identifier)
}
