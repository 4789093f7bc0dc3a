// Package textutils provides text cleanup and casing helpers shared by the
// parser, the aggregator and the analyzer.
package textutils

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Title upper-cases the first letter of every word and lower-cases the rest,
// so "tea for LUNCH" becomes "Tea For Lunch".
func Title(s string) string {
	// A Caser keeps state between calls and is not safe for concurrent use,
	// so each call gets its own.
	return cases.Title(language.Und).String(s)
}

// Capitalize upper-cases the first letter of s and lower-cases the rest.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	lower := strings.ToLower(s)
	r := []rune(lower)
	head := cases.Upper(language.Und).String(string(r[0]))
	return head + string(r[1:])
}

// CollapseSpaces trims s and replaces every whitespace run with one space.
func CollapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// ContainsAny reports whether any of the substrings occurs in s.
func ContainsAny(s string, substrings ...string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
