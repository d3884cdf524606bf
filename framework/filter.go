package framework

import (
	"fmt"
	"io"
	"regexp"
	"strings"
)

// Filter is a function that can determine whether to run a specific test or not.
type Filter func(TestID) bool

type RegexFilters struct {
	MustMatch    RegexList
	MustNotMatch RegexList
}

// AsFilter accepts a test if it matches MustMatch (when defined) and does not match
// MustNotMatch. A group whose name is a leading part of a MustMatch pattern is also
// accepted, so that "-run health/ok" can reach the "ok" test inside "health".
func (r RegexFilters) AsFilter(id TestID) bool {
	name := id.String()
	if r.MustNotMatch.AnyMatch(name) {
		return false
	}
	return !r.MustMatch.IsDefined() || r.MustMatch.AnyMatch(name) || r.MustMatch.AnyLeadsTo(name)
}

type RegexList struct {
	patterns []*regexp.Regexp
}

func (r RegexList) String() string {
	var ss []string
	for _, p := range r.patterns {
		ss = append(ss, `"`+p.String()+`"`)
	}
	return strings.Join(ss, " or ")
}

// Set is called by the command line parser
func (r *RegexList) Set(value string) error {
	rx, err := regexp.Compile(value)
	if err != nil {
		return fmt.Errorf("invalid regex: %w", err)
	}
	r.patterns = append(r.patterns, rx)
	return nil
}

func (r RegexList) IsDefined() bool {
	return len(r.patterns) != 0
}

func (r RegexList) AnyMatch(s string) bool {
	for _, p := range r.patterns {
		if p.MatchString(s) {
			return true
		}
	}
	return false
}

// AnyLeadsTo is true if some pattern could match a test below the group s: either it
// matches s followed by a separator, or its literal prefix descends from s.
func (r RegexList) AnyLeadsTo(s string) bool {
	for _, p := range r.patterns {
		if p.MatchString(s + "/") {
			return true
		}
		prefix, _ := p.LiteralPrefix()
		prefix = strings.TrimPrefix(prefix, "^")
		if strings.HasPrefix(prefix, s+"/") {
			return true
		}
	}
	return false
}

func PrintFilterDescription(out io.Writer, filters RegexFilters) {
	if filters.MustMatch.IsDefined() || filters.MustNotMatch.IsDefined() {
		fmt.Fprintln(out, "Some tests will be skipped based on the filter criteria for this test run:")
		if filters.MustMatch.IsDefined() {
			fmt.Fprintf(out, "  skip any not matching %s\n", filters.MustMatch)
		}
		if filters.MustNotMatch.IsDefined() {
			fmt.Fprintf(out, "  skip any matching %s\n", filters.MustNotMatch)
		}
		fmt.Fprintln(out)
	}
}
