package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	// PlaceholderTimestamp expands to the run timestamp, YYYY-MM-DD_HH-MM-SS.
	PlaceholderTimestamp = "{YMDHMS}"
	// PlaceholderDateCounter expands to the run date plus the lowest free counter, YYYY-MM-DD.N.
	PlaceholderDateCounter = "{YMDN}"
	// MaxCounterAttempts bounds the {YMDN} search within one day.
	MaxCounterAttempts = 100000

	timestampLayout = "2006-01-02_15-04-05"
	dateLayout      = "2006-01-02"
)

var (
	placeholderRegex = regexp.MustCompile(`\{YMDHMS\}|\{YMDN\}`)

	placeholderPatterns = map[string]string{
		PlaceholderTimestamp:   `\d{4}-\d{2}-\d{2}_\d{2}-\d{2}-\d{2}`,
		PlaceholderDateCounter: `\d{4}-\d{2}-\d{2}\.\d+`,
	}
)

// Template is a ref name containing zero or more placeholders.
type Template string

// HasCounter reports whether the template contains {YMDN}.
func (t Template) HasCounter() bool {
	return strings.Contains(string(t), PlaceholderDateCounter)
}

// HasTimestamp reports whether the template contains {YMDHMS}.
func (t Template) HasTimestamp() bool {
	return strings.Contains(string(t), PlaceholderTimestamp)
}

// Expand produces a concrete name for now. With {YMDN} the lowest counter
// whose full expansion is not a tag in snapshot wins. {YMDHMS} names are not
// checked for collisions.
func (t Template) Expand(now time.Time, snapshot *RefSnapshot) (string, error) {
	withTimestamp := strings.ReplaceAll(string(t), PlaceholderTimestamp, now.Format(timestampLayout))
	if !t.HasCounter() {
		return withTimestamp, nil
	}
	date := now.Format(dateLayout)
	for n := 1; n <= MaxCounterAttempts; n++ {
		candidate := strings.ReplaceAll(withTimestamp, PlaceholderDateCounter, date+"."+strconv.Itoa(n))
		if snapshot == nil || !snapshot.HasTag(candidate) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%w: template %q on %s", ErrCounterExhausted, string(t), date)
}

// Pattern returns an anchored regular expression matching any name this
// template could expand to.
func (t Template) Pattern() *regexp.Regexp {
	s := string(t)
	var b strings.Builder
	b.WriteString("^")
	last := 0
	for _, loc := range placeholderRegex.FindAllStringIndex(s, -1) {
		b.WriteString(regexp.QuoteMeta(s[last:loc[0]]))
		b.WriteString(placeholderPatterns[s[loc[0]:loc[1]]])
		last = loc[1]
	}
	b.WriteString(regexp.QuoteMeta(s[last:]))
	b.WriteString("$")
	return regexp.MustCompile(b.String())
}

// FirstMatch returns the first of names that has the template's shape.
func (t Template) FirstMatch(names []string) (string, bool) {
	if len(names) == 0 {
		return "", false
	}
	pattern := t.Pattern()
	for _, name := range names {
		if pattern.MatchString(name) {
			return name, true
		}
	}
	return "", false
}
