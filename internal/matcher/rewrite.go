// Package matcher finds recording dates in descriptions and rewrites
// filename prefixes to embed them.
package matcher

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/mydehq/vidstamp/internal/types"
)

// DatePlaceholder is replaced by the formatted date in output templates.
const DatePlaceholder = "{{DATE}}"

// Rewriter swaps a leading filename prefix for a date-stamped one.
type Rewriter struct {
	prefix *regexp.Regexp
	output string
}

// NewRewriter compiles prefix, anchored at the start of the name, and checks
// that output references {{DATE}}.
func NewRewriter(prefix, output string) (*Rewriter, error) {
	if prefix == "" {
		return nil, types.ErrInvalidPattern{Pattern: prefix, Err: fmt.Errorf("empty prefix")}
	}
	re, err := regexp.Compile("^(?:" + strings.TrimPrefix(prefix, "^") + ")")
	if err != nil {
		return nil, types.ErrInvalidPattern{Pattern: prefix, Err: err}
	}
	if !strings.Contains(output, DatePlaceholder) {
		return nil, types.ErrInvalidPattern{Pattern: output, Err: fmt.Errorf("missing %s", DatePlaceholder)}
	}
	return &Rewriter{prefix: re, output: output}, nil
}

// Matches reports whether name starts with the prefix.
func (r *Rewriter) Matches(name string) bool {
	return r.prefix.MatchString(name)
}

// Rewrite replaces the prefix of name with the output template filled with
// date. Names without the prefix are returned unchanged.
func (r *Rewriter) Rewrite(date, name string) string {
	loc := r.prefix.FindStringIndex(name)
	if loc == nil || loc[0] != 0 {
		return name
	}
	return strings.ReplaceAll(r.output, DatePlaceholder, date) + name[loc[1]:]
}
