// Package substitute implements the sed-style expression mode:
// s<delim>pattern<delim>replacement<delim>[flags] plus the line
// commands d (delete), a (append after), and i (insert before), all
// optionally scoped by an address (N, N,M, $, /regex/).
package substitute

import (
	"context"
	"regexp"
	"strings"

	"github.com/arthur-debert/sedit/pkg/errors"
	"github.com/arthur-debert/sedit/pkg/internal/textutil"
	"github.com/arthur-debert/sedit/pkg/transform"
	"github.com/arthur-debert/sedit/pkg/types"
)

// Name is the registry name of the substitute transformer.
const Name = "substitute"

// Transformer applies sed-style expressions to content.
type Transformer struct{}

// New creates the substitute transformer.
func New() *Transformer {
	return &Transformer{}
}

// Mode implements transform.Transformer
func (t *Transformer) Mode() types.EditMode { return types.ModeSubstitute }

// Name implements transform.Transformer
func (t *Transformer) Name() string { return Name }

// Describe implements transform.Transformer
func (t *Transformer) Describe() string {
	return "sed-style substitution and line commands (s///, d, a, i)"
}

// Validate parses the expression without applying it.
func (t *Transformer) Validate(params types.Params) error {
	p, ok := params.(types.SubstituteParams)
	if !ok {
		return errors.New(errors.ErrInvalidInput, "substitute mode requires SubstituteParams")
	}
	_, err := parse(p.Expression)
	return err
}

// Apply runs the expression over the content. An expression whose
// pattern matches nothing is a no-op, not an error.
func (t *Transformer) Apply(ctx context.Context, content string, params types.Params) (types.TransformResult, error) {
	p, ok := params.(types.SubstituteParams)
	if !ok {
		return types.TransformResult{}, errors.New(errors.ErrInvalidInput, "substitute mode requires SubstituteParams")
	}

	expr, err := parse(p.Expression)
	if err != nil {
		return types.TransformResult{}, err
	}

	return expr.apply(content), nil
}

// matches reports whether the command applies to the given line.
// Unaddressed expressions apply everywhere.
func (e *expression) matches(lineNum, total int, line string) bool {
	a := e.addr
	if a == nil {
		return true
	}
	switch {
	case a.last:
		return lineNum == total
	case a.regex != nil:
		return a.regex.MatchString(line)
	case a.end > 0:
		return lineNum >= a.start && lineNum <= a.end
	default:
		return lineNum == a.start
	}
}

func (e *expression) apply(content string) types.TransformResult {
	lines, terminated := textutil.SplitLines(content)

	switch e.cmd {
	case 's':
		return e.applySubstitution(lines, terminated)
	case 'd':
		return e.applyDelete(lines, terminated)
	case 'a':
		return e.applyInsert(lines, terminated, true)
	case 'i':
		return e.applyInsert(lines, terminated, false)
	}
	// parse admits no other commands
	return types.TransformResult{Content: content}
}

// applySubstitution scopes replacement by address: addressed
// expressions replace within each addressed line, unaddressed
// expressions target the whole content (first match overall unless g).
func (e *expression) applySubstitution(lines []string, terminated bool) types.TransformResult {
	sub := e.sub
	total := len(lines)
	changed := 0

	switch {
	case sub.global:
		for i, line := range lines {
			if !e.matches(i+1, total, line) {
				continue
			}
			newLine := sub.regex.ReplaceAllString(line, sub.replace)
			if newLine != line {
				lines[i] = newLine
				changed++
			}
		}

	case e.addr != nil:
		// first (or Nth) match per addressed line
		for i, line := range lines {
			if !e.matches(i+1, total, line) {
				continue
			}
			var newLine string
			if sub.nth > 0 {
				seen := 0
				newLine, _ = replaceTargetMatch(sub, line, sub.nth, &seen)
			} else {
				newLine = replaceFirstMatch(sub, line)
			}
			if newLine != line {
				lines[i] = newLine
				changed++
			}
		}

	default:
		// first (or Nth) match in the whole content
		target := 1
		if sub.nth > 0 {
			target = sub.nth
		}
		seen := 0
		for i, line := range lines {
			newLine, done := replaceTargetMatch(sub, line, target, &seen)
			if newLine != line {
				lines[i] = newLine
				changed++
			}
			if done {
				break
			}
		}
	}

	return types.TransformResult{
		Content:      textutil.JoinLines(lines, terminated),
		LinesChanged: changed,
	}
}

func (e *expression) applyDelete(lines []string, terminated bool) types.TransformResult {
	total := len(lines)
	kept := make([]string, 0, total)
	removed := 0

	for i, line := range lines {
		if e.matches(i+1, total, line) {
			removed++
			continue
		}
		kept = append(kept, line)
	}

	return types.TransformResult{
		Content:      textutil.JoinLines(kept, terminated),
		LinesChanged: removed,
	}
}

func (e *expression) applyInsert(lines []string, terminated bool, after bool) types.TransformResult {
	total := len(lines)

	textLines, _ := textutil.SplitLines(e.text)
	if len(textLines) == 0 {
		textLines = []string{""}
	}

	out := make([]string, 0, total+len(textLines))
	added := 0
	for i, line := range lines {
		hit := e.matches(i+1, total, line)
		if hit && !after {
			out = append(out, textLines...)
			added += len(textLines)
		}
		out = append(out, line)
		if hit && after {
			out = append(out, textLines...)
			added += len(textLines)
		}
	}

	return types.TransformResult{
		Content:      textutil.JoinLines(out, terminated),
		LinesChanged: added,
	}
}

// ApplyLiteral runs a verbatim find/replace through the substitution
// machinery. The find string is QuoteMeta-escaped so none of its bytes
// act as pattern syntax, and the replacement is inserted literally.
// Matching is line-scoped like every s command; all=false replaces the
// first occurrence in the whole content.
func ApplyLiteral(content, find, replace string, all bool) types.TransformResult {
	expr := &expression{
		cmd: 's',
		sub: &substitution{
			regex:   regexp.MustCompile(regexp.QuoteMeta(find)),
			replace: strings.ReplaceAll(replace, "$", "$$"),
			global:  all,
		},
	}
	return expr.apply(content)
}

// replaceFirstMatch substitutes the first match in the line, expanding
// backreferences by re-running the regex over the matched slice.
func replaceFirstMatch(sub *substitution, line string) string {
	loc := sub.regex.FindStringIndex(line)
	if loc == nil {
		return line
	}
	matched := line[loc[0]:loc[1]]
	return line[:loc[0]] + sub.regex.ReplaceAllString(matched, sub.replace) + line[loc[1]:]
}

// replaceTargetMatch substitutes the target-th match counting from
// *seen, leaving every other match alone. done reports that the target
// was reached in this line.
func replaceTargetMatch(sub *substitution, line string, target int, seen *int) (string, bool) {
	done := false
	result := sub.regex.ReplaceAllStringFunc(line, func(match string) string {
		*seen++
		if *seen == target {
			done = true
			return sub.regex.ReplaceAllString(match, sub.replace)
		}
		return match
	})
	return result, done
}

func init() {
	transform.MustRegister(New())
}
