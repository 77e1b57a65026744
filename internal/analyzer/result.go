package analyzer

import "github.com/mabhi256/jdepcheck/internal/artifact"

// Result is one analysis invocation's outcome. The three classification sets
// iterate in first-encountered order; the remaining fields are the
// intermediates exposed for audit rendering, so a caller can show its
// reasoning without recomputing anything.
type Result struct {
	UsedDeclared   *artifact.Set
	UsedUndeclared *artifact.Set
	UnusedDeclared *artifact.Set

	Usage            map[string]struct{}
	Index            *ClassOwnerIndex
	Declared         *artifact.Set
	AllowedToUse     *artifact.Set
	AllowedToDeclare *artifact.Set
	Ambiguities      []Ambiguity
}

// HasViolations reports whether any used-undeclared or unused-declared
// finding survived the allow lists.
func (r *Result) HasViolations() bool {
	return r.UsedUndeclared.Len() > 0 || r.UnusedDeclared.Len() > 0
}
