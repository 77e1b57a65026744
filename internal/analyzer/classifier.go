package analyzer

import "github.com/mabhi256/jdepcheck/internal/artifact"

/*
*	Classify computes the three classification sets:
*
*	needed          = union of index[c] for every used class c present in the index
*	usedDeclared    = declared ∩ needed
*	usedUndeclared  = (needed − declared) − allowedToUse
*	unusedDeclared  = (declared − needed) − allowedToDeclare − allowedToUse
*
*	Used classes absent from the index are ignored: they come from the
*	platform library or an unresolved external source, not an error. When a
*	class has several owners every owner counts toward needed, trading
*	possible under-reporting of "unused" for no false positives.
*	usedDeclared is never allow-list filtered: a dependency correctly
*	declared and used is not a violation regardless of list membership.
 */
func Classify(usage map[string]struct{}, index *ClassOwnerIndex,
	declared, allowedToUse, allowedToDeclare *artifact.Set,
) (usedDeclared, usedUndeclared, unusedDeclared *artifact.Set) {
	needed := artifact.NewSet()
	for className := range usage {
		owners := index.Owners(className)
		if owners == nil {
			continue
		}
		for _, owner := range owners.Values() {
			needed.Add(owner)
		}
	}

	usedDeclared = artifact.NewSet()
	usedUndeclared = artifact.NewSet()
	unusedDeclared = artifact.NewSet()

	for _, id := range needed.Values() {
		switch {
		case declared.Contains(id):
			usedDeclared.Add(id)
		case !allowedToUse.Contains(id):
			usedUndeclared.Add(id)
		}
	}

	for _, id := range declared.Values() {
		if !needed.Contains(id) && !allowedToDeclare.Contains(id) && !allowedToUse.Contains(id) {
			unusedDeclared.Add(id)
		}
	}

	return usedDeclared, usedUndeclared, unusedDeclared
}
