package analyzer

import (
	"github.com/mabhi256/jdepcheck/internal/artifact"
	"github.com/mabhi256/jdepcheck/internal/classfile"
	"github.com/mabhi256/jdepcheck/internal/inventory"
)

// Analyzer ties extraction, indexing and classification together for one
// module. The inventory cache is constructed and owned by the host process
// and shared across invocations; its absence is a setup error, not an empty
// result.
type Analyzer struct {
	extractor *classfile.Extractor
	indexer   *Indexer
}

func NewAnalyzer(cache *inventory.Cache) (*Analyzer, error) {
	if cache == nil {
		return nil, &artifact.ConfigurationError{Reason: "analyzer requires a shared inventory cache"}
	}

	indexer, err := NewIndexer(cache)
	if err != nil {
		return nil, err
	}

	return &Analyzer{
		extractor: classfile.NewExtractor(),
		indexer:   indexer,
	}, nil
}

// Analyze classifies the module whose compiled output lives at the given
// paths against the role-tagged dependency graphs. Declared dependencies and
// the allow lists are the first-level entries of their respective role sets.
// Extraction and indexing errors abort the invocation with no partial result.
func (a *Analyzer) Analyze(outputs []string, roles artifact.Roles) (*Result, error) {
	if len(outputs) == 0 {
		return nil, &artifact.ConfigurationError{Reason: "no compiled module output to analyze"}
	}

	usage, err := a.extractor.Usage(outputs)
	if err != nil {
		return nil, err
	}

	index, ambiguities, err := a.indexer.BuildIndex(roles)
	if err != nil {
		return nil, err
	}

	declared := artifact.FirstLevel(roles.Required)
	allowedToUse := artifact.FirstLevel(roles.AllowedToUse)
	allowedToDeclare := artifact.FirstLevel(roles.AllowedToDeclare)

	usedDeclared, usedUndeclared, unusedDeclared := Classify(
		usage, index, declared, allowedToUse, allowedToDeclare)

	return &Result{
		UsedDeclared:     usedDeclared,
		UsedUndeclared:   usedUndeclared,
		UnusedDeclared:   unusedDeclared,
		Usage:            usage,
		Index:            index,
		Declared:         declared,
		AllowedToUse:     allowedToUse,
		AllowedToDeclare: allowedToDeclare,
		Ambiguities:      ambiguities,
	}, nil
}
