package artifact

import "fmt"

// ConfigurationError reports invalid or missing collaborator input: a nil
// dependency node, an incomplete coordinate, a missing shared cache. It is
// fatal at construction time, so callers can tell misconfiguration apart from
// an analysis that simply found no violations.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "invalid analysis configuration: " + e.Reason
}

// Roles holds the three disjoint role-tagged sets of first-level dependency
// graphs consumed by the indexer and classifier.
type Roles struct {
	Required         []*Node // declared dependencies expected to be used
	AllowedToUse     []*Node // permitted used-but-undeclared exceptions
	AllowedToDeclare []*Node // permitted declared-but-unused exceptions
}

// NewRoles validates the role sets and rejects malformed entries instead of
// silently dropping them. Every node in every graph must be non-nil and carry
// a complete coordinate.
func NewRoles(required, allowedToUse, allowedToDeclare []*Node) (Roles, error) {
	roles := Roles{
		Required:         required,
		AllowedToUse:     allowedToUse,
		AllowedToDeclare: allowedToDeclare,
	}

	for _, set := range []struct {
		name  string
		nodes []*Node
	}{
		{"required", required},
		{"allowedToUse", allowedToUse},
		{"allowedToDeclare", allowedToDeclare},
	} {
		if err := validateGraphs(set.name, set.nodes); err != nil {
			return Roles{}, err
		}
	}

	return roles, nil
}

// FirstLevel returns the ordered set of first-level coordinates of the given
// graphs, deduplicated in first-encountered order.
func FirstLevel(nodes []*Node) *Set {
	set := NewSet()
	for _, node := range nodes {
		set.Add(node.ID)
	}
	return set
}

func validateGraphs(role string, nodes []*Node) error {
	seen := make(map[ID]bool)

	var walk func(node *Node, depth int) error
	walk = func(node *Node, depth int) error {
		if node == nil {
			return &ConfigurationError{
				Reason: fmt.Sprintf("%s graph contains a nil dependency node", role),
			}
		}
		if node.ID.IsZero() {
			return &ConfigurationError{
				Reason: fmt.Sprintf("%s graph contains a node with an incomplete coordinate %q", role, node.ID),
			}
		}

		// Shared subtrees are legitimate, walk them once.
		if seen[node.ID] {
			return nil
		}
		seen[node.ID] = true

		for _, child := range node.Children {
			if err := walk(child, depth+1); err != nil {
				return err
			}
		}
		return nil
	}

	for _, node := range nodes {
		if err := walk(node, 0); err != nil {
			return err
		}
	}
	return nil
}
