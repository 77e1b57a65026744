package artifact

import "fmt"

// ID identifies a published module version by its coordinate, never by file
// path. Two resolutions of the same coordinate (different temp files across
// runs) compare equal, so ID is safe to use as a map key.
type ID struct {
	Group      string
	Name       string
	Version    string
	Classifier string // optional, e.g. "sources", "linux-x86_64"
	Extension  string // e.g. "jar"
}

func (id ID) String() string {
	s := fmt.Sprintf("%s:%s:%s", id.Group, id.Name, id.Version)
	if id.Classifier != "" {
		s += ":" + id.Classifier
	}
	if id.Extension != "" && id.Extension != "jar" {
		s += "@" + id.Extension
	}
	return s
}

// IsZero reports whether the coordinate is missing its mandatory fields.
func (id ID) IsZero() bool {
	return id.Group == "" || id.Name == "" || id.Version == ""
}

// Node is one artifact in a resolved dependency graph, together with the
// concrete files it was resolved to and its direct children. Graphs may share
// nodes (diamonds): the same coordinate can be reachable via multiple parents.
type Node struct {
	ID       ID
	Files    []string
	Children []*Node
}
