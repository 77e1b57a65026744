// Package manifest loads the resolved-dependency manifest that stands in for
// the host build system's resolver: the module's compiled output paths plus
// the three role-tagged dependency trees, with every artifact already
// resolved to concrete files.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/mabhi256/jdepcheck/internal/artifact"
)

type Manifest struct {
	Version string       `yaml:"version"`
	Module  ModuleOutput `yaml:"module"`

	Required         []*Dependency `yaml:"required"`
	AllowedToUse     []*Dependency `yaml:"allowedToUse"`
	AllowedToDeclare []*Dependency `yaml:"allowedToDeclare"`
}

// ModuleOutput names the directories/archives holding the module's own
// compiled classes.
type ModuleOutput struct {
	Output []string `yaml:"output"`
}

// Dependency is one resolved node of a dependency tree. Diamonds are
// expressed with YAML anchors or by repeating the coordinate; the indexer
// deduplicates by coordinate either way.
type Dependency struct {
	Group      string `yaml:"group"`
	Name       string `yaml:"name"`
	Version    string `yaml:"version"`
	Classifier string `yaml:"classifier"`
	Extension  string `yaml:"extension"`

	Files        []string      `yaml:"files"`
	Dependencies []*Dependency `yaml:"dependencies"`
}

// Load reads and validates a manifest. Relative artifact and output paths
// resolve against the manifest's directory.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &artifact.ConfigurationError{
			Reason: fmt.Sprintf("failed to read manifest %s: %v", path, err),
		}
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, &artifact.ConfigurationError{
			Reason: fmt.Sprintf("failed to parse manifest %s: %v", path, err),
		}
	}

	baseDir := filepath.Dir(path)
	for i, output := range m.Module.Output {
		m.Module.Output[i] = resolvePath(baseDir, output)
	}
	if len(m.Module.Output) == 0 {
		return nil, &artifact.ConfigurationError{
			Reason: fmt.Sprintf("manifest %s declares no module output", path),
		}
	}

	for _, set := range [][]*Dependency{m.Required, m.AllowedToUse, m.AllowedToDeclare} {
		for _, dep := range set {
			resolveDependencyPaths(baseDir, dep, make(map[*Dependency]bool))
		}
	}

	return &m, nil
}

// Roles converts the manifest's dependency trees into validated role sets.
func (m *Manifest) Roles() (artifact.Roles, error) {
	return artifact.NewRoles(
		convertNodes(m.Required, make(map[*Dependency]*artifact.Node)),
		convertNodes(m.AllowedToUse, make(map[*Dependency]*artifact.Node)),
		convertNodes(m.AllowedToDeclare, make(map[*Dependency]*artifact.Node)),
	)
}

func convertNodes(deps []*Dependency, converted map[*Dependency]*artifact.Node) []*artifact.Node {
	nodes := make([]*artifact.Node, 0, len(deps))
	for _, dep := range deps {
		nodes = append(nodes, convertNode(dep, converted))
	}
	return nodes
}

func convertNode(dep *Dependency, converted map[*Dependency]*artifact.Node) *artifact.Node {
	if dep == nil {
		// Preserved so role validation can reject it with a typed error.
		return nil
	}
	if node, exists := converted[dep]; exists {
		return node
	}

	extension := dep.Extension
	if extension == "" && len(dep.Files) > 0 {
		extension = "jar"
	}

	node := &artifact.Node{
		ID: artifact.ID{
			Group:      dep.Group,
			Name:       dep.Name,
			Version:    dep.Version,
			Classifier: dep.Classifier,
			Extension:  extension,
		},
		Files: dep.Files,
	}
	converted[dep] = node

	for _, child := range dep.Dependencies {
		node.Children = append(node.Children, convertNode(child, converted))
	}
	return node
}

func resolveDependencyPaths(baseDir string, dep *Dependency, seen map[*Dependency]bool) {
	if dep == nil || seen[dep] {
		return
	}
	seen[dep] = true

	for i, file := range dep.Files {
		dep.Files[i] = resolvePath(baseDir, file)
	}
	for _, child := range dep.Dependencies {
		resolveDependencyPaths(baseDir, child, seen)
	}
}

func resolvePath(baseDir, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}
