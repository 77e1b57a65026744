package inventory

import "github.com/mabhi256/jdepcheck/internal/artifact"

// Inventory is the immutable set of class names one artifact provides. It is
// built once per coordinate and shared through the cache; nothing mutates it
// after construction.
type Inventory struct {
	Artifact artifact.ID
	classes  map[string]struct{}
}

func NewInventory(id artifact.ID, classes map[string]struct{}) *Inventory {
	owned := make(map[string]struct{}, len(classes))
	for name := range classes {
		owned[name] = struct{}{}
	}
	return &Inventory{Artifact: id, classes: owned}
}

func (inv *Inventory) Contains(className string) bool {
	_, exists := inv.classes[className]
	return exists
}

func (inv *Inventory) Len() int {
	return len(inv.classes)
}

// Classes iterates the inventory without exposing the backing map.
func (inv *Inventory) Classes(visit func(className string)) {
	for name := range inv.classes {
		visit(name)
	}
}
