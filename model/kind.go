// Package model defines the immutable entity and world snapshots the
// simulation advances from tick to tick.
package model

import "fmt"

// Kind is the species of an entity. The set is closed.
type Kind uint8

const (
	KindGrass Kind = iota
	KindPrey
	KindPredator
)

// Kinds lists every kind in declaration order.
var Kinds = [...]Kind{KindGrass, KindPrey, KindPredator}

// String returns the lowercase kind name.
func (k Kind) String() string {
	switch k {
	case KindGrass:
		return "grass"
	case KindPrey:
		return "prey"
	case KindPredator:
		return "predator"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Valid reports whether k is one of the declared kinds.
func (k Kind) Valid() bool { return k <= KindPredator }

// ParseKind converts a kind name back to a Kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "grass":
		return KindGrass, nil
	case "prey":
		return KindPrey, nil
	case "predator":
		return KindPredator, nil
	}
	return 0, fmt.Errorf("unknown kind %q", s)
}
