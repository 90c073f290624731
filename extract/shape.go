package extract

import (
	"strings"

	"github.com/rubiojr/jsglue/config"
)

// ShapeParam is one expected (qualifier, type) position of a canonical
// signature. Names never participate in matching.
type ShapeParam struct {
	Qualifier string
	Type      string
}

// Shape is the canonical parameter sequence for a member kind.
type Shape []ShapeParam

func (s Shape) String() string {
	parts := make([]string, len(s))
	for i, p := range s {
		if p.Qualifier != "" {
			parts[i] = p.Qualifier + " " + p.Type
		} else {
			parts[i] = p.Type
		}
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// Shapes holds the canonical signatures for every member kind,
// instantiated from a profile's value-reference and count types.
type Shapes struct {
	Call   Shape // methods and the initializer
	Getter Shape
	Setter Shape
}

// ShapesFor derives the canonical shapes from a profile.
func ShapesFor(p config.Profile) Shapes {
	vr := p.ValueRef
	return Shapes{
		Call:   Shape{{"", p.SizeType}, {"const", vr + "[]"}, {"", vr + "*"}},
		Getter: Shape{{"", vr + "*"}},
		Setter: Shape{{"", vr}, {"", vr + "*"}},
	}
}

// MatchShape reports whether params matches shape exactly: same length
// and, per position, equal qualifier and equal normalized type.
func MatchShape(params []Param, shape Shape) bool {
	if len(params) != len(shape) {
		return false
	}
	for i, p := range params {
		if p.Qualifier != shape[i].Qualifier || p.Type != shape[i].Type {
			return false
		}
	}
	return true
}
