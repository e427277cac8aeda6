// Package transform moves, rotates and scales the selected vertices of one
// or more objects through a begin, apply, finish gesture.
package transform

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/philipparndt/meshedit/pkg/geometry"
	"github.com/philipparndt/meshedit/pkg/mesh"
	"github.com/philipparndt/meshedit/pkg/selection"
)

// HandleAlignment is the orientation of the transform handle
type HandleAlignment int

const (
	// World aligns the handle with the world axes
	World HandleAlignment = iota
	// Local aligns the handle with the object rotation
	Local
	// Plane aligns the handle with the first selected face
	Plane
)

func (a HandleAlignment) String() string {
	switch a {
	case World:
		return "world"
	case Local:
		return "local"
	case Plane:
		return "plane"
	default:
		return "unknown"
	}
}

// ParseAlignment converts an alignment name
func ParseAlignment(s string) (HandleAlignment, error) {
	switch strings.ToLower(s) {
	case "world":
		return World, nil
	case "local":
		return Local, nil
	case "plane":
		return Plane, nil
	}
	return World, fmt.Errorf("unknown handle alignment: %s", s)
}

// Tool is the kind of transform a gesture applies
type Tool int

const (
	// MoveTool translates
	MoveTool Tool = iota
	// RotateTool rotates around the pivot
	RotateTool
	// ScaleTool scales around the pivot
	ScaleTool
)

func (t Tool) String() string {
	switch t {
	case MoveTool:
		return "move"
	case RotateTool:
		return "rotate"
	case ScaleTool:
		return "scale"
	default:
		return "unknown"
	}
}

// handleFrame returns the handle rotation for the selection. Plane alignment
// needs faces on exactly one object and falls back to World otherwise.
func handleFrame(alignment HandleAlignment, sets []*selection.Set) (HandleAlignment, mgl64.Quat) {
	switch alignment {
	case Local:
		return Local, sets[0].Object().Transform.Rotation
	case Plane:
		var withFaces []*selection.Set
		for _, set := range sets {
			if len(set.Faces()) > 0 {
				withFaces = append(withFaces, set)
			}
		}
		if len(withFaces) != 1 {
			return World, mgl64.QuatIdent()
		}
		o := withFaces[0].Object()
		return Plane, o.Transform.Rotation.Mul(faceRotation(o, withFaces[0].Faces()[0])).Normalize()
	default:
		return World, mgl64.QuatIdent()
	}
}

// faceRotation maps the world axes onto the face basis, Forward being the
// face normal
func faceRotation(o *mesh.Object, f *mesh.Face) mgl64.Quat {
	normal, tangent, _ := o.NormalTangentBitangent(f)
	return geometry.NewBasis(normal, tangent).Rotation()
}
