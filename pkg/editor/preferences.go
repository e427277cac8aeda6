package editor

import (
	"github.com/philipparndt/meshedit/pkg/selection"
	"github.com/philipparndt/meshedit/pkg/spatial"
	"github.com/philipparndt/meshedit/pkg/transform"
)

// Preferences are the user policies of a session
type Preferences struct {
	PreciseSelection  bool
	ImpreciseDistance float64 // Pixels
	PreciseDistance   float64 // Pixels

	GrowUsingAngle bool
	GrowAngle      float64 // Degrees
	GrowIterative  bool

	RectPolicy         spatial.RectPolicy
	DragModifierPolicy selection.DragPolicy
	SelectHidden       bool
	Culling            spatial.CullingMode

	GridEnabled bool
	GridSize    float64
	SnapRadius  float64 // World units

	ExtrudeEdgesAsGroup bool
	HandleAlignment     transform.HandleAlignment
}

// DefaultPreferences returns the preferences of a fresh installation
func DefaultPreferences() Preferences {
	return Preferences{
		ImpreciseDistance:   128,
		PreciseDistance:     12,
		GrowAngle:           42,
		RectPolicy:          spatial.Partial,
		DragModifierPolicy:  selection.Difference,
		Culling:             spatial.Front,
		GridSize:            0.125,
		SnapRadius:          0.25,
		ExtrudeEdgesAsGroup: true,
		HandleAlignment:     transform.World,
	}
}

// PickDistance returns the screen radius in pixels for click picks
func (p Preferences) PickDistance() float64 {
	if p.PreciseSelection {
		return p.PreciseDistance
	}
	return p.ImpreciseDistance
}

func (p Preferences) pickOptions() selection.PickOptions {
	return selection.PickOptions{
		MaxDistance:  p.PickDistance(),
		Culling:      p.Culling,
		SkipOccluded: !p.SelectHidden,
		Rect: spatial.RectOptions{
			Policy:       p.RectPolicy,
			SkipOccluded: !p.SelectHidden,
		},
		DragPolicy: p.DragModifierPolicy,
	}
}

func (p Preferences) gridSize() float64 {
	if !p.GridEnabled {
		return 0
	}
	return p.GridSize
}
