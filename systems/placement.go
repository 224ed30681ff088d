package systems

import (
	"math"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/sakura/components"
)

// InstancePlacer scatters transform-only clones of the template plane.
type InstancePlacer struct {
	mapper *ecs.Map2[components.Transform, components.Instance]
	filter *ecs.Filter2[components.Transform, components.Instance]
}

// NewInstancePlacer creates a placer bound to the given world.
func NewInstancePlacer(w *ecs.World) *InstancePlacer {
	return &InstancePlacer{
		mapper: ecs.NewMap2[components.Transform, components.Instance](w),
		filter: ecs.NewFilter2[components.Transform, components.Instance](w),
	}
}

// Place adds count instances at independent uniform positions inside bounds.
// No spacing or overlap checks are made.
func (p *InstancePlacer) Place(count int, bounds components.Bounds, rng *rand.Rand) []ecs.Entity {
	if count <= 0 {
		return nil
	}

	entities := make([]ecs.Entity, 0, count)
	for i := 0; i < count; i++ {
		t := components.Transform{
			X: uniform(rng, bounds.Min[0], bounds.Max[0]),
			Y: uniform(rng, bounds.Min[1], bounds.Max[1]),
			Z: uniform(rng, bounds.Min[2], bounds.Max[2]),
		}
		inst := components.Instance{Index: i}
		entities = append(entities, p.mapper.NewEntity(&t, &inst))
	}
	return entities
}

// Restore adds instances at the given transforms, in order.
func (p *InstancePlacer) Restore(transforms []components.Transform) []ecs.Entity {
	entities := make([]ecs.Entity, 0, len(transforms))
	for i := range transforms {
		t := transforms[i]
		inst := components.Instance{Index: i}
		entities = append(entities, p.mapper.NewEntity(&t, &inst))
	}
	return entities
}

// Transforms returns every placed transform ordered by insertion index.
func (p *InstancePlacer) Transforms() []components.Transform {
	var out []components.Transform
	query := p.filter.Query()
	for query.Next() {
		t, inst := query.Get()
		for len(out) <= inst.Index {
			out = append(out, components.Transform{})
		}
		out[inst.Index] = *t
	}
	return out
}

// Count returns the number of placed instances.
func (p *InstancePlacer) Count() int {
	n := 0
	query := p.filter.Query()
	for query.Next() {
		n++
	}
	return n
}

// uniform returns a value in [lo, hi).
func uniform(rng *rand.Rand, lo, hi float32) float32 {
	v := lo + rng.Float32()*(hi-lo)
	// float32 rounding can land exactly on hi
	if v >= hi && hi > lo {
		v = math.Nextafter32(hi, lo)
	}
	return v
}
