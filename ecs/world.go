package ecs

import (
	"fmt"
	"sort"

	"github.com/milk9111/platformer/ecs/component"
)

// World owns entities and their components. It is not safe for concurrent
// use; systems run one after another on the game goroutine.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]*SparseSet
}

func NewWorld() *World {
	return &World{stores: make(map[component.ComponentID]*SparseSet)}
}

func CreateEntity(w *World) Entity {
	return w.entities.create()
}

// DestroyEntity removes e and all its components. It reports false for a
// stale or unknown handle.
func DestroyEntity(w *World, e Entity) bool {
	if !w.entities.isAlive(e) {
		return false
	}
	for _, s := range w.stores {
		s.Remove(int(e.id()))
	}
	return w.entities.destroy(e)
}

func IsAlive(w *World, e Entity) bool {
	return w.entities.isAlive(e)
}

// Entities returns every live entity in slot order.
func Entities(w *World) []Entity {
	return w.entities.all()
}

func (w *World) IsAlive(e Entity) bool { return IsAlive(w, e) }

// First returns the lowest-slot live entity that has kind.
func (w *World) First(kind component.Kind) (Entity, bool) {
	s := w.stores[kind.ID()]
	if s == nil {
		return 0, false
	}
	best := 0
	for _, id := range s.Entities() {
		if best == 0 || id < best {
			best = id
		}
	}
	return w.entities.current(best)
}

// Query returns the live entities that have every kind, in slot order.
func (w *World) Query(kinds ...component.Kind) []Entity {
	if len(kinds) == 0 {
		return nil
	}
	sets := make([]*SparseSet, 0, len(kinds))
	for _, k := range kinds {
		s := w.stores[k.ID()]
		if s == nil {
			return nil
		}
		sets = append(sets, s)
	}

	ids := append([]int(nil), sets[0].Entities()...)
	rest := sets[1:]
	if len(sets) > 1 {
		ids = IntersectEntities(sets[0], sets[1])
		rest = sets[2:]
	}
	kept := ids[:0]
next:
	for _, id := range ids {
		for _, s := range rest {
			if !s.Has(id) {
				continue next
			}
		}
		kept = append(kept, id)
	}
	sort.Ints(kept)

	out := make([]Entity, 0, len(kept))
	for _, id := range kept {
		if e, ok := w.entities.current(id); ok {
			out = append(out, e)
		}
	}
	return out
}

func (w *World) store(id component.ComponentID) *SparseSet {
	s := w.stores[id]
	if s == nil {
		s = &SparseSet{}
		w.stores[id] = s
	}
	return s
}

func (w *World) addComponent(e Entity, id component.ComponentID, v any) error {
	if !w.entities.isAlive(e) {
		return fmt.Errorf("%w: %s", component.ErrEntityNotAlive, e)
	}
	if id == 0 {
		return component.ErrInvalidComponentKind
	}
	w.store(id).Set(int(e.id()), v)
	return nil
}

func (w *World) getComponent(e Entity, id component.ComponentID) (any, bool) {
	if !w.entities.isAlive(e) {
		return nil, false
	}
	s := w.stores[id]
	if s == nil || !s.Has(int(e.id())) {
		return nil, false
	}
	return s.Get(int(e.id())), true
}

func (w *World) removeComponent(e Entity, id component.ComponentID) bool {
	if !w.entities.isAlive(e) {
		return false
	}
	s := w.stores[id]
	if s == nil || !s.Has(int(e.id())) {
		return false
	}
	s.Remove(int(e.id()))
	return true
}

// snapshot copies the ids of a store so callbacks may add, remove or
// destroy while iterating.
func (w *World) snapshot(id component.ComponentID) []int {
	s := w.stores[id]
	if s == nil {
		return nil
	}
	return append([]int(nil), s.Entities()...)
}
