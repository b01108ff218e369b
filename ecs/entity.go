package ecs

import "fmt"

type (
	entityID   uint32
	generation uint32
)

// Entity is a handle to a slot in the world. The low 32 bits are the slot
// id, which starts at 1; the high 32 bits are the slot's generation when
// the handle was issued. The zero Entity never refers to anything.
type Entity uint64

func makeEntity(id entityID, gen generation) Entity {
	return Entity(gen)<<32 | Entity(id)
}

func (e Entity) id() entityID { return entityID(e & 0xffffffff) }

func (e Entity) generation() generation { return generation(e >> 32) }

// Valid reports whether e names a slot. It does not check liveness; use
// IsAlive for that.
func (e Entity) Valid() bool { return e.id() != 0 }

func (e Entity) String() string {
	return fmt.Sprintf("%d#%d", e.id(), e.generation())
}
