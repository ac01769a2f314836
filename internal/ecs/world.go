package ecs

// World is the central entity registry. It owns the entity pool, the list of
// registered component stores and a deferred destruction queue that is only
// flushed at Maintain, so iterations in flight during a pass stay valid.
type World struct {
	pool    *EntityPool
	stores  []AnyStore
	pending []EntityID
	queued  map[EntityID]bool
}

// NewWorld creates an empty World.
func NewWorld() *World {
	return &World{
		pool:   NewEntityPool(),
		queued: make(map[EntityID]bool),
	}
}

func (w *World) register(s AnyStore) {
	w.stores = append(w.stores, s)
}

// Stores returns the registered stores in registration order.
func (w *World) Stores() []AnyStore { return w.stores }

// CreateEntity mints a new live entity.
func (w *World) CreateEntity() EntityID {
	return w.pool.Create()
}

// Alive reports whether the entity is alive. Entities queued for
// destruction stay alive until Maintain.
func (w *World) Alive(id EntityID) bool {
	return w.pool.Alive(id)
}

// DestroyEntity queues the entity for removal at the next Maintain.
// Dead handles and repeated calls are ignored.
func (w *World) DestroyEntity(id EntityID) {
	if !w.pool.Alive(id) || w.queued[id] {
		return
	}
	w.queued[id] = true
	w.pending = append(w.pending, id)
}

// PendingDestroy reports whether id is queued for removal.
func (w *World) PendingDestroy(id EntityID) bool {
	return w.queued[id]
}

// Maintain applies queued destructions: every component is dropped and the
// handle invalidated. Returns how many entities were destroyed.
func (w *World) Maintain() int {
	n := len(w.pending)
	for _, id := range w.pending {
		for _, s := range w.stores {
			s.drop(id)
		}
		w.pool.Destroy(id)
	}
	w.pending = w.pending[:0]
	clear(w.queued)
	return n
}

// Entities returns every live entity in slot order.
func (w *World) Entities() []EntityID {
	out := make([]EntityID, 0, w.pool.Len())
	w.pool.Each(func(id EntityID) { out = append(out, id) })
	return out
}

// Len returns the number of live entities.
func (w *World) Len() int { return w.pool.Len() }
