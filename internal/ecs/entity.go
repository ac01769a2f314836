package ecs

// EntityID encodes a 32-bit slot index in the lower bits and a 32-bit
// generation in the upper bits. The generation increments on destroy so a
// stale handle never resolves to the slot's next occupant.
type EntityID uint64

// NilEntity is the zero value; no valid entity has this ID.
const NilEntity EntityID = 0

// NewEntityID packs a slot index and generation into a handle.
func NewEntityID(index, generation uint32) EntityID {
	return EntityID(uint64(generation)<<32 | uint64(index))
}

func (id EntityID) Index() uint32      { return uint32(id) }
func (id EntityID) Generation() uint32 { return uint32(id >> 32) }

// EntityMapper rewrites one entity handle into another. Persistence uses it
// to translate references embedded inside components.
type EntityMapper func(EntityID) EntityID

// EntityPool hands out generational handles and recycles freed slots.
// Slot 0 is never issued so NilEntity stays invalid.
type EntityPool struct {
	generations []uint32
	live        []bool
	freeList    []uint32
	count       int
}

// NewEntityPool creates an empty pool.
func NewEntityPool() *EntityPool {
	return &EntityPool{
		generations: make([]uint32, 1, 256),
		live:        make([]bool, 1, 256),
		freeList:    make([]uint32, 0, 64),
	}
}

// Create returns a fresh live handle.
func (p *EntityPool) Create() EntityID {
	p.count++
	if n := len(p.freeList); n > 0 {
		idx := p.freeList[n-1]
		p.freeList = p.freeList[:n-1]
		p.live[idx] = true
		return NewEntityID(idx, p.generations[idx])
	}
	idx := uint32(len(p.generations))
	p.generations = append(p.generations, 0)
	p.live = append(p.live, true)
	return NewEntityID(idx, 0)
}

// Alive reports whether id refers to the current occupant of its slot.
func (p *EntityPool) Alive(id EntityID) bool {
	idx := id.Index()
	if idx == 0 || int(idx) >= len(p.generations) {
		return false
	}
	return p.live[idx] && p.generations[idx] == id.Generation()
}

// Destroy frees the slot. Stale or unknown handles are ignored.
func (p *EntityPool) Destroy(id EntityID) {
	if !p.Alive(id) {
		return
	}
	idx := id.Index()
	p.live[idx] = false
	p.generations[idx]++
	p.freeList = append(p.freeList, idx)
	p.count--
}

// Len returns the number of live entities.
func (p *EntityPool) Len() int { return p.count }

// Each calls fn for every live entity in slot order.
func (p *EntityPool) Each(fn func(EntityID)) {
	for idx := 1; idx < len(p.generations); idx++ {
		if p.live[idx] {
			fn(NewEntityID(uint32(idx), p.generations[idx]))
		}
	}
}
