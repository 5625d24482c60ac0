package ecs

import "slices"

// World owns every entity and its components.
type World struct {
	nextID EntityID
	alive  map[EntityID]bool
	stores map[ComponentType]map[EntityID]Component
}

// NewWorld returns an empty World.
func NewWorld() *World {
	return &World{
		nextID: 1,
		alive:  make(map[EntityID]bool),
		stores: make(map[ComponentType]map[EntityID]Component),
	}
}

// CreateEntity returns a fresh live entity.
func (w *World) CreateEntity() EntityID {
	id := w.nextID
	w.nextID++
	w.alive[id] = true
	return id
}

// DestroyEntity kills id and drops all of its components.
func (w *World) DestroyEntity(id EntityID) {
	if !w.alive[id] {
		return
	}
	delete(w.alive, id)
	for _, store := range w.stores {
		delete(store, id)
	}
}

// Alive reports whether id exists.
func (w *World) Alive(id EntityID) bool {
	return w.alive[id]
}

// Len returns the number of live entities.
func (w *World) Len() int { return len(w.alive) }

// Add attaches c to id, replacing any component of the same type.
func (w *World) Add(id EntityID, c Component) {
	t := c.Type()
	store := w.stores[t]
	if store == nil {
		store = make(map[EntityID]Component)
		w.stores[t] = store
	}
	store[id] = c
}

// Get returns the component of type t on id, or nil.
func (w *World) Get(id EntityID, t ComponentType) Component {
	return w.stores[t][id]
}

// Remove detaches the component of type t from id.
func (w *World) Remove(id EntityID, t ComponentType) {
	delete(w.stores[t], id)
}

// Has reports whether id carries a component of type t.
func (w *World) Has(id EntityID, t ComponentType) bool {
	_, ok := w.stores[t][id]
	return ok
}

// Query returns the live entities carrying every listed type, in ascending
// ID order so callers iterate deterministically.
func (w *World) Query(types ...ComponentType) []EntityID {
	if len(types) == 0 {
		return nil
	}
	smallest := types[0]
	for _, t := range types[1:] {
		if len(w.stores[t]) < len(w.stores[smallest]) {
			smallest = t
		}
	}
	var out []EntityID
	for id := range w.stores[smallest] {
		if !w.alive[id] {
			continue
		}
		if !w.hasAll(id, types) {
			continue
		}
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}

func (w *World) hasAll(id EntityID, types []ComponentType) bool {
	for _, t := range types {
		if !w.Has(id, t) {
			return false
		}
	}
	return true
}

// Lookup fetches the component of type t on id as a T.
func Lookup[T Component](w *World, id EntityID, t ComponentType) (T, bool) {
	c, ok := w.Get(id, t).(T)
	return c, ok
}
