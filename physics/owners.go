package physics

// Owners maps body handles back to the game entity that owns them.
type Owners[T comparable] struct {
	byBody map[BodyID]T
}

func NewOwners[T comparable]() *Owners[T] {
	return &Owners[T]{byBody: make(map[BodyID]T)}
}

// Bind records owner for id, replacing any previous owner.
func (o *Owners[T]) Bind(id BodyID, owner T) {
	if o == nil || !id.Valid() {
		return
	}
	if o.byBody == nil {
		o.byBody = make(map[BodyID]T)
	}
	o.byBody[id] = owner
}

// Owner returns the entity bound to id. A stale or unknown handle reports false.
func (o *Owners[T]) Owner(id BodyID) (T, bool) {
	var zero T
	if o == nil {
		return zero, false
	}
	owner, ok := o.byBody[id]
	if !ok {
		return zero, false
	}
	return owner, true
}

func (o *Owners[T]) Unbind(id BodyID) {
	if o == nil {
		return
	}
	delete(o.byBody, id)
}

func (o *Owners[T]) Len() int {
	if o == nil {
		return 0
	}
	return len(o.byBody)
}

func (o *Owners[T]) Clear() {
	if o == nil {
		return
	}
	clear(o.byBody)
}
