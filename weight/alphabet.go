package weight

// Alphabet assigns dense, stable int64 ids to objects in insertion order.
// It is not safe for concurrent use.
type Alphabet[T comparable] struct {
	ids     map[T]int64
	objects []T
	frozen  bool
}

// NewAlphabet creates an Alphabet holding objs, in order.
func NewAlphabet[T comparable](objs ...T) *Alphabet[T] {
	a := &Alphabet[T]{ids: make(map[T]int64, len(objs))}
	for _, o := range objs {
		a.Add(o)
	}
	return a
}

// Lookup returns the id of o.
func (a *Alphabet[T]) Lookup(o T) (int64, bool) {
	id, ok := a.ids[o]
	return id, ok
}

// Add returns the id of o, assigning the next id if o is new. A frozen
// alphabet returns -1 for new objects.
func (a *Alphabet[T]) Add(o T) int64 {
	if id, ok := a.ids[o]; ok {
		return id
	}
	if a.frozen {
		return -1
	}
	id := int64(len(a.objects))
	a.ids[o] = id
	a.objects = append(a.objects, o)
	return id
}

// Object returns the object with the given id.
func (a *Alphabet[T]) Object(id int64) (T, bool) {
	if id < 0 || id >= int64(len(a.objects)) {
		var zero T
		return zero, false
	}
	return a.objects[id], true
}

// Len returns the number of objects.
func (a *Alphabet[T]) Len() int { return len(a.objects) }

// Freeze stops Add from assigning new ids.
func (a *Alphabet[T]) Freeze() { a.frozen = true }

// Frozen reports whether the alphabet is frozen.
func (a *Alphabet[T]) Frozen() bool { return a.frozen }
