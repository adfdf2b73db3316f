package sparse

import "gonum.org/v1/gonum/floats"

// PutAll stores every entry of other into v, overwriting existing values.
// A nil other is empty.
func (v *Vector) PutAll(other *Vector) {
	if other == nil || other == v {
		return
	}
	v.EnsureCapacity(v.count + other.count)
	removed := false
	for i := range other.count {
		removed = v.rawPut(other.keys[i], other.values[i]) || removed
	}
	if removed {
		v.maybeShrink()
	}
}

// PutMap stores every entry of m into v. Zero values remove their key.
func (v *Vector) PutMap(m map[int64]float64) {
	v.EnsureCapacity(v.count + len(m))
	removed := false
	for k, val := range m {
		removed = v.rawPut(k, val) || removed
	}
	if removed {
		v.maybeShrink()
	}
}

// IncrementAll adds scale*other into v. A nil other is empty; other may be v.
func (v *Vector) IncrementAll(other *Vector, scale float64) {
	if other == nil {
		return
	}
	if other == v {
		// Removals swap slots of other too, so update in place instead.
		floats.AddScaled(v.values[:v.count], scale, v.values[:v.count])
		v.dropZeros()
		return
	}
	v.EnsureCapacity(v.count + other.count)
	removed := false
	for i := range other.count {
		_, r := v.rawIncrement(other.keys[i], other.values[i]*scale)
		removed = r || removed
	}
	if removed {
		v.maybeShrink()
	}
}

// IncrementMap adds scale*m into v.
func (v *Vector) IncrementMap(m map[int64]float64, scale float64) {
	v.EnsureCapacity(v.count + len(m))
	removed := false
	for k, val := range m {
		_, r := v.rawIncrement(k, val*scale)
		removed = r || removed
	}
	if removed {
		v.maybeShrink()
	}
}
