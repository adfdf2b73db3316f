package sparse

import "github.com/RoaringBitmap/roaring/v2/roaring64"

// Support returns the set of populated keys as a compressed bitmap.
// Keys are reinterpreted as uint64, so negative keys sort above positive ones.
func (v *Vector) Support() *roaring64.Bitmap {
	bm := roaring64.New()
	if v.count == 0 {
		return bm
	}
	ids := make([]uint64, v.count)
	for i := range v.count {
		ids[i] = uint64(v.keys[i])
	}
	bm.AddMany(ids)
	return bm
}

// Overlap returns the number of keys populated in both a and b.
func Overlap(a, b *Vector) uint64 {
	if a == nil || b == nil {
		return 0
	}
	return a.Support().AndCardinality(b.Support())
}
