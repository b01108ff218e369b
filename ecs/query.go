package ecs

// IntersectEntities returns the ids present in both sets, in the dense order
// of the smaller one.
func IntersectEntities(a, b *SparseSet) []int {
	if a.Len() == 0 || b.Len() == 0 {
		return nil
	}
	if a.Len() > b.Len() {
		a, b = b, a
	}
	out := make([]int, 0, a.Len())
	for _, id := range a.ids {
		if b.Has(id) {
			out = append(out, id)
		}
	}
	return out
}
