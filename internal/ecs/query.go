package ecs

// Join returns every entity present in all of the given stores.
// The smallest store drives the scan; the result is a snapshot, so the
// caller may mutate stores while walking it.
func Join(first AnyStore, rest ...AnyStore) []EntityID {
	smallest := first
	for _, s := range rest {
		if s.Len() < smallest.Len() {
			smallest = s
		}
	}
	candidates := smallest.Entities()
	if len(rest) == 0 {
		return candidates
	}
	result := candidates[:0]
	for _, id := range candidates {
		if matchesAll(id, first, rest) {
			result = append(result, id)
		}
	}
	return result
}

func matchesAll(id EntityID, first AnyStore, rest []AnyStore) bool {
	if !first.Has(id) {
		return false
	}
	for _, s := range rest {
		if !s.Has(id) {
			return false
		}
	}
	return true
}
