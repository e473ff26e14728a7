package block

import "slices"

// SpliceMove returns a new ID order with sourceID moved to targetID's index:
// remove at the source index, insert at the target index. IDs other than the
// moved one keep their relative order. The input is returned unchanged when
// either ID is missing or the move is a no-op.
func SpliceMove(ids []string, sourceID, targetID string) []string {
	src := slices.Index(ids, sourceID)
	dst := slices.Index(ids, targetID)
	if src == -1 || dst == -1 || src == dst {
		return slices.Clone(ids)
	}
	out := slices.Clone(ids)
	out = slices.Delete(out, src, src+1)
	return slices.Insert(out, dst, sourceID)
}

// samePermutation reports whether a and b contain exactly the same IDs,
// order ignored. Duplicates count.
func samePermutation(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	counts := make(map[string]int, len(a))
	for _, id := range a {
		counts[id]++
	}
	for _, id := range b {
		counts[id]--
		if counts[id] < 0 {
			return false
		}
	}
	return true
}

// reindex assigns dense positions 0..n-1 following the slice order.
func reindex(blocks []Block) {
	for i := range blocks {
		blocks[i].Position = i
	}
}

// sortByPosition orders blocks by their stored position.
func sortByPosition(blocks []Block) {
	slices.SortStableFunc(blocks, func(a, b Block) int {
		return a.Position - b.Position
	})
}

// applyOrder rearranges blocks to match orderedIDs and reindexes them.
// Callers must have verified orderedIDs is a permutation of the block IDs.
func applyOrder(blocks []Block, orderedIDs []string) []Block {
	byID := make(map[string]Block, len(blocks))
	for _, b := range blocks {
		byID[b.ID] = b
	}
	out := make([]Block, 0, len(blocks))
	for _, id := range orderedIDs {
		out = append(out, byID[id])
	}
	reindex(out)
	return out
}
