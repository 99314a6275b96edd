package services

// Blend combines an offline and an online ranking into one list of at most k
// items. Positions 0..m-1 (m = length of the shorter input) alternate between
// the two sources, online on even indices; the longer input's tail is then
// appended from position m. Duplicates keep their first occurrence, so the
// interleaved head wins over the appended tail, and the result is truncated
// to k.
//
// Placing the online list on even indices is a deliberate diversity
// heuristic, not a learned weighting: fresh behavioral signal gets the top
// slot.
func Blend(offline, online []int64, k int) []int64 {
	if k <= 0 {
		return []int64{}
	}

	m := len(offline)
	if len(online) < m {
		m = len(online)
	}

	blended := make([]int64, 0, len(offline)+len(online))
	for i := 0; i < m; i++ {
		if i%2 == 0 {
			blended = append(blended, online[i])
		} else {
			blended = append(blended, offline[i])
		}
	}

	if len(online) > m {
		blended = append(blended, online[m:]...)
	} else if len(offline) > m {
		blended = append(blended, offline[m:]...)
	}

	blended = dedupIDs(blended)

	if len(blended) > k {
		blended = blended[:k]
	}

	return blended
}

// dedupIDs removes duplicate IDs, keeping the first occurrence of each.
func dedupIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	deduped := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		deduped = append(deduped, id)
	}
	return deduped
}
