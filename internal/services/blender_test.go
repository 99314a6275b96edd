package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBlend(t *testing.T) {
	tests := []struct {
		name     string
		offline  []int64
		online   []int64
		k        int
		expected []int64
	}{
		{
			name:     "Equal lengths interleave with online on even indices",
			offline:  []int64{10, 11, 12},
			online:   []int64{20, 21, 22},
			k:        3,
			expected: []int64{20, 11, 22},
		},
		{
			name:     "Longer online appends its tail",
			offline:  []int64{10},
			online:   []int64{20, 21, 22},
			k:        10,
			expected: []int64{20, 21, 22},
		},
		{
			name:     "Longer offline appends its tail",
			offline:  []int64{10, 11, 12, 13},
			online:   []int64{20},
			k:        10,
			expected: []int64{20, 11, 12, 13},
		},
		{
			name:     "Truncates to k",
			offline:  []int64{10, 11, 12},
			online:   []int64{20, 21, 22},
			k:        2,
			expected: []int64{20, 11},
		},
		{
			// m=2 interleaves [20,99], then online's tail [99] is appended
			// and deduplicated away.
			name:     "Interleaved head wins over appended tail on duplicates",
			offline:  []int64{10, 99},
			online:   []int64{20, 21, 99},
			k:        10,
			expected: []int64{20, 99},
		},
		{
			// m=1 picks [20], then offline's tail [20,30] duplicates it.
			name:     "Duplicate across sources kept once",
			offline:  []int64{10, 20, 30},
			online:   []int64{20},
			k:        10,
			expected: []int64{20, 30},
		},
		{
			name:     "Empty online returns offline order",
			offline:  []int64{10, 11},
			online:   []int64{},
			k:        10,
			expected: []int64{10, 11},
		},
		{
			name:     "Empty offline returns online order",
			offline:  []int64{},
			online:   []int64{20, 21},
			k:        10,
			expected: []int64{20, 21},
		},
		{
			name:     "Zero k yields empty result",
			offline:  []int64{10, 11},
			online:   []int64{20, 21},
			k:        0,
			expected: []int64{},
		},
		{
			name:     "Both empty",
			offline:  []int64{},
			online:   []int64{},
			k:        5,
			expected: []int64{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Blend(tt.offline, tt.online, tt.k)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestBlend_NoDuplicates(t *testing.T) {
	offline := []int64{1, 2, 3, 2, 1}
	online := []int64{3, 1, 4, 4, 5}

	result := Blend(offline, online, 100)

	seen := make(map[int64]bool)
	for _, id := range result {
		assert.False(t, seen[id], "duplicate item %d in blended output", id)
		seen[id] = true
	}
}

func TestDedupIDs(t *testing.T) {
	t.Run("Keeps first occurrence", func(t *testing.T) {
		result := dedupIDs([]int64{5, 3, 5, 7, 3, 5})
		assert.Equal(t, []int64{5, 3, 7}, result)
	})

	t.Run("Idempotent", func(t *testing.T) {
		once := dedupIDs([]int64{1, 2, 1, 3, 2})
		twice := dedupIDs(once)
		assert.Equal(t, once, twice)
	})

	t.Run("Empty input", func(t *testing.T) {
		assert.Equal(t, []int64{}, dedupIDs([]int64{}))
	})
}
