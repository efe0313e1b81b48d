// Package pool provides object pooling to reduce GC pressure
package pool

import (
	"sync"
)

// CountsPool pools feature count maps used during feature extraction
var CountsPool = sync.Pool{
	New: func() interface{} {
		return make(map[string]int, 64)
	},
}

// GetCounts gets an empty count map from pool
func GetCounts() map[string]int {
	m := CountsPool.Get().(map[string]int)
	clear(m)
	return m
}

// PutCounts returns a count map to pool
func PutCounts(m map[string]int) {
	if m == nil {
		return
	}
	CountsPool.Put(m)
}
