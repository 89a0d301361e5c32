package utils

import "sync"

var mu sync.Mutex

// ExecuteWithMutex serializes GDAL archive reads; concurrent /vsizip/
// handles on the same zip are not safe.
func ExecuteWithMutex(fn func()) {
	mu.Lock()
	defer mu.Unlock()
	fn()
}
