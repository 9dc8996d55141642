package various

import (
	"runtime"
	"sync"
)

// KickOffChunkWorkers splits the range [0, totalItems) into one chunk per
// CPU and calls fn for each chunk in its own goroutine. It returns once all
// chunks are done.
func KickOffChunkWorkers(totalItems int, fn func(start, end int)) {
	numWorkers := runtime.NumCPU()
	if numWorkers < 1 {
		numWorkers = 1
	}

	var wg sync.WaitGroup
	var chunkStart int
	chunkSize := (totalItems / numWorkers) + 1
	for i := 0; i < numWorkers; i++ {
		curChunk := chunkSize
		if rem := totalItems - chunkStart; rem < curChunk {
			curChunk = rem
		}
		if curChunk <= 0 {
			break
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			fn(start, end)
		}(chunkStart, chunkStart+curChunk)
		chunkStart += curChunk
	}
	wg.Wait()
}
