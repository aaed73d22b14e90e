package fsutil

import (
	"context"
	"runtime"
	"sync"
)

// DocumentResult is one processed document's outcome.
type DocumentResult struct {
	Path  string
	Value any
	Err   error
}

// ProcessFunc handles one document in isolation: its own analyzer cache,
// its own Selection Result, no state shared with any other call.
type ProcessFunc func(ctx context.Context, path string) (any, error)

// Dispatch runs process across paths using a bounded worker pool (workers
// <= 0 selects a default based on CPU count), honoring per-invocation
// isolation: each goroutine only ever touches the document it was handed.
// Results are returned in the same order as paths, not completion order.
func Dispatch(ctx context.Context, paths []string, workers int, process ProcessFunc) []DocumentResult {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(paths) {
		workers = len(paths)
	}
	if workers < 1 {
		workers = 1
	}

	results := make([]DocumentResult, len(paths))
	jobs := make(chan int, len(paths))
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				select {
				case <-ctx.Done():
					results[idx] = DocumentResult{Path: paths[idx], Err: ctx.Err()}
					continue
				default:
				}
				value, err := process(ctx, paths[idx])
				results[idx] = DocumentResult{Path: paths[idx], Value: value, Err: err}
			}
		}()
	}

	for i := range paths {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return results
}
