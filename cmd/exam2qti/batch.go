package main

import (
	"context"
	"sync"
)

// batchJob converts one input. writer is nil when no report is written.
type batchJob func(ctx context.Context, path string, writer *reportWriter) ConversionResult

// runBatch processes files concurrently with at most workers goroutines and
// returns the results in input order. When pool is nil, jobs get a nil
// writer; otherwise each worker holds one writer for its whole run.
func runBatch(ctx context.Context, files []string, workers int, pool *writerPool, job batchJob) []ConversionResult {
	if len(files) == 0 {
		return nil
	}

	concurrency := workers
	if concurrency > len(files) {
		concurrency = len(files)
	}
	if concurrency < minWorkers {
		concurrency = minWorkers
	}

	results := make([]ConversionResult, len(files))
	var wg sync.WaitGroup
	jobs := make(chan int, len(files))

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			var writer *reportWriter
			if pool != nil {
				var err error
				writer, err = pool.Acquire()
				if err != nil {
					// Writer creation failed, mark remaining jobs as failed
					for idx := range jobs {
						results[idx] = ConversionResult{InputPath: files[idx], Err: err}
					}
					return
				}
				defer pool.Release(writer)
			}

			for idx := range jobs {
				if err := ctx.Err(); err != nil {
					results[idx] = ConversionResult{InputPath: files[idx], Err: err}
					continue
				}
				results[idx] = job(ctx, files[idx], writer)
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}
