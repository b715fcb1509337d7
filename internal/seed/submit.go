package seed

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/okian/mindlab/pkg/logger"
)

// workerChannelMultiplier sizes the job channel relative to the pool.
const workerChannelMultiplier = 2

// submitAll posts subs with a pool of workers and tallies outcomes into stats.
func submitAll(ctx context.Context, client *Client, subs []Submission, workers int, verbose bool, stats *Stats) {
	if workers < 1 {
		workers = 1
	}

	var submitted, created, duplicate, failed int64
	jobs := make(chan Submission, workers*workerChannelMultiplier)
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for sub := range jobs {
				outcome, err := client.Submit(ctx, sub)
				atomic.AddInt64(&submitted, 1)
				switch outcome {
				case outcomeCreated:
					atomic.AddInt64(&created, 1)
				case outcomeDuplicate:
					atomic.AddInt64(&duplicate, 1)
				default:
					atomic.AddInt64(&failed, 1)
					if verbose {
						logger.Get().Warn(ctx, "submission failed",
							logger.String("submissionID", sub.SubmissionID),
							logger.Error(err))
					}
				}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, sub := range subs {
			select {
			case <-ctx.Done():
				return
			case jobs <- sub:
			}
		}
	}()

	wg.Wait()

	stats.Submitted += int(submitted)
	stats.Created += int(created)
	stats.Duplicate += int(duplicate)
	stats.Failed += int(failed)
}
