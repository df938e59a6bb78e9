package renderer

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
)

// taskQueueSize bounds the number of tiles waiting for a free worker
const taskQueueSize = 256

// workerIdleTimeout is passed through to the pool. Workers stay parked on
// the task queue for the life of the process regardless of its value.
const workerIdleTimeout = 1 * time.Second

// TileTask represents a tile rendering task for the worker pool
type TileTask struct {
	Tile       *Tile
	TaskID     int            // For deterministic ordering
	PixelStats [][]PixelStats // Shared pixel stats array to write to
}

// TileResult contains the result from rendering a tile
type TileResult struct {
	TaskID int
	Stats  RenderStats
	Error  error
}

// WorkerPool renders tiles on a fixed set of goroutines that are reused
// across renders. Create one per process (or per server) and share it.
type WorkerPool struct {
	pool       worker.DynamicWorkerPool
	numWorkers int
}

// NewWorkerPool starts a worker pool with the specified number of workers.
// The workers never exit, so callers should keep and reuse the pool.
func NewWorkerPool(numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	return &WorkerPool{
		pool:       worker.NewDynamicWorkerPool(numWorkers, taskQueueSize, workerIdleTimeout),
		numWorkers: numWorkers,
	}
}

var (
	sharedPoolsMu sync.Mutex
	sharedPools   = map[int]*WorkerPool{}
)

// SharedWorkerPool returns the process-wide pool for numWorkers, starting
// it on first use.
func SharedWorkerPool(numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	sharedPoolsMu.Lock()
	defer sharedPoolsMu.Unlock()
	if wp, ok := sharedPools[numWorkers]; ok {
		return wp
	}
	wp := NewWorkerPool(numWorkers)
	sharedPools[numWorkers] = wp
	return wp
}

// tileBatch tracks the tiles of a single render. Several batches may share
// one pool at the same time.
type tileBatch struct {
	wg      sync.WaitGroup
	mu      sync.Mutex
	results []TileResult
}

func (b *tileBatch) record(result TileResult) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.results = append(b.results, result)
}

// RenderTiles renders tasks with raytracer and blocks until all of them
// have finished, returning their results in completion order. Once ctx is
// done no further tiles are submitted, queued tiles are skipped and tiles
// in flight stop at the next pixel, each reporting ctx.Err().
func (wp *WorkerPool) RenderTiles(ctx context.Context, raytracer *Raytracer, tasks []TileTask) []TileResult {
	batch := &tileBatch{}

	for _, task := range tasks {
		if ctx.Err() != nil {
			break
		}
		wp.submit(ctx, batch, raytracer, task)
	}

	batch.wg.Wait()

	batch.mu.Lock()
	defer batch.mu.Unlock()
	return batch.results
}

func (wp *WorkerPool) submit(ctx context.Context, batch *tileBatch, raytracer *Raytracer, task TileTask) {
	batch.wg.Add(1)
	wp.pool.SubmitTask(worker.Task{
		ID: task.TaskID,
		Do: func() (result any, err error) {
			defer batch.wg.Done()
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("tile %d panicked: %v", task.TaskID, r)
					batch.record(TileResult{TaskID: task.TaskID, Error: err})
				}
			}()

			if err := ctx.Err(); err != nil {
				batch.record(TileResult{TaskID: task.TaskID, Error: err})
				return nil, err
			}

			// Each tile has non-overlapping bounds, so writing the shared array is safe
			stats, err := raytracer.RenderBounds(ctx, task.Tile.Bounds, task.PixelStats, task.Tile.Random)
			batch.record(TileResult{TaskID: task.TaskID, Stats: stats, Error: err})
			return stats, err
		},
	})
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}
