package render

import (
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/lixenwraith/mandelterm/core"
	"github.com/lixenwraith/mandelterm/fractal"
	"github.com/lixenwraith/mandelterm/parameter"
)

// Stats describes one recompute pass
type Stats struct {
	Items   int
	Chunks  int
	Elapsed time.Duration
}

type result struct {
	x, y  int
	state core.PixelState
}

// Scheduler classifies invalidated cells on short-lived workers, one per chunk
// Workers only see their own chunk and the send side of the result channel;
// results are applied on the calling goroutine after every worker has returned
type Scheduler struct {
	chunks   int
	classify fractal.Classifier
}

// NewScheduler creates a scheduler splitting work into chunks partitions
// A nil classify uses fractal.Classify
func NewScheduler(chunks int, classify fractal.Classifier) *Scheduler {
	if chunks < 1 {
		chunks = parameter.RenderChunks
	}
	if classify == nil {
		classify = fractal.Classify
	}
	return &Scheduler{chunks: chunks, classify: classify}
}

// Chunks returns the partition count
func (s *Scheduler) Chunks() int {
	return s.chunks
}

// Render computes every Recompute cell of canvas
// On worker failure nothing is applied and the error wraps core.ErrWorkerFailure
func (s *Scheduler) Render(canvas Canvas, maxIterations int) (Stats, error) {
	start := time.Now()
	items := canvas.WorkItems()
	stats := Stats{Items: len(items), Chunks: s.chunks}
	if len(items) == 0 {
		return stats, nil
	}

	// Buffered to the full work size so workers never block on send
	results := make(chan result, len(items))

	var g errgroup.Group
	for _, chunk := range Partition(items, s.chunks) {
		g.Go(func() error {
			return s.work(chunk, maxIterations, results)
		})
	}
	if err := g.Wait(); err != nil {
		return stats, err
	}

	for range items {
		r := <-results
		if err := canvas.Put(r.state, r.x, r.y); err != nil {
			return stats, err
		}
	}

	stats.Elapsed = time.Since(start)
	return stats, nil
}

func (s *Scheduler) work(chunk []core.WorkItem, maxIterations int, out chan<- result) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Wrapf(core.ErrWorkerFailure, "worker panic: %v", r)
		}
	}()

	for _, item := range chunk {
		out <- result{
			x:     item.X,
			y:     item.Y,
			state: core.ValueOf(s.classify(item.Point, maxIterations)),
		}
	}
	return nil
}

// Partition splits items into n contiguous chunks of len/n items,
// the remainder going to the last chunk
func Partition(items []core.WorkItem, n int) [][]core.WorkItem {
	if n < 1 {
		n = 1
	}
	size := len(items) / n
	chunks := make([][]core.WorkItem, n)
	for i := 0; i < n-1; i++ {
		chunks[i] = items[i*size : (i+1)*size]
	}
	chunks[n-1] = items[(n-1)*size:]
	return chunks
}
