package eval

import (
	"sync"

	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("sbrain.eval")

// Job is one genome to evaluate.
type Job struct {
	ID     string
	Source string
	Input  []uint32
	Limit  uint64
}

// JobResult pairs a job with its outcome. Err is non-nil only for
// construction errors (oversized program or data segment); a genome that
// runs out of cycles is a normal result with Halted=false.
type JobResult struct {
	ID     string
	Result *Result
	Err    error
}

// Pool evaluates batches of genomes on a fixed set of worker goroutines.
// Every job gets its own Machine, so workers share no mutable state and
// need no locks; the fan-out is plain channel plumbing.
type Pool struct {
	workers int
}

// NewPool returns a Pool running up to workers evaluations concurrently.
func NewPool(workers int) *Pool {
	if workers < 1 {
		workers = 1
	}
	return &Pool{workers: workers}
}

// EvaluateAll runs every job and returns results in job order. Jobs with
// a zero Limit can run forever and stall the batch; hosts evaluating
// mutated genomes should always set one.
func (p *Pool) EvaluateAll(jobs []Job) []JobResult {
	results := make([]JobResult, len(jobs))
	indices := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < p.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indices {
				job := jobs[i]
				res, err := EvaluateWithInput(job.Source, job.Input, job.Limit)
				if err != nil {
					log.Errorf("job %s rejected: %s", job.ID, err.Error())
				}
				results[i] = JobResult{ID: job.ID, Result: res, Err: err}
			}
		}()
	}

	for i := range jobs {
		indices <- i
	}
	close(indices)
	wg.Wait()

	return results
}
