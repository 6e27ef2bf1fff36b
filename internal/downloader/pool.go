package downloader

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/law-makers/jobscout/pkg/models"
)

// WorkerPool downloads logos with a fixed number of workers
type WorkerPool struct {
	downloader  *Downloader
	concurrency int
}

// NewWorkerPool creates a pool with concurrency workers (1 to 50, default 5)
func NewWorkerPool(concurrency int, timeout time.Duration, userAgent string, headers map[string]string) *WorkerPool {
	if concurrency <= 0 {
		concurrency = 5
	}
	if concurrency > 50 {
		concurrency = 50
	}
	return &WorkerPool{
		downloader:  NewDownloader(timeout, userAgent, headers),
		concurrency: concurrency,
	}
}

type logoJob struct {
	company string
	url     string
}

// uniqueLogos returns one download per distinct logo URL, named after the
// first company that uses it
func uniqueLogos(jobs []models.Job) []logoJob {
	seen := make(map[string]bool)
	var out []logoJob
	for _, j := range jobs {
		logo := j.Logo()
		if logo == "" || seen[logo] {
			continue
		}
		seen[logo] = true
		out = append(out, logoJob{company: j.Company, url: logo})
	}
	return out
}

// DownloadLogos saves every distinct company logo in jobs to dir
func (wp *WorkerPool) DownloadLogos(ctx context.Context, jobs []models.Job, dir string) []*Result {
	work := uniqueLogos(jobs)
	if len(work) == 0 {
		return []*Result{}
	}

	queue := make(chan logoJob, len(work))
	results := make(chan *Result, len(work))

	var wg sync.WaitGroup
	for w := 1; w <= wp.concurrency; w++ {
		wg.Add(1)
		go wp.worker(ctx, w, dir, queue, results, &wg)
	}

	for _, lj := range work {
		queue <- lj
	}
	close(queue)

	go func() {
		wg.Wait()
		close(results)
	}()

	all := make([]*Result, 0, len(work))
	for r := range results {
		all = append(all, r)
	}
	return all
}

func (wp *WorkerPool) worker(ctx context.Context, id int, dir string, queue <-chan logoJob, results chan<- *Result, wg *sync.WaitGroup) {
	defer wg.Done()

	for lj := range queue {
		select {
		case <-ctx.Done():
			log.Debug().Int("worker_id", id).Msg("Worker cancelled")
			return
		default:
		}

		r := wp.downloader.Download(ctx, lj.url, dir, lj.company)
		r.Company = lj.company
		if r.Error != nil {
			log.Debug().Err(r.Error).Str("company", lj.company).Msg("Logo download failed")
		}
		results <- r
	}
}
