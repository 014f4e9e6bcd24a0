package scheduler

import (
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/mpakhapoca/mget/internal/output"
	"github.com/mpakhapoca/mget/internal/transfer"
	"github.com/mpakhapoca/mget/internal/utils"
)

type Downloader interface {
	Download(req utils.DownloadRequest) (transfer.TransferSummary, error)
}

// BuildJobs tags each request with a job id used in log context.
func BuildJobs(requests []utils.DownloadRequest) []utils.Job {
	jobs := make([]utils.Job, 0, len(requests))
	for _, req := range requests {
		jobs = append(jobs, utils.Job{ID: uuid.NewString(), Request: req})
	}
	return jobs
}

// BuildBatchRequests turns batch entries into requests. Entries without an
// output directory fall back to cfg.OutputDir; invalid entries are returned
// as warnings and skipped.
func BuildBatchRequests(entries []utils.BatchEntry, cfg utils.Config) ([]utils.DownloadRequest, []error) {
	var requests []utils.DownloadRequest
	var warnings []error
	for i, entry := range entries {
		dir := entry.OutputDir
		if dir == "" {
			dir = cfg.OutputDir
		}
		req, err := utils.NewDownloadRequest(entry.Link, dir, cfg.ChunkSize)
		if err != nil {
			warnings = append(warnings, fmt.Errorf("entry %d (%s): %w", i+1, entry.Link, err))
			continue
		}
		requests = append(requests, req)
	}
	return requests, warnings
}

// Run processes jobs one after another; there is never more than one
// transfer in flight.
func Run(jobs []utils.Job, downloader Downloader, out io.Writer) error {
	log := utils.GetLogger("scheduler")
	outputMgr := output.NewManager(out)
	for _, job := range jobs {
		jobOutput := outputMgr.Register(job.ID, job.Request.URL())
		log.Debug().Str("job", job.ID).Str("url", job.Request.URL()).Str("dir", job.Request.OutputDir()).Msg("Processing job")
		summary, err := downloader.Download(job.Request)
		if err != nil {
			log.Debug().Str("job", job.ID).Err(err).Msg("Job failed")
			outputMgr.ReportError(jobOutput, err)
			continue
		}
		message := fmt.Sprintf("Downloaded %s %s %s %s %s",
			summary.Target.FullName,
			output.StyleSymbols["bullet"],
			utils.FormatBytes(uint64(summary.BytesWritten)),
			output.StyleSymbols["bullet"],
			utils.FormatSpeed(summary.BytesWritten, summary.Elapsed.Seconds()),
		)
		outputMgr.Complete(jobOutput, message)
		log.Debug().Str("job", job.ID).Str("path", summary.Target.AbsolutePath).Msg("Job completed")
	}
	if len(jobs) > 1 || outputMgr.Failures() > 0 {
		outputMgr.ShowSummary()
	}
	if failures := outputMgr.Failures(); failures > 0 {
		return fmt.Errorf("%d of %d download(s) failed", failures, len(jobs))
	}
	return nil
}
