package scheduler

import (
	"context"
	"time"
)

// Job is one schedulable unit of background work.
type Job interface {
	// Name returns the job name.
	Name() string

	// Run executes the job.
	Run(ctx context.Context) error

	// Schedule returns the cron schedule expression, e.g. "@daily" or
	// "0 30 6 * * *".
	Schedule() string
}

// JobResult is the outcome of one job execution.
type JobResult struct {
	JobName   string        `json:"job_name"`
	StartTime time.Time     `json:"start_time"`
	EndTime   time.Time     `json:"end_time"`
	Duration  time.Duration `json:"duration"`
	Success   bool          `json:"success"`
	Error     string        `json:"error,omitempty"`
}

// JobHistory keeps the most recent execution results of one job.
type JobHistory struct {
	Results []JobResult
}

const maxHistoryResults = 100

// AddResult appends a result, discarding the oldest beyond the cap.
func (h *JobHistory) AddResult(result JobResult) {
	h.Results = append(h.Results, result)
	if len(h.Results) > maxHistoryResults {
		h.Results = h.Results[len(h.Results)-maxHistoryResults:]
	}
}

// LatestResults returns the newest n results.
func (h *JobHistory) LatestResults(n int) []JobResult {
	if n > len(h.Results) {
		n = len(h.Results)
	}
	if n == 0 {
		return []JobResult{}
	}
	return h.Results[len(h.Results)-n:]
}

// SuccessRate returns the share of successful runs, 0.0 to 1.0.
func (h *JobHistory) SuccessRate() float64 {
	if len(h.Results) == 0 {
		return 0.0
	}

	successes := 0
	for _, result := range h.Results {
		if result.Success {
			successes++
		}
	}
	return float64(successes) / float64(len(h.Results))
}
