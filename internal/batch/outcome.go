package batch

import "fmt"

// Status classifies how a job ended.
type Status int

const (
	// StatusConverted means the output DNG was written.
	StatusConverted Status = iota

	// StatusSkipped means the job intentionally wrote nothing.
	StatusSkipped

	// StatusFailed means the job hit an error. Failures are isolated
	// to their job; the batch always runs to completion.
	StatusFailed
)

// SkipReason says why a job was skipped.
type SkipReason int

const (
	// SkipNone is the zero value for non-skipped outcomes.
	SkipNone SkipReason = iota

	// SkipExists: the destination already existed and overwriting
	// was not enabled.
	SkipExists

	// SkipBatchCollision: another job in the same batch claimed the
	// same destination path first.
	SkipBatchCollision

	// SkipCanceled: the batch was canceled before this job started.
	SkipCanceled
)

// String returns a short human-readable reason.
func (r SkipReason) String() string {
	switch r {
	case SkipExists:
		return "destination already exists"
	case SkipBatchCollision:
		return "destination claimed by another file in this batch"
	case SkipCanceled:
		return "canceled before starting"
	default:
		return ""
	}
}

// Outcome is the final result of one conversion job. Exactly one
// Outcome is produced per dispatched job; outcomes are never mutated
// after creation.
type Outcome struct {
	// Source is the input RAW file path.
	Source string

	// Output is the resolved destination path. Empty when the job
	// failed before the destination was computed.
	Output string

	// Status classifies the result.
	Status Status

	// Bytes is the number of bytes written for converted jobs.
	Bytes int64

	// Reason is set for skipped jobs.
	Reason SkipReason

	// Err is set for failed jobs.
	Err error
}

// Failure pairs a failed source with its error for the final report.
type Failure struct {
	Source string
	Err    error
}

func (f Failure) String() string {
	return fmt.Sprintf("%s: %v", f.Source, f.Err)
}

// Summary aggregates every job outcome of a batch run.
type Summary struct {
	Converted int
	Skipped   int
	Failed    int

	// Outcomes holds one entry per dispatched job, in completion
	// order.
	Outcomes []Outcome

	// Failures lists failed jobs with their errors.
	Failures []Failure
}

// Total returns the number of resolved jobs.
func (s *Summary) Total() int {
	return s.Converted + s.Skipped + s.Failed
}

// OK reports whether the batch finished without failures. Skips do not
// count as failures.
func (s *Summary) OK() bool {
	return s.Failed == 0
}
