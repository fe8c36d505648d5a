package batch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/handiism/rawimport/internal/config"
	"github.com/handiism/rawimport/internal/convert"
	"github.com/handiism/rawimport/internal/format"
	"github.com/handiism/rawimport/internal/ingest"
	ioutils "github.com/handiism/rawimport/internal/io"
	"github.com/handiism/rawimport/internal/metadata"
	"golang.org/x/sync/errgroup"
)

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// ProgressEvent represents a conversion progress update.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel
}

// Runner coordinates a batch of RAW-to-DNG conversion jobs.
type Runner struct {
	settings  *config.Settings
	tmpl      *format.Template
	extractor metadata.Extractor
	converter convert.Converter
	opts      convert.Options

	// claims maps a cleaned destination path to the source that
	// claimed it first. First claim wins; later claimants skip.
	mu       sync.Mutex
	claims   map[string]string
	outcomes []Outcome

	completed  int64
	totalJobs  int64
	onProgress func(ProgressEvent)
}

// NewRunner creates a Runner. The template, settings, and options are
// treated as immutable and shared read-only by all workers.
func NewRunner(settings *config.Settings, tmpl *format.Template, extractor metadata.Extractor, converter convert.Converter, onProgress func(ProgressEvent)) *Runner {
	return &Runner{
		settings:   settings,
		tmpl:       tmpl,
		extractor:  extractor,
		converter:  converter,
		opts:       settings.ToOptions(),
		claims:     make(map[string]string),
		onProgress: onProgress,
	}
}

// GetProgress returns the number of resolved jobs and the batch size.
func (r *Runner) GetProgress() (completed, total int64) {
	return atomic.LoadInt64(&r.completed), atomic.LoadInt64(&r.totalJobs)
}

// Run converts all sources and blocks until every dispatched job has
// resolved. Jobs run on a bounded pool of settings.Workers goroutines;
// one job's failure never cancels its siblings.
//
// Canceling ctx stops dispatching promptly: jobs not yet started
// resolve to Skipped, while in-flight jobs finish or abort without
// leaving partial output files. Run itself only errors on setup
// problems that prevent any job from running.
func (r *Runner) Run(ctx context.Context, sources []ingest.Source) (*Summary, error) {
	if r.settings.OutputDir == "" {
		return nil, fmt.Errorf("no output directory configured")
	}
	if err := ioutils.EnsureDir(r.settings.OutputDir); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	atomic.StoreInt64(&r.totalJobs, int64(len(sources)))

	var g errgroup.Group
	g.SetLimit(r.workers())

	for _, src := range sources {
		if ctx.Err() != nil {
			r.record(Outcome{Source: src.Path, Status: StatusSkipped, Reason: SkipCanceled})
			continue
		}

		src := src // capture
		g.Go(func() error {
			r.record(r.process(ctx, src))
			return nil // failures are per-job outcomes, never group errors
		})
	}

	g.Wait()

	return r.summarize(), nil
}

func (r *Runner) workers() int {
	if r.settings.Workers > 0 {
		return r.settings.Workers
	}
	return 1
}

// process runs one job from extraction through atomic write. It never
// panics outward; a panic inside a job becomes that job's failure.
func (r *Runner) process(ctx context.Context, src ingest.Source) (out Outcome) {
	out = Outcome{Source: src.Path}

	defer func() {
		if p := recover(); p != nil {
			out.Status = StatusFailed
			out.Err = fmt.Errorf("job panicked: %v", p)
		}
	}()

	r.progress(ProgressEvent{Message: fmt.Sprintf("Processing %s", src.Path), Level: LevelVerbose})

	rec, err := r.extractor.Extract(ctx, src.Path)
	if err != nil {
		out.Status = StatusFailed
		out.Err = fmt.Errorf("extracting metadata: %w", err)
		return out
	}

	name := r.tmpl.Render(rec) + ".dng"
	outPath := filepath.Clean(filepath.Join(r.settings.OutputDir, src.RelDir, name))
	out.Output = outPath

	if first, ok := r.claim(outPath, src.Path); !ok {
		r.progress(ProgressEvent{
			Message: fmt.Sprintf("Skipping %s: output %s already claimed by %s", src.Path, outPath, first),
			Level:   LevelWarning,
		})
		out.Status = StatusSkipped
		out.Reason = SkipBatchCollision
		return out
	}

	if info, err := os.Stat(outPath); err == nil {
		if info.IsDir() {
			out.Status = StatusFailed
			out.Err = fmt.Errorf("destination exists as a directory: %s", outPath)
			return out
		}
		if !r.settings.Force {
			r.progress(ProgressEvent{Message: fmt.Sprintf("Skipping existing: %s", outPath), Level: LevelVerbose})
			out.Status = StatusSkipped
			out.Reason = SkipExists
			return out
		}
	}

	srcBytes, err := os.ReadFile(src.Path)
	if err != nil {
		out.Status = StatusFailed
		out.Err = fmt.Errorf("reading source: %w", err)
		return out
	}

	opts := r.opts
	if opts.EmbedThumbnail && rec.HasPreview() {
		thumb, err := ioutils.ResizeJPEG(rec.PreviewJPEG, r.settings.ThumbnailMaxSize, r.settings.ThumbnailMaxSize)
		if err != nil {
			r.progress(ProgressEvent{
				Message: fmt.Sprintf("Couldn't resize preview for %s: %v", src.Path, err),
				Level:   LevelWarning,
			})
			thumb = rec.PreviewJPEG
		}
		opts.Thumbnail = thumb
	}

	dng, err := r.converter.Convert(ctx, srcBytes, rec, opts)
	if err != nil {
		out.Status = StatusFailed
		out.Err = fmt.Errorf("converting: %w", err)
		return out
	}

	if err := ioutils.EnsureDir(filepath.Dir(outPath)); err != nil {
		out.Status = StatusFailed
		out.Err = fmt.Errorf("creating output directory: %w", err)
		return out
	}
	if err := ioutils.WriteFileAtomic(outPath, dng); err != nil {
		out.Status = StatusFailed
		out.Err = fmt.Errorf("writing output: %w", err)
		return out
	}

	r.progress(ProgressEvent{Message: fmt.Sprintf("Wrote %s", outPath), Level: LevelSuccess})
	out.Status = StatusConverted
	out.Bytes = int64(len(dng))
	return out
}

// claim registers outPath for source. It returns ok=false and the
// first claimant when another job in this batch got there first.
func (r *Runner) claim(outPath, source string) (first string, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if prior, exists := r.claims[outPath]; exists {
		return prior, false
	}
	r.claims[outPath] = source
	return source, true
}

// record appends a job outcome. Outcomes arrive from many workers in
// completion order; this is the single serialized aggregation point.
func (r *Runner) record(out Outcome) {
	r.mu.Lock()
	r.outcomes = append(r.outcomes, out)
	r.mu.Unlock()

	atomic.AddInt64(&r.completed, 1)

	if out.Status == StatusFailed {
		r.progress(ProgressEvent{
			Message: fmt.Sprintf("Failed %s: %v", out.Source, out.Err),
			Level:   LevelError,
		})
	}
}

func (r *Runner) summarize() *Summary {
	r.mu.Lock()
	defer r.mu.Unlock()

	summary := &Summary{Outcomes: append([]Outcome(nil), r.outcomes...)}
	for _, out := range r.outcomes {
		switch out.Status {
		case StatusConverted:
			summary.Converted++
		case StatusSkipped:
			summary.Skipped++
		case StatusFailed:
			summary.Failed++
			summary.Failures = append(summary.Failures, Failure{Source: out.Source, Err: out.Err})
		}
	}
	return summary
}

func (r *Runner) progress(event ProgressEvent) {
	if r.onProgress != nil {
		r.onProgress(event)
	}
}
