// Package batch schedules and runs a set of independent RAW-to-DNG
// conversion jobs.
//
// # Runner
//
// The Runner coordinates the whole conversion:
//
//  1. Extract EXIF metadata from each source
//  2. Render the destination filename from the compiled template
//  3. Enforce collision policy against the batch and the filesystem
//  4. Invoke the converter
//  5. Write the result atomically
//
// # Basic Usage
//
//	runner := batch.NewRunner(settings, tmpl, extractor, converter,
//	    func(event batch.ProgressEvent) {
//	        fmt.Println(event.Message)
//	    })
//
//	summary, err := runner.Run(ctx, sources)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("%d converted, %d skipped, %d failed\n",
//	    summary.Converted, summary.Skipped, summary.Failed)
//
// # Isolation
//
// Jobs run on a bounded pool sized by Settings.Workers. Each job is
// fully independent: a failure, panic, or slow conversion in one job
// never blocks or cancels its siblings, and the batch always runs to
// completion before the Summary is produced. The process exit status
// comes from Summary.OK.
//
// # Collisions
//
// Two inputs may render to the same destination. Within a batch the
// first job to claim a path wins and later claimants resolve to
// Skipped, which keeps the tie-break deterministic under concurrency.
// A pre-existing file skips the job unless force-overwrite is on.
//
// # Atomicity
//
// Output bytes are written to a temp file in the destination directory
// and renamed into place, so an interrupted run never leaves a partial
// DNG behind.
package batch
