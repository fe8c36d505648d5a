package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/handiism/rawimport/internal/batch"
	"github.com/handiism/rawimport/internal/config"
	"github.com/handiism/rawimport/internal/convert"
	"github.com/handiism/rawimport/internal/format"
	"github.com/handiism/rawimport/internal/ingest"
	"github.com/handiism/rawimport/internal/metadata"
)

func main() {
	// Command line flags
	var (
		inDirFlag     = flag.String("in-dir", "", "Directory containing RAW files to convert")
		outDirFlag    = flag.String("out-dir", "", "Directory to write converted DNGs (required)")
		formatFlag    = flag.String("format", "", "Filename format for converted DNGs")
		artistFlag    = flag.String("artist", "", "Value of the artist tag in converted DNGs")
		embedFlag     = flag.Bool("embed-original", false, "Embed the original RAW image in the converted DNG")
		previewFlag   = flag.Bool("preview", true, "Embed image preview in output DNG")
		thumbnailFlag = flag.Bool("thumbnail", true, "Embed image thumbnail in output DNG")
		forceFlag     = flag.Bool("force", false, "Overwrite existing files, if they exist")
		recurseFlag   = flag.Bool("recurse", false, "Ingest images from subdirectories, preserving directory structure")
		threadsFlag   = flag.Int("threads", 0, "Number of concurrent conversions (default: number of CPUs)")
		configFlag    = flag.String("config", "", "Path to config file")
		verboseFlag   = flag.Bool("verbose", false, "Show verbose output")
		quietFlag     = flag.Bool("quiet", false, "Only emit errors")
		dryRunFlag    = flag.Bool("dry-run", false, "Enumerate and render filenames without converting")
	)

	flag.Parse()

	if *inDirFlag == "" && flag.NArg() == 0 {
		fmt.Println("rawimport - Convert camera RAW files to DNG")
		fmt.Println()
		fmt.Println("Usage:")
		fmt.Println("  rawimport -out-dir <DIR> -in-dir <DIR> [options]")
		fmt.Println("  rawimport -out-dir <DIR> [options] <FILE>...")
		fmt.Println()
		fmt.Println("For interactive mode, use: rawimport-tui")
		fmt.Println()
		flag.PrintDefaults()
		os.Exit(1)
	}

	// Load config
	settings := config.DefaultSettings()
	if *configFlag != "" {
		var err error
		settings, err = config.Load(*configFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// Apply flags
	if *outDirFlag != "" {
		settings.OutputDir = *outDirFlag
	}
	if *formatFlag != "" {
		settings.FileNameFormat = *formatFlag
	}
	if *artistFlag != "" {
		settings.Artist = *artistFlag
	}
	if *threadsFlag > 0 {
		settings.Workers = *threadsFlag
	}
	settings.EmbedOriginal = *embedFlag
	settings.EmbedPreview = *previewFlag
	settings.EmbedThumbnail = *thumbnailFlag
	settings.Force = *forceFlag
	settings.Recurse = *recurseFlag

	if settings.OutputDir == "" {
		fmt.Fprintln(os.Stderr, "Error: -out-dir is required")
		os.Exit(1)
	}

	// A bad template means no job can be named correctly, so fail
	// before touching any file.
	tmpl, err := format.Compile(settings.FileNameFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error in filename format: %v\n", err)
		os.Exit(1)
	}

	// Enumerate the work set
	var sources []ingest.Source
	var skipped []string
	if *inDirFlag != "" {
		sources, skipped, err = ingest.Dir(*inDirFlag, settings.Recurse)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading input directory: %v\n", err)
			os.Exit(1)
		}
	} else {
		sources, skipped = ingest.Files(flag.Args())
	}

	if *verboseFlag {
		for _, path := range skipped {
			fmt.Printf("   Ignoring %s: unsupported filetype\n", path)
		}
	}
	if len(sources) == 0 {
		fmt.Println("No RAW files to convert.")
		return
	}

	// Handle interrupts
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Println("\nInterrupted, cancelling...")
		cancel()
	}()

	extractor := metadata.NewExifExtractor()

	if *dryRunFlag {
		fmt.Printf("Found %d RAW file(s)\n\n", len(sources))
		for _, src := range sources {
			rec, err := extractor.Extract(ctx, src.Path)
			if err != nil {
				fmt.Printf("❌ %s: %v\n", src.Path, err)
				continue
			}
			fmt.Printf("   %s -> %s.dng\n", src.Path, tmpl.Render(rec))
		}
		fmt.Println("\n[Dry run - not converting]")
		return
	}

	// Create runner with progress callback
	converter := convert.NewDNGLabConverter(settings.ConverterBinary)
	runner := batch.NewRunner(settings, tmpl, extractor, converter, func(event batch.ProgressEvent) {
		if *quietFlag && event.Level != batch.LevelError {
			return
		}
		if event.Level == batch.LevelVerbose && !*verboseFlag {
			return
		}

		prefix := ""
		switch event.Level {
		case batch.LevelError:
			prefix = "❌ "
		case batch.LevelWarning:
			prefix = "⚠️  "
		case batch.LevelSuccess:
			prefix = "✅ "
		case batch.LevelInfo:
			prefix = "ℹ️  "
		default:
			prefix = "   "
		}

		fmt.Println(prefix + event.Message)
	})

	if !*quietFlag {
		fmt.Printf("📷 Converting %d RAW file(s) with %d worker(s)\n\n", len(sources), settings.Workers)
	}

	summary, err := runner.Run(ctx, sources)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if ctx.Err() != nil {
		printSummary(summary)
		fmt.Println("\nConversion cancelled.")
		os.Exit(130)
	}

	printSummary(summary)
	if !summary.OK() {
		os.Exit(1)
	}
}

func printSummary(summary *batch.Summary) {
	fmt.Println()
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Printf("✨ Done! %d converted, %d skipped, %d failed\n",
		summary.Converted, summary.Skipped, summary.Failed)

	for _, out := range summary.Outcomes {
		if out.Status == batch.StatusSkipped {
			fmt.Printf("   skipped %s: %s\n", out.Source, out.Reason)
		}
	}
	for _, failure := range summary.Failures {
		fmt.Printf("   failed %s\n", failure)
	}
}
