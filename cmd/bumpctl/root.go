package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/c2h5oh/datasize"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/joshuapare/bumpkit/bump"
	"github.com/joshuapare/bumpkit/cmd/bumpctl/logger"
	"github.com/joshuapare/bumpkit/region"
)

var (
	// Global flags
	verbose bool
	quiet   bool
	debug   bool
	jsonOut bool

	// Region selection flags
	backendName string
	reserveFlag string
	granFlag    string
)

var rootCmd = &cobra.Command{
	Use:   "bumpctl",
	Short: "Exercise and inspect the bump allocator",
	Long: `bumpctl drives the bumpkit allocator against a chosen memory region
backend. It can walk through a scripted allocation sequence, run a randomized
stack-discipline workload, and report what the backends look like on this
machine.

Backends:
  brk   the real program break (Linux only, one consumer per process)
  mmap  reserved anonymous pages (Linux and macOS)
  sim   an in-process buffer, fully portable`,
	Version: "0.1.0",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Init(logger.Options{Enabled: debug, Level: slog.LevelDebug})
	},
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "Log allocator internals to stderr")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")

	rootCmd.PersistentFlags().
		StringVar(&backendName, "backend", "sim", "Region backend: brk, mmap, or sim")
	rootCmd.PersistentFlags().
		StringVar(&reserveFlag, "reserve", "64MB", "Address space reserved by the mmap and sim backends")
	rootCmd.PersistentFlags().
		StringVar(&granFlag, "granularity", "", "Growth granularity (default: OS page size)")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// openRegion builds the region selected by --backend. The caller owns it.
func openRegion() (region.Region, error) {
	var reserve datasize.ByteSize
	if err := reserve.UnmarshalText([]byte(reserveFlag)); err != nil {
		return nil, fmt.Errorf("bad --reserve %q: %w", reserveFlag, err)
	}

	switch backendName {
	case "brk":
		return region.OpenBreak()
	case "mmap":
		return region.OpenMapping(uintptr(reserve.Bytes()))
	case "sim":
		return region.NewSim(uintptr(reserve.Bytes()))
	default:
		return nil, fmt.Errorf("unknown backend %q (want brk, mmap, or sim)", backendName)
	}
}

// newAllocator opens the selected region and wraps it in an allocator.
// Closing the allocator releases the region.
func newAllocator() (*bump.BumpAllocator, region.Region, error) {
	r, err := openRegion()
	if err != nil {
		return nil, nil, err
	}

	cfg := &bump.Config{}
	if granFlag != "" {
		var g datasize.ByteSize
		if err := g.UnmarshalText([]byte(granFlag)); err != nil {
			_ = r.Release()
			return nil, nil, fmt.Errorf("bad --granularity %q: %w", granFlag, err)
		}
		cfg.Granularity = uintptr(g.Bytes())
	}

	a, err := bump.New(r, cfg)
	if err != nil {
		_ = r.Release()
		return nil, nil, err
	}

	logger.Debug("allocator ready",
		"backend", backendName,
		"granularity", a.Granularity())

	return a, r, nil
}

// Helper functions for output

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...interface{}) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printError prints an error message
func printError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format, args...)
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...interface{}) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// printAllocStats renders a stats snapshot, grouping large counts so stress
// runs stay readable.
func printAllocStats(s bump.Stats) {
	if quiet {
		return
	}
	p := message.NewPrinter(language.English)
	p.Printf("  allocs:     %d\n", s.Allocs)
	p.Printf("  frees:      %d (%d fast, %d leaked)\n",
		s.Frees, s.FastFrees, s.Frees-s.FastFrees)
	p.Printf("  grows:      %d\n", s.Grows)
	p.Printf("  shrinks:    %d\n", s.Shrinks)
	fmt.Printf("  live:       %s\n", humanize.IBytes(uint64(s.Live)))
	fmt.Printf("  footprint:  %s\n", humanize.IBytes(uint64(s.Footprint)))
	fmt.Printf("  high water: %s\n", humanize.IBytes(uint64(s.HighWater)))
	fmt.Printf("  padding:    %s\n", humanize.IBytes(uint64(s.Padding)))
}
