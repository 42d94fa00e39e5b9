package main

import (
	"fmt"
	"math/rand"

	"github.com/c2h5oh/datasize"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/joshuapare/bumpkit/bump"
	"github.com/joshuapare/bumpkit/cmd/bumpctl/logger"
)

var (
	stressOps     int
	stressSeed    int64
	stressMaxSize string
)

func init() {
	cmd := newStressCmd()
	cmd.Flags().IntVar(&stressOps, "ops", 100000, "Number of operations to run")
	cmd.Flags().Int64Var(&stressSeed, "seed", 42, "Seed for the workload generator")
	cmd.Flags().StringVar(&stressMaxSize, "max-size", "1KB", "Largest single allocation")
	rootCmd.AddCommand(cmd)
}

func newStressCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stress",
		Short: "Run a randomized stack-discipline workload",
		Long: `The stress command allocates blocks of random size and alignment and
frees them in stack order, the one pattern this allocator reclaims. It then
reports how closely the footprint tracked the live peak.

Sizing note: roughly a third of the operations stay live, so reserve about
ops/3 times the average size. The mmap backend reserves address space only,
which makes it the right choice for big runs:

  bumpctl stress
  bumpctl stress --backend mmap --reserve 8GB --ops 1000000 --max-size 16KB`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStress()
		},
	}
}

func runStress() error {
	var maxSize datasize.ByteSize
	if err := maxSize.UnmarshalText([]byte(stressMaxSize)); err != nil {
		return fmt.Errorf("bad --max-size %q: %w", stressMaxSize, err)
	}
	if maxSize.Bytes() == 0 {
		return fmt.Errorf("--max-size must be positive")
	}

	a, _, err := newAllocator()
	if err != nil {
		return err
	}
	defer func() {
		if cerr := a.Close(); cerr != nil {
			printError("close: %v\n", cerr)
		}
	}()

	printInfo("stress: backend=%s ops=%d seed=%d max-size=%s\n",
		backendName, stressOps, stressSeed, maxSize.HumanReadable())

	rng := rand.New(rand.NewSource(stressSeed))

	type blk struct {
		addr uintptr
		size uintptr
	}
	var stack []blk

	// Only the most recent carve can be reclaimed, and only until the
	// next free retires it. Track that window so every free takes the
	// fast path and the workload stays a pure stack.
	canReclaim := false

	for i := range stressOps {
		if rng.Intn(2) == 0 || len(stack) == 0 || !canReclaim {
			size := 1 + uintptr(rng.Int63n(int64(maxSize.Bytes())))
			alignment := uintptr(1) << rng.Intn(7)

			addr, _, allocErr := a.Alloc(bump.Layout{Size: size, Align: alignment})
			if allocErr != nil {
				return fmt.Errorf("op %d: alloc %d bytes: %w (try a larger --reserve)",
					i, size, allocErr)
			}
			stack = append(stack, blk{addr: addr, size: size})
			canReclaim = true
		} else {
			top := stack[len(stack)-1]
			a.Free(top.addr)
			stack = stack[:len(stack)-1]
			canReclaim = false
		}

		if i%10000 == 0 {
			logger.Debug("progress",
				"op", i,
				"live_blocks", len(stack),
				"used", a.Used(),
				"footprint", a.Footprint())
		}
	}

	s := a.Stats()
	if jsonOut {
		return printJSON(s)
	}

	printInfo("\nresults:\n")
	printAllocStats(s)
	printInfo("  survivors:  %d blocks\n", len(stack))
	if s.HighWater > 0 {
		printInfo("  final live: %.1f%% of the high-water footprint\n",
			100*float64(s.Live)/float64(s.HighWater))
	}
	printVerbose("  every free took the fast path: %v\n", s.Frees == s.FastFrees)
	printVerbose("  slack above live bytes stays under one granule (%s) plus padding\n",
		humanize.IBytes(uint64(a.Granularity())))
	return nil
}
