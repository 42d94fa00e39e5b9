package main

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/joshuapare/bumpkit/bump"
	"github.com/joshuapare/bumpkit/region"
)

var demoPause bool

func init() {
	cmd := newDemoCmd()
	cmd.Flags().BoolVar(&demoPause, "pause", false,
		"Wait for ENTER between steps (inspect with pmap, htop, gdb)")
	rootCmd.AddCommand(cmd)
}

func newDemoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Walk through a scripted allocation sequence",
		Long: `The demo command narrates the allocator step by step: aligned carving,
the no-op interior free, the last-block round trip, and region growth on a
large request.

With --backend brk and --pause the program break is the real one, so every
step can be watched from outside the process:

  bumpctl demo --backend brk --pause
  pmap $(pidof bumpctl) | tail`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo()
		},
	}
}

var stdinReader = bufio.NewReader(os.Stdin)

// pauseForEnter blocks until ENTER when --pause is set, so the process can
// be inspected between steps.
func pauseForEnter() {
	if !demoPause {
		return
	}
	fmt.Println("\n>>> Press ENTER to continue...")
	_, _ = stdinReader.ReadString('\n')
}

// printRegionState reports the region span the way the break looks from
// outside: pid, bounds, and committed size.
func printRegionState(label string, r region.Region) {
	start, end := r.Bounds()
	printInfo("[%s] pid=%d region=[%#x, %#x) footprint=%s\n",
		label, os.Getpid(), start, end, humanize.IBytes(uint64(end-start)))
}

// printAlloc reports one carved block along with the allocator position.
func printAlloc(l bump.Layout, addr uintptr, a *bump.BumpAllocator) {
	printInfo("    size=%d align=%d addr=%#x used=%d footprint=%s\n",
		l.Size, l.Align, addr, a.Used(), humanize.IBytes(uint64(a.Footprint())))
}

func runDemo() error {
	a, r, err := newAllocator()
	if err != nil {
		return err
	}
	defer func() {
		if cerr := a.Close(); cerr != nil {
			printError("close: %v\n", cerr)
		}
	}()

	printInfo("bump allocator demo: backend=%s granularity=%s\n",
		backendName, humanize.IBytes(uint64(a.Granularity())))
	printRegionState("start", r)
	pauseForEnter()

	// 1) A uint32: the smallest interesting block.
	lu32 := bump.LayoutOf[uint32]()
	addr1, b1, err := a.Alloc(lu32)
	if err != nil {
		return fmt.Errorf("alloc uint32: %w", err)
	}
	binary.LittleEndian.PutUint32(b1, 0xDEADBEEF)
	printInfo("\n[1] allocate uint32\n")
	printAlloc(lu32, addr1, a)
	printInfo("[1] wrote %#x, read back %#x\n",
		uint32(0xDEADBEEF), binary.LittleEndian.Uint32(b1))
	pauseForEnter()

	// 2) Twelve raw bytes: an odd size the frontier absorbs as-is.
	l12, err := bump.NewLayout(12, 1)
	if err != nil {
		return err
	}
	addr2, b2, err := a.Alloc(l12)
	if err != nil {
		return fmt.Errorf("alloc 12 bytes: %w", err)
	}
	for i := range b2 {
		b2[i] = 0xAB
	}
	printInfo("\n[2] allocate 12 raw bytes\n")
	printAlloc(l12, addr2, a)
	printInfo("[2] filled with %#x\n", byte(0xAB))
	pauseForEnter()

	// 3) A uint64: watch the 8-byte alignment.
	lu64 := bump.LayoutOf[uint64]()
	addr3, b3, err := a.Alloc(lu64)
	if err != nil {
		return fmt.Errorf("alloc uint64: %w", err)
	}
	binary.LittleEndian.PutUint64(b3, 0x1122334455667788)
	printInfo("\n[3] allocate uint64 (observe alignment)\n")
	printAlloc(lu64, addr3, a)
	printInfo("[3] addr %% align = %d\n", addr3%lu64.Align)
	pauseForEnter()

	// 4) An array of sixteen uint16 values.
	larr := bump.ArrayOf[uint16](16)
	addr4, b4, err := a.Alloc(larr)
	if err != nil {
		return fmt.Errorf("alloc uint16 array: %w", err)
	}
	for i := range 16 {
		binary.LittleEndian.PutUint16(b4[2*i:], uint16(i))
	}
	printInfo("\n[4] allocate [16]uint16\n")
	printAlloc(larr, addr4, a)
	printInfo("[4] wrote 0..15 into the array\n")
	pauseForEnter()

	// 5) Free the first block. It is not the most recent one, so the
	// frontier stays put and the bytes are carved until Close.
	usedBefore := a.Used()
	a.Free(addr1)
	printInfo("\n[5] free the first block at %#x\n", addr1)
	printInfo("[5] used before=%d after=%d (interior frees reclaim nothing)\n",
		usedBefore, a.Used())
	pauseForEnter()

	// 6) Two more bytes: the freed block is not reused.
	l2, err := bump.NewLayout(2, 1)
	if err != nil {
		return err
	}
	addr6, _, err := a.Alloc(l2)
	if err != nil {
		return fmt.Errorf("alloc 2 bytes: %w", err)
	}
	printInfo("\n[6] allocate 2 bytes (does it land on the freed block?)\n")
	printAlloc(l2, addr6, a)
	if addr6 == addr1 {
		printInfo("[6] yes, it reused the freed block\n")
	} else {
		printInfo("[6] no, it continued at the frontier\n")
	}
	pauseForEnter()

	// 7) Free the most recent block and allocate the same layout again:
	// the frontier retracts, so the address comes back.
	a.Free(addr6)
	addr7, _, err := a.Alloc(l2)
	if err != nil {
		return fmt.Errorf("realloc 2 bytes: %w", err)
	}
	printInfo("\n[7] free the last block and allocate the same size\n")
	printAlloc(l2, addr7, a)
	if addr7 == addr6 {
		printInfo("[7] same address: the stack round trip holds\n")
	} else {
		printInfo("[7] address moved, which would be a bug worth reporting\n")
	}
	pauseForEnter()

	// 8) A 64 KiB block: the region has to grow to fit it.
	printRegionState("before large alloc", r)
	lbig := bump.ArrayOf[byte](64 * 1024)
	addr8, b8, err := a.Alloc(lbig)
	if err != nil {
		return fmt.Errorf("alloc 64 KiB: %w", err)
	}
	b8[0] = 0x5A
	b8[len(b8)-1] = 0xA5
	printInfo("\n[8] allocate a 64 KiB block\n")
	printAlloc(lbig, addr8, a)
	printInfo("[8] first/last bytes read back %#x %#x\n", b8[0], b8[len(b8)-1])
	printRegionState("after large alloc", r)
	pauseForEnter()

	// 9) Free it while it is still the most recent block: whole granules
	// go back to the region.
	a.Free(addr8)
	printInfo("\n[9] free the 64 KiB block (last block, so the region shrinks)\n")
	printRegionState("after freeing the large block", r)
	pauseForEnter()

	// 10) Final numbers. Close (deferred) releases everything, the leaked
	// interior block included.
	printInfo("\n[10] final statistics\n")
	if jsonOut {
		return printJSON(a.Stats())
	}
	printAllocStats(a.Stats())
	return nil
}
