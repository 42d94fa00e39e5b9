// Package bump provides a bump-pointer allocator over a growable memory
// region.
//
// # Overview
//
// This package implements the classic sbrk-style allocation strategy: one
// contiguous region, one frontier pointer. Allocation aligns the frontier,
// grows the region when headroom runs out, and advances the frontier past
// the new block. Deallocation reclaims memory in exactly one case, when the
// freed block is the most recently allocated one; every other free is a
// deliberate no-op.
//
// # Allocator Interface
//
// The core abstraction is the Allocator interface:
//
//   - Alloc(layout): carve a block of layout.Size bytes at layout.Align
//   - Free(addr): retract over the last block, or do nothing
//   - Close(): release the whole region
//
// # Allocation
//
// Alloc computes the first address at or after the frontier that satisfies
// the requested alignment. If the block would cross the region end, the
// region is grown by the shortfall rounded up to the growth granularity
// (the OS page size unless configured), amortizing the underlying break
// moves across many small allocations. Growth refusal surfaces as
// ErrOutOfMemory and leaves the allocator exactly as it was.
//
// # Deallocation
//
// Free(addr) compares addr against the start of the most recently carved
// block. On a match the frontier retracts to addr and the unused region
// tail is handed back best-effort, in whole granules. On a mismatch the
// call does nothing: the block's bytes stay carved until Close. This is the
// defining trade-off of bump allocation, O(1) alloc and free in exchange
// for leaking any block freed out of stack order. The leak is a documented
// contract, not a bug; Close reclaims everything regardless.
//
// Misuse of Free (an address Alloc never returned, or a second free of the
// same block) is undefined behavior and is not detected. There is no
// per-block bookkeeping to detect it with.
//
// # Regions
//
// The allocator drives a region.Region and owns it exclusively: Break (the
// real program break), Mapping (reserved anonymous pages), or Sim (an
// in-process buffer, fully portable). The backends are drop-in replacements
// for one another.
//
// # Usage Example
//
//	r, err := region.NewSim(1 << 20)
//	if err != nil {
//	    return err
//	}
//	a, err := bump.New(r, nil)
//	if err != nil {
//	    return err
//	}
//	defer a.Close()
//
//	addr, block, err := a.Alloc(bump.LayoutOf[uint64]())
//	if err != nil {
//	    return err
//	}
//	binary.LittleEndian.PutUint64(block, 42)
//
//	a.Free(addr) // last block: frontier retracts
//
// # Thread Safety
//
// A BumpAllocator instance is not safe for concurrent use. Use one
// allocator per goroutine or synchronize externally.
//
// # Related Packages
//
//   - github.com/joshuapare/bumpkit/region: the growable memory backends
//   - github.com/joshuapare/bumpkit/internal/align: alignment arithmetic
package bump
