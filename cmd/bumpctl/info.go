package main

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/joshuapare/bumpkit/region"
)

func init() {
	rootCmd.AddCommand(newInfoCmd())
}

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Report page size and backend availability on this machine",
		Long: `The info command probes each region backend and reports what the
allocator would get from it here.

Example:
  bumpctl info
  bumpctl info --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo()
		},
	}
}

type backendInfo struct {
	Name      string `json:"name"`
	Available bool   `json:"available"`
	Detail    string `json:"detail"`
}

func runInfo() error {
	pageSize := os.Getpagesize()

	var backends []backendInfo

	// The break backend owns the real program break; probing it does not
	// move anything.
	if b, err := region.OpenBreak(); err != nil {
		backends = append(backends, backendInfo{
			Name: "brk", Available: false, Detail: err.Error(),
		})
	} else {
		start, _ := b.Bounds()
		backends = append(backends, backendInfo{
			Name: "brk", Available: true,
			Detail: fmt.Sprintf("current break %#x", start),
		})
		_ = b.Release()
	}

	// The mapping backend reserves address space up front; probe with a
	// small reserve and hand it straight back.
	if m, err := region.OpenMapping(1 << 20); err != nil {
		backends = append(backends, backendInfo{
			Name: "mmap", Available: false, Detail: err.Error(),
		})
	} else {
		backends = append(backends, backendInfo{
			Name: "mmap", Available: true,
			Detail: "probe reserved " + humanize.IBytes(uint64(m.Cap())),
		})
		_ = m.Release()
	}

	backends = append(backends, backendInfo{
		Name: "sim", Available: true, Detail: "in-process buffer",
	})

	if jsonOut {
		return printJSON(struct {
			PageSize int           `json:"page_size"`
			Backends []backendInfo `json:"backends"`
		}{pageSize, backends})
	}

	printInfo("page size: %d bytes (default growth granularity)\n", pageSize)
	printInfo("backends:\n")
	for _, b := range backends {
		status := "unavailable"
		if b.Available {
			status = "available"
		}
		printInfo("  %-5s %-12s %s\n", b.Name, status, b.Detail)
	}
	return nil
}
