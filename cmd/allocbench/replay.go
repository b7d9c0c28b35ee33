package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/joshuapare/segalloc/alloc"
	"github.com/joshuapare/segalloc/heap"
)

var (
	replayChunkSize int32
	replayThreshold int32
	replayMaxAlloc  int32
)

func init() {
	cmd := newReplayCmd()
	cmd.Flags().Int32Var(&replayChunkSize, "chunk-size", alloc.DefaultConfig.ChunkSize, "bytes to grow the heap by on exhaustion")
	cmd.Flags().Int32Var(&replayThreshold, "threshold", alloc.DefaultConfig.Threshold, "size-class/BST boundary, in bytes")
	cmd.Flags().Int32Var(&replayMaxAlloc, "max-alloc", alloc.DefaultConfig.MaxAlloc, "largest single allocation accepted")
	rootCmd.AddCommand(cmd)
}

func newReplayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "replay <trace-file>",
		Short: "Replay a trace file and report throughput and utilization",
		Long: `replay feeds a trace of allocate/free/reallocate operations
through the allocator and reports how many operations ran per second and
how much of the grown heap was live payload at its fullest point.

Example:
  allocbench replay testdata/binary-trees.trace --chunk-size 4096`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(args[0])
		},
	}
}

// replayReport is the summary printed after a trace finishes.
type replayReport struct {
	TraceFile      string  `json:"trace_file"`
	Operations     int     `json:"operations"`
	Duration       string  `json:"duration"`
	OpsPerSecond   float64 `json:"ops_per_second"`
	PeakHeapBytes  int32   `json:"peak_heap_bytes"`
	PeakLiveBytes  int32   `json:"peak_live_bytes"`
	PeakUtilization float64 `json:"peak_utilization"`
	HeapGrowCalls  int64   `json:"heap_grow_calls"`
}

func runReplay(path string) error {
	f, err := os.Open(path)
	if err != nil {
		printErrorf("%v", err)
		return err
	}
	defer f.Close()

	ops, err := parseTrace(f)
	if err != nil {
		printErrorf("%v", err)
		return err
	}

	cfg := alloc.Config{
		ChunkSize:     replayChunkSize,
		SmallClassMax: replayThreshold,
		Threshold:     replayThreshold,
		MaxAlloc:      replayMaxAlloc,
	}

	arena, err := heap.New()
	if err != nil {
		printErrorf("%v", err)
		return err
	}
	defer arena.Close()

	a, err := alloc.New(arena, cfg)
	if err != nil {
		printErrorf("%v", err)
		return err
	}
	if err := a.Init(); err != nil {
		printErrorf("%v", err)
		return err
	}

	live := make(map[int]alloc.Ref)
	liveSize := make(map[int]int32)
	var liveBytes, peakLiveBytes, peakHeapBytes int32

	start := time.Now()
	for i, o := range ops {
		switch o.kind {
		case opAlloc:
			p, _, err := a.Allocate(o.size)
			if err != nil {
				return fmt.Errorf("op %d (alloc id=%d size=%d): %w", i, o.id, o.size, err)
			}
			live[o.id] = p
			liveSize[o.id] = o.size
			liveBytes += o.size

		case opFree:
			p, ok := live[o.id]
			if !ok {
				return fmt.Errorf("op %d (free id=%d): id was never allocated", i, o.id)
			}
			a.Free(p)
			liveBytes -= liveSize[o.id]
			delete(live, o.id)
			delete(liveSize, o.id)

		case opRealloc:
			p, ok := live[o.id]
			if !ok {
				return fmt.Errorf("op %d (realloc id=%d): id was never allocated", i, o.id)
			}
			newP, _, err := a.Resize(p, o.size)
			if err != nil {
				return fmt.Errorf("op %d (realloc id=%d size=%d): %w", i, o.id, o.size, err)
			}
			liveBytes += o.size - liveSize[o.id]
			live[o.id] = newP
			liveSize[o.id] = o.size
		}

		if verbose {
			if err := a.CheckHeap(false); err != nil {
				return fmt.Errorf("op %d: invariant violated: %w", i, err)
			}
		}

		if liveBytes > peakLiveBytes {
			peakLiveBytes = liveBytes
		}
		if h := arena.High(); h > peakHeapBytes {
			peakHeapBytes = h
		}
	}
	elapsed := time.Since(start)

	if err := a.CheckHeap(false); err != nil {
		return fmt.Errorf("final invariant check: %w", err)
	}

	util := 0.0
	if peakHeapBytes > 0 {
		util = float64(peakLiveBytes) / float64(peakHeapBytes)
	}

	report := replayReport{
		TraceFile:       path,
		Operations:      len(ops),
		Duration:        elapsed.String(),
		OpsPerSecond:    float64(len(ops)) / elapsed.Seconds(),
		PeakHeapBytes:   peakHeapBytes,
		PeakLiveBytes:   peakLiveBytes,
		PeakUtilization: util,
		HeapGrowCalls:   a.Stats().GrowCalls,
	}

	if jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	printReport(report)
	return nil
}

// printReport renders the report with locale-aware thousands separators,
// the way a human reads a byte count rather than a raw integer literal.
func printReport(r replayReport) {
	p := message.NewPrinter(language.English)
	p.Printf("trace:            %s\n", r.TraceFile)
	p.Printf("operations:       %v in %s (%v ops/sec)\n",
		number.Decimal(r.Operations), r.Duration, number.Decimal(int(r.OpsPerSecond)))
	p.Printf("peak heap bytes:  %v\n", number.Decimal(int(r.PeakHeapBytes)))
	p.Printf("peak live bytes:  %v\n", number.Decimal(int(r.PeakLiveBytes)))
	p.Printf("peak utilization: %.1f%%\n", r.PeakUtilization*100)
	p.Printf("heap grow calls:  %v\n", number.Decimal(int(r.HeapGrowCalls)))
}
