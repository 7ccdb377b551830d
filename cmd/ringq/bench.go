package main

import (
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/process"
	"github.com/spf13/cobra"

	"github.com/yago-123/ringq"
)

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Measure push throughput and memory usage of a queue",
	Args:  cobra.NoArgs,
	RunE:  runBench,
}

func init() {
	benchCmd.Flags().IntP("count", "n", 1_000_000, "number of values to push")
	benchCmd.Flags().StringP("order", "o", "asc", "order of the pushed values: asc, desc or rand")
	benchCmd.Flags().Uint64("seed", 1, "seed for rand order")
	rootCmd.AddCommand(benchCmd)
}

func runBench(cmd *cobra.Command, _ []string) error {
	cmd.SilenceUsage = true

	k, err := resolveCapacity(cmd)
	if err != nil {
		return err
	}
	count, _ := cmd.Flags().GetInt("count")
	order, _ := cmd.Flags().GetString("order")
	seed, _ := cmd.Flags().GetUint64("seed")

	values, err := benchValues(order, count, seed)
	if err != nil {
		return err
	}

	q, err := ringq.New[int](ringq.WithCapacity(k))
	if err != nil {
		return err
	}
	defer q.Close()

	var before, after runtime.MemStats
	runtime.ReadMemStats(&before)
	start := time.Now()
	for _, v := range values {
		if errPush := q.Push(v); errPush != nil {
			return errPush
		}
	}
	elapsed := time.Since(start)
	runtime.ReadMemStats(&after)

	log.Printf("Pushed %d values (%s) into a queue of capacity %d in %s (%.1f ns/push)",
		count, order, k, elapsed, float64(elapsed.Nanoseconds())/float64(max(count, 1)))
	log.Printf("Heap allocations while pushing: %d (%d bytes)",
		after.Mallocs-before.Mallocs, after.TotalAlloc-before.TotalAlloc)

	stats := q.PoolStats()
	log.Printf("Pools: %d/%d of %d slots, %d live, %d free, %d bytes reserved",
		stats.Pools, stats.MaxPools, stats.SlotsPerPool, stats.Live, stats.Free, stats.ReservedBytes)

	rss, err := residentMemory()
	if err != nil {
		log.Printf("Error reading process memory: %s", err)
	} else {
		log.Printf("Process RSS: %d bytes", rss)
	}

	if front, errFront := q.Front(); errFront == nil {
		log.Printf("Smallest retained value: %d", front)
	}
	return nil
}

// benchValues generates the input up front so the measured loop only pushes.
func benchValues(order string, count int, seed uint64) ([]int, error) {
	if count < 0 {
		return nil, fmt.Errorf("count must not be negative, got %d", count)
	}

	values := make([]int, count)
	switch order {
	case "asc":
		for i := range values {
			values[i] = i
		}
	case "desc":
		for i := range values {
			values[i] = count - i
		}
	case "rand":
		rng := rand.New(rand.NewPCG(seed, seed))
		for i := range values {
			values[i] = rng.Int()
		}
	default:
		return nil, fmt.Errorf("unknown order %q, want asc, desc or rand", order)
	}
	return values, nil
}

func residentMemory() (uint64, error) {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return 0, err
	}

	mem, err := proc.MemoryInfo()
	if err != nil {
		return 0, err
	}
	return mem.RSS, nil
}
