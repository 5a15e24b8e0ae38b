// File: cmd/objpool-bench/main.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// A thin CLI driver (SPEC_FULL.md [CMD]) that wires a minimal
// harness.WorkerLoop against objpool.Pool and gives the module-parameter
// surface from spec.md §6 (threads, max, cycleus, numa, stride, bulk) a
// real home. It is explicitly not the full benchmark harness: no hot-plug,
// no hrtimer, no tasklets.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/momentics/objpool/api"
	"github.com/momentics/objpool/harness"
	"github.com/momentics/objpool/internal/coreid"
	"github.com/momentics/objpool/objpool"
)

// benchObject is the pooled payload for the benchmark run; its size is
// irrelevant to objpool's design but gives push/pop something concrete to
// move around.
type benchObject struct {
	payload [64]byte
}

// cycleLoop implements harness.WorkerLoop over a single objpool.Pool.
type cycleLoop struct {
	pool     *objpool.Pool[benchObject]
	cycleus  int
	cycles   atomic.Uint64
}

func (c *cycleLoop) Run(ctx context.Context, coreID int) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		ref, ok := c.pool.Pop()
		if !ok {
			continue
		}
		if c.cycleus > 0 {
			time.Sleep(time.Duration(c.cycleus) * time.Microsecond)
		}
		c.pool.Push(ref)
		c.cycles.Add(1)
	}
}

func (c *cycleLoop) CyclesCompleted() uint64 { return c.cycles.Load() }

var _ harness.WorkerLoop = (*cycleLoop)(nil)

func main() {
	var (
		threads int
		max     int
		cycleus int
		numa    bool
		stride  int
		bulk    int
		dur     time.Duration
	)

	root := &cobra.Command{
		Use:   "objpool-bench",
		Short: "Exercises objpool.Pool with a synthetic pop/push workload",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(threads, max, cycleus, numa, stride, bulk, dur)
		},
	}
	root.Flags().IntVar(&threads, "threads", 4, "number of worker goroutines / per-core slots")
	root.Flags().IntVar(&max, "max", 1024, "total object count requested from the pool")
	root.Flags().IntVar(&cycleus, "cycleus", 0, "microseconds of simulated work held between pop and push")
	root.Flags().BoolVar(&numa, "numa", false, "allow NUMA-aware, potentially sleeping allocation during init")
	root.Flags().IntVar(&stride, "stride", 1, "populate stride, in elements, when --bulk > 0")
	root.Flags().IntVar(&bulk, "bulk", 0, "if > 0, populate via a bulk buffer of this many elements instead of embedding")
	root.Flags().DurationVar(&dur, "duration", 2*time.Second, "benchmark run duration")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(threads, max, cycleus int, numa bool, stride, bulk int, dur time.Duration) error {
	runID := uuid.New().String()
	log := newLogger(runID)
	defer log.Sync()

	reg := prometheus.NewRegistry()
	metrics := objpool.NewMetrics(reg, runID)

	flags := objpool.AllocAtomic
	if numa {
		flags = objpool.AllocMaySleep
	}

	opts := objpool.Options{
		Embed:   bulk == 0,
		Logger:  log,
		Metrics: metrics,
	}

	pool, err := objpool.Init[benchObject](max, threads, objpool.Balanced, flags, opts)
	if err != nil {
		return api.NewError(api.CodeFor(err), "objpool init failed").WithContext("cause", err)
	}

	affinity := coreid.NewAffinity(threads)
	if numa {
		if err := affinity.Pin(0, 0); err != nil {
			log.Warnw("objpool-bench: numa pin failed, continuing unpinned", "err", err)
		} else {
			defer affinity.Unpin()
		}
	}

	if bulk > 0 {
		buf := make([]benchObject, bulk)
		if stride <= 0 {
			stride = 1
		}
		n, err := pool.Populate(buf, stride, nil)
		if err != nil {
			return api.NewError(api.CodeFor(err), "objpool populate failed").WithContext("cause", err)
		}
		log.Infow("objpool-bench: populated bulk buffer", "elements", n)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	ctx, cancelTimeout := context.WithTimeout(ctx, dur)
	defer cancelTimeout()

	loop := &cycleLoop{pool: pool, cycleus: cycleus}
	wp := harness.NewPool(ctx, loop)
	wp.Resize(threads)
	wp.Wait()

	log.Infow("objpool-bench: run complete",
		"runID", runID, "threads", threads, "max", max, "totalCycles", loop.CyclesCompleted(),
		"occupancyAtExit", pool.Occupancy())

	released := 0
	pool.Fini(func(ref *benchObject, isExternal, isElement bool) {
		if isElement {
			released++
		}
	})
	log.Debugw("objpool-bench: torn down", "releasedElements", released)
	return nil
}

func newLogger(runID string) *zap.SugaredLogger {
	cfg := zap.NewDevelopmentConfig()
	l, err := cfg.Build()
	if err != nil {
		l = zap.NewNop()
	}
	return l.Sugar().With("runID", runID)
}
