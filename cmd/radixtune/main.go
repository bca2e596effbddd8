// Copyright 2025 go-radix Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// radixtune regenerates the tuning table for the machine it runs on. It
// sweeps each strategy threshold over a candidate range, times a
// representative workload per candidate through the public sort API,
// records the strategy-branch mix, and writes the winning thresholds as a
// TOML file that radix.LoadTuning (and the engine's users) consume.
//
// Tuning is an offline, out-of-band operation: the engine itself never
// rewrites its thresholds.
package main

import (
	"fmt"
	"math/rand"
	"os"
	"runtime"
	"slices"
	"time"

	"github.com/ajroetker/go-radix/radix"
	"github.com/ajroetker/go-radix/radix/workerpool"
	cli "github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

var (
	outFlag = &cli.StringFlag{
		Name:  "out",
		Usage: "Path of the TOML tuning table to write",
		Value: "tuning.toml",
	}
	itemsFlag = &cli.IntFlag{
		Name:  "items",
		Usage: "Workload size used for timing candidates",
		Value: 2000000,
	}
	itersFlag = &cli.IntFlag{
		Name:  "iters",
		Usage: "Timed iterations per candidate; the median is kept",
		Value: 3,
	}
	workersFlag = &cli.IntFlag{
		Name:  "workers",
		Usage: "Pool size for the parallel sweeps (0 = GOMAXPROCS)",
		Value: 0,
	}
	seedFlag = &cli.Int64Flag{
		Name:  "seed",
		Usage: "PRNG seed for workload generation",
		Value: 1,
	}
)

// Candidate values per threshold. Each knob is swept independently against
// the current best of the others; one round is enough in practice because
// the thresholds guard mostly disjoint partition-size regimes.
var (
	smallSortCandidates    = []int{32, 64, 96, 128, 192, 256}
	countingSortCandidates = []int{16384, 32768, 65536, 131072}
	forkMinCandidates      = []int{2048, 4096, 8192, 16384, 32768}
	histogramMinCandidates = []int{100000, 200000, 400000, 800000}
	budgetFactorCandidates = []int{2, 4, 8, 16}
)

func main() {
	app := &cli.App{
		Name:   "radixtune",
		Usage:  "regenerate the radix sort tuning table for this machine",
		Flags:  []cli.Flag{outFlag, itemsFlag, itersFlag, workersFlag, seedFlag},
		Action: run,
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	logger, err := zap.NewDevelopment()
	if err != nil {
		return err
	}
	defer logger.Sync()

	workers := c.Int("workers")
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	pool := workerpool.New(workers)
	defer pool.Close()

	sw := &sweeper{
		items:  c.Int("items"),
		iters:  c.Int("iters"),
		seed:   c.Int64("seed"),
		pool:   pool,
		logger: logger,
	}

	best := radix.DefaultTuning()
	logger.Info("starting sweep",
		zap.Int("items", sw.items),
		zap.Int("workers", workers),
		zap.Any("start", best),
	)

	best.SmallSortMax = sw.sweep("small_sort_max", best, smallSortCandidates,
		func(t *radix.Tuning, v int) { t.SmallSortMax = v })
	best.CountingSortMax = sw.sweep("counting_sort_max", best, countingSortCandidates,
		func(t *radix.Tuning, v int) { t.CountingSortMax = v })
	best.ParallelForkMin = sw.sweep("parallel_fork_min", best, forkMinCandidates,
		func(t *radix.Tuning, v int) { t.ParallelForkMin = v })
	best.ParallelHistogramMin = sw.sweep("parallel_histogram_min", best, histogramMinCandidates,
		func(t *radix.Tuning, v int) { t.ParallelHistogramMin = v })
	best.ParallelBudgetFactor = sw.sweep("parallel_budget_factor", best, budgetFactorCandidates,
		func(t *radix.Tuning, v int) { t.ParallelBudgetFactor = v })

	sw.reportMix(best)

	if err := best.WriteFile(c.String("out")); err != nil {
		return err
	}
	logger.Info("wrote tuning table", zap.String("path", c.String("out")), zap.Any("tuning", best))
	return nil
}

type sweeper struct {
	items  int
	iters  int
	seed   int64
	pool   *workerpool.Pool
	logger *zap.Logger
}

// sweep times every candidate value of one threshold and returns the
// fastest. The remaining thresholds stay at their current best.
func (s *sweeper) sweep(name string, base radix.Tuning, candidates []int, set func(*radix.Tuning, int)) int {
	bestValue := candidates[0]
	bestTime := time.Duration(1<<63 - 1)

	for _, v := range candidates {
		tuning := base
		set(&tuning, v)
		if err := tuning.Validate(); err != nil {
			s.logger.Debug("skipping invalid candidate", zap.String("knob", name), zap.Int("value", v))
			continue
		}
		elapsed := s.time(&tuning)
		s.logger.Info("candidate timed",
			zap.String("knob", name),
			zap.Int("value", v),
			zap.Duration("elapsed", elapsed),
		)
		if elapsed < bestTime {
			bestTime = elapsed
			bestValue = v
		}
	}

	s.logger.Info("knob settled", zap.String("knob", name), zap.Int("value", bestValue))
	return bestValue
}

// time runs the workload under the given tuning and returns the median
// elapsed time. The workload mixes a uniform random pass and a clustered
// pass so both the partitioning and the skip paths are exercised.
func (s *sweeper) time(tuning *radix.Tuning) time.Duration {
	at := func(v uint64, i int) uint8 { return uint8(v >> ((7 - i) * 8)) }
	opts := radix.Options{Pool: s.pool, Tuning: tuning}

	uniform := s.generate(false)
	clustered := s.generate(true)
	data := make([]uint64, s.items)

	times := make([]time.Duration, 0, s.iters)
	for it := 0; it < s.iters; it++ {
		copy(data, uniform)
		start := time.Now()
		radix.SortFuncWithOptions(data, 8, at, opts)
		copy(data, clustered)
		radix.SortFuncWithOptions(data, 8, at, opts)
		times = append(times, time.Since(start))
	}
	slices.Sort(times)
	return times[len(times)/2]
}

// generate builds the timing workload. The clustered variant confines keys
// to a narrow band so high digits are uniform, which is the regime the skip
// and counting-sort strategies serve.
func (s *sweeper) generate(clustered bool) []uint64 {
	rng := rand.New(rand.NewSource(s.seed))
	data := make([]uint64, s.items)
	for i := range data {
		v := rng.Uint64()
		if clustered {
			v = 0xAB12<<48 | v&0xFFFFFF
		}
		data[i] = v
	}
	return data
}

// reportMix sorts the workload once more with counters attached and logs
// how often each strategy fired under the chosen tuning.
func (s *sweeper) reportMix(tuning radix.Tuning) {
	var stats radix.AtomicStats
	at := func(v uint64, i int) uint8 { return uint8(v >> ((7 - i) * 8)) }
	data := s.generate(false)
	radix.SortFuncWithOptions(data, 8, at, radix.Options{
		Pool:   s.pool,
		Tuning: &tuning,
		Stats:  &stats,
	})

	s.logger.Info("strategy mix under chosen tuning",
		zap.Uint64("small_sort", stats.Count(radix.StrategySmallSort)),
		zap.Uint64("skip", stats.Count(radix.StrategySkip)),
		zap.Uint64("counting_sort", stats.Count(radix.StrategyCountingSort)),
		zap.Uint64("msd_partition", stats.Count(radix.StrategyMsdPartition)),
		zap.Uint64("forked_tasks", stats.Forks()),
	)
}
