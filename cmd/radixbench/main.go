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

// radixbench measures end-to-end sort latency across item-count, key-width
// and worker-count configurations, against a stdlib baseline. It consumes
// only the public radix API and emits a text table plus an optional
// interactive HTML chart.
package main

import (
	"fmt"
	"math/rand"
	"os"
	"slices"
	"time"

	"github.com/ajroetker/go-radix/radix"
	"github.com/ajroetker/go-radix/radix/workerpool"
	cli "github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

// Shared flag definitions
var (
	sizesFlag = &cli.IntSliceFlag{
		Name:  "sizes",
		Usage: "Item counts to benchmark",
		Value: cli.NewIntSlice(10000, 100000, 1000000),
	}
	widthsFlag = &cli.IntSliceFlag{
		Name:  "widths",
		Usage: "Key widths in bytes (1-8)",
		Value: cli.NewIntSlice(4, 8),
	}
	workersFlag = &cli.IntSliceFlag{
		Name:  "workers",
		Usage: "Worker counts to benchmark (0 = sequential)",
		Value: cli.NewIntSlice(0, 4),
	}
	itersFlag = &cli.IntFlag{
		Name:  "iters",
		Usage: "Timed iterations per configuration; the median is reported",
		Value: 5,
	}
	tuningFlag = &cli.StringFlag{
		Name:  "tuning",
		Usage: "Path to a TOML tuning table (default: compiled-in thresholds)",
	}
	chartFlag = &cli.StringFlag{
		Name:  "chart",
		Usage: "Path where to save an HTML latency chart (e.g., '/path/to/bench.html'). If not provided, no chart is generated.",
	}
	baselineFlag = &cli.BoolFlag{
		Name:  "baseline",
		Usage: "Also time the stdlib slices.Sort for each configuration",
		Value: true,
	}
	seedFlag = &cli.Int64Flag{
		Name:  "seed",
		Usage: "PRNG seed for input generation",
		Value: 1,
	}
)

// result is one measured configuration.
type result struct {
	size    int
	width   int
	workers int
	elapsed time.Duration
	stdlib  time.Duration
}

func main() {
	app := &cli.App{
		Name:  "radixbench",
		Usage: "benchmark the radix sort engine across input configurations",
		Flags: []cli.Flag{
			sizesFlag, widthsFlag, workersFlag, itersFlag,
			tuningFlag, chartFlag, baselineFlag, seedFlag,
		},
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

	tuning := radix.DefaultTuning()
	if path := c.String("tuning"); path != "" {
		tuning, err = radix.LoadTuning(path)
		if err != nil {
			return err
		}
		logger.Info("loaded tuning table", zap.String("path", path))
	}

	var results []result
	for _, width := range c.IntSlice("widths") {
		if width < 1 || width > 8 {
			return fmt.Errorf("radixbench: key width %d out of range 1-8", width)
		}
		for _, size := range c.IntSlice("sizes") {
			input := generateKeys(size, width, c.Int64("seed"))
			for _, workers := range c.IntSlice("workers") {
				r := measure(input, width, workers, c.Int("iters"), &tuning)
				if c.Bool("baseline") {
					r.stdlib = measureStdlib(input, c.Int("iters"))
				}
				logger.Info("measured configuration",
					zap.Int("size", size),
					zap.Int("width", width),
					zap.Int("workers", workers),
					zap.Duration("radix", r.elapsed),
					zap.Duration("stdlib", r.stdlib),
				)
				results = append(results, r)
			}
		}
	}

	printTable(results)

	if path := c.String("chart"); path != "" {
		if err := writeChart(results, path); err != nil {
			return err
		}
		logger.Info("wrote latency chart", zap.String("path", path))
	}
	return nil
}

// generateKeys produces pseudorandom keys confined to the requested byte
// width so every digit position carries entropy.
func generateKeys(n, width int, seed int64) []uint64 {
	rng := rand.New(rand.NewSource(seed))
	mask := ^uint64(0)
	if width < 8 {
		mask = (uint64(1) << (width * 8)) - 1
	}
	data := make([]uint64, n)
	for i := range data {
		data[i] = rng.Uint64() & mask
	}
	return data
}

// extractor returns the digit function for a key of the given byte width.
func extractor(width int) func(uint64, int) uint8 {
	return func(v uint64, i int) uint8 { return uint8(v >> ((width - 1 - i) * 8)) }
}

func measure(input []uint64, width, workers, iters int, tuning *radix.Tuning) result {
	var pool *workerpool.Pool
	if workers > 0 {
		pool = workerpool.New(workers)
		defer pool.Close()
	}
	opts := radix.Options{Pool: pool, Tuning: tuning}
	at := extractor(width)

	data := make([]uint64, len(input))
	times := make([]time.Duration, 0, iters)
	for it := 0; it < iters; it++ {
		copy(data, input)
		start := time.Now()
		radix.SortFuncWithOptions(data, width, at, opts)
		times = append(times, time.Since(start))
	}
	return result{
		size:    len(input),
		width:   width,
		workers: workers,
		elapsed: median(times),
	}
}

func measureStdlib(input []uint64, iters int) time.Duration {
	data := make([]uint64, len(input))
	times := make([]time.Duration, 0, iters)
	for it := 0; it < iters; it++ {
		copy(data, input)
		start := time.Now()
		slices.Sort(data)
		times = append(times, time.Since(start))
	}
	return median(times)
}

func median(times []time.Duration) time.Duration {
	slices.Sort(times)
	return times[len(times)/2]
}

func printTable(results []result) {
	fmt.Printf("%10s %6s %8s %14s %14s\n", "items", "width", "workers", "radix", "stdlib")
	for _, r := range results {
		stdlib := "-"
		if r.stdlib > 0 {
			stdlib = r.stdlib.String()
		}
		fmt.Printf("%10d %6d %8d %14s %14s\n", r.size, r.width, r.workers, r.elapsed, stdlib)
	}
}
