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

package main

import (
	"fmt"
	"os"
	"slices"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

// writeChart renders measured latencies as an interactive line chart, one
// series per (width, workers) configuration plus the stdlib baseline, over
// the item-count axis.
func writeChart(results []result, filename string) error {
	var sizes []int
	for _, r := range results {
		if !slices.Contains(sizes, r.size) {
			sizes = append(sizes, r.size)
		}
	}
	slices.Sort(sizes)

	xAxis := make([]string, len(sizes))
	for i, s := range sizes {
		xAxis[i] = fmt.Sprintf("%d", s)
	}

	type seriesKey struct {
		width   int
		workers int
		stdlib  bool
	}
	series := make(map[seriesKey][]opts.LineData)
	var order []seriesKey
	stdlibSeen := make(map[[2]int]bool) // (width, size) already has a baseline point
	for _, size := range sizes {
		for _, r := range results {
			if r.size != size {
				continue
			}
			k := seriesKey{width: r.width, workers: r.workers}
			if _, ok := series[k]; !ok {
				order = append(order, k)
			}
			series[k] = append(series[k], opts.LineData{Value: r.elapsed.Seconds() * 1000})

			if r.stdlib > 0 && !stdlibSeen[[2]int{r.width, size}] {
				stdlibSeen[[2]int{r.width, size}] = true
				bk := seriesKey{width: r.width, stdlib: true}
				if _, ok := series[bk]; !ok {
					order = append(order, bk)
				}
				series[bk] = append(series[bk], opts.LineData{Value: r.stdlib.Seconds() * 1000})
			}
		}
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "radix sort latency",
			Theme:     types.ThemeVintage,
		}),
		charts.WithTitleOpts(opts.Title{
			Title: "Sort latency by item count (ms, median)",
			Left:  "center",
		}),
		charts.WithTooltipOpts(opts.Tooltip{Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Top: "bottom"}),
	)
	line.SetXAxis(xAxis)

	for _, k := range order {
		name := fmt.Sprintf("radix w=%d workers=%d", k.width, k.workers)
		if k.stdlib {
			name = fmt.Sprintf("stdlib w=%d", k.width)
		}
		line.AddSeries(name, series[k])
	}

	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("radixbench: create chart %s: %w", filename, err)
	}
	if err := line.Render(f); err != nil {
		f.Close()
		return fmt.Errorf("radixbench: render chart: %w", err)
	}
	return f.Close()
}
