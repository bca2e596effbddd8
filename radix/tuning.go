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

package radix

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// ErrInvalidTuning is wrapped by every Tuning validation failure.
var ErrInvalidTuning = errors.New("radix: invalid tuning")

// Tuning holds the size thresholds consulted by the strategy selector and
// the parallel dispatcher. The values are hardware and cache dependent; the
// defaults are measured on commodity x86-64, and cmd/radixtune regenerates
// them for a specific machine. A Tuning is read-only for the duration of
// every sort call that uses it and may be shared freely across calls.
type Tuning struct {
	// SmallSortMax is the largest partition handed to the comparison
	// (insertion) sort instead of any radix strategy.
	SmallSortMax int `toml:"small_sort_max"`

	// CountingSortMax is the largest partition finished with the
	// scratch-buffer LSD counting sort instead of recursive MSD
	// partitioning.
	CountingSortMax int `toml:"counting_sort_max"`

	// ParallelForkMin is the smallest child partition worth forking as an
	// independent pool task; smaller children run inline.
	ParallelForkMin int `toml:"parallel_fork_min"`

	// ParallelHistogramMin is the smallest input whose first histogram is
	// counted in parallel across the pool before the first split.
	ParallelHistogramMin int `toml:"parallel_histogram_min"`

	// ParallelBudgetFactor scales the per-call fork budget: a call may have
	// at most workers*ParallelBudgetFactor forked tasks in flight.
	ParallelBudgetFactor int `toml:"parallel_budget_factor"`
}

// DefaultTuning returns the compiled-in thresholds.
func DefaultTuning() Tuning {
	return Tuning{
		SmallSortMax:         128,
		CountingSortMax:      65536,
		ParallelForkMin:      8192,
		ParallelHistogramMin: 400000,
		ParallelBudgetFactor: 8,
	}
}

// Validate reports whether the thresholds are usable. Every error wraps
// ErrInvalidTuning.
func (t Tuning) Validate() error {
	if t.SmallSortMax < 1 {
		return fmt.Errorf("%w: small_sort_max %d < 1", ErrInvalidTuning, t.SmallSortMax)
	}
	if t.CountingSortMax < t.SmallSortMax {
		return fmt.Errorf("%w: counting_sort_max %d < small_sort_max %d",
			ErrInvalidTuning, t.CountingSortMax, t.SmallSortMax)
	}
	if t.ParallelForkMin < 1 {
		return fmt.Errorf("%w: parallel_fork_min %d < 1", ErrInvalidTuning, t.ParallelForkMin)
	}
	if t.ParallelHistogramMin < 1 {
		return fmt.Errorf("%w: parallel_histogram_min %d < 1", ErrInvalidTuning, t.ParallelHistogramMin)
	}
	if t.ParallelBudgetFactor < 1 {
		return fmt.Errorf("%w: parallel_budget_factor %d < 1", ErrInvalidTuning, t.ParallelBudgetFactor)
	}
	return nil
}

// LoadTuning reads a TOML tuning table, typically one written by
// cmd/radixtune. Missing fields keep their default values.
func LoadTuning(path string) (Tuning, error) {
	t := DefaultTuning()
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return Tuning{}, fmt.Errorf("radix: load tuning %s: %w", path, err)
	}
	if err := t.Validate(); err != nil {
		return Tuning{}, err
	}
	return t, nil
}

// WriteFile writes the tuning table as TOML.
func (t Tuning) WriteFile(path string) error {
	if err := t.Validate(); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("radix: write tuning %s: %w", path, err)
	}
	if err := toml.NewEncoder(f).Encode(t); err != nil {
		f.Close()
		return fmt.Errorf("radix: write tuning %s: %w", path, err)
	}
	return f.Close()
}
