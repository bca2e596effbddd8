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
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultTuningValid(t *testing.T) {
	if err := DefaultTuning().Validate(); err != nil {
		t.Fatalf("default tuning invalid: %v", err)
	}
}

func TestTuningValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Tuning)
	}{
		{"zero small sort", func(tu *Tuning) { tu.SmallSortMax = 0 }},
		{"counting below small", func(tu *Tuning) { tu.CountingSortMax = tu.SmallSortMax - 1 }},
		{"zero fork min", func(tu *Tuning) { tu.ParallelForkMin = 0 }},
		{"zero histogram min", func(tu *Tuning) { tu.ParallelHistogramMin = -5 }},
		{"zero budget factor", func(tu *Tuning) { tu.ParallelBudgetFactor = 0 }},
	}
	for _, tc := range cases {
		tu := DefaultTuning()
		tc.mutate(&tu)
		err := tu.Validate()
		if err == nil {
			t.Errorf("%s: expected validation error", tc.name)
			continue
		}
		if !errors.Is(err, ErrInvalidTuning) {
			t.Errorf("%s: error %v does not wrap ErrInvalidTuning", tc.name, err)
		}
	}
}

func TestTuningRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.toml")
	want := Tuning{
		SmallSortMax:         96,
		CountingSortMax:      30000,
		ParallelForkMin:      4096,
		ParallelHistogramMin: 250000,
		ParallelBudgetFactor: 4,
	}
	if err := want.WriteFile(path); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := LoadTuning(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got != want {
		t.Errorf("round trip = %+v, want %+v", got, want)
	}
}

func TestLoadTuningPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.toml")
	if err := os.WriteFile(path, []byte("small_sort_max = 77\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := LoadTuning(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.SmallSortMax != 77 {
		t.Errorf("small_sort_max = %d, want 77", got.SmallSortMax)
	}
	if got.CountingSortMax != DefaultTuning().CountingSortMax {
		t.Errorf("unset field should keep its default")
	}
}

func TestLoadTuningRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.toml")
	if err := os.WriteFile(path, []byte("small_sort_max = -1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadTuning(path); !errors.Is(err, ErrInvalidTuning) {
		t.Errorf("expected ErrInvalidTuning, got %v", err)
	}
}

func TestLoadTuningMissingFile(t *testing.T) {
	if _, err := LoadTuning(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Errorf("expected error for missing file")
	}
}
