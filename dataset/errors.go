// SPDX-License-Identifier: MIT
// Package dataset: sentinel error set.

package dataset

import (
	"errors"
	"fmt"
)

var (
	// ErrProblemLoad marks a missing, unreadable or structurally inconsistent
	// problem file. The underlying cause is wrapped alongside.
	ErrProblemLoad = errors.New("dataset: cannot load problem")

	// ErrProblemSave marks a failure to write a problem file.
	ErrProblemSave = errors.New("dataset: cannot save problem")
)

// Operation tags for wrapped errors.
const (
	opLoadOperator = "LoadOperator"
	opLoadVectors  = "LoadVectors"
	opLoadProblem  = "LoadProblem"
	opSaveOperator = "SaveOperator"
	opSaveVectors  = "SaveVectors"
	opSaveProblem  = "SaveProblem"
	opGenerate     = "Generate"
)

// loadErrorf tags err with the operation and file, marking it ErrProblemLoad.
func loadErrorf(tag, path string, err error) error {
	return fmt.Errorf("%s %s: %w: %w", tag, path, ErrProblemLoad, err)
}

// saveErrorf tags err with the operation and file, marking it ErrProblemSave.
func saveErrorf(tag, path string, err error) error {
	return fmt.Errorf("%s %s: %w: %w", tag, path, ErrProblemSave, err)
}
