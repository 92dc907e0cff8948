// SPDX-License-Identifier: MIT
// Package battery: sentinel error set.

package battery

import (
	"errors"
	"fmt"
)

// ErrCaseTable marks an unreadable or inconsistent case table.
var ErrCaseTable = errors.New("battery: invalid case table")

const (
	opLoadCases     = "LoadCases"
	opLoadCasesFile = "LoadCasesFile"
)

// caseErrorf tags err with the operation and marks it ErrCaseTable.
func caseErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w: %w", tag, ErrCaseTable, err)
}
