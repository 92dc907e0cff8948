// SPDX-License-Identifier: MIT
// Package battery: platform predicates.

package battery

import (
	"runtime"
	"slices"
)

// Operating system names as reported by runtime.GOOS.
const (
	OSDarwin  = "darwin"
	OSLinux   = "linux"
	OSWindows = "windows"
)

// Platform describes where the battery runs.
type Platform struct {
	OS string
}

// CurrentPlatform returns the running platform.
func CurrentPlatform() Platform { return Platform{OS: runtime.GOOS} }

// Predicate decides whether something applies on a platform.
// A nil Predicate always holds.
type Predicate func(Platform) bool

// holds evaluates p, treating nil as true.
func (p Predicate) holds(pl Platform) bool { return p == nil || p(pl) }

// Always holds on every platform.
func Always(Platform) bool { return true }

// OnlyOn holds on the listed operating systems.
func OnlyOn(oss ...string) Predicate {
	return func(p Platform) bool { return slices.Contains(oss, p.OS) }
}

// Except holds everywhere but the listed operating systems.
func Except(oss ...string) Predicate {
	return func(p Platform) bool { return !slices.Contains(oss, p.OS) }
}
