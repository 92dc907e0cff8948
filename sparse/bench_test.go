// SPDX-License-Identifier: MIT
// Package sparse_test provides benchmarks for the two construction paths and MulVec.
package sparse_test

import (
	"fmt"
	"testing"

	"github.com/katalvlaran/kspcheck/sparse"
)

var benchSizes = []int{1000, 10000, 100000}

// sinks to defeat dead-code elimination
var (
	sinkOp *sparse.Operator
	sinkB  bool
)

func BenchmarkTridiagonal(b *testing.B) {
	b.ReportAllocs()
	for _, n := range benchSizes {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				sinkOp = mustTridiagonal(b, n)
			}
		})
	}
}

func BenchmarkTridiagonalFromCSR(b *testing.B) {
	b.ReportAllocs()
	for _, n := range benchSizes {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				sinkOp = mustTridiagonalCSR(b, n)
			}
		})
	}
}

func BenchmarkEqual(b *testing.B) {
	for _, n := range benchSizes {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			x, y := mustTridiagonal(b, n), mustTridiagonalCSR(b, n)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				sinkB = sparse.Equal(x, y)
			}
		})
	}
}

func BenchmarkMulVec(b *testing.B) {
	for _, n := range benchSizes {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			a := mustTridiagonal(b, n)
			x, y := ones(n), a.NewVecLeft()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if err := a.MulVec(y, x); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
