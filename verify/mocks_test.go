// SPDX-License-Identifier: MIT
// Package verify_test contains testify mocks of the engine contract.

package verify_test

import (
	"github.com/katalvlaran/kspcheck/ksp"
	"github.com/katalvlaran/kspcheck/sparse"
	"github.com/stretchr/testify/mock"
)

type mockEngine struct{ mock.Mock }

func (m *mockEngine) Name() string { return "mock" }

func (m *mockEngine) Available(kind ksp.Kind, id string) bool {
	return m.Called(kind, id).Bool(0)
}

func (m *mockEngine) Supports(cfg ksp.Config) error {
	return m.Called(cfg).Error(0)
}

func (m *mockEngine) Setup(a *sparse.Operator, cfg ksp.Config) (ksp.Handle, error) {
	args := m.Called(a, cfg)
	h, _ := args.Get(0).(ksp.Handle)

	return h, args.Error(1)
}

type mockHandle struct{ mock.Mock }

func (m *mockHandle) Solve(b, x []float64) (ksp.Stats, error) {
	args := m.Called(b, x)

	return args.Get(0).(ksp.Stats), args.Error(1)
}

func (m *mockHandle) Close() error { return m.Called().Error(0) }
