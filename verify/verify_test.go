// SPDX-License-Identifier: MIT
package verify_test

import (
	"testing"

	"github.com/katalvlaran/kspcheck/dataset"
	"github.com/katalvlaran/kspcheck/ksp"
	"github.com/katalvlaran/kspcheck/sparse"
	"github.com/katalvlaran/kspcheck/verify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const roundTripN = 1000

func ones(n int) []float64 {
	v := make([]float64, n)
	for i := range v {
		v[i] = 1
	}

	return v
}

func TestRoundTrip_OnesVector(t *testing.T) {
	a, err := sparse.Tridiagonal(roundTripN)
	require.NoError(t, err)
	v := verify.New(ksp.NewNative())

	configs := []ksp.Config{
		ksp.NewConfig(ksp.MethodCG, ksp.PCNone),
		ksp.NewConfig(ksp.MethodCG, ksp.PCJacobi),
		ksp.NewConfig(ksp.MethodCG, ksp.PCAMG),
		ksp.NewConfig(ksp.MethodBiCGStab, ksp.PCAMG),
		ksp.NewConfig(ksp.MethodPreOnly, ksp.PCLU),
		ksp.NewConfig(ksp.MethodPreOnly, ksp.PCCholesky),
		ksp.NewConfig(ksp.MethodPreOnly, ksp.PCLU, ksp.WithBackend(ksp.BackendDense)),
		ksp.NewConfig(ksp.MethodPreOnly, ksp.PCCholesky, ksp.WithBackend(ksp.BackendDense)),
	}
	for _, cfg := range configs {
		t.Run(cfg.String(), func(t *testing.T) {
			r, err := v.RoundTrip(a, cfg, ones(roundTripN))
			require.NoError(t, err)
			require.NoError(t, r.Err)
			assert.True(t, r.Passed)
			assert.Equal(t, ksp.DefaultRTol, r.RequiredRTol)
			assert.Less(t, r.Achieved, 1e-8)
			assert.Len(t, r.SolveTimes, 1)
			assert.Len(t, r.Iterations, 1)
			assert.GreaterOrEqual(t, r.TotalTime, r.SetupTime)
		})
	}
}

func TestRoundTrip_DefaultCoarseningRecorded(t *testing.T) {
	a, err := sparse.Tridiagonal(100)
	require.NoError(t, err)

	r, err := verify.New(ksp.NewNative()).RoundTrip(a, ksp.NewConfig(ksp.MethodCG, ksp.PCAMG), ones(100))
	require.NoError(t, err)
	assert.Equal(t, verify.DefaultCoarsening, r.Config.Coarsening)

	r, err = verify.New(ksp.NewNative(), verify.WithCoarsening(ksp.CoarsenPairwise)).
		RoundTrip(a, ksp.NewConfig(ksp.MethodCG, ksp.PCAMG), ones(100))
	require.NoError(t, err)
	assert.Equal(t, ksp.CoarsenPairwise, r.Config.Coarsening)
	assert.True(t, r.Passed)
}

func TestRoundTrip_ConvergenceFailureIsAResult(t *testing.T) {
	a, err := sparse.Tridiagonal(roundTripN)
	require.NoError(t, err)

	r, err := verify.New(ksp.NewNative()).RoundTrip(a,
		ksp.NewConfig(ksp.MethodCG, ksp.PCNone, ksp.WithMaxIterations(3)), ones(roundTripN))
	require.NoError(t, err, "non-convergence must not abort the case")
	assert.False(t, r.Passed)
	assert.ErrorIs(t, r.Err, ksp.ErrConvergence)
	assert.Equal(t, []int{3}, r.Iterations)
	assert.Greater(t, r.Achieved, r.RequiredRTol)
}

func TestRoundTrip_BreakdownIsAResult(t *testing.T) {
	// symmetric indefinite: skyline Cholesky fails at setup
	a, err := sparse.FromCSR(2, 2, []int{0, 2, 4}, []int{0, 1, 0, 1}, []float64{1, 2, 2, 1})
	require.NoError(t, err)

	r, err := verify.New(ksp.NewNative()).RoundTrip(a, ksp.NewConfig(ksp.MethodPreOnly, ksp.PCCholesky), ones(2))
	require.NoError(t, err)
	assert.False(t, r.Passed)
	assert.ErrorIs(t, r.Err, ksp.ErrBreakdown)
	assert.ErrorIs(t, r.Err, ksp.ErrConvergence)
}

func TestRoundTrip_AbortingErrors(t *testing.T) {
	a, err := sparse.Tridiagonal(10)
	require.NoError(t, err)
	v := verify.New(ksp.NewNative())

	_, err = v.RoundTrip(a, ksp.NewConfig(ksp.MethodCG, ksp.PCHypre), ones(10))
	assert.ErrorIs(t, err, ksp.ErrUnsupportedBackend)

	_, err = v.RoundTrip(a, ksp.NewConfig(ksp.MethodPreOnly, ksp.PCNone), ones(10))
	assert.ErrorIs(t, err, ksp.ErrConfiguration)

	_, err = v.RoundTrip(a, ksp.NewConfig(ksp.MethodCG, ksp.PCNone), ones(9))
	assert.ErrorIs(t, err, sparse.ErrDimensionMismatch)
}

func TestRoundTrip_WrongSolutionFailsCheck(t *testing.T) {
	a, err := sparse.Tridiagonal(4)
	require.NoError(t, err)
	cfg := ksp.NewConfig(ksp.MethodCG, ksp.PCNone)

	h := &mockHandle{}
	h.On("Solve", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			x := args.Get(1).([]float64)
			x[2] = 1e-3 // wrong everywhere, A·x ≠ 1
		}).
		Return(ksp.Stats{Iterations: 1, Converged: true}, nil).Once()
	h.On("Close").Return(nil).Once()
	eng := &mockEngine{}
	eng.On("Setup", a, cfg).Return(h, nil).Once()

	r, err := verify.New(eng).RoundTrip(a, cfg, ones(4))
	require.NoError(t, err)
	assert.False(t, r.Passed)
	assert.ErrorIs(t, r.Err, verify.ErrToleranceExceeded)
	assert.ErrorIs(t, r.Err, ksp.ErrConvergence)
	assert.Greater(t, r.MaxAbsDiff, 0.0)
	eng.AssertExpectations(t)
	h.AssertExpectations(t)
}

func TestReference_GeneratedProblem(t *testing.T) {
	p, err := dataset.Generate(12, 10, 3, 5)
	require.NoError(t, err)
	v := verify.New(ksp.NewNative())

	for _, cfg := range []ksp.Config{
		ksp.NewConfig(ksp.MethodCG, ksp.PCAMG),
		ksp.NewConfig(ksp.MethodPreOnly, ksp.PCCholesky),
		ksp.NewConfig(ksp.MethodBiCGStab, ksp.PCJacobi),
	} {
		r, err := v.Reference(p, cfg)
		require.NoError(t, err, cfg.String())
		assert.True(t, r.Passed, "%s: %v", cfg, r.Err)
		assert.Len(t, r.Iterations, 3)
		assert.Len(t, r.SolveTimes, 3)
	}
}

func TestReference_StopsAtFirstMismatch(t *testing.T) {
	p, err := dataset.Generate(6, 6, 3, 9)
	require.NoError(t, err)
	p.Pairs[1].Expected[4] += 1e-3

	r, err := verify.New(ksp.NewNative()).Reference(p, ksp.NewConfig(ksp.MethodPreOnly, ksp.PCLU))
	require.NoError(t, err)
	assert.False(t, r.Passed)
	assert.ErrorIs(t, r.Err, verify.ErrToleranceExceeded)
	assert.Contains(t, r.Err.Error(), "pair 1")
	assert.Len(t, r.Iterations, 2)
	assert.InDelta(t, 1e-3, r.MaxAbsDiff, 1e-9)
}

func TestReference_LooseToleranceAcceptsPerturbation(t *testing.T) {
	p, err := dataset.Generate(6, 6, 1, 9)
	require.NoError(t, err)
	p.Pairs[0].Expected[4] += 1e-3

	v := verify.New(ksp.NewNative(), verify.WithReferenceTolerance(0, 1e-2))
	r, err := v.Reference(p, ksp.NewConfig(ksp.MethodPreOnly, ksp.PCLU))
	require.NoError(t, err)
	assert.True(t, r.Passed)
}

func TestReference_InvalidProblem(t *testing.T) {
	a, err := sparse.Tridiagonal(3)
	require.NoError(t, err)
	p := &dataset.Problem{Operator: a, Pairs: []dataset.VectorPair{{RHS: ones(2), Expected: ones(3)}}}

	_, err = verify.New(ksp.NewNative()).Reference(p, ksp.NewConfig(ksp.MethodCG, ksp.PCNone))
	assert.ErrorIs(t, err, sparse.ErrDimensionMismatch)

	_, err = verify.New(ksp.NewNative()).Reference(nil, ksp.NewConfig(ksp.MethodCG, ksp.PCNone))
	assert.ErrorIs(t, err, sparse.ErrNilOperator)
}

func TestSession_Lifecycle(t *testing.T) {
	a, err := sparse.Tridiagonal(8)
	require.NoError(t, err)
	s, err := verify.New(ksp.NewNative()).Setup(a, ksp.NewConfig(ksp.MethodCG, ksp.PCJacobi))
	require.NoError(t, err)

	x, st, err := s.Solve(ones(8))
	require.NoError(t, err)
	assert.Len(t, x, 8)
	assert.True(t, st.Converged)
	_, _, err = s.Solve(ones(7))
	assert.ErrorIs(t, err, sparse.ErrDimensionMismatch)
	assert.Len(t, s.SolveTimes(), 1)

	require.NoError(t, s.Close())
	require.NoError(t, s.Close())
	_, _, err = s.Solve(ones(8))
	assert.ErrorIs(t, err, ksp.ErrClosed)
}

func TestPrepare(t *testing.T) {
	v := verify.New(ksp.NewNative())

	cfg, err := v.Prepare(ksp.Config{Method: ksp.MethodCG, PC: ksp.PCHypre})
	require.NoError(t, err)
	assert.Equal(t, verify.DefaultCoarsening, cfg.Coarsening)
	assert.Equal(t, ksp.DefaultMaxIterations, cfg.MaxIterations)

	cfg, err = v.Prepare(ksp.Config{Method: ksp.MethodCG, PC: ksp.PCHypre, Coarsening: ksp.CoarsenHMIS})
	require.NoError(t, err)
	assert.Equal(t, ksp.CoarsenHMIS, cfg.Coarsening, "explicit coarsening kept")

	cfg, err = v.Prepare(ksp.Config{Method: ksp.MethodCG, PC: ksp.PCJacobi})
	require.NoError(t, err)
	assert.Equal(t, ksp.CoarsenDefault, cfg.Coarsening)

	_, err = v.Prepare(ksp.Config{Method: ksp.MethodPreOnly, PC: ksp.PCAMG})
	assert.ErrorIs(t, err, ksp.ErrConfiguration)
}

func TestOptions_Panics(t *testing.T) {
	assert.Panics(t, func() { verify.New(nil) })
	assert.Panics(t, func() { verify.WithCoarsening(ksp.CoarsenDefault) })
	assert.Panics(t, func() { verify.WithRoundTripTolerance(0, 0) })
	assert.Panics(t, func() { verify.WithReferenceTolerance(-1, 0) })
	assert.NotPanics(t, func() { verify.WithRoundTripTolerance(0, 1e-12) })
}
