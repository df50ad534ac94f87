package calc_test

import (
	"testing"

	"github.com/on-the-ground/memoize_ive_go/calc"
	"github.com/on-the-ground/memoize_ive_go/memoize"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestCalculate(t *testing.T) {
	for _, tc := range []struct {
		a, b float64
		op   string
		want float64
	}{
		{1, 2, calc.OpAdd, 3},
		{1, 2, calc.OpSubtract, -1},
		{3, 4, calc.OpMultiply, 12},
		{9, 3, calc.OpDivide, 3},
	} {
		got, err := calc.Calculate(tc.a, tc.b, tc.op)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got)
	}

	_, err := calc.Calculate(1, 0, calc.OpDivide)
	assert.ErrorIs(t, err, calc.ErrDivisionByZero)
	_, err = calc.Calculate(1, 0, "%")
	assert.ErrorIs(t, err, calc.ErrUnknownOperator)
}

func TestCalculator_MemoizesAndLogsMissesOnly(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	c, err := calc.New(zap.New(core))
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		v, err := c.Eval("6 * 7")
		require.NoError(t, err)
		assert.Equal(t, 42.0, v)
	}

	assert.Equal(t, 1, logs.FilterMessage("function called").Len())
	stats := c.Stats()
	assert.Equal(t, uint64(1), stats.Misses)
	assert.Equal(t, uint64(2), stats.Hits)
}

func TestCalculator_DivisionByZeroIsNotCached(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	c, err := calc.New(zap.New(core))
	require.NoError(t, err)

	_, err = c.Calculate(1, 0, calc.OpDivide)
	assert.ErrorIs(t, err, calc.ErrDivisionByZero)
	_, err = c.Calculate(1, 0, calc.OpDivide)
	assert.ErrorIs(t, err, calc.ErrDivisionByZero)

	assert.Equal(t, 2, logs.FilterMessage("function failed").Len())
	assert.Equal(t, 0, c.Stats().Len)
}

func TestCalculator_RespectsCacheOptions(t *testing.T) {
	c, err := calc.New(zap.NewNop(), memoize.WithMaxSize[float64](2))
	require.NoError(t, err)

	for _, expr := range []string{"1 + 1", "2 + 2", "3 + 3"} {
		_, err := c.Eval(expr)
		require.NoError(t, err)
	}
	assert.Equal(t, 2, c.Stats().Len)
	assert.Equal(t, uint64(1), c.Stats().Evictions)
}

func TestParse(t *testing.T) {
	a, b, op, err := calc.Parse(" 1.5   /  0.5 ")
	require.NoError(t, err)
	assert.Equal(t, 1.5, a)
	assert.Equal(t, 0.5, b)
	assert.Equal(t, "/", op)

	_, _, _, err = calc.Parse("1 +")
	assert.ErrorIs(t, err, calc.ErrMalformed)
	_, _, _, err = calc.Parse("x + 1")
	assert.ErrorIs(t, err, calc.ErrMalformed)
}
