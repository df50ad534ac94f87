// Package calc is the four-operation calculator that sits behind memocalc.
// Calculations are pure, so a Calculator memoizes them.
package calc

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/on-the-ground/memoize_ive_go/decorator"
	"github.com/on-the-ground/memoize_ive_go/memoize"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	OpAdd      = "+"
	OpSubtract = "-"
	OpMultiply = "*"
	OpDivide   = "/"
)

var (
	ErrUnknownOperator = errors.New("unknown operator")
	ErrDivisionByZero  = errors.New("division by zero")
	ErrMalformed       = errors.New("malformed expression")
)

// Calculate applies op to a and b.
func Calculate(a, b float64, op string) (float64, error) {
	switch op {
	case OpAdd:
		return a + b, nil
	case OpSubtract:
		return a - b, nil
	case OpMultiply:
		return a * b, nil
	case OpDivide:
		if b == 0 {
			return 0, ErrDivisionByZero
		}
		return a / b, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownOperator, op)
	}
}

// Calculator memoizes Calculate.
type Calculator struct {
	cache *memoize.Cache[float64]
}

// New builds a Calculator. Misses are logged through logger at debug level.
func New(logger *zap.Logger, opts ...memoize.Option[float64]) (*Calculator, error) {
	fn := decorator.Chain(
		func(args ...any) (float64, error) {
			return Calculate(args[0].(float64), args[1].(float64), args[2].(string))
		},
		decorator.Logged[float64](logger, zapcore.DebugLevel, "calculate"),
		decorator.Recovered[float64](),
	)
	cache, err := memoize.New(fn, opts...)
	if err != nil {
		return nil, err
	}
	return &Calculator{cache: cache}, nil
}

func (c *Calculator) Calculate(a, b float64, op string) (float64, error) {
	return c.cache.Invoke(a, b, op)
}

// Eval parses and calculates an expression such as "1 + 2".
func (c *Calculator) Eval(expr string) (float64, error) {
	a, b, op, err := Parse(expr)
	if err != nil {
		return 0, err
	}
	return c.Calculate(a, b, op)
}

func (c *Calculator) Stats() memoize.Stats {
	return c.cache.Stats()
}

// Parse splits "<a> <op> <b>" into its parts.
func Parse(expr string) (a, b float64, op string, err error) {
	fields := strings.Fields(expr)
	if len(fields) != 3 {
		return 0, 0, "", fmt.Errorf("%w: %q, want \"<a> <op> <b>\"", ErrMalformed, expr)
	}
	if a, err = strconv.ParseFloat(fields[0], 64); err != nil {
		return 0, 0, "", fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	if b, err = strconv.ParseFloat(fields[2], 64); err != nil {
		return 0, 0, "", fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	return a, b, fields[1], nil
}
