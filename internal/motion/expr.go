package motion

import (
	"errors"
	"fmt"
	"math"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	rl "github.com/gen2brain/raylib-go/raylib"
)

var ErrNotVector = errors.New("motion: expression must evaluate to a 3-element numeric array")

// Expression is a compiled authoring expression over t and init, for
// example "[init[0] + 3*sin(t), init[1], init[2]]".
type Expression struct {
	Source  string
	program *vm.Program
	init    []float64
}

func env(t float64, init []float64) map[string]any {
	return map[string]any{
		"t":    t,
		"init": init,
		"pi":   math.Pi,
	}
}

func unary(name string, fn func(float64) float64) expr.Option {
	return expr.Function(name, func(params ...any) (any, error) {
		x, err := toFloat(params[0])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		return fn(x), nil
	}, new(func(float64) float64), new(func(int) float64))
}

func options(init []float64) []expr.Option {
	return []expr.Option{
		expr.Env(env(0, init)),
		unary("sin", math.Sin),
		unary("cos", math.Cos),
		unary("tan", math.Tan),
		unary("sqrt", math.Sqrt),
		expr.Function("mod", func(params ...any) (any, error) {
			a, err := toFloat(params[0])
			if err != nil {
				return nil, err
			}
			b, err := toFloat(params[1])
			if err != nil {
				return nil, err
			}
			// Floored, so negative times wrap the same way as positive ones.
			return a - b*math.Floor(a/b), nil
		}),
	}
}

// Compile parses src and checks that it produces a 3-vector at t=0.
func Compile(src string, init rl.Vector3) (*Expression, error) {
	initArr := []float64{float64(init.X), float64(init.Y), float64(init.Z)}
	program, err := expr.Compile(src, options(initArr)...)
	if err != nil {
		return nil, fmt.Errorf("compile %q: %w", src, err)
	}
	e := &Expression{Source: src, program: program, init: initArr}
	if _, err := e.Eval(0); err != nil {
		return nil, err
	}
	return e, nil
}

// Eval runs the expression at time t.
func (e *Expression) Eval(t float64) (rl.Vector3, error) {
	out, err := expr.Run(e.program, env(t, e.init))
	if err != nil {
		return rl.Vector3{}, fmt.Errorf("evaluate %q: %w", e.Source, err)
	}
	return toVector(out)
}

// Func adapts the expression to a motion function. Evaluation failures
// after compilation fall back to the initial value.
func (e *Expression) Func() Func {
	fallback := rl.Vector3{X: float32(e.init[0]), Y: float32(e.init[1]), Z: float32(e.init[2])}
	return func(t float64) rl.Vector3 {
		v, err := e.Eval(t)
		if err != nil {
			return fallback
		}
		return v
	}
}

func toVector(out any) (rl.Vector3, error) {
	var items []any
	switch v := out.(type) {
	case []any:
		items = v
	case []float64:
		for _, f := range v {
			items = append(items, f)
		}
	default:
		return rl.Vector3{}, fmt.Errorf("%w, got %T", ErrNotVector, out)
	}
	if len(items) != 3 {
		return rl.Vector3{}, fmt.Errorf("%w, got %d elements", ErrNotVector, len(items))
	}

	var xyz [3]float32
	for i, item := range items {
		f, err := toFloat(item)
		if err != nil {
			return rl.Vector3{}, fmt.Errorf("%w: element %d: %v", ErrNotVector, i, err)
		}
		xyz[i] = float32(f)
	}
	return rl.Vector3{X: xyz[0], Y: xyz[1], Z: xyz[2]}, nil
}

func toFloat(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	}
	return 0, fmt.Errorf("not a number: %T", v)
}
