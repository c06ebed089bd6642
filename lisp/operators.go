package lisp

import (
	"math"
)

func toFloat(name string, i int, v Value) (float64, error) {
	switch x := v.(type) {
	case int:
		return float64(x), nil
	case float64:
		return x, nil
	}
	return 0, argTypeError(name, i, "number", v)
}

func checkNumber(name string, i int, v Value) error {
	switch v.(type) {
	case int, float64:
		return nil
	}
	return argTypeError(name, i, "number", v)
}

// arith folds args with an integer and a float operation.  Integer
// arithmetic is used until a float is encountered.
func arith(name string, z Value, args []Value, iop func(a, b int) int, fop func(a, b float64) float64) (Value, error) {
	acc := z
	for i, arg := range args {
		err := checkNumber(name, i, arg)
		if err != nil {
			return nil, err
		}
		a, aok := acc.(int)
		b, bok := arg.(int)
		if aok && bok {
			acc = iop(a, b)
			continue
		}
		fa, _ := toFloat(name, i, acc)
		fb, _ := toFloat(name, i, arg)
		acc = fop(fa, fb)
	}
	return acc, nil
}

func builtinAdd(ev *Evaluator, args []Value) (Value, error) {
	return arith("+", 0, args,
		func(a, b int) int { return a + b },
		func(a, b float64) float64 { return a + b })
}

func builtinMul(ev *Evaluator, args []Value) (Value, error) {
	return arith("*", 1, args,
		func(a, b int) int { return a * b },
		func(a, b float64) float64 { return a * b })
}

func builtinSub(ev *Evaluator, args []Value) (Value, error) {
	if len(args) == 1 {
		return arith("-", 0, args,
			func(a, b int) int { return a - b },
			func(a, b float64) float64 { return a - b })
	}
	err := checkNumber("-", 0, args[0])
	if err != nil {
		return nil, err
	}
	return arith("-", args[0], args[1:],
		func(a, b int) int { return a - b },
		func(a, b float64) float64 { return a - b })
}

// builtinDiv always performs floating point division.
func builtinDiv(ev *Evaluator, args []Value) (Value, error) {
	acc := 1.0
	start := 0
	if len(args) > 1 {
		x, err := toFloat("/", 0, args[0])
		if err != nil {
			return nil, err
		}
		acc = x
		start = 1
	}
	for i := start; i < len(args); i++ {
		x, err := toFloat("/", i, args[i])
		if err != nil {
			return nil, err
		}
		if x == 0 {
			return nil, ValueErrorType.New("division by zero")
		}
		acc /= x
	}
	return acc, nil
}

// builtinMod returns a result with the sign of the divisor.
func builtinMod(ev *Evaluator, args []Value) (Value, error) {
	a, aok := args[0].(int)
	b, bok := args[1].(int)
	if aok && bok {
		if b == 0 {
			return nil, ValueErrorType.New("modulo by zero")
		}
		m := a % b
		if m != 0 && (m < 0) != (b < 0) {
			m += b
		}
		return m, nil
	}
	fa, err := toFloat("mod", 0, args[0])
	if err != nil {
		return nil, err
	}
	fb, err := toFloat("mod", 1, args[1])
	if err != nil {
		return nil, err
	}
	if fb == 0 {
		return nil, ValueErrorType.New("modulo by zero")
	}
	m := math.Mod(fa, fb)
	if m != 0 && (m < 0) != (fb < 0) {
		m += fb
	}
	return m, nil
}

func builtinEqual(ev *Evaluator, args []Value) (Value, error) {
	for _, arg := range args[1:] {
		if !Equal(args[0], arg) {
			return false, nil
		}
	}
	return true, nil
}

// compare returns the sign of a-b for two numbers or two strings.
func compare(name string, i int, a, b Value) (int, error) {
	if sa, ok := a.(string); ok {
		sb, ok := b.(string)
		if !ok {
			return 0, argTypeError(name, i+1, "string", b)
		}
		switch {
		case sa < sb:
			return -1, nil
		case sa > sb:
			return 1, nil
		}
		return 0, nil
	}
	ia, aok := a.(int)
	ib, bok := b.(int)
	if aok && bok {
		switch {
		case ia < ib:
			return -1, nil
		case ia > ib:
			return 1, nil
		}
		return 0, nil
	}
	fa, err := toFloat(name, i, a)
	if err != nil {
		return 0, err
	}
	fb, err := toFloat(name, i+1, b)
	if err != nil {
		return 0, err
	}
	switch {
	case fa < fb:
		return -1, nil
	case fa > fb:
		return 1, nil
	}
	return 0, nil
}

func comparison(name string, ok func(c int) bool) func(ev *Evaluator, args []Value) (Value, error) {
	return func(ev *Evaluator, args []Value) (Value, error) {
		result := true
		for i := 0; i+1 < len(args); i++ {
			c, err := compare(name, i, args[i], args[i+1])
			if err != nil {
				return nil, err
			}
			if !ok(c) {
				result = false
			}
		}
		return result, nil
	}
}
