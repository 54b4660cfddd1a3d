package lang

import "github.com/sergev/golox/parser"

// binary applies an infix operator to already evaluated operands, dispatching
// on the runtime type pair.
func binary(op parser.Token, left, right Value) (Value, error) {
	var result Value
	switch {
	case left.Type == TypeNumber && right.Type == TypeNumber:
		result = numberOp(op.Type, left.Number(), right.Number())
	case left.Type == TypeNumber && right.Type == TypeString:
		result = concatOp(op.Type, FormatNumber(left.Number()), right.Str())
	case left.Type == TypeString && right.Type == TypeNumber:
		result = concatOp(op.Type, left.Str(), FormatNumber(right.Number()))
	case left.Type == TypeString && right.Type == TypeString:
		result = stringOp(op.Type, left.Str(), right.Str())
	case left.Type == TypeBool && right.Type == TypeBool:
		result = equalityOp(op.Type, left.Bool() == right.Bool())
	case left.IsNil() && right.IsNil():
		result = equalityOp(op.Type, true)
	case left.IsNil() || right.IsNil():
		result = equalityOp(op.Type, false)
	case left.Type == TypeCallable && right.Type == TypeCallable:
		result = equalityOp(op.Type, left.Callable() == right.Callable())
	default:
		return Value{}, newRuntimeError(op, "Operands must be two numbers or two strings.")
	}
	if result.Type == typeMismatch {
		return Value{}, newRuntimeError(op, "Operands must be numbers.")
	}
	return result, nil
}

func numberOp(op parser.TokenType, l, r float64) Value {
	switch op {
	case parser.Plus:
		return NumberValue(l + r)
	case parser.Minus:
		return NumberValue(l - r)
	case parser.Star:
		return NumberValue(l * r)
	case parser.Slash:
		return NumberValue(l / r)
	case parser.Greater:
		return BoolValue(l > r)
	case parser.GreaterEqual:
		return BoolValue(l >= r)
	case parser.Less:
		return BoolValue(l < r)
	case parser.LessEqual:
		return BoolValue(l <= r)
	case parser.EqualEqual:
		return BoolValue(l == r)
	case parser.BangEqual:
		return BoolValue(l != r)
	default:
		return mismatch
	}
}

func concatOp(op parser.TokenType, l, r string) Value {
	if op == parser.Plus {
		return StringValue(l + r)
	}
	return mismatch
}

func stringOp(op parser.TokenType, l, r string) Value {
	switch op {
	case parser.Plus:
		return StringValue(l + r)
	case parser.EqualEqual:
		return BoolValue(l == r)
	case parser.BangEqual:
		return BoolValue(l != r)
	default:
		return mismatch
	}
}

// equalityOp answers == and != given whether the operands are equal.
func equalityOp(op parser.TokenType, equal bool) Value {
	switch op {
	case parser.EqualEqual:
		return BoolValue(equal)
	case parser.BangEqual:
		return BoolValue(!equal)
	default:
		return mismatch
	}
}
