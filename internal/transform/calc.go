package transform

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Aidin1998/apihub/common/errors"
)

type Operation int

const (
	Add Operation = iota
	Subtract
	Multiply
	Divide
	Power
	Modulo
)

var operationNames = [...]string{
	Add:      "add",
	Subtract: "subtract",
	Multiply: "multiply",
	Divide:   "divide",
	Power:    "power",
	Modulo:   "modulo",
}

func (op Operation) String() string {
	if op < 0 || int(op) >= len(operationNames) {
		return "unknown"
	}
	return operationNames[op]
}

func ParseOperation(name string) (Operation, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range operationNames {
		if n == name {
			return Operation(i), nil
		}
	}
	return 0, errors.Invalid.Explain(
		"Unsupported operation %q. Supported: %s", name, strings.Join(operationNames[:], ", "))
}

// maxScale bounds the digits and the base-10 exponent of any operand, so
// decimal arithmetic stays in small big.Int territory.
const maxScale = 1000

var maxExponent = decimal.NewFromInt(maxScale)

// CheckOperand rejects numbers whose digit count or exponent exceeds maxScale.
func CheckOperand(name string, d decimal.Decimal) error {
	exp := int(d.Exponent())
	if exp > maxScale || exp < -maxScale || d.NumDigits() > maxScale {
		return errors.Invalid.Explain("%s is out of range", name).
			WithField("range", name, fmt.Sprintf("at most %d digits and exponent magnitude %d", maxScale, maxScale))
	}
	return nil
}

// ToFloat converts d for a float JSON field, rejecting values float64 cannot hold.
func ToFloat(name string, d decimal.Decimal) (float64, error) {
	f := d.InexactFloat64()
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, errors.Invalid.Explain("%s is out of range", name)
	}
	return f, nil
}

// log10Bound is an upper bound on |log10 |d|| for a nonzero d.
func log10Bound(d decimal.Decimal) int {
	floor := d.NumDigits() + int(d.Exponent()) - 1
	if floor < 0 {
		floor = -floor
	}
	return floor + 1
}

// Calculate applies op to a and b with decimal arithmetic.
func Calculate(a, b decimal.Decimal, op Operation) (decimal.Decimal, error) {
	if err := CheckOperand("a", a); err != nil {
		return decimal.Zero, err
	}
	if err := CheckOperand("b", b); err != nil {
		return decimal.Zero, err
	}
	switch op {
	case Add:
		return a.Add(b), nil
	case Subtract:
		return a.Sub(b), nil
	case Multiply:
		return a.Mul(b), nil
	case Divide:
		if b.IsZero() {
			return decimal.Zero, errors.Invalid.Explain("Division by zero")
		}
		return a.Div(b), nil
	case Modulo:
		if b.IsZero() {
			return decimal.Zero, errors.Invalid.Explain("Modulo by zero")
		}
		return a.Mod(b), nil
	case Power:
		if b.Abs().GreaterThan(maxExponent) {
			return decimal.Zero, errors.Invalid.Explain("Exponent must be between -1000 and 1000")
		}
		if !a.IsZero() && float64(log10Bound(a))*b.Abs().InexactFloat64() > maxScale {
			return decimal.Zero, errors.Invalid.Explain("Result out of range")
		}
		result, err := a.PowWithPrecision(b, 16)
		if err != nil {
			return decimal.Zero, errors.Invalid.Explain("Cannot compute power: %s", err.Error())
		}
		return result, nil
	default:
		return decimal.Zero, errors.Invalid.Explain("Unsupported operation")
	}
}
