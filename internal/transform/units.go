package transform

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Aidin1998/apihub/common/errors"
)

// Category groups units that can be converted into each other.
type Category int

const (
	Temperature Category = iota
	Length
	Weight
)

var categoryNames = [...]string{
	Temperature: "temperature",
	Length:      "length",
	Weight:      "weight",
}

func (c Category) String() string {
	if c < 0 || int(c) >= len(categoryNames) {
		return "unknown"
	}
	return categoryNames[c]
}

func ParseCategory(name string) (Category, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range categoryNames {
		if n == name {
			return Category(i), nil
		}
	}
	return 0, errors.Invalid.Explain("Unsupported category %q. Supported: temperature, length, weight", name)
}

type converter func(decimal.Decimal) decimal.Decimal

// Linear units expressed in the category's base unit (meter, kilogram).
var linearFactors = map[Category]map[string]decimal.Decimal{
	Length: {
		"meter":      decimal.NewFromInt(1),
		"kilometer":  decimal.NewFromInt(1000),
		"centimeter": decimal.RequireFromString("0.01"),
		"millimeter": decimal.RequireFromString("0.001"),
		"mile":       decimal.RequireFromString("1609.344"),
		"yard":       decimal.RequireFromString("0.9144"),
		"foot":       decimal.RequireFromString("0.3048"),
		"inch":       decimal.RequireFromString("0.0254"),
	},
	Weight: {
		"kilogram":  decimal.NewFromInt(1),
		"gram":      decimal.RequireFromString("0.001"),
		"milligram": decimal.RequireFromString("0.000001"),
		"tonne":     decimal.NewFromInt(1000),
		"pound":     decimal.RequireFromString("0.45359237"),
		"ounce":     decimal.RequireFromString("0.028349523125"),
	},
}

var unitAliases = map[string]string{
	"c": "celsius", "f": "fahrenheit", "k": "kelvin",
	"m": "meter", "km": "kilometer", "cm": "centimeter", "mm": "millimeter",
	"mi": "mile", "yd": "yard", "ft": "foot", "in": "inch",
	"meters": "meter", "kilometers": "kilometer", "miles": "mile", "feet": "foot", "inches": "inch",
	"kg": "kilogram", "g": "gram", "mg": "milligram", "t": "tonne",
	"lb": "pound", "lbs": "pound", "oz": "ounce", "pounds": "pound", "grams": "gram",
}

var (
	nine       = decimal.NewFromInt(9)
	five       = decimal.NewFromInt(5)
	thirtyTwo  = decimal.NewFromInt(32)
	kelvinZero = decimal.RequireFromString("273.15")
)

// conversions maps a category to functions keyed "{from}_to_{to}".
var conversions = buildConversions()

func buildConversions() map[Category]map[string]converter {
	table := map[Category]map[string]converter{
		Temperature: {
			"celsius_to_fahrenheit": func(v decimal.Decimal) decimal.Decimal { return v.Mul(nine).Div(five).Add(thirtyTwo) },
			"fahrenheit_to_celsius": func(v decimal.Decimal) decimal.Decimal { return v.Sub(thirtyTwo).Mul(five).Div(nine) },
			"celsius_to_kelvin":     func(v decimal.Decimal) decimal.Decimal { return v.Add(kelvinZero) },
			"kelvin_to_celsius":     func(v decimal.Decimal) decimal.Decimal { return v.Sub(kelvinZero) },
			"fahrenheit_to_kelvin":  func(v decimal.Decimal) decimal.Decimal { return v.Sub(thirtyTwo).Mul(five).Div(nine).Add(kelvinZero) },
			"kelvin_to_fahrenheit":  func(v decimal.Decimal) decimal.Decimal { return v.Sub(kelvinZero).Mul(nine).Div(five).Add(thirtyTwo) },
		},
	}

	for category, factors := range linearFactors {
		fns := make(map[string]converter, len(factors)*len(factors))
		for from, fromFactor := range factors {
			for to, toFactor := range factors {
				if from == to {
					continue
				}
				fromFactor, toFactor := fromFactor, toFactor
				fns[from+"_to_"+to] = func(v decimal.Decimal) decimal.Decimal {
					return v.Mul(fromFactor).Div(toFactor)
				}
			}
		}
		table[category] = fns
	}
	return table
}

// Units lists the canonical unit names of a category.
func Units(category Category) []string {
	var names []string
	if category == Temperature {
		names = []string{"celsius", "fahrenheit", "kelvin"}
	} else {
		for name := range linearFactors[category] {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

func canonicalUnit(unit string) string {
	unit = strings.ToLower(strings.TrimSpace(unit))
	if alias, ok := unitAliases[unit]; ok {
		return alias
	}
	return unit
}

// ConvertUnit converts value between two units of a category. Converting a
// unit to itself returns value unchanged.
func ConvertUnit(value decimal.Decimal, from, to string, category Category) (decimal.Decimal, error) {
	if err := CheckOperand("value", value); err != nil {
		return decimal.Zero, err
	}
	from, to = canonicalUnit(from), canonicalUnit(to)

	if from == to {
		for _, u := range Units(category) {
			if u == from {
				return value, nil
			}
		}
	}

	key := from + "_to_" + to
	fn, ok := conversions[category][key]
	if !ok {
		return decimal.Zero, errors.Invalid.Explain("Unsupported conversion %q for category %s", key, category)
	}
	return fn(value).Round(10), nil
}
