package domain

import "fmt"

// Literal is a parsed query literal handed to ParseLiteral
type Literal struct {
	// Kind is the literal kind such as "StringValue" or "IntValue"
	Kind  string
	Value string
}

// LiteralString is the kind carried by string literals
const LiteralString = "StringValue"

// ScalarType is a schema scalar descriptor
type ScalarType struct {
	Name        string
	Description string
	// Serialize turns an internal value into its output form
	Serialize func(v any) any
	// ParseValue turns a variable value into an internal value
	ParseValue func(v any) any
	// ParseLiteral returns nil when the literal is not acceptable
	ParseLiteral func(l Literal) any
}

// DateScalar passes ISO 8601 date strings through by identity
var DateScalar = ScalarType{
	Name: "Date",
	Description: "A date string, such as 2007-12-03, compliant with the ISO 8601 standard " +
		"for representation of dates and times using the Gregorian calendar.",
	Serialize:  stringify,
	ParseValue: stringify,
	ParseLiteral: func(l Literal) any {
		if l.Kind == LiteralString {
			return l.Value
		}
		return nil
	},
}

func stringify(v any) any {
	switch t := v.(type) {
	case nil:
		return nil
	case string:
		return t
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(v)
	}
}
