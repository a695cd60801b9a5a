/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package comparison

import (
	"fmt"
	"strings"
)

// Operator is a symbolic comparison operator.
type Operator string

const (
	EQ  Operator = "EQ"
	LT  Operator = "LT"
	LTE Operator = "LTE"
	GT  Operator = "GT"
	GTE Operator = "GTE"
)

// Phase identifies the part of a compiled document an operator is rendered into.
type Phase int

const (
	// PhaseKeyCondition covers partition and sort key conditions.
	PhaseKeyCondition Phase = iota
	// PhaseFilter covers post-read filter expressions.
	PhaseFilter
	// PhaseCondition covers write conditions, which only test equality.
	PhaseCondition
)

func (p Phase) String() string {
	switch p {
	case PhaseKeyCondition:
		return "key condition"
	case PhaseFilter:
		return "filter"
	case PhaseCondition:
		return "condition"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

var tokens = map[Operator]string{
	EQ:  "=",
	LT:  "<",
	LTE: "<=",
	GT:  ">",
	GTE: ">=",
}

var legal = map[Phase][]Operator{
	PhaseKeyCondition: {EQ, LT, LTE, GT, GTE},
	PhaseFilter:       {EQ, LT, LTE, GT, GTE},
	PhaseCondition:    {EQ},
}

// Operators returns every operator in the catalog.
func Operators() []Operator {
	return []Operator{EQ, LT, LTE, GT, GTE}
}

// Token returns the wire token of the operator.
func (o Operator) Token() (string, bool) {
	tok, ok := tokens[o]
	return tok, ok
}

// Valid reports whether the operator is in the catalog.
func (o Operator) Valid() bool {
	_, ok := tokens[o]
	return ok
}

// MethodName is the builder method that produces the operator, e.g. "gte".
func (o Operator) MethodName() string {
	return strings.ToLower(string(o))
}

// LegalIn reports whether the operator may be rendered in the given phase.
func (o Operator) LegalIn(p Phase) bool {
	for _, op := range legal[p] {
		if op == o {
			return true
		}
	}
	return false
}

// Parse resolves a symbolic name ("gte", "GTE") or a wire token (">=") to an Operator.
func Parse(s string) (Operator, error) {
	upper := Operator(strings.ToUpper(strings.TrimSpace(s)))
	if upper.Valid() {
		return upper, nil
	}
	for op, tok := range tokens {
		if tok == strings.TrimSpace(s) {
			return op, nil
		}
	}
	return "", fmt.Errorf("unsupported comparison operator %q", s)
}
