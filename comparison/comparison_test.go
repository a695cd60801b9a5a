/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package comparison

import (
	"testing"
)

func TestTokens(t *testing.T) {
	expected := map[Operator]string{
		EQ:  "=",
		LT:  "<",
		LTE: "<=",
		GT:  ">",
		GTE: ">=",
	}

	seen := make(map[string]Operator)
	for _, op := range Operators() {
		tok, ok := op.Token()
		if !ok {
			t.Fatalf("operator %s has no token", op)
		}
		if tok != expected[op] {
			t.Errorf("Expected token %q for %s, got %q", expected[op], op, tok)
		}
		if other, dup := seen[tok]; dup {
			t.Errorf("token %q reused by %s and %s", tok, other, op)
		}
		seen[tok] = op
	}
}

func TestUnknownOperator(t *testing.T) {
	op := Operator("GE")
	if op.Valid() {
		t.Error("GE should not be a valid operator")
	}
	if _, ok := op.Token(); ok {
		t.Error("GE should not have a token")
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    Operator
		wantErr bool
	}{
		{in: "EQ", want: EQ},
		{in: "gte", want: GTE},
		{in: "<=", want: LTE},
		{in: " > ", want: GT},
		{in: "between", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Errorf("Expected error for %q", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestLegalIn(t *testing.T) {
	for _, op := range Operators() {
		if !op.LegalIn(PhaseKeyCondition) || !op.LegalIn(PhaseFilter) {
			t.Errorf("%s should be legal in key conditions and filters", op)
		}
	}
	if LT.LegalIn(PhaseCondition) {
		t.Error("write conditions only test equality")
	}
	if !EQ.LegalIn(PhaseCondition) {
		t.Error("EQ should be legal in write conditions")
	}
}

func TestMethodName(t *testing.T) {
	if GTE.MethodName() != "gte" {
		t.Errorf("Expected gte, got %s", GTE.MethodName())
	}
}
