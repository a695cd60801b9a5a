/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package expr

import (
	"reflect"
	"regexp"

	"github.com/suparena/querykit/comparison"
	"github.com/suparena/querykit/storagemodels"
)

// fieldPattern is the set of names usable verbatim in "#field" and ":field"
// placeholders. Key fields are exempt; they use the reserved placeholders.
var fieldPattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// placeholders accumulates the name and value substitution tables of one
// compiled document. An entry is never overwritten.
type placeholders struct {
	names  map[string]string
	values map[string]any
	// keyed is set when the reserved key placeholders are in use.
	keyed  bool
	newErr func(string, ...any) error
}

func newPlaceholders(keyed bool, newErr func(string, ...any) error) *placeholders {
	return &placeholders{
		names:  make(map[string]string),
		values: make(map[string]any),
		keyed:  keyed,
		newErr: newErr,
	}
}

// fragment renders "#field <token> :field" for a non-key clause.
func (p *placeholders) fragment(c storagemodels.FilterClause, phase comparison.Phase) (string, error) {
	if !fieldPattern.MatchString(c.Name) {
		return "", p.newErr("field %q cannot be used as a placeholder; only letters, digits and _ are allowed", c.Name)
	}
	if p.keyed && isReserved(c.Name) {
		return "", p.newErr("field %q collides with a reserved key placeholder", c.Name)
	}
	tok, err := p.token(c.Name, c.Operator, phase)
	if err != nil {
		return "", err
	}
	name, value := "#"+c.Name, ":"+c.Name
	if err := p.bind(name, c.Name, value, c.Values[0]); err != nil {
		return "", err
	}
	return name + " " + tok + " " + value, nil
}

// keyFragment renders a partition or sort key condition with its reserved placeholders.
func (p *placeholders) keyFragment(name, value, field string, kc *keyClause) (string, error) {
	tok, err := p.token(field, kc.op, comparison.PhaseKeyCondition)
	if err != nil {
		return "", err
	}
	if err := p.bind(name, field, value, kc.value); err != nil {
		return "", err
	}
	return name + " " + tok + " " + value, nil
}

func (p *placeholders) token(field string, op comparison.Operator, phase comparison.Phase) (string, error) {
	tok, ok := op.Token()
	if !ok {
		return "", p.newErr("filter %q uses unsupported operator %q", field, op)
	}
	if !op.LegalIn(phase) {
		return "", p.newErr("operator %s is not allowed in a %s expression (field %q)", op, phase, field)
	}
	return tok, nil
}

func (p *placeholders) bind(name, field, value string, v any) error {
	if existing, ok := p.names[name]; ok && existing != field {
		return p.newErr("placeholder %s already bound to %q, cannot bind %q", name, existing, field)
	}
	if existing, ok := p.values[value]; ok && !reflect.DeepEqual(existing, v) {
		return p.newErr("placeholder %s already bound to another value", value)
	}
	p.names[name] = field
	p.values[value] = v
	return nil
}
