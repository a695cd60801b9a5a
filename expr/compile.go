/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package expr

import (
	"math"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/suparena/querykit/comparison"
	"github.com/suparena/querykit/errors"
	"github.com/suparena/querykit/schema"
	"github.com/suparena/querykit/storagemodels"
	"golang.org/x/exp/slices"
)

// Reserved placeholders for the partition and sort keys.
const (
	PartitionKeyName  = "#hkeyname"
	PartitionKeyValue = ":hkeyvalue"
	SortKeyName       = "#rkeyname"
	SortKeyValue      = ":rkeyvalue"
)

// separator joins expression fragments.
const separator = " and "

var reservedRoots = []string{"hkeyname", "hkeyvalue", "rkeyname", "rkeyvalue"}

// keyClause is a resolved condition on the partition or sort key.
type keyClause struct {
	value any
	op    comparison.Operator
}

// CompileFind translates a query against the schema's table (or index) into a
// document with a key condition and, for non-key clauses, a filter expression.
func CompileFind(s schema.Descriptor, spec storagemodels.QuerySpec) (storagemodels.CompiledQuery, error) {
	clauses, err := mergeClauses(s, spec, true, errors.NewQueryError)
	if err != nil {
		return storagemodels.CompiledQuery{}, err
	}

	p := newPlaceholders(true, errors.NewQueryError)

	var hash, rng *keyClause
	if v, ok := spec.EqualityProbe[s.PartitionKey()]; ok {
		hash = &keyClause{value: v, op: comparison.EQ}
	}
	if s.HasSortKey() {
		if v, ok := spec.EqualityProbe[s.SortKey()]; ok {
			rng = &keyClause{value: v, op: comparison.EQ}
		}
	}

	var filters []string
	for _, c := range clauses {
		switch {
		case c.Name == s.PartitionKey():
			hash = &keyClause{value: c.Values[0], op: c.Operator}
		case s.HasSortKey() && c.Name == s.SortKey():
			rng = &keyClause{value: c.Values[0], op: c.Operator}
		default:
			frag, err := p.fragment(c, comparison.PhaseFilter)
			if err != nil {
				return storagemodels.CompiledQuery{}, err
			}
			filters = append(filters, frag)
		}
	}

	var keyConds []string
	if hash != nil {
		frag, err := p.keyFragment(PartitionKeyName, PartitionKeyValue, s.PartitionKey(), hash)
		if err != nil {
			return storagemodels.CompiledQuery{}, err
		}
		keyConds = append(keyConds, frag)
	}
	if rng != nil {
		frag, err := p.keyFragment(SortKeyName, SortKeyValue, s.SortKey(), rng)
		if err != nil {
			return storagemodels.CompiledQuery{}, err
		}
		keyConds = append(keyConds, frag)
	}

	q := storagemodels.CompiledQuery{
		TableName:                 s.TableName(),
		IndexName:                 optional(s.IndexName()),
		KeyConditionExpression:    join(keyConds),
		FilterExpression:          join(filters),
		ExpressionAttributeNames:  p.names,
		ExpressionAttributeValues: p.values,
		Limit:                     limit(spec.Limit),
	}

	switch spec.Sort {
	case storagemodels.SortNone:
	case storagemodels.SortAsc:
		q.ScanIndexForward = aws.Bool(true)
	case storagemodels.SortDesc:
		q.ScanIndexForward = aws.Bool(false)
	default:
		return storagemodels.CompiledQuery{}, errors.NewQueryError("unsupported sort direction %q", spec.Sort)
	}

	return q, nil
}

// CompileScan translates a scan. Every probe entry is an implicit EQ clause;
// explicit clauses win on a name collision. There is no key condition.
func CompileScan(s schema.Descriptor, spec storagemodels.QuerySpec) (storagemodels.CompiledQuery, error) {
	clauses, err := mergeClauses(s, spec, false, errors.NewScanError)
	if err != nil {
		return storagemodels.CompiledQuery{}, err
	}

	p := newPlaceholders(false, errors.NewScanError)
	filters := make([]string, 0, len(clauses))
	for _, c := range clauses {
		frag, err := p.fragment(c, comparison.PhaseFilter)
		if err != nil {
			return storagemodels.CompiledQuery{}, err
		}
		filters = append(filters, frag)
	}

	q := storagemodels.CompiledQuery{
		TableName: s.TableName(),
		IndexName: optional(s.IndexName()),
		Limit:     limit(spec.Limit),
	}
	if len(filters) > 0 {
		q.FilterExpression = join(filters)
		q.ExpressionAttributeNames = p.names
		q.ExpressionAttributeValues = p.values
	}
	return q, nil
}

// CompileSave builds a put document. The item must carry its key fields.
func CompileSave(s schema.Descriptor, item storagemodels.Item) (storagemodels.CompiledQuery, error) {
	if isBlank(item, s.PartitionKey()) {
		return storagemodels.CompiledQuery{}, errors.NewModelError("Item could not be saved. Item needs hash key %q", s.PartitionKey())
	}
	if s.HasSortKey() && isBlank(item, s.SortKey()) {
		return storagemodels.CompiledQuery{}, errors.NewModelError("Item could not be saved. Item needs range key %q", s.SortKey())
	}

	copied := make(storagemodels.Item, len(item))
	for k, v := range item {
		copied[k] = v
	}
	return storagemodels.CompiledQuery{
		TableName: s.TableName(),
		Item:      copied,
	}, nil
}

// CompileUpdate builds an update document. Key fields in patch are ignored;
// every other field is replaced.
func CompileUpdate(s schema.Descriptor, keyProbe, patch storagemodels.Item) (storagemodels.CompiledQuery, error) {
	if isBlank(keyProbe, s.PartitionKey()) {
		return storagemodels.CompiledQuery{}, errors.NewQueryError("cannot update without a value for hash key %q", s.PartitionKey())
	}

	updates := make(map[string]storagemodels.AttributeUpdate, len(patch))
	for field, v := range patch {
		if s.IsKey(field) {
			continue
		}
		updates[field] = storagemodels.AttributeUpdate{Action: storagemodels.ActionPut, Value: v}
	}

	return storagemodels.CompiledQuery{
		TableName:        s.TableName(),
		Key:              keyDocument(s, keyProbe),
		AttributeUpdates: updates,
	}, nil
}

// CompileDelete builds a delete document conditioned on equality of every
// field in keyProbe.
func CompileDelete(s schema.Descriptor, keyProbe storagemodels.Item) (storagemodels.CompiledQuery, error) {
	if len(keyProbe) == 0 {
		return storagemodels.CompiledQuery{}, errors.NewQueryError("cannot delete without resolved key fields")
	}
	if isBlank(keyProbe, s.PartitionKey()) {
		return storagemodels.CompiledQuery{}, errors.NewQueryError("cannot delete without a value for hash key %q", s.PartitionKey())
	}

	p := newPlaceholders(false, errors.NewQueryError)
	conds := make([]string, 0, len(keyProbe))
	for _, field := range conditionOrder(s, keyProbe) {
		frag, err := p.fragment(storagemodels.FilterClause{
			Name:     field,
			Values:   []any{keyProbe[field]},
			Operator: comparison.EQ,
		}, comparison.PhaseCondition)
		if err != nil {
			return storagemodels.CompiledQuery{}, err
		}
		conds = append(conds, frag)
	}

	return storagemodels.CompiledQuery{
		TableName:                 s.TableName(),
		ConditionExpression:       join(conds),
		ExpressionAttributeNames:  p.names,
		ExpressionAttributeValues: p.values,
		Key:                       keyDocument(s, keyProbe),
	}, nil
}

// CompileGet builds a direct lookup by primary key.
func CompileGet(s schema.Descriptor, keyProbe storagemodels.Item) (storagemodels.CompiledQuery, error) {
	if isBlank(keyProbe, s.PartitionKey()) {
		return storagemodels.CompiledQuery{}, errors.NewQueryError("cannot get without a value for hash key %q", s.PartitionKey())
	}
	if s.HasSortKey() && isBlank(keyProbe, s.SortKey()) {
		return storagemodels.CompiledQuery{}, errors.NewQueryError("cannot get without a value for range key %q", s.SortKey())
	}
	return storagemodels.CompiledQuery{
		TableName: s.TableName(),
		Key:       keyDocument(s, keyProbe),
	}, nil
}

// mergeClauses validates explicit clauses and merges the probe entries in
// front of them, sorted by name. With skipKeys set, key fields in the probe
// are left out; finds resolve them into the key condition instead.
func mergeClauses(s schema.Descriptor, spec storagemodels.QuerySpec, skipKeys bool, newErr func(string, ...any) error) ([]storagemodels.FilterClause, error) {
	explicit := make(map[string]bool, len(spec.Filters))
	for _, c := range spec.Filters {
		if c.Name == "" {
			return nil, newErr("filter clause has no field name")
		}
		if explicit[c.Name] {
			return nil, newErr("Invalid Query state: %s filter can only be used once", c.Name)
		}
		if len(c.Values) == 0 {
			return nil, newErr("filter %q has no comparison value", c.Name)
		}
		if !c.Operator.Valid() {
			return nil, newErr("filter %q uses unsupported operator %q", c.Name, c.Operator)
		}
		explicit[c.Name] = true
	}

	probed := make([]string, 0, len(spec.EqualityProbe))
	for field := range spec.EqualityProbe {
		if explicit[field] {
			continue
		}
		if skipKeys && s.IsKey(field) {
			continue
		}
		probed = append(probed, field)
	}
	slices.Sort(probed)

	out := make([]storagemodels.FilterClause, 0, len(probed)+len(spec.Filters))
	for _, field := range probed {
		out = append(out, storagemodels.FilterClause{
			Name:     field,
			Values:   []any{spec.EqualityProbe[field]},
			Operator: comparison.EQ,
		})
	}
	return append(out, spec.Filters...), nil
}

// conditionOrder lists probe fields with the partition key first, then the
// sort key, then the rest by name.
func conditionOrder(s schema.Descriptor, probe storagemodels.Item) []string {
	fields := make([]string, 0, len(probe))
	rest := make([]string, 0, len(probe))
	for _, key := range s.KeyFields() {
		if _, ok := probe[key]; ok {
			fields = append(fields, key)
		}
	}
	for field := range probe {
		if !s.IsKey(field) {
			rest = append(rest, field)
		}
	}
	slices.Sort(rest)
	return append(fields, rest...)
}

func keyDocument(s schema.Descriptor, probe storagemodels.Item) storagemodels.Item {
	key := storagemodels.Item{}
	for _, field := range s.KeyFields() {
		if v, ok := probe[field]; ok {
			key[field] = v
		}
	}
	return key
}

func isBlank(item storagemodels.Item, field string) bool {
	v, ok := item[field]
	if !ok || v == nil {
		return true
	}
	if str, ok := v.(string); ok && str == "" {
		return true
	}
	return false
}

func join(frags []string) *string {
	if len(frags) == 0 {
		return nil
	}
	return aws.String(strings.Join(frags, separator))
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return aws.String(s)
}

// limit caps n at the largest value the store accepts.
func limit(n int) *int32 {
	if n <= 0 {
		return nil
	}
	if n > math.MaxInt32 {
		n = math.MaxInt32
	}
	return aws.Int32(int32(n))
}

func isReserved(field string) bool {
	return slices.Contains(reservedRoots, field)
}
