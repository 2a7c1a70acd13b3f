package analytics

import (
	"context"
	"sort"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/ast"
	"github.com/expr-lang/expr/vm"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const idSeparator = ","

// DataSelector picks a part of the model. It is a comparable value and can be used
// as step parameters or map key.
type DataSelector struct {
	// Dataset defaults to the primary dataset.
	Dataset DatasetRole `yaml:"dataset,omitempty"`
	// Dimension is the projected dimension, when the reader projects one.
	Dimension string `yaml:"dimension,omitempty"`
	// Filter is a boolean expression over the event values. Dimensions are
	// variables, along with id and timestamp. Missing values are nil: an event
	// whose evaluation fails on a dimension it lacks is not selected.
	Filter string `yaml:"filter,omitempty"`
	// EventIDs restricts the selection to some events, as a comma separated list.
	// SelectEvents and decoding keep it sorted without duplicates.
	EventIDs string `yaml:"event_ids,omitempty"`
}

// UnmarshalYAML decodes the selector and canonicalises its event ids.
func (s *DataSelector) UnmarshalYAML(value *yaml.Node) error {
	type plain DataSelector

	var raw plain

	err := value.Decode(&raw)
	if err != nil {
		return err
	}

	sel := DataSelector(raw)
	*s = sel.SelectEvents(sel.IDs()...)

	return nil
}

// SelectEvents returns a copy of the selector restricted to ids.
func (s DataSelector) SelectEvents(ids ...string) DataSelector {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id != "" {
			set[id] = struct{}{}
		}
	}

	sorted := make([]string, 0, len(set))
	for id := range set {
		sorted = append(sorted, id)
	}

	sort.Strings(sorted)
	s.EventIDs = strings.Join(sorted, idSeparator)

	return s
}

// IDs returns the selected event ids, nil when the selection is not restricted.
func (s DataSelector) IDs() []string {
	var ids []string

	for _, id := range strings.Split(s.EventIDs, idSeparator) {
		id = strings.TrimSpace(id)
		if id != "" {
			ids = append(ids, id)
		}
	}

	return ids
}

// Role returns the selected dataset.
func (s DataSelector) Role() DatasetRole {
	if s.Dataset == "" {
		return Primary
	}

	return s.Dataset
}

// Select returns the events of m matched by s, in dataset order.
func Select(ctx context.Context, m Model, s DataSelector) ([]Event, error) {
	flt, err := compileFilter(s.Filter)
	if err != nil {
		return nil, err
	}

	events, err := m.Events(ctx, s.Role())
	if err != nil {
		return nil, err
	}

	var ids map[string]struct{}
	if restricted := s.IDs(); restricted != nil {
		ids = make(map[string]struct{}, len(restricted))
		for _, id := range restricted {
			ids[id] = struct{}{}
		}
	}

	selected := make([]Event, 0, len(events))

	for _, event := range events {
		if ids != nil {
			if _, ok := ids[event.ID]; !ok {
				continue
			}
		}

		if flt != nil {
			ok, err := flt.match(m, event)
			if err != nil {
				return nil, errors.Wrapf(err, "event %s", event.ID)
			}

			if !ok {
				continue
			}
		}

		selected = append(selected, event)
	}

	return selected, nil
}

// Project returns the column of the selector dimension over the selected events.
func Project(ctx context.Context, m Model, s DataSelector) (Column, error) {
	dim, ok := m.Dimension(s.Dimension)
	if !ok {
		return Column{}, errors.Wrap(ErrUnknownDimension, s.Dimension)
	}

	events, err := Select(ctx, m, s)
	if err != nil {
		return Column{}, err
	}

	values := make([]any, len(events))
	for i, event := range events {
		values[i] = event.Value(dim.Name)
	}

	return Column{Dimension: dim, Values: values}, nil
}

type filter struct {
	program     *vm.Program
	identifiers []string
}

// Visit collects the variables the filter reads.
func (f *filter) Visit(node *ast.Node) {
	if ident, ok := (*node).(*ast.IdentifierNode); ok {
		f.identifiers = append(f.identifiers, ident.Value)
	}
}

func compileFilter(source string) (*filter, error) {
	if strings.TrimSpace(source) == "" {
		return nil, nil
	}

	program, err := expr.Compile(source, expr.AsBool(), expr.AllowUndefinedVariables())
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidFilter, "%q: %v", source, err)
	}

	flt := &filter{program: program}
	node := program.Node()
	ast.Walk(&node, flt)

	return flt, nil
}

func (f *filter) match(m Model, event Event) (bool, error) {
	env := make(map[string]any, len(event.Values)+2)
	for k, v := range event.Values {
		env[k] = v
	}

	env["id"] = event.ID
	env["timestamp"] = event.Timestamp

	out, err := expr.Run(f.program, env)
	if err != nil {
		if f.lacksDimension(m, event) {
			return false, nil
		}

		return false, errors.Wrapf(ErrInvalidFilter, "%v", err)
	}

	ok, isBool := out.(bool)
	if !isBool {
		return false, errors.Wrapf(ErrInvalidFilter, "filter returned %T", out)
	}

	return ok, nil
}

// lacksDimension reports whether the filter reads a model dimension the event
// has no value for.
func (f *filter) lacksDimension(m Model, event Event) bool {
	for _, name := range f.identifiers {
		if _, ok := m.Dimension(name); ok && event.Value(name) == nil {
			return true
		}
	}

	return false
}
