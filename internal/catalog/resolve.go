package catalog

import (
	"fmt"
	"sort"
	"strings"
)

// NotFoundError reports a name or ID that matched nothing in scope.
type NotFoundError struct {
	Kind  string // "label", "field", or "choice"
	Query string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("could not find %s with name or ID %q", e.Kind, e.Query)
}

// AmbiguousError reports a name that matched more than one entry.
// Matches holds the conflicting IDs so the user can retry with one.
type AmbiguousError struct {
	Kind    string
	Query   string
	Matches []string
}

func (e *AmbiguousError) Error() string {
	return fmt.Sprintf("ambiguous %s name %q: matches %v", e.Kind, e.Query, e.Matches)
}

// NotSelectionError reports a resolved field that has no choices.
type NotSelectionError struct {
	Field string // field display name
}

func (e *NotSelectionError) Error() string {
	return fmt.Sprintf("field %q is not a selection field", e.Field)
}

// named is satisfied by the three catalog entry types.
type named interface {
	displayName() string
}

func (l Label) displayName() string  { return l.DisplayName }
func (f Field) displayName() string  { return f.DisplayName }
func (c Choice) displayName() string { return c.DisplayName }

// Resolve maps a human-supplied name or ID to exactly one key of scope.
//
// A query that is itself a key of scope is returned as-is, so IDs take
// precedence over names with the same text. Otherwise the query is
// matched case-insensitively against display names: exactly one match
// resolves, zero matches is a *NotFoundError, and several matches is an
// *AmbiguousError. kind names the entry type in errors.
func Resolve[E named](scope map[string]E, query, kind string) (string, error) {
	if _, ok := scope[query]; ok {
		return query, nil
	}

	var matches []string
	for id, entry := range scope {
		if strings.EqualFold(entry.displayName(), query) {
			matches = append(matches, id)
		}
	}

	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return "", &NotFoundError{Kind: kind, Query: query}
	default:
		sort.Strings(matches)
		return "", &AmbiguousError{Kind: kind, Query: query, Matches: matches}
	}
}

// Selection is a fully resolved (label, field, choice) triple.
type Selection struct {
	LabelID  string
	FieldID  string
	ChoiceID string

	// Display names of the resolved entries, for progress output.
	LabelName  string
	FieldName  string
	ChoiceName string
}

// ResolveSelection resolves a label, one of its fields, and one of that
// field's choices, in order. Every returned ID exists in the catalog.
// A field without choices fails with *NotSelectionError.
func (c Catalog) ResolveSelection(labelQ, fieldQ, choiceQ string) (Selection, error) {
	var sel Selection

	labelID, err := Resolve(c, labelQ, "label")
	if err != nil {
		return sel, err
	}
	label := c[labelID]

	fieldID, err := Resolve(label.Fields, fieldQ, "field")
	if err != nil {
		return sel, err
	}
	field := label.Fields[fieldID]

	if len(field.Choices) == 0 {
		return sel, &NotSelectionError{Field: field.DisplayName}
	}

	choiceID, err := Resolve(field.Choices, choiceQ, "choice")
	if err != nil {
		return sel, err
	}

	return Selection{
		LabelID:    labelID,
		FieldID:    fieldID,
		ChoiceID:   choiceID,
		LabelName:  label.DisplayName,
		FieldName:  field.DisplayName,
		ChoiceName: field.Choices[choiceID].DisplayName,
	}, nil
}
