// Package catalog indexes Drive label schemas for name-to-ID resolution.
//
// A Catalog is built once per invocation from a full-detail schema fetch
// and is immutable afterwards; it is never persisted across runs. All
// resolution of human-typed label, field, and choice names happens
// against this in-memory index so that bulk operations never re-query
// the schema per file.
package catalog

import (
	"google.golang.org/api/drivelabels/v2"
)

// Catalog maps label ID to label metadata.
type Catalog map[string]Label

// Label is one label schema: a named set of fields.
type Label struct {
	ID          string           `json:"id"`
	DisplayName string           `json:"displayName"`
	Description string           `json:"description"`
	Fields      map[string]Field `json:"fields"`
}

// Field is one typed slot within a label. A field with an empty Choices
// map is not a selection field.
type Field struct {
	DisplayName string            `json:"displayName"`
	Choices     map[string]Choice `json:"choices"`
}

// Choice is one allowed value of a selection field.
type Choice struct {
	DisplayName string `json:"displayName"`
	Description string `json:"description"`
}

// FromSchema builds a Catalog from the raw label schema. Missing display
// names default to "Unknown" and missing descriptions to the empty
// string, so downstream rendering never has to nil-check properties.
func FromSchema(labels []*drivelabels.GoogleAppsDriveLabelsV2Label) Catalog {
	c := make(Catalog, len(labels))

	for _, l := range labels {
		if l == nil || l.Id == "" {
			continue
		}
		entry := Label{
			ID:          l.Id,
			DisplayName: "Unknown",
			Fields:      make(map[string]Field, len(l.Fields)),
		}
		if p := l.Properties; p != nil {
			if p.Title != "" {
				entry.DisplayName = p.Title
			}
			entry.Description = p.Description
		}

		for _, f := range l.Fields {
			if f == nil || f.Id == "" {
				continue
			}
			field := Field{
				DisplayName: "Unknown",
				Choices:     map[string]Choice{},
			}
			if p := f.Properties; p != nil && p.DisplayName != "" {
				field.DisplayName = p.DisplayName
			}
			if so := f.SelectionOptions; so != nil {
				for _, ch := range so.Choices {
					if ch == nil || ch.Id == "" {
						continue
					}
					choice := Choice{DisplayName: "Unknown"}
					if p := ch.Properties; p != nil {
						if p.DisplayName != "" {
							choice.DisplayName = p.DisplayName
						}
						choice.Description = p.Description
					}
					field.Choices[ch.Id] = choice
				}
			}
			entry.Fields[f.Id] = field
		}

		c[l.Id] = entry
	}

	return c
}
