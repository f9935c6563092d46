package catalog

import (
	"sort"

	"google.golang.org/api/drive/v3"
)

// AppliedLabel is a label currently attached to a file, projected into
// display-friendly form via the catalog.
type AppliedLabel struct {
	ID          string         `json:"id"`
	DisplayName string         `json:"displayName"`
	Fields      []AppliedField `json:"fields"`
}

// AppliedField is one field value on an applied label. Values holds
// []ChoiceValue for selection fields and the raw value slice for text,
// integer, date, and user fields.
type AppliedField struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	Values      any    `json:"values"`
}

// ChoiceValue is one selected choice, with its display name when the
// catalog knows it and the raw ID otherwise.
type ChoiceValue struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
}

// AppliedLabels projects the raw applied labels of a file through the
// catalog. Labels missing from the catalog render with display name
// "Unknown" and no field metadata; this never fails.
//
// Fields whose projected values come out empty are dropped from the
// result. That keeps listings compact but also hides legitimately empty
// text values and empty selections — a known lossy step.
func AppliedLabels(raw []*drive.Label, c Catalog) []AppliedLabel {
	result := make([]AppliedLabel, 0, len(raw))

	for _, l := range raw {
		if l == nil {
			continue
		}
		meta := c[l.Id] // zero value when unknown

		applied := AppliedLabel{
			ID:          l.Id,
			DisplayName: meta.DisplayName,
			Fields:      []AppliedField{},
		}
		if applied.DisplayName == "" {
			applied.DisplayName = "Unknown"
		}

		fieldIDs := make([]string, 0, len(l.Fields))
		for fieldID := range l.Fields {
			fieldIDs = append(fieldIDs, fieldID)
		}
		sort.Strings(fieldIDs)

		for _, fieldID := range fieldIDs {
			fv := l.Fields[fieldID]
			fieldMeta := meta.Fields[fieldID]

			out := AppliedField{
				ID:          fieldID,
				DisplayName: fieldMeta.DisplayName,
			}
			if out.DisplayName == "" {
				out.DisplayName = "Unknown"
			}

			switch {
			case len(fv.Selection) > 0:
				choices := make([]ChoiceValue, 0, len(fv.Selection))
				for _, choiceID := range fv.Selection {
					name := choiceID
					if ch, ok := fieldMeta.Choices[choiceID]; ok {
						name = ch.DisplayName
					}
					choices = append(choices, ChoiceValue{ID: choiceID, DisplayName: name})
				}
				out.Values = choices
			case len(fv.Text) > 0:
				out.Values = fv.Text
			case len(fv.Integer) > 0:
				out.Values = fv.Integer
			case len(fv.DateString) > 0:
				out.Values = fv.DateString
			case len(fv.User) > 0:
				users := make([]string, 0, len(fv.User))
				for _, u := range fv.User {
					if u != nil {
						users = append(users, u.DisplayName)
					}
				}
				out.Values = users
			default:
				continue // nothing populated, drop the field
			}

			applied.Fields = append(applied.Fields, out)
		}

		result = append(result, applied)
	}

	return result
}
