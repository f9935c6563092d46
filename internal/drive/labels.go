package drive

import (
	"fmt"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/drivelabels/v2"
)

// ListLabelSchema fetches the complete label schema (labels, fields,
// selection choices) at full detail, paging until exhausted.
func (c *Client) ListLabelSchema() ([]*drivelabels.GoogleAppsDriveLabelsV2Label, error) {
	var labels []*drivelabels.GoogleAppsDriveLabelsV2Label
	pageToken := ""

	for {
		req := c.labels.Labels.List().View("LABEL_VIEW_FULL")
		if pageToken != "" {
			req = req.PageToken(pageToken)
		}

		res, err := req.Do()
		if err != nil {
			return nil, fmt.Errorf("failed to list label schema: %w", err)
		}

		labels = append(labels, res.Labels...)

		pageToken = res.NextPageToken
		if pageToken == "" {
			break
		}
	}

	return labels, nil
}

// FileLabels fetches the labels currently applied to a file. Errors are
// returned to the caller; the listing flow chooses to degrade to an
// empty result so one unreadable file does not abort a bulk listing.
func (c *Client) FileLabels(fileID string) ([]*drive.Label, error) {
	res, err := c.files.Files.ListLabels(fileID).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read labels of file %s: %w", fileID, err)
	}
	return res.Labels, nil
}

// SetSelection applies labelID to a file and sets fieldID's selection
// value set to exactly {choiceID}, replacing any prior selection. The
// operation is idempotent; no retry is attempted on failure.
func (c *Client) SetSelection(fileID, labelID, fieldID, choiceID string) error {
	req := &drive.ModifyLabelsRequest{
		LabelModifications: []*drive.LabelModification{
			{
				LabelId: labelID,
				FieldModifications: []*drive.LabelFieldModification{
					{
						FieldId:            fieldID,
						SetSelectionValues: []string{choiceID},
					},
				},
			},
		},
	}

	if _, err := c.files.Files.ModifyLabels(fileID, req).Do(); err != nil {
		return fmt.Errorf("failed to modify labels of file %s: %w", fileID, err)
	}
	return nil
}
