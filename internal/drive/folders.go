package drive

import (
	"fmt"
	"strings"

	"google.golang.org/api/googleapi"
)

// SegmentNotFoundError reports a path segment with no matching folder.
type SegmentNotFoundError struct {
	Segment  string
	ParentID string
}

func (e *SegmentNotFoundError) Error() string {
	return fmt.Sprintf("folder not found: %q under %s", e.Segment, e.ParentID)
}

// ResolvePath walks a slash-separated path from the drive root down to a
// folder ID. Empty segments (leading, trailing, doubled slashes) are
// skipped; an empty path resolves to the drive root without any lookup.
// Segment matching is case-sensitive and exact.
//
// When duplicate sibling folders share a name, the first one the API
// lists wins. That is observed behavior, not a uniqueness guarantee.
func (c *Client) ResolvePath(path string) (string, error) {
	parentID := c.driveID
	for _, segment := range strings.Split(path, "/") {
		if segment == "" {
			continue
		}
		id, err := c.childFolderID(parentID, segment)
		if err != nil {
			return "", err
		}
		parentID = id
	}
	return parentID, nil
}

// childFolderID returns the ID of the non-trashed child folder of
// parentID named exactly name.
func (c *Client) childFolderID(parentID, name string) (string, error) {
	q := fmt.Sprintf("'%s' in parents and mimeType='%s' and name = '%s' and trashed=false",
		parentID, folderMIME, escapeQueryString(name))

	res, err := c.files.Files.List().
		Corpora("drive").
		DriveId(c.driveID).
		IncludeItemsFromAllDrives(true).
		SupportsAllDrives(true).
		Q(q).
		Fields(googleapi.Field("files(id, name, parents)")).
		Do()
	if err != nil {
		return "", fmt.Errorf("failed to look up folder %q under %s: %w", name, parentID, err)
	}

	if len(res.Files) == 0 {
		return "", &SegmentNotFoundError{Segment: name, ParentID: parentID}
	}
	return res.Files[0].Id, nil
}

// ListChildren returns every non-trashed direct child of folderID, in
// server order (folders first, then natural name order), paging until
// the listing is exhausted. Any page failure aborts the whole listing.
func (c *Client) ListChildren(folderID string) ([]FileRecord, error) {
	var records []FileRecord
	pageToken := ""

	for {
		req := c.files.Files.List().
			Corpora("drive").
			DriveId(c.driveID).
			IncludeItemsFromAllDrives(true).
			SupportsAllDrives(true).
			Q(fmt.Sprintf("'%s' in parents and trashed=false", folderID)).
			PageSize(c.pageSize).
			OrderBy("folder,name_natural").
			Fields(googleapi.Field("nextPageToken, files(id, name, mimeType, size, modifiedTime, owners(displayName))"))
		if pageToken != "" {
			req = req.PageToken(pageToken)
		}

		res, err := req.Do()
		if err != nil {
			return nil, fmt.Errorf("failed to list files in folder %s: %w", folderID, err)
		}

		for _, f := range res.Files {
			rec := FileRecord{
				ID:           f.Id,
				Name:         f.Name,
				MimeType:     f.MimeType,
				Size:         f.Size,
				ModifiedTime: f.ModifiedTime,
			}
			for _, o := range f.Owners {
				if o != nil {
					rec.Owners = append(rec.Owners, Owner{DisplayName: o.DisplayName})
				}
			}
			records = append(records, rec)
		}

		pageToken = res.NextPageToken
		if pageToken == "" {
			break
		}
	}

	return records, nil
}

// escapeQueryString escapes a value for embedding in a Drive query.
func escapeQueryString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `'`, `\'`)
}
