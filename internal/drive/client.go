// Package drive wraps the Google Drive v3 and Drive Labels v2 APIs with
// the operations labelctl needs: folder path resolution, folder listing,
// label schema fetch, applied-label reads, and selection writes.
//
// All calls are synchronous and sequential. There is no retry or backoff
// at this boundary; a production wrapper can add one without changing
// these contracts.
package drive

import (
	"context"
	"errors"
	"fmt"

	"github.com/driveops/labelctl/internal/catalog"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/drivelabels/v2"
	"google.golang.org/api/option"
)

const folderMIME = "application/vnd.google-apps.folder"

// Client wraps the two Google services, scoped to one shared drive.
type Client struct {
	files    *drive.Service
	labels   *drivelabels.Service
	driveID  string
	pageSize int64
}

// FileRecord is the listing projection of one Drive file.
type FileRecord struct {
	ID           string                 `json:"id"`
	Name         string                 `json:"name"`
	MimeType     string                 `json:"mimeType"`
	Size         int64                  `json:"size,omitempty"`
	ModifiedTime string                 `json:"modifiedTime,omitempty"`
	Owners       []Owner                `json:"owners,omitempty"`
	Labels       []catalog.AppliedLabel `json:"labels,omitempty"`
}

// Owner is a file owner as shown in listings.
type Owner struct {
	DisplayName string `json:"displayName"`
}

// New creates a Client for the given shared drive. opts must carry the
// caller's authentication (or test endpoint overrides).
func New(ctx context.Context, driveID string, pageSize int64, opts ...option.ClientOption) (*Client, error) {
	if driveID == "" {
		return nil, errors.New("drive ID is required; set it via --drive, LABELCTL_DRIVE_ID, or the config file")
	}
	if pageSize <= 0 {
		pageSize = 100
	}

	files, err := drive.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Drive service: %w", err)
	}

	labels, err := drivelabels.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Drive Labels service: %w", err)
	}

	return &Client{
		files:    files,
		labels:   labels,
		driveID:  driveID,
		pageSize: pageSize,
	}, nil
}

// DriveID returns the shared drive this client is scoped to.
func (c *Client) DriveID() string {
	return c.driveID
}
