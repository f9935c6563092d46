package drive

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// Download saves a Drive file to disk and returns the path written.
// Google Workspace documents are exported to PDF; binary files are
// downloaded as-is. Folders cannot be downloaded. dest may be an
// existing directory, a target file path, or empty for the current
// working directory.
func (c *Client) Download(fileID, dest string) (string, error) {
	meta, err := c.files.Files.Get(fileID).
		SupportsAllDrives(true).
		Fields("id, name, mimeType").
		Do()
	if err != nil {
		return "", fmt.Errorf("failed to get metadata for file %s: %w", fileID, err)
	}

	name := meta.Name
	var resp *http.Response

	if strings.Contains(meta.MimeType, "application/vnd.google-apps") {
		if strings.Contains(meta.MimeType, "folder") {
			return "", errors.New("cannot download a folder")
		}
		// Workspace files have no binary content; export to PDF.
		resp, err = c.files.Files.Export(fileID, "application/pdf").Download()
		if !strings.HasSuffix(strings.ToLower(name), ".pdf") {
			name += ".pdf"
		}
	} else {
		resp, err = c.files.Files.Get(fileID).SupportsAllDrives(true).Download()
	}
	if err != nil {
		return "", fmt.Errorf("failed to download file %s: %w", fileID, err)
	}
	defer resp.Body.Close()

	savePath, err := resolveDest(dest, name)
	if err != nil {
		return "", err
	}

	out, err := os.Create(savePath)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", savePath, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", savePath, err)
	}

	return savePath, nil
}

func resolveDest(dest, name string) (string, error) {
	if dest == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", err
		}
		return filepath.Join(wd, name), nil
	}
	if info, err := os.Stat(dest); err == nil && info.IsDir() {
		return filepath.Join(dest, name), nil
	}
	return dest, nil
}
