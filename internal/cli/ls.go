package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/driveops/labelctl/internal/catalog"
	"github.com/driveops/labelctl/internal/drive"
	"github.com/driveops/labelctl/internal/render"
)

// Listing is the JSON output of the ls command.
type Listing struct {
	FolderPath string             `json:"folder_path"`
	FolderID   string             `json:"folder_id"`
	FileCount  int                `json:"file_count"`
	Files      []drive.FileRecord `json:"files"`
}

func newLsCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "ls <folder-path>",
		Short: "List files in a folder with their applied labels",
		Long: `List all files directly inside a folder, with the labels applied to
each file decoded to display names. The folder path is relative to the
shared drive root, e.g. "Reports/2024"; pass "" for the root itself.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			folderPath := args[0]

			client, err := o.newClient(cmd.Context())
			if err != nil {
				return err
			}

			// The catalog is best-effort for reads: without it, applied
			// labels still list but render as "Unknown".
			cat := catalog.Catalog{}
			schema, err := client.ListLabelSchema()
			if err != nil {
				slog.Warn("Label catalog unavailable, label names will not resolve", "error", err)
			} else {
				cat = catalog.FromSchema(schema)
				slog.Debug("Loaded label catalog", "labels", len(cat))
			}

			folderID, err := client.ResolvePath(folderPath)
			if err != nil {
				return err
			}

			files, err := client.ListChildren(folderID)
			if err != nil {
				return err
			}
			if files == nil {
				files = []drive.FileRecord{}
			}

			// Per-file label reads are best-effort: one unreadable file
			// must not abort the listing.
			for i := range files {
				raw, err := client.FileLabels(files[i].ID)
				if err != nil {
					slog.Warn("Skipping labels for file", "file", files[i].ID, "error", err)
					continue
				}
				files[i].Labels = catalog.AppliedLabels(raw, cat)
			}

			displayPath := folderPath
			if displayPath == "" {
				displayPath = "(root)"
			}

			return render.JSON(os.Stdout, Listing{
				FolderPath: displayPath,
				FolderID:   folderID,
				FileCount:  len(files),
				Files:      files,
			})
		},
	}
}
