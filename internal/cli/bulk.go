package cli

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newBulkCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "bulk <folder-path> <label> <field> <choice>",
		Short: "Set a selection label field on every file in a folder",
		Long: `Apply or update a selection-type label field on all files directly
inside a folder. Files are updated one at a time; a failure on one file
is counted and reported but does not abort the rest of the batch.`,
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			folderPath := args[0]
			runID := uuid.NewString()
			log := slog.With("run", runID)

			client, err := o.newClient(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Printf("Resolving folder path %q...\n", folderPath)
			folderID, err := client.ResolvePath(folderPath)
			if err != nil {
				return err
			}
			fmt.Printf("  -> folder ID %s\n", folderID)

			sel, err := resolveSelection(client, args[1], args[2], args[3])
			if err != nil {
				return err
			}
			fmt.Printf("Target: label=%q field=%q value=%q\n", sel.LabelName, sel.FieldName, sel.ChoiceName)

			files, err := client.ListChildren(folderID)
			if err != nil {
				return err
			}
			fmt.Printf("Found %d files\n", len(files))
			if len(files) == 0 {
				fmt.Println("No files to update")
				return nil
			}

			updated := 0
			for i, f := range files {
				fmt.Printf("[%d/%d] Updating %q... ", i+1, len(files), f.Name)
				if err := client.SetSelection(f.ID, sel.LabelID, sel.FieldID, sel.ChoiceID); err != nil {
					fmt.Println("failed")
					log.Warn("Update failed", "file", f.ID, "name", f.Name, "error", err)
					continue
				}
				fmt.Println("ok")
				updated++
			}

			// Per-file failures are reported in the summary, never via
			// the exit code.
			fmt.Printf("\nCompleted: updated %d/%d files (run %s)\n", updated, len(files), runID)
			return nil
		},
	}
}
