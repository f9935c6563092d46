package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/driveops/labelctl/internal/catalog"
	"github.com/driveops/labelctl/internal/drive"
)

func newApplyCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "apply <file-id> <label> <field> <choice>",
		Short: "Set a selection label field on one file",
		Long: `Apply or update a selection-type label field on a single file.
Label, field, and choice accept either display names (case-insensitive)
or raw IDs; IDs take precedence when a name collides with one.`,
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			fileID := args[0]

			client, err := o.newClient(cmd.Context())
			if err != nil {
				return err
			}

			sel, err := resolveSelection(client, args[1], args[2], args[3])
			if err != nil {
				return err
			}

			fmt.Printf("Target: label=%q field=%q value=%q\n", sel.LabelName, sel.FieldName, sel.ChoiceName)
			fmt.Printf("Modifying file %s...\n", fileID)

			if err := client.SetSelection(fileID, sel.LabelID, sel.FieldID, sel.ChoiceID); err != nil {
				return err
			}

			fmt.Println("Label modified successfully")
			return nil
		},
	}
}

// resolveSelection builds the catalog and resolves the three names. A
// catalog fetch failure is fatal here: writes must never resolve against
// an empty catalog.
func resolveSelection(client *drive.Client, labelQ, fieldQ, choiceQ string) (catalog.Selection, error) {
	schema, err := client.ListLabelSchema()
	if err != nil {
		return catalog.Selection{}, err
	}
	return catalog.FromSchema(schema).ResolveSelection(labelQ, fieldQ, choiceQ)
}
