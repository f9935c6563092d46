package cli

import (
	"os"

	"github.com/spf13/cobra"
	"google.golang.org/api/drivelabels/v2"

	"github.com/driveops/labelctl/internal/render"
)

func newLabelsCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "labels",
		Short: "Dump the full label schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := o.newClient(cmd.Context())
			if err != nil {
				return err
			}

			schema, err := client.ListLabelSchema()
			if err != nil {
				return err
			}

			return render.JSON(os.Stdout, struct {
				Labels []*drivelabels.GoogleAppsDriveLabelsV2Label `json:"labels"`
			}{Labels: schema})
		},
	}
}
