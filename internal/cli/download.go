package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newDownloadCmd(o *rootOptions) *cobra.Command {
	var dest string

	cmd := &cobra.Command{
		Use:   "download <file-id>",
		Short: "Download a file (Workspace documents export to PDF)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := o.newClient(cmd.Context())
			if err != nil {
				return err
			}

			saved, err := client.Download(args[0], dest)
			if err != nil {
				return err
			}

			fmt.Printf("Download complete: %s\n", saved)
			return nil
		},
	}

	cmd.Flags().StringVar(&dest, "dest", "", "destination path or directory")
	return cmd
}
