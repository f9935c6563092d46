package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/oauth2"

	"github.com/driveops/labelctl/internal/gauth"
)

func newAuthCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "auth",
		Short: "Authorize labelctl and store an OAuth token",
		Long: `Run the OAuth authorization flow for the configured client
credentials and store the resulting token for later commands.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			oauthCfg, err := gauth.NewOAuthConfig(o.cfg.CredentialsPath, scopes()...)
			if err != nil {
				return err
			}

			authURL := oauthCfg.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
			fmt.Printf("Open this link in your browser:\n\n  %s\n\n", authURL)
			fmt.Print("Paste the authorization code: ")

			var code string
			if _, err := fmt.Fscan(cmd.InOrStdin(), &code); err != nil {
				return fmt.Errorf("failed to read authorization code: %w", err)
			}

			token, err := oauthCfg.Exchange(cmd.Context(), code)
			if err != nil {
				return fmt.Errorf("failed to exchange authorization code: %w", err)
			}

			if err := gauth.SaveToken(o.cfg.TokenPath, token); err != nil {
				return err
			}

			fmt.Println("Token saved")
			return nil
		},
	}
}
