// Package cli implements the labelctl command tree.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/driveops/labelctl/internal/config"
	"github.com/driveops/labelctl/internal/drive"
	"github.com/driveops/labelctl/internal/gauth"
	"github.com/driveops/labelctl/internal/logger"
	gdrive "google.golang.org/api/drive/v3"
	"google.golang.org/api/drivelabels/v2"
	"google.golang.org/api/option"
)

// rootOptions carries configuration resolved from file, environment,
// and flags, in that precedence order (flags win).
type rootOptions struct {
	cfg config.Config
}

// Execute runs the CLI. Cobra prints the error; callers only need the
// non-nil result to set the exit code.
func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd creates the root command with all subcommands.
func NewRootCmd() *cobra.Command {
	o := &rootOptions{}

	var (
		driveID     string
		credentials string
		token       string
		pageSize    int64
		debug       bool
		jsonLogs    bool
		logDir      string
	)

	rootCmd := &cobra.Command{
		Use:           "labelctl",
		Short:         "Manage Drive Labels on files in a Google Shared Drive",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			o.cfg = config.Load()

			f := cmd.Flags()
			if f.Changed("drive") {
				o.cfg.DriveID = driveID
			}
			if f.Changed("credentials") {
				o.cfg.CredentialsPath = credentials
			}
			if f.Changed("token") {
				o.cfg.TokenPath = token
			}
			if f.Changed("page-size") {
				o.cfg.PageSize = pageSize
			}
			if f.Changed("debug") {
				o.cfg.Debug = debug
			}
			if f.Changed("json-logs") {
				o.cfg.JSONLogs = jsonLogs
			}
			if f.Changed("log-dir") {
				o.cfg.LogDir = logDir
			}

			return logger.Init(logger.Config{
				LogDir: o.cfg.LogDir,
				Debug:  o.cfg.Debug,
				JSON:   o.cfg.JSONLogs,
			})
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&driveID, "drive", "", "shared drive ID (overrides config and LABELCTL_DRIVE_ID)")
	pf.StringVar(&credentials, "credentials", "", "path to OAuth client credentials JSON")
	pf.StringVar(&token, "token", "", "path to stored OAuth token JSON")
	pf.Int64Var(&pageSize, "page-size", config.DefaultPageSize, "page size for file listing calls")
	pf.BoolVar(&debug, "debug", false, "enable debug logging")
	pf.BoolVar(&jsonLogs, "json-logs", false, "write logs as JSON")
	pf.StringVar(&logDir, "log-dir", "", "directory for a rotating log file")

	rootCmd.AddCommand(newAuthCmd(o))
	rootCmd.AddCommand(newLsCmd(o))
	rootCmd.AddCommand(newLabelsCmd(o))
	rootCmd.AddCommand(newApplyCmd(o))
	rootCmd.AddCommand(newBulkCmd(o))
	rootCmd.AddCommand(newDownloadCmd(o))

	return rootCmd
}

// scopes returns the OAuth scopes every command requests: full Drive
// access for listing and label writes, plus label schema access.
func scopes() []string {
	return []string{gdrive.DriveScope, drivelabels.DriveLabelsScope}
}

// newClient builds an authenticated Drive client for the configured
// shared drive.
func (o *rootOptions) newClient(ctx context.Context) (*drive.Client, error) {
	ts, err := gauth.TokenSource(ctx, o.cfg.CredentialsPath, o.cfg.TokenPath, scopes()...)
	if err != nil {
		return nil, err
	}
	return drive.New(ctx, o.cfg.DriveID, o.cfg.PageSize, option.WithTokenSource(ts))
}
