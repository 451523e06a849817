package main

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/loykin/vercelenv/internal/constants"
)

var rootCmd = &cobra.Command{
	Use:   "vercelenv",
	Short: "Add an environment variable to a Vercel project",
	Long: `Sends one POST to the Vercel API to add an environment variable to a project,
prints the status and raw response, then reports success (200/201) or failure.

The API token is read from ` + constants.TokenEnvVar + ` unless --token is given.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(context.Background(), viper.GetViper(), cmd.OutOrStdout())
	},
}

func init() {
	v := viper.GetViper()

	// Environment variables support: VERCELENV_PROJECT_ID, VERCELENV_TARGET, ...
	v.SetEnvPrefix(constants.EnvPrefix)
	v.AutomaticEnv()

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "path to a config yaml (default "+constants.DefaultConfigPath+" when present)")
	pf.String("log-level", "", "log level: error, warn, info, debug")
	pf.String("log-format", "", "log format: text, json, color")

	f := rootCmd.Flags()
	f.String("token", "", "Vercel API token (prefer the "+constants.TokenEnvVar+" environment variable)")
	f.String("project-id", "", "Vercel project id (default "+constants.DefaultProjectID+")")
	f.String("team-id", "", "Vercel team id, sent as the teamId query parameter")
	f.String("api-base", "", "API base URL (default "+constants.DefaultAPIBase+")")
	f.String("key", "", "environment variable name (default "+constants.DefaultKey+")")
	f.String("value", "", "environment variable value")
	f.String("type", "", "variable type: encrypted, plain, sensitive, secret, system (default "+constants.DefaultType+")")
	f.StringSlice("target", nil, "deployment targets (default production,preview,development)")
	f.Bool("upsert", false, "overwrite an existing variable with the same key and target")
	f.Bool("insecure", false, "skip TLS certificate verification")
	f.String("min-tls-version", "", "minimum TLS version (1.0-1.3)")
	f.String("max-tls-version", "", "maximum TLS version (1.0-1.3)")
	f.Bool("dry-run", false, "print the request (token masked) without sending it")

	_ = v.BindPFlag("config", pf.Lookup("config"))
	_ = v.BindPFlag("log_level", pf.Lookup("log-level"))
	_ = v.BindPFlag("log_format", pf.Lookup("log-format"))
	_ = v.BindPFlag("token", f.Lookup("token"))
	_ = v.BindPFlag("project_id", f.Lookup("project-id"))
	_ = v.BindPFlag("team_id", f.Lookup("team-id"))
	_ = v.BindPFlag("api_base", f.Lookup("api-base"))
	_ = v.BindPFlag("key", f.Lookup("key"))
	_ = v.BindPFlag("value", f.Lookup("value"))
	_ = v.BindPFlag("type", f.Lookup("type"))
	_ = v.BindPFlag("target", f.Lookup("target"))
	_ = v.BindPFlag("upsert", f.Lookup("upsert"))
	_ = v.BindPFlag("insecure", f.Lookup("insecure"))
	_ = v.BindPFlag("min_tls_version", f.Lookup("min-tls-version"))
	_ = v.BindPFlag("max_tls_version", f.Lookup("max-tls-version"))
	_ = v.BindPFlag("dry_run", f.Lookup("dry-run"))

	rootCmd.AddCommand(initCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		exitHandler.LogFatalError(err, "command execution failed")
	}
}
