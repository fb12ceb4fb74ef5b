package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLoginCmd(rootOpts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Authorize access to your calendar and Gmail",
		Long: `Open the Google consent screen and store the resulting token, replacing
any token stored before. Useful to authorize before the first scheduled run.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, rootOpts, map[string]interface{}{})
			if err != nil {
				return err
			}
			authProvider, err := a.authProvider(cmd)
			if err != nil {
				return err
			}

			if _, err := authProvider.Login(a.oauthContext(cmd.Context()), scopes); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Token saved to %s\n", a.cfg.TokenFile)
			return nil
		},
	}
}
