package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/oauth2"

	"github.com/guilherme-santos/firstmeeting/calendar/google"
	"github.com/guilherme-santos/firstmeeting/internal/auth"
	"github.com/guilherme-santos/firstmeeting/internal/config"
	"github.com/guilherme-santos/firstmeeting/internal/logging"
	"github.com/guilherme-santos/firstmeeting/mail/gmail"
)

var scopes = []string{google.Scope, gmail.Scope}

type rootOptions struct {
	configFile      string
	verbose         bool
	tokenFile       string
	credentialsFile string
}

func (o *rootOptions) addFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.StringVar(&o.configFile, "config", "", "config file (default "+config.DefaultFile+" next to the binary)")
	flags.BoolVarP(&o.verbose, "verbose", "v", false, "enable debug logs")
	flags.StringVar(&o.tokenFile, "token-file", "", "where the OAuth token is stored")
	flags.StringVar(&o.credentialsFile, "credentials-file", "", "OAuth client secrets downloaded from Google Cloud")
}

// overrides returns the config keys of the persistent flags set on cmd.
func (o *rootOptions) overrides(cmd *cobra.Command) map[string]interface{} {
	m := map[string]interface{}{}
	if cmd.Flags().Changed("token-file") {
		m["token_file"] = o.tokenFile
	}
	if cmd.Flags().Changed("credentials-file") {
		m["credentials_file"] = o.credentialsFile
	}
	return m
}

type app struct {
	cfg    *config.Config
	logger *slog.Logger
}

func newApp(cmd *cobra.Command, opts *rootOptions, overrides map[string]interface{}) (*app, error) {
	logger := logging.New(cmd.ErrOrStderr(), opts.verbose)

	baseDir := config.ExecDir()
	configFile := opts.configFile
	if configFile == "" {
		configFile = filepath.Join(baseDir, config.DefaultFile)
	}
	for k, v := range opts.overrides(cmd) {
		overrides[k] = v
	}

	cfg, err := config.Load(configFile, baseDir, overrides)
	if err != nil {
		return nil, err
	}
	logger.Debug("Configuration loaded", slog.String("file", configFile), slog.String("token_file", cfg.TokenFile))

	return &app{
		cfg:    cfg,
		logger: logger,
	}, nil
}

func (a *app) authProvider(cmd *cobra.Command) (*auth.Provider, error) {
	oauthCfg, err := auth.LoadClientConfig(a.cfg.CredentialsFile, scopes...)
	if err != nil {
		return nil, err
	}
	provider := auth.NewProvider(oauthCfg, auth.NewFileStore(a.cfg.TokenFile), a.logger)
	provider.Interactive = auth.Interactive{
		Prompt: func(authURL string) {
			fmt.Fprintf(cmd.ErrOrStderr(), "\nGo to the following link in your browser\n%s\n\n", authURL)
		},
	}
	return provider, nil
}

// oauthContext makes token exchanges and refreshes use a bounded HTTP client.
func (a *app) oauthContext(ctx context.Context) context.Context {
	return context.WithValue(ctx, oauth2.HTTPClient, &http.Client{Timeout: a.cfg.Timeout})
}
