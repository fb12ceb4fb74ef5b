package main

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guilherme-santos/firstmeeting/internal/reminder"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		outcome reminder.Outcome
		want    int
	}{
		{reminder.Sent, 0},
		{reminder.NoEvent, exitNoAction},
		{reminder.NotToday, exitNoAction},
		{reminder.AlreadySent, exitNoAction},
		{reminder.SendFailed, exitSendFailed},
	}
	for _, tt := range tests {
		t.Run(tt.outcome.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, exitCode(tt.outcome))
		})
	}
}

func TestExecute(t *testing.T) {
	newRoot := func(runErr error, ran *string) *cobra.Command {
		root := &cobra.Command{Use: "test", SilenceUsage: true, SilenceErrors: true}
		for _, name := range []string{"check", "login"} {
			root.AddCommand(&cobra.Command{
				Use: name,
				RunE: func(*cobra.Command, []string) error {
					*ran = name
					return runErr
				},
			})
		}
		return root
	}

	tests := []struct {
		name     string
		args     []string
		runErr   error
		wantRan  string
		wantCode int
		wantErr  string
	}{
		{name: "defaults to check", wantRan: "check"},
		{name: "explicit subcommand", args: []string{"login"}, wantRan: "login"},
		{name: "exit status", args: []string{"check"}, runErr: &exitError{code: 10}, wantRan: "check", wantCode: 10},
		{name: "failure", args: []string{"check"}, runErr: errors.New("boom"), wantRan: "check", wantCode: 1, wantErr: "Error: boom\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ran string
			var stderr bytes.Buffer
			root := newRoot(tt.runErr, &ran)
			root.SetErr(&stderr)

			code := execute(context.Background(), root, tt.args)

			assert.Equal(t, tt.wantCode, code)
			assert.Equal(t, tt.wantRan, ran)
			assert.Equal(t, tt.wantErr, stderr.String())
		})
	}
}

func TestCheckRequiresAddresses(t *testing.T) {
	t.Setenv("FIRSTMEETING_SENDER", "")
	t.Setenv("FIRSTMEETING_RECIPIENT", "")

	var stderr bytes.Buffer
	root := newRootCmd()
	root.SetErr(&stderr)

	code := execute(context.Background(), root, []string{
		"check",
		"--config", filepath.Join(t.TempDir(), "missing.yaml"),
	})

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), `sender "" is not a valid address`)
	assert.Contains(t, stderr.String(), `recipient "" is not a valid address`)
}

func TestLoginRequiresClientSecrets(t *testing.T) {
	dir := t.TempDir()

	var stderr bytes.Buffer
	root := newRootCmd()
	root.SetErr(&stderr)

	code := execute(context.Background(), root, []string{
		"login",
		"--config", filepath.Join(dir, "missing.yaml"),
		"--credentials-file", filepath.Join(dir, "credentials.json"),
	})

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "credentials.json")
}

func TestCheckOverrides(t *testing.T) {
	cmd := newCheckCmd(&rootOptions{})
	require.NoError(t, cmd.ParseFlags([]string{"--page-size", "5", "--same-day=false", "--history-db", "h.db"}))

	opts := &checkOptions{pageSize: 5, sameDay: false, historyDB: "h.db"}
	assert.Equal(t, map[string]interface{}{
		"page_size":  int64(5),
		"same_day":   false,
		"history_db": "h.db",
	}, opts.overrides(cmd))
}
