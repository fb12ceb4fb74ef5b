package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// version is set at build time.
var version = "dev"

func main() {
	_ = godotenv.Load()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	os.Exit(execute(ctx, newRootCmd(), os.Args[1:]))
}

// execute runs root and turns its error into an exit code.
func execute(ctx context.Context, root *cobra.Command, args []string) int {
	// Running without a subcommand checks the calendar.
	if len(args) == 0 {
		args = []string{"check"}
	}
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return 0
	}
	var exitErr *exitError
	if errors.As(err, &exitErr) {
		return exitErr.code
	}
	fmt.Fprintln(root.ErrOrStderr(), "Error:", err)
	return 1
}

// exitError ends the process with code without printing anything.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "firstmeeting",
		Short: "Mails you a reminder of your first meeting of the day",
		Long: `firstmeeting looks at your Google Calendar for the next confirmed meeting
and, when it is today, sends you an email about it through Gmail.

It is meant to be run by a scheduler (cron, systemd timers) early in the day.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetVersionTemplate(`{{printf "firstmeeting version %s\n" .Version}}`)

	opts.addFlags(cmd)
	cmd.AddCommand(newCheckCmd(opts))
	cmd.AddCommand(newLoginCmd(opts))
	return cmd
}
