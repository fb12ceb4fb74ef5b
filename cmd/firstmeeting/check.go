package main

import (
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/guilherme-santos/firstmeeting/calendar"
	"github.com/guilherme-santos/firstmeeting/calendar/google"
	"github.com/guilherme-santos/firstmeeting/internal"
	"github.com/guilherme-santos/firstmeeting/internal/config"
	"github.com/guilherme-santos/firstmeeting/internal/notifier"
	"github.com/guilherme-santos/firstmeeting/internal/reminder"
	"github.com/guilherme-santos/firstmeeting/internal/selector"
	"github.com/guilherme-santos/firstmeeting/internal/sqlite"
	"github.com/guilherme-santos/firstmeeting/mail/gmail"
)

// Exit codes used with --exit-status.
const (
	exitNoAction   = 10
	exitSendFailed = 11
)

type checkOptions struct {
	sender     string
	recipient  string
	calendarID string
	pageSize   int64
	sameDay    bool
	timezone   string
	historyDB  string
	timeout    time.Duration
	exitStatus bool
}

func (o *checkOptions) overrides(cmd *cobra.Command) map[string]interface{} {
	m := map[string]interface{}{}
	flags := cmd.Flags()
	if flags.Changed("sender") {
		m["sender"] = o.sender
	}
	if flags.Changed("recipient") {
		m["recipient"] = o.recipient
	}
	if flags.Changed("calendar-id") {
		m["calendar_id"] = o.calendarID
	}
	if flags.Changed("page-size") {
		m["page_size"] = o.pageSize
	}
	if flags.Changed("same-day") {
		m["same_day"] = o.sameDay
	}
	if flags.Changed("timezone") {
		m["timezone"] = o.timezone
	}
	if flags.Changed("history-db") {
		m["history_db"] = o.historyDB
	}
	if flags.Changed("timeout") {
		m["timeout"] = o.timeout
	}
	return m
}

func newCheckCmd(rootOpts *rootOptions) *cobra.Command {
	opts := &checkOptions{}

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Send a reminder if the next meeting is today",
		Long: `Look at the upcoming events of the calendar and pick the first confirmed
event with a start time. All-day and unconfirmed events are skipped. If that
event is today, a reminder with its time and summary is mailed.

The first run opens the Google consent screen; later runs reuse the stored
token.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, rootOpts, opts.overrides(cmd))
			if err != nil {
				return err
			}
			if err := a.cfg.Validate(); err != nil {
				return err
			}

			outcome, err := a.check(cmd)
			if err != nil {
				return err
			}
			a.logger.Debug("Check finished", slog.String("outcome", outcome.String()))

			if opts.exitStatus {
				if code := exitCode(outcome); code != 0 {
					return &exitError{code: code}
				}
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.sender, "sender", "", "address the reminder is sent from")
	flags.StringVar(&opts.recipient, "recipient", "", "address the reminder is sent to")
	flags.StringVar(&opts.calendarID, "calendar-id", "primary", "calendar to look at")
	flags.Int64Var(&opts.pageSize, "page-size", 30, "how many upcoming events to look at")
	flags.BoolVar(&opts.sameDay, "same-day", true, "only remind about events happening today")
	flags.StringVar(&opts.timezone, "timezone", "", "timezone deciding what today is (default system timezone)")
	flags.StringVar(&opts.historyDB, "history-db", "", "SQLite file remembering sent reminders, disabled when empty")
	flags.DurationVar(&opts.timeout, "timeout", 30*time.Second, "timeout of each network call")
	flags.BoolVar(&opts.exitStatus, "exit-status", false, "exit with 10 when there was nothing to send and 11 when sending failed")
	return cmd
}

func (a *app) check(cmd *cobra.Command) (reminder.Outcome, error) {
	authProvider, err := a.authProvider(cmd)
	if err != nil {
		return "", err
	}
	ctx := a.oauthContext(cmd.Context())

	cred, err := authProvider.Obtain(ctx, scopes)
	if err != nil {
		return "", err
	}

	loc, err := a.cfg.Location()
	if err != nil {
		return "", err
	}

	mux := calendar.NewMux()
	mux.Register(config.GooglePlatform, google.NewClient(a.logger))

	cal := &internal.Calendar{
		Platform:   a.cfg.Platform,
		ProviderID: a.cfg.CalendarID,
	}

	sel := selector.New(a.logger, mux, cal)
	sel.PageSize = a.cfg.PageSize
	sel.Location = loc

	n := notifier.New(a.logger, gmail.NewClient(a.logger), a.cfg.Sender, a.cfg.Recipient)
	n.Location = loc

	checker := reminder.NewChecker(a.logger, cal, sel, n)
	checker.SameDay = a.cfg.SameDay
	checker.Timeout = a.cfg.Timeout

	if a.cfg.HistoryDB != "" {
		history, err := sqlite.Open(a.cfg.HistoryDB)
		if err != nil {
			return "", err
		}
		defer history.Close()
		checker.History = history
	}

	return checker.Run(ctx, cred, time.Now())
}

func exitCode(o reminder.Outcome) int {
	switch o {
	case reminder.NoEvent, reminder.NotToday, reminder.AlreadySent:
		return exitNoAction
	case reminder.SendFailed:
		return exitSendFailed
	}
	return 0
}
