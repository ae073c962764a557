package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/viper"

	"github.com/meridianfirm/firmdesk/internal/api"
	"github.com/meridianfirm/firmdesk/internal/cli"
	"github.com/meridianfirm/firmdesk/internal/common"
	"github.com/meridianfirm/firmdesk/internal/config"
	"github.com/meridianfirm/firmdesk/internal/session"
)

// newSessionStore opens the session state file configured at session.path,
// falling back to the XDG default.
func newSessionStore() (session.Store, error) {
	path := config.ExpandPath(viper.GetString("session.path"))
	return session.NewFileStore(path)
}

// newAPIClient builds the backend client from config. It does not require a
// session; commands that do call requireSession first.
func newAPIClient() (*api.Client, session.Store, error) {
	store, err := newSessionStore()
	if err != nil {
		return nil, nil, err
	}

	var opts []api.Option
	if seconds := viper.GetInt("api.timeout"); seconds > 0 {
		opts = append(opts, api.WithTimeout(time.Duration(seconds)*time.Second))
	}

	client, err := api.New(viper.GetString("api.base_url"), store, opts...)
	if err != nil {
		return nil, nil, err
	}
	return client, store, nil
}

// authedClient builds the backend client and enforces the session gate:
// commands behind it refuse to run without stored credentials.
func authedClient() (*api.Client, error) {
	client, store, err := newAPIClient()
	if err != nil {
		return nil, err
	}
	if !session.HasSession(store) {
		return nil, common.NewUserError("not logged in; run 'firmdesk auth login' first", common.ErrNotLoggedIn)
	}
	return client, nil
}

// newTable creates the standard two-space-padded table writer. Callers must
// Flush it.
func newTable() *tabwriter.Writer {
	return tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
}

// printTableHeader writes a styled header row followed by a dashed rule.
func printTableHeader(w *tabwriter.Writer, columns ...string) {
	styled := make([]string, len(columns))
	rules := make([]string, len(columns))
	for i, col := range columns {
		styled[i] = cli.HeaderStyle.Render(col)
		rules[i] = strings.Repeat("-", max(len(col), 4))
	}
	fmt.Fprintln(w, strings.Join(styled, "\t"))
	fmt.Fprintln(w, strings.Join(rules, "\t"))
}

// parseID parses a positional id argument.
func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return 0, common.NewUserError(fmt.Sprintf("invalid id %q", arg), err)
	}
	return id, nil
}

// parseSetFlags turns repeated --set key=value flags into a PATCH payload.
// Integer-looking values are sent as numbers so foreign keys round-trip.
func parseSetFlags(pairs []string) (map[string]any, error) {
	if len(pairs) == 0 {
		return nil, common.NewUserError("nothing to update; pass at least one --set key=value", nil)
	}

	fields := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		key, value, found := strings.Cut(pair, "=")
		if !found || key == "" {
			return nil, common.NewUserError(fmt.Sprintf("invalid --set %q; expected key=value", pair), nil)
		}
		if n, err := strconv.Atoi(value); err == nil {
			fields[key] = n
		} else {
			fields[key] = value
		}
	}
	return fields, nil
}

// orDash substitutes a placeholder for empty display values.
func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
