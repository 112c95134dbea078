package main

import (
	"fmt"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/target/carematch-ui/internal/domain/application"
)

type overrideRow struct {
	EntityID      string    `json:"entityId"`
	Status        string    `json:"status"`
	DisplayStatus string    `json:"displayStatus"`
	Timestamp     time.Time `json:"timestamp"`
}

func newStatusCmd(app *adminApp, output func() string) *cobra.Command {
	var clientID string
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Inspect or edit the application status overrides of a browser context",
	}
	addClientFlag(cmd, &clientID)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded status overrides",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			state, err := app.clientState(cmd.Context(), clientID)
			if err != nil {
				return err
			}
			all := state.Statuses.All(cmd.Context())
			rows := make([]overrideRow, 0, len(all))
			for id, o := range all {
				rows = append(rows, overrideRow{EntityID: id, Status: o.Status, DisplayStatus: o.DisplayStatus, Timestamp: o.RecordedAt})
			}
			sort.Slice(rows, func(i, j int) bool { return rows[i].EntityID < rows[j].EntityID })
			return printOverrides(cmd, output(), rows)
		},
	}

	getCmd := &cobra.Command{
		Use:   "get <application-id>",
		Short: "Show one status override",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := app.clientState(cmd.Context(), clientID)
			if err != nil {
				return err
			}
			o, ok := state.Statuses.Get(cmd.Context(), args[0])
			if !ok {
				return fmt.Errorf("no status override recorded for %s", args[0])
			}
			return printOverrides(cmd, output(), []overrideRow{toRow(o)})
		},
	}

	setCmd := &cobra.Command{
		Use:   "set <application-id> <status>",
		Short: "Record a status override without contacting the backend",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !application.IsKnownStatus(args[1]) {
				return fmt.Errorf("unknown status %q (valid options: %s, %s, %s, %s)", args[1],
					application.StatusPending, application.StatusReviewed, application.StatusHired, application.StatusRejected)
			}
			state, err := app.clientState(cmd.Context(), clientID)
			if err != nil {
				return err
			}
			o, err := state.Statuses.StoreUpdate(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			return printOverrides(cmd, output(), []overrideRow{toRow(o)})
		},
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Forget every status override",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			state, err := app.clientState(cmd.Context(), clientID)
			if err != nil {
				return err
			}
			if err := state.Statuses.ClearAll(cmd.Context()); err != nil {
				return err
			}
			return writeln(cmd.OutOrStdout(), "status overrides cleared")
		},
	}

	cmd.AddCommand(listCmd, getCmd, setCmd, clearCmd)
	return cmd
}

func toRow(o application.StatusOverride) overrideRow {
	return overrideRow{EntityID: o.EntityID, Status: o.Status, DisplayStatus: o.DisplayStatus, Timestamp: o.RecordedAt}
}

func printOverrides(cmd *cobra.Command, output string, rows []overrideRow) error {
	if output == outputJSON {
		return writeJSON(cmd.OutOrStdout(), rows)
	}
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	if err := writeln(tw, "APPLICATION\tSTATUS\tDISPLAY\tRECORDED"); err != nil {
		return fmt.Errorf("write status header: %w", err)
	}
	for _, r := range rows {
		if err := writef(tw, "%s\t%s\t%s\t%s\n", r.EntityID, r.Status, r.DisplayStatus, r.Timestamp.UTC().Format(time.RFC3339)); err != nil {
			return fmt.Errorf("write status row %s: %w", r.EntityID, err)
		}
	}
	return tw.Flush()
}

type sessionRow struct {
	Authenticated bool   `json:"authenticated"`
	Token         string `json:"token,omitempty"`
	Role          string `json:"role,omitempty"`
}

func newSessionCmd(app *adminApp, output func() string) *cobra.Command {
	var clientID string
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Inspect or clear the session of a browser context",
	}
	addClientFlag(cmd, &clientID)

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show the stored session; the token is masked",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			state, err := app.clientState(cmd.Context(), clientID)
			if err != nil {
				return err
			}
			s := state.Sessions.Snapshot(cmd.Context())
			row := sessionRow{Authenticated: s.HasToken(), Token: maskToken(s.Token), Role: string(s.Role)}
			if output() == outputJSON {
				return writeJSON(cmd.OutOrStdout(), row)
			}
			if !row.Authenticated {
				return writeln(cmd.OutOrStdout(), "anonymous")
			}
			return writef(cmd.OutOrStdout(), "token=%s role=%s\n", row.Token, row.Role)
		},
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Sign the browser context out",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			state, err := app.clientState(cmd.Context(), clientID)
			if err != nil {
				return err
			}
			if err := state.Sessions.ClearSession(cmd.Context()); err != nil {
				return err
			}
			return writeln(cmd.OutOrStdout(), "session cleared")
		},
	}

	cmd.AddCommand(showCmd, clearCmd)
	return cmd
}

// maskToken keeps the last four characters.
func maskToken(token string) string {
	if token == "" {
		return ""
	}
	if len(token) <= 4 {
		return "****"
	}
	return "****" + token[len(token)-4:]
}
