package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

const (
	outputTable = "table"
	outputJSON  = "json"
)

func newRootCmd(app *adminApp) *cobra.Command {
	var output string

	root := &cobra.Command{
		Use:           "carematch-admin",
		Short:         "Inspect routes and persisted browser state",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			if output != outputTable && output != outputJSON {
				return fmt.Errorf("invalid --output %q (valid options: table, json)", output)
			}
			return nil
		},
	}
	root.PersistentFlags().StringVarP(&output, "output", "o", outputTable, "output format: table or json")

	out := func() string { return output }
	root.AddCommand(
		newRoutesCmd(app, out),
		newAuthorizeCmd(app, out),
		newStatusCmd(app, out),
		newSessionCmd(app, out),
	)
	return root
}

func writef(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}

func writeln(w io.Writer, args ...any) error {
	_, err := fmt.Fprintln(w, args...)
	return err
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// addClientFlag registers the --client flag shared by state commands.
func addClientFlag(cmd *cobra.Command, clientID *string) {
	cmd.PersistentFlags().StringVar(clientID, "client", "", "browser context id (value of the client_id cookie)")
	_ = cmd.MarkPersistentFlagRequired("client")
}
