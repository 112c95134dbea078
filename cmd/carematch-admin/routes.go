package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/target/carematch-ui/config"
	domainauth "github.com/target/carematch-ui/internal/domain/auth"
	"github.com/target/carematch-ui/internal/domain/navigation"
	"github.com/target/carematch-ui/internal/service"
)

func (a *adminApp) navigation() (*service.NavigationService, error) {
	routes, err := config.LoadRouteTable(a.cfg.Navigation.RoutesFile)
	if err != nil {
		return nil, err
	}
	return service.NewNavigationService(service.NavigationServiceOptions{
		Routes: routes,
		Paths: navigation.GuardPaths{
			UnauthenticatedRedirect: a.cfg.Navigation.UnauthenticatedRedirect,
			JobseekerLanding:        a.cfg.Navigation.JobseekerLanding,
		},
		Logger: a.logger,
	}), nil
}

func newRoutesCmd(app *adminApp, output func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "Print the compiled route table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			nav, err := app.navigation()
			if err != nil {
				return err
			}
			routes := nav.Routes()
			if output() == outputJSON {
				return writeJSON(cmd.OutOrStdout(), routes)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			if err := writeln(tw, "PATH\tNAME\tPOLICY"); err != nil {
				return fmt.Errorf("write routes header: %w", err)
			}
			for _, r := range routes {
				if err := writef(tw, "%s\t%s\t%s\n", r.Path, r.Name, r.Policy); err != nil {
					return fmt.Errorf("write route %s: %w", r.Path, err)
				}
			}
			return tw.Flush()
		},
	}
}

func newAuthorizeCmd(app *adminApp, output func() string) *cobra.Command {
	var (
		token    string
		role     string
		clientID string
	)
	cmd := &cobra.Command{
		Use:   "authorize <path>",
		Short: "Evaluate the navigation guard for a path",
		Long: `Evaluate the navigation guard for a path, either for a session given with
--token/--role or for the stored session of a browser context given with --client.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			nav, err := app.navigation()
			if err != nil {
				return err
			}
			target := args[0]

			var decision navigation.Decision
			if clientID != "" {
				if token != "" || role != "" {
					return fmt.Errorf("--client cannot be combined with --token or --role")
				}
				state, err := app.clientState(cmd.Context(), clientID)
				if err != nil {
					return err
				}
				decision = nav.Authorize(cmd.Context(), state.Sessions, target)
			} else {
				session := domainauth.Session{Token: token}
				if role != "" {
					parsed, ok := domainauth.ParseRole(role)
					if !ok {
						return fmt.Errorf("invalid --role %q (valid options: jobseeker, employer)", role)
					}
					session.Role = parsed
				}
				decision = navigation.Authorize(nav.Resolve(target), session, nav.Paths())
			}

			if output() == outputJSON {
				return writeJSON(cmd.OutOrStdout(), decision)
			}
			route := nav.Resolve(target).Descriptor
			if decision.IsProceed() {
				return writef(cmd.OutOrStdout(), "proceed\troute=%s policy=%s reason=%s\n", route.Path, route.Policy, decision.Reason)
			}
			return writef(cmd.OutOrStdout(), "redirect %s\troute=%s policy=%s reason=%s\n",
				decision.Location, route.Path, route.Policy, decision.Reason)
		},
	}
	cmd.Flags().StringVar(&token, "token", "", "session token (empty means anonymous)")
	cmd.Flags().StringVar(&role, "role", "", "session role: jobseeker or employer")
	cmd.Flags().StringVar(&clientID, "client", "", "evaluate the stored session of this browser context")
	return cmd
}
