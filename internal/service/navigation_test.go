package service

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/target/carematch-ui/internal/domain/auth"
	"github.com/target/carematch-ui/internal/domain/navigation"
	"github.com/target/carematch-ui/internal/observability/metrics"
)

func TestNewNavigationService_Defaults(t *testing.T) {
	svc := NewNavigationService(NavigationServiceOptions{Routes: navigation.DefaultRouteTable()})
	assert.Equal(t, navigation.DefaultGuardPaths(), svc.Paths())
	assert.NotEmpty(t, svc.Routes())

	assert.Panics(t, func() { NewNavigationService(NavigationServiceOptions{}) })
}

func TestNavigationService_BrowseAndPostJobScenario(t *testing.T) {
	state, _ := newClientState(t)
	svc := NewNavigationService(NavigationServiceOptions{Routes: navigation.DefaultRouteTable()})
	ctx := context.Background()

	d := svc.Authorize(ctx, state.Sessions, "/browse-carers")
	assert.True(t, d.IsProceed(), "anonymous preview")

	d = svc.Authorize(ctx, state.Sessions, "/post-job")
	assert.Equal(t, navigation.RedirectTo("/", navigation.ReasonMissingToken), d)

	require.NoError(t, state.Sessions.SetSession(ctx, "emp-token", domainauth.RoleEmployer))

	assert.True(t, svc.Authorize(ctx, state.Sessions, "/post-job").IsProceed())
	assert.True(t, svc.Authorize(ctx, state.Sessions, "/jobseeker-dashboard").IsProceed())
	assert.True(t, svc.Authorize(ctx, state.Sessions, "/browse-carers").IsProceed())

	override, err := state.Statuses.StoreUpdate(ctx, "app-42", "Hired")
	require.NoError(t, err)
	assert.Equal(t, "Approved", override.DisplayStatus)

	got, ok := state.Statuses.Get(ctx, "app-42")
	require.True(t, ok)
	assert.Equal(t, "Hired", got.Status)
	assert.Equal(t, "Approved", got.DisplayStatus)
}

func TestNavigationService_JobseekerIsSentToLanding(t *testing.T) {
	state, _ := newClientState(t)
	svc := NewNavigationService(NavigationServiceOptions{Routes: navigation.DefaultRouteTable()})
	ctx := context.Background()
	require.NoError(t, state.Sessions.SetSession(ctx, "js-token", domainauth.RoleJobseeker))

	for _, target := range []string{"/browse-carers", "/carers/17", "/post-job", "/reviews/js-2"} {
		d := svc.Authorize(ctx, state.Sessions, target)
		assert.Equal(t, navigation.OutcomeRedirect, d.Outcome, target)
		assert.Equal(t, "/jobseeker-dashboard", d.Location, target)
	}
	assert.True(t, svc.Authorize(ctx, state.Sessions, "/my-profile").IsProceed())
	assert.True(t, svc.Authorize(ctx, state.Sessions, "/unknown/page").IsProceed())
}

func TestNavigationService_ConfiguredLoginRedirect(t *testing.T) {
	state, _ := newClientState(t)
	svc := NewNavigationService(NavigationServiceOptions{
		Routes: navigation.DefaultRouteTable(),
		Paths:  navigation.GuardPaths{UnauthenticatedRedirect: "/login"},
	})

	d := svc.Authorize(context.Background(), state.Sessions, "/applications?page=2")
	assert.Equal(t, "/login", d.Location)
	assert.Equal(t, "/jobseeker-dashboard", svc.Paths().JobseekerLanding)
}

func TestNavigationService_HalfWrittenSessionIsAnonymous(t *testing.T) {
	state, kv := newClientState(t)
	ctx := context.Background()
	require.NoError(t, kv.SetMany(ctx, map[string][]byte{"ctx:{test-client}:token": []byte("orphan")}))

	svc := NewNavigationService(NavigationServiceOptions{Routes: navigation.DefaultRouteTable()})
	d := svc.Authorize(ctx, state.Sessions, "/my-profile")
	assert.Equal(t, "/", d.Location)
	assert.True(t, svc.Authorize(ctx, state.Sessions, "/browse-carers").IsProceed())
}

func TestNavigationService_WarnsOnIncompleteSessionRedirect(t *testing.T) {
	state, kv := newClientState(t)
	ctx := context.Background()
	require.NoError(t, kv.SetMany(ctx, map[string][]byte{
		"ctx:{test-client}:token":    []byte("tok"),
		"ctx:{test-client}:userRole": []byte("admin"),
	}))

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn}))
	svc := NewNavigationService(NavigationServiceOptions{Routes: navigation.DefaultRouteTable(), Logger: logger})

	assert.True(t, svc.Authorize(ctx, state.Sessions, "/browse-carers").IsProceed())
	assert.Empty(t, buf.String(), "a proceed decision is not worth a warning")

	d := svc.Authorize(ctx, state.Sessions, "/applications")
	assert.Equal(t, navigation.RedirectTo("/", navigation.ReasonMissingToken), d)
	assert.Contains(t, buf.String(), "incomplete stored session treated as anonymous")
	assert.Contains(t, buf.String(), `"route":"/applications"`)

	buf.Reset()
	require.NoError(t, state.Sessions.ClearSession(ctx))
	svc.Authorize(ctx, state.Sessions, "/applications")
	assert.Empty(t, buf.String(), "a plain anonymous session is not reported")
}

func TestNavigationService_AuthorizeRequestUsesGivenDescriptor(t *testing.T) {
	state, _ := newClientState(t)
	svc := NewNavigationService(NavigationServiceOptions{Routes: navigation.DefaultRouteTable()})
	ctx := context.Background()

	req := svc.Resolve("/reviews/js-1")
	req.TargetPath = "/reviews/js/1"
	d := svc.AuthorizeRequest(ctx, state.Sessions, req)
	assert.Equal(t, navigation.RedirectTo("/", navigation.ReasonMissingToken), d)
	assert.True(t, svc.Authorize(ctx, state.Sessions, "/reviews/js/1").IsProceed(), "unknown path is public")
}

func TestNavigationService_CountsDecisions(t *testing.T) {
	state, _ := newClientState(t)
	rec := &metrics.Recorder{}
	svc := NewNavigationService(NavigationServiceOptions{Routes: navigation.DefaultRouteTable(), Metrics: rec})
	ctx := context.Background()

	svc.Authorize(ctx, state.Sessions, "/post-job")
	svc.Authorize(ctx, state.Sessions, "/browse-carers")

	assert.Equal(t, int64(1), rec.Total(metrics.NavigationDecision, map[string]string{
		"outcome": "redirect", "policy": "employer_only", "reason": navigation.ReasonMissingToken,
	}))
	assert.Equal(t, int64(1), rec.Total(metrics.NavigationDecision, map[string]string{
		"outcome": "proceed", "reason": navigation.ReasonAnonymousPreview,
	}))
}
