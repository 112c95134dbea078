package httpx

import (
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/target/carematch-ui/internal/adapters/memory"
	"github.com/target/carematch-ui/internal/apiclient"
	"github.com/target/carematch-ui/internal/data"
	"github.com/target/carematch-ui/internal/domain/application"
	"github.com/target/carematch-ui/internal/domain/navigation"
	"github.com/target/carematch-ui/internal/service"
	"github.com/target/carematch-ui/internal/testutil"
)

// fakeBackend plays the marketplace API.
type fakeBackend struct {
	mu       sync.Mutex
	statuses map[string]string
	// authHeaders records the Authorization header of every request by path.
	authHeaders map[string]string
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		statuses:    map[string]string{"app-42": application.StatusPending, "app-7": application.StatusReviewed},
		authHeaders: map[string]string{},
	}
}

func (b *fakeBackend) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Email    string `json:"email"`
			Password string `json:"password"`
			Role     string `json:"role"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body.Password == "wrong" {
			WriteJSON(w, http.StatusUnauthorized, map[string]string{"message": "Invalid credentials"})
			return
		}
		WriteJSON(w, http.StatusOK, map[string]any{
			"token": "tok-" + body.Role,
			"user":  map[string]string{"email": body.Email, "role": body.Role},
		})
	})
	mux.HandleFunc("POST /auth/register", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Role string `json:"role"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		WriteJSON(w, http.StatusCreated, map[string]any{"token": "tok-new", "role": body.Role})
	})
	mux.HandleFunc("PUT /applications/{id}/status", func(w http.ResponseWriter, r *http.Request) {
		b.record(r)
		if !strings.HasPrefix(r.Header.Get("Authorization"), "Bearer ") {
			WriteJSON(w, http.StatusUnauthorized, map[string]string{"message": "No token"})
			return
		}
		// Accepted but applied later: GET /applications keeps the old value
		// until setStatus is called.
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("GET /applications", func(w http.ResponseWriter, r *http.Request) {
		b.record(r)
		b.mu.Lock()
		defer b.mu.Unlock()
		rows := make([]application.Application, 0, len(b.statuses))
		for _, id := range []string{"app-42", "app-7"} {
			rows = append(rows, application.Application{ID: id, Status: b.statuses[id]})
		}
		WriteJSON(w, http.StatusOK, rows)
	})
	mux.HandleFunc("GET /reviews/check/{id}", func(w http.ResponseWriter, r *http.Request) {
		b.record(r)
		WriteJSON(w, http.StatusOK, map[string]any{"hasReviewed": r.PathValue("id") == "js-1"})
	})
	mux.HandleFunc("GET /reviews/employer", func(w http.ResponseWriter, r *http.Request) {
		b.record(r)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte("null"))
	})
	return mux
}

func (b *fakeBackend) record(r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.authHeaders[r.URL.Path] = r.Header.Get("Authorization")
}

func (b *fakeBackend) authHeader(path string) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.authHeaders[path]
}

func (b *fakeBackend) setStatus(id, status string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.statuses[id] = status
}

// testRig is a full web front wired to an in-memory store and a fake backend.
type testRig struct {
	server  *httptest.Server
	backend *fakeBackend
	store   *memory.KVStore
}

func newTestRig(t *testing.T) *testRig {
	t.Helper()

	backend := newFakeBackend()
	api := httptest.NewServer(backend.handler())
	t.Cleanup(api.Close)

	requesters, err := apiclient.NewFactory(apiclient.Config{BaseURL: api.URL})
	if err != nil {
		t.Fatalf("api client: %v", err)
	}

	store := memory.NewKVStore()
	states := data.ClientStates{
		Stores: data.NamespacedFactory{Store: store},
		Clock:  testutil.NewTestClock(testutil.TestTime()),
	}

	router := NewRouter(RouterServices{
		Navigation:   service.NewNavigationService(service.NavigationServiceOptions{Routes: navigation.DefaultRouteTable()}),
		Auth:         service.NewAuthService(service.AuthServiceOptions{Requesters: requesters}),
		Applications: service.NewApplicationService(service.ApplicationServiceOptions{Requesters: requesters}),
		Reviews:      service.NewReviewService(requesters),
		ClientStates: states,
	})
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &testRig{server: server, backend: backend, store: store}
}

// browser returns a client with its own cookie jar that does not follow redirects.
func (r *testRig) browser(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookie jar: %v", err)
	}
	return &http.Client{
		Jar: jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func (r *testRig) do(t *testing.T, c *http.Client, method, path, body string, headers ...string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, r.server.URL+path, strings.NewReader(body))
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	resp, err := c.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, dst any) {
	t.Helper()
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		t.Fatalf("decode body: %v", err)
	}
}
