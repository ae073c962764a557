package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridianfirm/firmdesk/internal/common"
	"github.com/meridianfirm/firmdesk/internal/model"
	"github.com/meridianfirm/firmdesk/internal/session"
)

func newTestClient(t *testing.T, handler http.Handler, store session.Store) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := New(server.URL, store)
	require.NoError(t, err)
	return client
}

func bearer(r *http.Request) string {
	return strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
}

func TestClient_AttachesBearerToken(t *testing.T) {
	store := session.NewMemoryStore("tok-1", "ref-1")

	var gotToken string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotToken = bearer(r)
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
		_, _ = w.Write([]byte(`[]`))
	}), store)

	_, err := client.ListClients(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "tok-1", gotToken)
}

func TestClient_RefreshOn401ReplaysOnce(t *testing.T) {
	store := session.NewMemoryStore("stale", "ref-1")

	var refreshCalls, resourceCalls int32
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/token/refresh/":
			atomic.AddInt32(&refreshCalls, 1)
			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "ref-1", body["refresh"])
			assert.Empty(t, r.Header.Get("Authorization"))
			_, _ = w.Write([]byte(`{"access":"fresh"}`))
		case "/api/clients/":
			atomic.AddInt32(&resourceCalls, 1)
			if bearer(r) != "fresh" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			_, _ = w.Write([]byte(`[{"id":1,"name":"Acme Holdings"}]`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}), store)

	clients, err := client.ListClients(context.Background(), "")
	require.NoError(t, err, "the 401 must never surface to the caller")

	require.Len(t, clients, 1)
	assert.Equal(t, "Acme Holdings", clients[0].Name)
	assert.Equal(t, int32(1), atomic.LoadInt32(&refreshCalls))
	assert.Equal(t, int32(2), atomic.LoadInt32(&resourceCalls), "original request plus one replay")
	assert.Equal(t, "fresh", store.AccessToken(), "new access token must be persisted")
	assert.Equal(t, "ref-1", store.RefreshToken(), "refresh token is untouched")
}

func TestClient_RefreshFailureForcesLogout(t *testing.T) {
	store := session.NewMemoryStore("stale", "dead-refresh")

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/token/refresh/" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"detail":"Token is invalid or expired"}`))
			return
		}
		w.WriteHeader(http.StatusUnauthorized)
	}), store)

	_, err := client.ListClients(context.Background(), "")
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrSessionExpired)

	// Session state must be fully cleared.
	assert.Empty(t, store.AccessToken())
	assert.Empty(t, store.RefreshToken())
}

func TestClient_NoSecondRefreshAfterReplay401(t *testing.T) {
	store := session.NewMemoryStore("stale", "ref-1")

	var refreshCalls int32
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/token/refresh/" {
			atomic.AddInt32(&refreshCalls, 1)
			_, _ = w.Write([]byte(`{"access":"fresh"}`))
			return
		}
		// The resource keeps rejecting even the fresh token.
		w.WriteHeader(http.StatusUnauthorized)
	}), store)

	_, err := client.ListClients(context.Background(), "")
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrSessionExpired)
	assert.Equal(t, int32(1), atomic.LoadInt32(&refreshCalls), "a retried request must not refresh again")
}

func TestClient_ConcurrentRefreshIsSingleFlight(t *testing.T) {
	store := session.NewMemoryStore("stale", "ref-1")

	var refreshCalls int32
	executing := make(chan struct{})
	release := make(chan struct{})
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/token/refresh/", r.URL.Path)
		atomic.AddInt32(&refreshCalls, 1)
		executing <- struct{}{}
		<-release
		_, _ = w.Write([]byte(`{"access":"fresh"}`))
	}), store)

	// Simulate several requests hitting a 401 at once: each would invoke the
	// refresh path independently, and all must share one upstream call.
	var wg sync.WaitGroup
	errs := make([]error, 4)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = client.refreshAccessToken(context.Background())
		}(i)
	}

	// Hold the in-flight refresh open until the other callers have had time
	// to pile up behind it.
	<-executing
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	for _, err := range errs {
		assert.NoError(t, err)
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&refreshCalls), "concurrent 401s share one refresh")
	assert.Equal(t, "fresh", store.AccessToken())
}

func TestClient_NonAuthErrorsPassThrough(t *testing.T) {
	store := session.NewMemoryStore("tok", "ref")

	var calls int32
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"You cannot review your own work"}`))
	}), store)

	_, err := client.SignOffTask(context.Background(), 7)
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "You cannot review your own work", apiErr.Message())
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "4xx responses are never retried")
	assert.Equal(t, "tok", store.AccessToken(), "session is untouched by business-rule rejections")
}

func TestClient_NoTokenMeansNoAuthHeader(t *testing.T) {
	store := session.NewMemoryStore("", "")

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`[]`))
	}), store)

	_, err := client.ListClients(context.Background(), "")
	require.NoError(t, err)
}

func TestAPIError_VerbatimBodyWhenUnstructured(t *testing.T) {
	apiErr := &APIError{
		StatusCode: http.StatusBadRequest,
		Status:     "400 Bad Request",
		Body:       []byte(`{"due_date":["This field is required."]}`),
	}

	// Field-level validation payloads have no error/detail key; the raw
	// JSON is surfaced so nothing the server said is lost.
	assert.Contains(t, apiErr.Error(), `{"due_date":["This field is required."]}`)
}

func TestClient_ValidatesBeforeSending(t *testing.T) {
	store := session.NewMemoryStore("tok", "ref")

	client := newTestClient(t, http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		t.Error("request must not reach the server")
	}), store)

	_, err := client.CreateClient(context.Background(), CreateClientRequest{
		Name: "Missing tax id and entity type",
	})
	require.Error(t, err)

	var userErr *common.UserError
	assert.ErrorAs(t, err, &userErr)
}

func TestClient_CreateTaskAlwaysPending(t *testing.T) {
	store := session.NewMemoryStore("tok", "ref")

	var posted map[string]any
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&posted))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":12,"engagement":3,"title":"Test cash balances","status":"PENDING"}`))
	}), store)

	task, err := client.CreateTask(context.Background(), CreateTaskRequest{
		Engagement: 3,
		Title:      "Test cash balances",
		// Deliberately try to smuggle in a different status.
		Status: model.TaskDone,
	})
	require.NoError(t, err)

	assert.Equal(t, model.TaskPending, posted["status"], "creation always submits PENDING")
	assert.Equal(t, model.TaskPending, task.Status)
}

func TestClient_Login(t *testing.T) {
	t.Run("success stores both tokens", func(t *testing.T) {
		store := session.NewMemoryStore("", "")
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/token/", r.URL.Path)
			assert.Empty(t, r.Header.Get("Authorization"))
			_, _ = w.Write([]byte(`{"access":"a-1","refresh":"r-1"}`))
		}), store)

		err := client.Login(context.Background(), Credentials{Email: "partner@firm.test", Password: "hunter22"})
		require.NoError(t, err)
		assert.Equal(t, "a-1", store.AccessToken())
		assert.Equal(t, "r-1", store.RefreshToken())
	})

	t.Run("bad credentials become a user error, not a refresh attempt", func(t *testing.T) {
		store := session.NewMemoryStore("", "")
		var refreshCalls int32
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/api/token/refresh/" {
				atomic.AddInt32(&refreshCalls, 1)
			}
			w.WriteHeader(http.StatusUnauthorized)
		}), store)

		err := client.Login(context.Background(), Credentials{Email: "partner@firm.test", Password: "wrong"})
		require.Error(t, err)

		var userErr *common.UserError
		assert.ErrorAs(t, err, &userErr)
		assert.Equal(t, int32(0), atomic.LoadInt32(&refreshCalls))
		assert.False(t, session.HasSession(store))
	})

	t.Run("malformed email rejected before sending", func(t *testing.T) {
		store := session.NewMemoryStore("", "")
		client := newTestClient(t, http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
			t.Error("request must not reach the server")
		}), store)

		err := client.Login(context.Background(), Credentials{Email: "not-an-email", Password: "x"})
		require.Error(t, err)
	})
}

func TestClient_Logout(t *testing.T) {
	store := session.NewMemoryStore("a", "r")
	client := newTestClient(t, http.NewServeMux(), store)

	require.NoError(t, client.Logout())
	assert.False(t, session.HasSession(store))
}

func TestNew_BaseURLNormalization(t *testing.T) {
	tests := []struct {
		name string
		base string
		want string
	}{
		{name: "bare host", base: "http://localhost:8000", want: "http://localhost:8000/api/clients/"},
		{name: "trailing slash", base: "http://localhost:8000/", want: "http://localhost:8000/api/clients/"},
		{name: "already has api root", base: "http://localhost:8000/api/", want: "http://localhost:8000/api/clients/"},
	}

	store := session.NewMemoryStore("", "")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := New(tt.base, store)
			require.NoError(t, err)
			assert.Equal(t, tt.want, client.endpoint("clients/", nil))
		})
	}
}

func TestNew_EmptyBaseURL(t *testing.T) {
	_, err := New("", session.NewMemoryStore("", ""))
	assert.True(t, errors.Is(err, common.ErrMissingConfig))
}
