package larder

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
)

// newTestClient starts a server with the given handler and returns a client pointed at it.
func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...ClientOption) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	opts = append([]ClientOption{WithHTTPClient(server.Client())}, opts...)
	return NewClient(Config{Token: "test-token", BaseURL: server.URL}, opts...), server
}

func TestNewClient_Defaults(t *testing.T) {
	client := NewClient(Config{Token: "key"})
	if client.cfg.BaseURL != DefaultBaseURL {
		t.Errorf("BaseURL = %q, want %q", client.cfg.BaseURL, DefaultBaseURL)
	}
	if client.cfg.AuthScheme != AuthToken {
		t.Errorf("AuthScheme = %q, want %q", client.cfg.AuthScheme, AuthToken)
	}
	if client.httpClient.Timeout != 0 {
		t.Errorf("Timeout = %v, want no limit by default", client.httpClient.Timeout)
	}
}

func TestNewClient_WithTimeout(t *testing.T) {
	client := NewClient(Config{Token: "key"}, WithTimeout(30*time.Second))
	if client.httpClient.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v, want 30s", client.httpClient.Timeout)
	}
}

func TestNewClient_TrimsTrailingSlash(t *testing.T) {
	client := NewClient(Config{Token: "key", BaseURL: "https://example.com/api/1/"})
	if client.cfg.BaseURL != "https://example.com/api/1" {
		t.Errorf("baseURL = %q, want trailing slash trimmed", client.cfg.BaseURL)
	}
	if got := client.endpoint("@me/folders/"); got != "https://example.com/api/1/@me/folders/" {
		t.Errorf("endpoint() = %q", got)
	}
	if got := client.endpoint("https://other.example/page2"); got != "https://other.example/page2" {
		t.Errorf("endpoint() must keep absolute URLs, got %q", got)
	}
}

func TestClient_doRequest_Headers(t *testing.T) {
	tests := map[string]struct {
		scheme   string
		wantAuth string
	}{
		"default token scheme": {scheme: "", wantAuth: "Token my-secret-key"},
		"bearer scheme":        {scheme: AuthBearer, wantAuth: "Bearer my-secret-key"},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			var captured http.Header
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				captured = r.Header.Clone()
				w.WriteHeader(http.StatusOK)
			}))
			defer server.Close()

			client := NewClient(Config{Token: "my-secret-key", BaseURL: server.URL, AuthScheme: tc.scheme},
				WithHTTPClient(server.Client()),
			)

			err := client.doRequest(context.Background(), http.MethodPost, server.URL+"/test", []byte(`{"test":true}`), nil)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if got := captured.Get("Authorization"); got != tc.wantAuth {
				t.Errorf("Authorization header = %q, want %q", got, tc.wantAuth)
			}
			if got := captured.Get("Content-Type"); got != "application/json" {
				t.Errorf("Content-Type header = %q, want %q", got, "application/json")
			}
			if got := captured.Get("Accept"); got != "application/json" {
				t.Errorf("Accept header = %q, want %q", got, "application/json")
			}
			if _, err := uuid.Parse(captured.Get(requestIDHeader)); err != nil {
				t.Errorf("request ID header = %q, want a UUID", captured.Get(requestIDHeader))
			}
		})
	}
}

func TestClient_doRequest_Errors(t *testing.T) {
	tests := map[string]struct {
		statusCode int
		body       string
		wantStatus int
		sentinel   error
	}{
		"unauthorized (401)": {
			statusCode: http.StatusUnauthorized,
			body:       `{"detail":"Invalid token."}`,
			wantStatus: http.StatusUnauthorized,
			sentinel:   ErrUnauthorized,
		},
		"not found (404)": {
			statusCode: http.StatusNotFound,
			body:       `{"detail":"Not found."}`,
			wantStatus: http.StatusNotFound,
			sentinel:   ErrNotFound,
		},
		"server error (500) is not retried": {
			statusCode: http.StatusInternalServerError,
			body:       "boom",
			wantStatus: http.StatusInternalServerError,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			var calls atomic.Int32
			client, server := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				calls.Add(1)
				w.WriteHeader(tc.statusCode)
				_, _ = w.Write([]byte(tc.body))
			})

			err := client.doRequest(context.Background(), http.MethodGet, server.URL+"/test", nil, nil)

			var remoteErr RemoteError
			if !errors.As(err, &remoteErr) {
				t.Fatalf("expected RemoteError, got %T: %v", err, err)
			}
			if remoteErr.StatusCode != tc.wantStatus {
				t.Errorf("StatusCode = %d, want %d", remoteErr.StatusCode, tc.wantStatus)
			}
			if remoteErr.Body != tc.body {
				t.Errorf("Body = %q, want %q", remoteErr.Body, tc.body)
			}
			if tc.sentinel != nil && !errors.Is(err, tc.sentinel) {
				t.Errorf("expected errors.Is(err, %v)", tc.sentinel)
			}
			if calls.Load() != 1 {
				t.Errorf("expected exactly 1 request, got %d", calls.Load())
			}
		})
	}
}

func TestClient_doRequest_MissingToken(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL}, WithHTTPClient(server.Client()))

	_, err := client.Folders(context.Background())

	var cfgErr *ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigurationError, got %T: %v", err, err)
	}
	if !errors.Is(err, ErrMissingToken) {
		t.Errorf("expected ErrMissingToken, got %v", err)
	}
	if calls.Load() != 0 {
		t.Errorf("expected no request, got %d", calls.Load())
	}
}

func TestClient_doRequest_InvalidAuthScheme(t *testing.T) {
	client := NewClient(Config{Token: "key", BaseURL: "http://127.0.0.1:1", AuthScheme: "Basic"})

	err := client.CheckConnectivity(context.Background())

	var cfgErr *ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigurationError, got %T: %v", err, err)
	}
}

func TestClient_doRequest_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close() // connection refused from now on

	client := NewClient(Config{Token: "key", BaseURL: url})

	_, err := client.Folders(context.Background())

	var transportErr *TransportError
	if !errors.As(err, &transportErr) {
		t.Fatalf("expected TransportError, got %T: %v", err, err)
	}
	if transportErr.Method != http.MethodGet {
		t.Errorf("Method = %q, want GET", transportErr.Method)
	}
}

func TestClient_doRequest_ContextCancellation(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Folders(ctx)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled in chain, got %v", err)
	}
}

func TestClient_CheckConnectivity(t *testing.T) {
	tests := map[string]struct {
		statusCode int
		wantErr    bool
		errContain string
	}{
		"success": {
			statusCode: http.StatusOK,
		},
		"unauthorized": {
			statusCode: http.StatusUnauthorized,
			wantErr:    true,
			errContain: "HTTP 401",
		},
		"server error": {
			statusCode: http.StatusInternalServerError,
			wantErr:    true,
			errContain: "HTTP 500",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/@me/folders/" {
					t.Errorf("unexpected path: %s, want /@me/folders/", r.URL.Path)
				}
				if r.Method != http.MethodGet {
					t.Errorf("unexpected method: %s, want GET", r.Method)
				}
				w.WriteHeader(tc.statusCode)
			})

			err := client.CheckConnectivity(context.Background())

			if tc.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !strings.Contains(err.Error(), tc.errContain) {
					t.Errorf("expected error to contain %q, got %q", tc.errContain, err.Error())
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestRemoteError(t *testing.T) {
	err := RemoteError{StatusCode: 500, Body: "internal server error"}
	want := "larder API error (HTTP 500): internal server error"
	if got := err.Error(); got != want {
		t.Errorf("RemoteError.Error() = %q, want %q", got, want)
	}

	clientErrors := map[int]bool{399: false, 400: true, 404: true, 499: true, 500: false}
	for status, want := range clientErrors {
		if got := (RemoteError{StatusCode: status}).IsClientError(); got != want {
			t.Errorf("RemoteError{%d}.IsClientError() = %v, want %v", status, got, want)
		}
	}
}

func TestClient_doRequest_RequestIDsAreUnique(t *testing.T) {
	var ids []string
	client, server := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		ids = append(ids, r.Header.Get(requestIDHeader))
	})

	for i := 0; i < 2; i++ {
		if err := client.doRequest(context.Background(), http.MethodGet, server.URL+"/x", nil, nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if len(ids) != 2 || ids[0] == "" || ids[0] == ids[1] {
		t.Errorf("request IDs = %q, want two distinct values", ids)
	}
}
