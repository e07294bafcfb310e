package larder

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"sync/atomic"
	"testing"
)

func TestClient_Tags(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/@me/tags/" {
			t.Errorf("expected /@me/tags/, got %s", r.URL.Path)
		}
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(page[Tag]{
			Count:   2,
			Results: []Tag{{ID: "t-2", Name: "zeta"}, {ID: "t-1", Name: "alpha"}},
		})
	})

	tags, err := client.Tags(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tags) != 2 || tags[0].Name != "zeta" || tags[1].Name != "alpha" {
		t.Errorf("unexpected tags (server order must be kept): %+v", tags)
	}
}

func TestClient_SaveTag(t *testing.T) {
	tests := map[string]struct {
		tag         Tag
		statusCode  int
		response    string
		wantPath    string
		wantCalls   int32
		wantErr     bool
		errCfg      bool
		errContain  string
		wantID      string
		wantCreated string
	}{
		"new tag issues one create request": {
			tag:         Tag{Name: "test_tag1"},
			statusCode:  http.StatusCreated,
			response:    `{"id":"t-1","name":"test_tag1","color":"#aabbcc","created":"2024-01-01T00:00:00Z","modified":"2024-01-01T00:00:00Z"}`,
			wantPath:    "/@me/tags/add/",
			wantCalls:   1,
			wantID:      "t-1",
			wantCreated: "2024-01-01T00:00:00Z",
		},
		"existing tag issues one edit request": {
			tag:        Tag{ID: "t-7", Name: "renamed"},
			statusCode: http.StatusOK,
			response:   `{"id":"t-7","name":"renamed"}`,
			wantPath:   "/@me/tags/t-7/edit/",
			wantCalls:  1,
			wantID:     "t-7",
		},
		"tag without name is rejected without request": {
			tag:       Tag{},
			wantCalls: 0,
			wantErr:   true,
			errCfg:    true,
		},
		"bad request (400) carries status and body": {
			tag:        Tag{Name: "dup"},
			statusCode: http.StatusBadRequest,
			response:   `{"name":["already exists"]}`,
			wantPath:   "/@me/tags/add/",
			wantCalls:  1,
			wantErr:    true,
			errContain: `HTTP 400): {"name":["already exists"]}`,
		},
		"malformed JSON response": {
			tag:        Tag{Name: "x"},
			statusCode: http.StatusCreated,
			response:   `{"id": "t-1", "name": `,
			wantPath:   "/@me/tags/add/",
			wantCalls:  1,
			wantErr:    true,
			errContain: "decoding",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			var calls atomic.Int32
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				calls.Add(1)
				if r.Method != http.MethodPost {
					t.Errorf("expected POST, got %s", r.Method)
				}
				if r.URL.Path != tc.wantPath {
					t.Errorf("path = %s, want %s", r.URL.Path, tc.wantPath)
				}
				var req tagRequest
				if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
					t.Errorf("decoding request: %v", err)
				}
				if req.Name != tc.tag.Name {
					t.Errorf("request name = %q, want %q", req.Name, tc.tag.Name)
				}
				w.WriteHeader(tc.statusCode)
				_, _ = w.Write([]byte(tc.response))
			})

			tag := tc.tag
			err := client.SaveTag(context.Background(), &tag)

			if got := calls.Load(); got != tc.wantCalls {
				t.Errorf("expected %d request(s), got %d", tc.wantCalls, got)
			}

			if tc.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				var cfgErr *ConfigurationError
				if tc.errCfg && !errors.As(err, &cfgErr) {
					t.Errorf("expected ConfigurationError, got %T: %v", err, err)
				}
				if tc.errContain != "" && !strings.Contains(err.Error(), tc.errContain) {
					t.Errorf("expected error to contain %q, got %q", tc.errContain, err.Error())
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tag.ID != tc.wantID {
				t.Errorf("ID = %q, want %q", tag.ID, tc.wantID)
			}
			if tag.Created != tc.wantCreated {
				t.Errorf("Created = %q, want %q", tag.Created, tc.wantCreated)
			}
		})
	}
}

func TestClient_DeleteTag(t *testing.T) {
	tests := map[string]struct {
		tag        Tag
		statusCode int
		wantCalls  int32
		wantErr    bool
		sentinel   error
		wantRemote bool
	}{
		"success (204)": {
			tag:        Tag{ID: "t-1", Name: "go"},
			statusCode: http.StatusNoContent,
			wantCalls:  1,
		},
		"missing ID is rejected without request": {
			tag:       Tag{Name: "go"},
			wantCalls: 0,
			wantErr:   true,
			sentinel:  ErrMissingID,
		},
		"not found (404)": {
			tag:        Tag{ID: "t-404"},
			statusCode: http.StatusNotFound,
			wantCalls:  1,
			wantErr:    true,
			sentinel:   ErrNotFound,
			wantRemote: true,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			var calls atomic.Int32
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				calls.Add(1)
				if r.Method != http.MethodDelete {
					t.Errorf("expected DELETE, got %s", r.Method)
				}
				if want := "/@me/tags/" + tc.tag.ID + "/delete/"; r.URL.Path != want {
					t.Errorf("path = %s, want %s", r.URL.Path, want)
				}
				w.WriteHeader(tc.statusCode)
			})

			err := client.DeleteTag(context.Background(), tc.tag)

			if got := calls.Load(); got != tc.wantCalls {
				t.Errorf("expected %d request(s), got %d", tc.wantCalls, got)
			}
			if !tc.wantErr {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if tc.sentinel != nil && !errors.Is(err, tc.sentinel) {
				t.Errorf("expected %v, got %v", tc.sentinel, err)
			}
			var remoteErr RemoteError
			if tc.wantRemote && !errors.As(err, &remoteErr) {
				t.Errorf("expected RemoteError, got %T", err)
			}
			var cfgErr *ConfigurationError
			if !tc.wantRemote && !errors.As(err, &cfgErr) {
				t.Errorf("expected ConfigurationError, got %T", err)
			}
		})
	}
}
