package publisher

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestPublisher(apiBase string) *GitHubPublisher {
	p := NewGitHubPublisher("secret-token", "alice", "Crypto_Weekly_Newsletter", "index.html", "")
	p.APIBase = apiBase
	p.Now = func() time.Time {
		return time.Date(2026, time.August, 28, 9, 0, 0, 0, time.UTC)
	}
	return p
}

func TestPublish_UpdateExistingFile(t *testing.T) {
	var putPayload map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/repos/alice/Crypto_Weekly_Newsletter/contents/index.html" {
			http.NotFound(w, r)
			return
		}
		if got := r.Header.Get("Authorization"); got != "token secret-token" {
			t.Errorf("authorization header: %q", got)
		}
		switch r.Method {
		case http.MethodGet:
			json.NewEncoder(w).Encode(map[string]string{"sha": "abc123"})
		case http.MethodPut:
			if err := json.NewDecoder(r.Body).Decode(&putPayload); err != nil {
				t.Errorf("decode put payload: %v", err)
			}
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{}`))
		default:
			t.Errorf("unexpected method %s", r.Method)
		}
	}))
	defer srv.Close()

	p := newTestPublisher(srv.URL)
	url, err := p.Publish("<html>hello</html>")
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	if url != "https://alice.github.io/Crypto_Weekly_Newsletter" {
		t.Errorf("pages url: %q", url)
	}
	if putPayload["sha"] != "abc123" {
		t.Errorf("update should carry the current sha, got %q", putPayload["sha"])
	}
	decoded, err := base64.StdEncoding.DecodeString(putPayload["content"])
	if err != nil || string(decoded) != "<html>hello</html>" {
		t.Errorf("content should be base64 of the document, got %q", putPayload["content"])
	}
	if putPayload["message"] != "Auto-update newsletter - 2026-08-28" {
		t.Errorf("commit message: %q", putPayload["message"])
	}
}

func TestPublish_CreateWhenFileAbsent(t *testing.T) {
	var putPayload map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			http.NotFound(w, r)
		case http.MethodPut:
			json.NewDecoder(r.Body).Decode(&putPayload)
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{}`))
		}
	}))
	defer srv.Close()

	p := newTestPublisher(srv.URL)
	if _, err := p.Publish("doc"); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if _, ok := putPayload["sha"]; ok {
		t.Error("creating a new file must not send a sha")
	}
}

func TestPublish_RejectedWrite(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			json.NewEncoder(w).Encode(map[string]string{"sha": "abc123"})
		case http.MethodPut:
			http.Error(w, `{"message":"conflict"}`, http.StatusConflict)
		}
	}))
	defer srv.Close()

	p := newTestPublisher(srv.URL)
	if _, err := p.Publish("doc"); !errors.Is(err, ErrPublishFailed) {
		t.Errorf("got %v, want ErrPublishFailed", err)
	}
}

func TestEnabled(t *testing.T) {
	tests := []struct {
		token, username string
		want            bool
	}{
		{"tok", "alice", true},
		{"", "alice", false},
		{"tok", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		p := NewGitHubPublisher(tt.token, tt.username, "r", "index.html", "")
		if got := p.Enabled(); got != tt.want {
			t.Errorf("Enabled(token=%q user=%q): got %v, want %v", tt.token, tt.username, got, tt.want)
		}
	}
}
