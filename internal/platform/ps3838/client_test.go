package ps3838

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/abrahamrubi0/bettrack/internal/domain"
)

func newTestClient(url string) *Client {
	return NewClient(Config{
		BaseURL:  url,
		Username: "user",
		Password: "pass",
	})
}

func TestFixturesRequest(t *testing.T) {
	var gotPath string
	var gotQuery map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || user != "user" || pass != "pass" {
			t.Errorf("basic auth = (%q, %q, %v)", user, pass, ok)
		}
		gotPath = r.URL.Path
		gotQuery = map[string]string{
			"sportId":   r.URL.Query().Get("sportId"),
			"leagueIds": r.URL.Query().Get("leagueIds"),
			"isLive":    r.URL.Query().Get("isLive"),
			"since":     r.URL.Query().Get("since"),
		}
		w.Write([]byte(`{
			"sportId": 4,
			"last": 100,
			"league": [
				{"id": 493, "name": "NBA", "events": [
					{"id": 501, "rotNum": 515, "home": "Los Angeles Lakers", "away": "Golden State Warriors", "starts": "2026-03-01T02:00:00Z"}
				]}
			]
		}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	resp, err := c.Fixtures(context.Background(), 4, []int{493, 487})
	if err != nil {
		t.Fatalf("Fixtures: %v", err)
	}

	if gotPath != "/fixtures" {
		t.Errorf("path = %q", gotPath)
	}
	want := map[string]string{"sportId": "4", "leagueIds": "493,487", "isLive": "1", "since": "0"}
	for k, v := range want {
		if gotQuery[k] != v {
			t.Errorf("query %s = %q, want %q", k, gotQuery[k], v)
		}
	}

	if len(resp.League) != 1 || len(resp.League[0].Events) != 1 {
		t.Fatalf("unexpected response shape: %+v", resp)
	}
	ev := resp.League[0].Events[0]
	if ev.ID != 501 || ev.Home != "Los Angeles Lakers" || ev.Away != "Golden State Warriors" {
		t.Errorf("event = %+v", ev)
	}
}

func TestSettledRequest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/fixtures/settled" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("since"); got != "1700000000" {
			t.Errorf("since = %q", got)
		}
		w.Write([]byte(`{
			"last": 1700000050,
			"leagues": [
				{"id": 493, "events": [
					{"id": 501, "periods": [
						{"number": 0, "status": 1, "team1Score": 110, "team2Score": 115, "settledAt": "2026-03-01T04:45:00Z"},
						{"number": 1, "status": 1, "team1Score": 55, "team2Score": 60, "settledAt": "2026-03-01T03:30:00Z"}
					]}
				]}
			]
		}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	resp, err := c.Settled(context.Background(), 4, []int{493}, 1700000000)
	if err != nil {
		t.Fatalf("Settled: %v", err)
	}
	if resp.Last != 1700000050 {
		t.Errorf("Last = %d", resp.Last)
	}
	ev := resp.Leagues[0].Events[0]
	if ev.Periods[0].Team1Score != 110 || ev.Periods[0].Team2Score != 115 {
		t.Errorf("final period = %+v", ev.Periods[0])
	}
}

func TestErrorClassification(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{"rate limited", http.StatusTooManyRequests, "", domain.ErrRateLimited},
		{"server error", http.StatusInternalServerError, "boom", domain.ErrProviderUnavailable},
		{"auth rejected", http.StatusUnauthorized, "nope", domain.ErrProviderUnavailable},
		{"empty body", http.StatusOK, "", domain.ErrMalformedResponse},
		{"garbage body", http.StatusOK, "<html>maintenance</html>", domain.ErrMalformedResponse},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := newTestClient(srv.URL)
			_, err := c.Fixtures(context.Background(), 4, []int{493})
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
			if !domain.IsTransient(err) {
				t.Errorf("err %v should be transient", err)
			}
		})
	}
}

func TestOnRequestHook(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	var endpoint, status string
	c.OnRequest = func(e, s string) { endpoint, status = e, s }

	_, _ = c.Fixtures(context.Background(), 4, []int{493})
	if endpoint != "fixtures" || status != "rate_limited" {
		t.Errorf("hook observed (%q, %q)", endpoint, status)
	}
}
