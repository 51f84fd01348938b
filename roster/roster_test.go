package roster

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newBridge(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/guilds/g1/members/100", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"100","username":"alpha","clan":"Night Raid"}`))
	})
	mux.HandleFunc("/guilds/g1/clans/Night Raid/members", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":"100","username":"alpha"},{"id":"200","username":"beta"}]`))
	})
	mux.HandleFunc("/guilds/g1/resolve", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("query") != "alpha" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"100","username":"alpha"}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestHTTPRosterLookups(t *testing.T) {
	srv := newBridge(t)
	r := NewHTTPRoster(srv.URL, "g1")
	ctx := context.Background()

	clan, err := r.ClanOf(ctx, "100")
	if err != nil || clan != "Night Raid" {
		t.Errorf("ClanOf = %q, %v", clan, err)
	}

	username, err := r.Username(ctx, "100")
	if err != nil || username != "alpha" {
		t.Errorf("Username = %q, %v", username, err)
	}

	// Неизвестный пользователь — пустое имя, не ошибка.
	username, err = r.Username(ctx, "999")
	if err != nil || username != "" {
		t.Errorf("unknown Username = %q, %v", username, err)
	}

	members, err := r.ClanMembers(ctx, "Night Raid")
	if err != nil || len(members) != 2 {
		t.Fatalf("ClanMembers = %v, %v", members, err)
	}
	if members[0].Username != "alpha" {
		t.Errorf("first member = %+v", members[0])
	}
}

func TestHTTPRosterResolve(t *testing.T) {
	srv := newBridge(t)
	r := NewHTTPRoster(srv.URL, "g1")
	ctx := context.Background()

	m, found, err := r.Resolve(ctx, "alpha")
	if err != nil || !found || m.ID != "100" {
		t.Errorf("Resolve(alpha) = %+v, %v, %v", m, found, err)
	}

	_, found, err = r.Resolve(ctx, "nobody")
	if err != nil || found {
		t.Errorf("Resolve(nobody) = found=%v, err=%v", found, err)
	}
}

func TestHTTPRosterServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	r := NewHTTPRoster(srv.URL, "g1")
	if _, err := r.ClanOf(context.Background(), "100"); err == nil {
		t.Error("server error must surface")
	}
}

func TestNullRoster(t *testing.T) {
	var r Null
	ctx := context.Background()

	if clan, err := r.ClanOf(ctx, "100"); err != nil || clan != "" {
		t.Errorf("ClanOf = %q, %v", clan, err)
	}
	if _, found, err := r.Resolve(ctx, "alpha"); err != nil || found {
		t.Errorf("Resolve = found=%v, err=%v", found, err)
	}
}
