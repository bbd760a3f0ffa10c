package country

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestClient_FetchSortsAndSkipsBlankNames(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"name":{"common":"Nepal"},"cca3":"NPL"},
			{"name":{"common":""},"cca3":"XXX"},
			{"name":{"common":"India"},"cca3":"IND"},
			{"name":{"common":"Bhutan"},"cca3":"BTN"}
		]`))
	}))
	defer srv.Close()

	countries, err := NewClient(srv.URL, time.Second).Fetch(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	want := []Country{{"Bhutan", "BTN"}, {"India", "IND"}, {"Nepal", "NPL"}}
	if len(countries) != len(want) {
		t.Fatalf("expected %d countries, got %+v", len(want), countries)
	}
	for i := range want {
		if countries[i] != want[i] {
			t.Fatalf("at %d expected %+v, got %+v", i, want[i], countries[i])
		}
	}
}

func TestClient_FetchErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	if _, err := NewClient(srv.URL, time.Second).Fetch(context.Background()); err == nil {
		t.Fatalf("expected error for 500 response")
	}
}

func TestClient_FetchMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	if _, err := NewClient(srv.URL, time.Second).Fetch(context.Background()); err == nil {
		t.Fatalf("expected error for malformed body")
	}
}

func TestClient_FetchCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewClient("http://127.0.0.1:1", time.Second).Fetch(ctx); err == nil {
		t.Fatalf("expected error for cancelled context")
	}
}
