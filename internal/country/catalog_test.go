package country

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

type stubFetcher struct {
	countries []Country
	err       error
	calls     int
}

func (s *stubFetcher) Fetch(ctx context.Context) ([]Country, error) {
	s.calls++
	return s.countries, s.err
}

func TestCatalog_LoadingBeforeFetch(t *testing.T) {
	c := NewCatalog(&stubFetcher{})

	snap := c.Snapshot()
	if snap.Status != StatusLoading || snap.Message != MessageLoading {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
	if len(snap.Options) != 1 || snap.Options[0] != DefaultOption {
		t.Fatalf("expected only the default option, got %v", snap.Options)
	}
}

func TestCatalog_LoadedKeepsNepalFirstOnce(t *testing.T) {
	f := &stubFetcher{countries: []Country{{"India", "IND"}, {"Nepal", "NPL"}, {"Peru", "PER"}}}
	c := NewCatalog(f)
	c.Load(context.Background())
	c.Load(context.Background())

	if f.calls != 1 {
		t.Fatalf("expected a single fetch, got %d", f.calls)
	}
	snap := c.Snapshot()
	if snap.Status != StatusLoaded || snap.Message != "" {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
	want := []string{"Nepal", "India", "Peru"}
	got := c.Options()
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestCatalog_FailureIsFinal(t *testing.T) {
	f := &stubFetcher{err: errors.New("offline")}
	c := NewCatalog(f)
	c.Load(context.Background())

	f.err = nil
	f.countries = []Country{{"India", "IND"}}
	c.Load(context.Background())

	snap := c.Snapshot()
	if snap.Status != StatusFailed || snap.Message != MessageFailed {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
	if len(snap.Options) != 1 {
		t.Fatalf("expected only the default option after failure, got %v", snap.Options)
	}
}

func TestCountriesRoute(t *testing.T) {
	c := NewCatalog(&stubFetcher{countries: []Country{{"India", "IND"}}})
	c.Load(context.Background())

	app := fiber.New()
	NewHandler(c).RegisterPublicRoutes(app)

	res, err := app.Test(httptest.NewRequest("GET", "/api/v1/countries", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
	body, _ := io.ReadAll(res.Body)
	var snap Snapshot
	if err := json.Unmarshal(body, &snap); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if snap.Status != StatusLoaded || len(snap.Options) != 2 || snap.Options[1] != "India" {
		t.Fatalf("unexpected body %s", body)
	}

	var raw struct {
		Countries []map[string]string `json:"countries"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		t.Fatalf("decode raw: %v", err)
	}
	if len(raw.Countries) != 1 || raw.Countries[0]["commonName"] != "India" || raw.Countries[0]["code"] != "IND" {
		t.Fatalf("expected commonName/code pairs, got %s", body)
	}
}
