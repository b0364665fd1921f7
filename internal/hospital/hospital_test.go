package hospital

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newFakeNominatim(t *testing.T, handler http.HandlerFunc) *NominatimLocator {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewWithBaseURL(srv.URL)
}

func TestSearch_OK(t *testing.T) {
	l := newFakeNominatim(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("q"); got != "hospital near Delhi" {
			t.Errorf("q = %q, want %q", got, "hospital near Delhi")
		}
		if got := r.URL.Query().Get("format"); got != "json" {
			t.Errorf("format = %q, want json", got)
		}
		if got := r.URL.Query().Get("limit"); got != "15" {
			t.Errorf("limit = %q, want 15", got)
		}
		if got := r.Header.Get("User-Agent"); got != "HealthFinderApp/1.0" {
			t.Errorf("User-Agent = %q", got)
		}
		w.Write([]byte(`[
			{"display_name": "AIIMS, Delhi", "lat": "28.5672", "lon": "77.2100"},
			{"display_name": "Safdarjung Hospital", "lat": "28.5686", "lon": "77.2059"}
		]`))
	})

	res := l.Search(context.Background(), "Delhi")
	if res.Status != StatusOK {
		t.Fatalf("Status = %q, want OK (error: %s)", res.Status, res.ErrorMsg)
	}
	if len(res.Results) != 2 {
		t.Fatalf("got %d results, want 2", len(res.Results))
	}
	if res.Results[0].Name != "AIIMS, Delhi" {
		t.Errorf("Name = %q", res.Results[0].Name)
	}
	if res.Results[0].Latitude != 28.5672 || res.Results[0].Longitude != 77.2100 {
		t.Errorf("coords = (%v, %v)", res.Results[0].Latitude, res.Results[0].Longitude)
	}
}

func TestSearch_ZeroResults(t *testing.T) {
	l := newFakeNominatim(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})

	res := l.Search(context.Background(), "Nowhere")
	if res.Status != StatusZeroResults {
		t.Errorf("Status = %q, want ZERO_RESULTS", res.Status)
	}
	if res.Results == nil || len(res.Results) != 0 {
		t.Errorf("Results = %v, want empty non-nil slice", res.Results)
	}
}

func TestSearch_ServerError(t *testing.T) {
	l := newFakeNominatim(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	})

	res := l.Search(context.Background(), "Delhi")
	if res.Status != StatusError {
		t.Errorf("Status = %q, want ERROR", res.Status)
	}
	if res.ErrorMsg == "" {
		t.Error("ErrorMsg is empty on failure")
	}
}

func TestSearch_SkipsBadCoordinates(t *testing.T) {
	l := newFakeNominatim(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{"display_name": "Broken", "lat": "not-a-number", "lon": "77.2"},
			{"display_name": "", "lat": "28.5", "lon": "77.2"}
		]`))
	})

	res := l.Search(context.Background(), "Delhi")
	if res.Status != StatusOK {
		t.Fatalf("Status = %q, want OK", res.Status)
	}
	if len(res.Results) != 1 {
		t.Fatalf("got %d results, want 1 (bad coords skipped)", len(res.Results))
	}
	if res.Results[0].Name != "Unnamed Hospital" {
		t.Errorf("Name = %q, want fallback for empty display_name", res.Results[0].Name)
	}
}
