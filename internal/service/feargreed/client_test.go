package feargreed

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

const sample = `{
  "name": "Fear and Greed Index",
  "data": [
    {"value": "72", "value_classification": "Greed", "timestamp": "1517529600"},
    {"value": "30", "value_classification": "Fear", "timestamp": "1517443200"},
    {"value": "x", "value_classification": "", "timestamp": "later"}
  ],
  "metadata": {"error": null}
}`

func TestLoadSentiment(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("format") != "json" || r.URL.Query().Get("limit") != "0" {
			t.Errorf("unexpected query %q", r.URL.RawQuery)
		}
		if ua := r.Header.Get("User-Agent"); ua != userAgent {
			t.Errorf("user agent = %q", ua)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(sample))
	}))
	defer srv.Close()

	set, err := New(srv.URL, 0, time.Second, nil).LoadSentiment(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(set.Points) != 2 || set.Dropped != 1 {
		t.Fatalf("points=%d dropped=%d", len(set.Points), set.Dropped)
	}
	first := set.Points[0]
	if first.Row["date"] != "2018-02-01" || first.Row["value"] != "30" {
		t.Fatalf("points not ordered oldest first: %+v", first.Row)
	}
	if !first.DateKey.Equal(time.Date(2018, 2, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("date key = %v", first.DateKey)
	}
}

func TestLoadSentimentAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data": [], "metadata": {"error": "rate limited"}}`))
	}))
	defer srv.Close()

	if _, err := New(srv.URL, 10, time.Second, nil).LoadSentiment(context.Background()); err == nil || !strings.Contains(err.Error(), "rate limited") {
		t.Fatalf("expected api error, got %v", err)
	}
}

func TestWriteCSV(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(sample))
	}))
	defer srv.Close()

	set, err := New(srv.URL, 0, time.Second, nil).LoadSentiment(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	var buf bytes.Buffer
	if err := WriteCSV(&buf, set); err != nil {
		t.Fatalf("write: %v", err)
	}
	want := "timestamp,value,classification,date\n" +
		"1517443200,30,Fear,2018-02-01\n" +
		"1517529600,72,Greed,2018-02-02\n"
	if buf.String() != want {
		t.Fatalf("csv =\n%s\nwant\n%s", buf.String(), want)
	}
}
