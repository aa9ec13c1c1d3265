package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecorder(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := NewWithRegistry(reg)

	r.RecordAnalysis("ok")
	r.RecordAnalysis("ok")
	r.RecordRowsLoaded("trades", 120)
	r.RecordMergedRows(100)
	r.RecordBucket("Fear", -3.5, 0.4)
	r.RecordError("load")

	if got := testutil.ToFloat64(r.analyses.WithLabelValues("ok")); got != 2 {
		t.Fatalf("analyses %v", got)
	}
	if got := testutil.ToFloat64(r.rowsLoaded.WithLabelValues("trades")); got != 120 {
		t.Fatalf("rows %v", got)
	}
	if got := testutil.ToFloat64(r.mergedRows); got != 100 {
		t.Fatalf("merged %v", got)
	}
	if got := testutil.ToFloat64(r.bucketPnL.WithLabelValues("Fear")); got != -3.5 {
		t.Fatalf("pnl %v", got)
	}
	if got := testutil.ToFloat64(r.bucketWins.WithLabelValues("Fear")); got != 0.4 {
		t.Fatalf("win rate %v", got)
	}
	if got := testutil.ToFloat64(r.errorsTotal.WithLabelValues("load")); got != 1 {
		t.Fatalf("errors %v", got)
	}
}
