package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordWorkerUpdatesVectors(t *testing.T) {
	RegisterDefault()
	before := testutil.ToFloat64(SolverIterations.WithLabelValues("0"))

	RecordWorker(0, 3, map[string]int{"Relocate": 2}, 10*time.Millisecond)

	after := testutil.ToFloat64(SolverIterations.WithLabelValues("0"))
	if after-before != 3 {
		t.Fatalf("expected iteration count to increase by 3, got delta %v", after-before)
	}
	ops := testutil.ToFloat64(OperatorApplications.WithLabelValues("Relocate"))
	if ops <= 0 {
		t.Fatalf("expected operator application count recorded, got %v", ops)
	}
}

func TestRecordSolveObservesUnassignedHistogram(t *testing.T) {
	RegisterDefault()
	RecordSolve(2)
}
