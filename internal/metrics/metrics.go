package metrics

import (
    "strconv"
    "sync"
    "time"

    "github.com/prometheus/client_golang/prometheus"
    "github.com/prometheus/client_golang/prometheus/collectors"
)

var (
    // Registry is the dedicated Prometheus registry for the solver.
    Registry = prometheus.NewRegistry()

    // SolverIterations counts best-improvement passes run, by tuple index.
    SolverIterations = prometheus.NewCounterVec(
        prometheus.CounterOpts{Name: "solver_iterations_total", Help: "Local-search passes run, by parameter tuple."},
        []string{"tuple"},
    )
    // OperatorApplications counts moves actually applied, by operator name.
    OperatorApplications = prometheus.NewCounterVec(
        prometheus.CounterOpts{Name: "solver_operator_applications_total", Help: "Moves applied, by operator."},
        []string{"operator"},
    )
    // SearchDuration records worker wall-clock time in seconds, by tuple index.
    SearchDuration = prometheus.NewHistogramVec(
        prometheus.HistogramOpts{Name: "solver_search_duration_seconds", Help: "Time a worker spent constructing and local-searching.", Buckets: prometheus.DefBuckets},
        []string{"tuple"},
    )
    // UnassignedTasks records the winning solution's unassigned-task count per run.
    UnassignedTasks = prometheus.NewHistogram(
        prometheus.HistogramOpts{Name: "solver_unassigned_tasks", Help: "Unassigned task count of the best solution, per solve.", Buckets: []float64{0, 1, 2, 5, 10, 25, 50, 100}},
    )
)

// RegisterDefault registers collectors to the dedicated registry.
func RegisterDefault() {
    regOnce.Do(func(){
        Registry.MustRegister(SolverIterations)
        Registry.MustRegister(OperatorApplications)
        Registry.MustRegister(SearchDuration)
        Registry.MustRegister(UnassignedTasks)
        // Go/process collectors on our registry
        Registry.MustRegister(collectors.NewGoCollector())
        Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
    })
}

var regOnce sync.Once

// RecordWorker folds one search worker's raw counters into the
// registered vectors, keeping internal/search itself free of a
// Prometheus import.
func RecordWorker(tupleIndex, passes int, applications map[string]int, elapsed time.Duration) {
    tuple := strconv.Itoa(tupleIndex)
    SolverIterations.WithLabelValues(tuple).Add(float64(passes))
    SearchDuration.WithLabelValues(tuple).Observe(elapsed.Seconds())
    for op, n := range applications {
        OperatorApplications.WithLabelValues(op).Add(float64(n))
    }
}

// RecordSolve records the winning solution's unassigned-task count for
// one full solve invocation.
func RecordSolve(unassigned int) {
    UnassignedTasks.Observe(float64(unassigned))
}
