// Command solve is the CLI driver for the fleet route solver: read a
// request JSON document, run the search driver, write the result JSON
// document. Flags follow §6's documented CLI surface.
package main

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/fleetroute/vrpsolver/internal/buildinfo"
	"github.com/fleetroute/vrpsolver/internal/config"
	"github.com/fleetroute/vrpsolver/internal/ingest"
	"github.com/fleetroute/vrpsolver/internal/metrics"
	"github.com/fleetroute/vrpsolver/internal/model"
	"github.com/fleetroute/vrpsolver/internal/oracle"
	"github.com/fleetroute/vrpsolver/internal/progress"
	"github.com/fleetroute/vrpsolver/internal/result"
	"github.com/fleetroute/vrpsolver/internal/routestate"
	"github.com/fleetroute/vrpsolver/internal/search"
	"github.com/fleetroute/vrpsolver/internal/store"
)

const (
	exitOK           = 0
	exitInputError   = 1
	exitRoutingError = 2
	exitSolverError  = 3
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("solve", flag.ContinueOnError)
	input := fs.String("i", "", "input JSON path (required)")
	output := fs.String("o", "", "output JSON path (default: stdout)")
	geometry := fs.Bool("g", false, "request route geometry (accepted for CLI-surface parity; no router is wired)")
	threads := fs.Int("t", 0, "worker thread count (0 uses config/default)")
	level := fs.Int("x", model.DefaultExplorationLevel, "exploration level 0..5")
	timeoutMS := fs.Int("l", 0, "timeout in milliseconds (0 = no deadline)")
	router := fs.String("router", "", "routing engine selection (accepted and ignored; out of scope)")
	fs.StringVar(router, "r", "", "alias for -router")
	version := fs.Bool("version", false, "print build version and exit")
	if err := fs.Parse(args); err != nil {
		return exitInputError
	}
	if *version {
		info := buildinfo.Info()
		log.Printf("solve version=%s commit=%s builtAt=%s", info["version"], info["commit"], info["builtAt"])
		return exitOK
	}
	if *geometry {
		log.Printf("solve: -g requested but no router client is wired; geometry will be absent from output")
	}
	if *router != "" {
		log.Printf("solve: -router %q accepted and ignored; OSRM/ORS/Valhalla clients are out of scope", *router)
	}
	if *input == "" {
		log.Printf("solve: -i is required")
		return exitInputError
	}

	raw, err := os.ReadFile(*input)
	if err != nil {
		log.Printf("solve: read input: %v", err)
		return exitInputError
	}

	cfg, err := config.Load(os.Getenv("SOLVER_CONFIG"))
	if err != nil {
		log.Printf("solve: load config: %v", err)
		return exitSolverError
	}

	metrics.RegisterDefault()
	broker := progress.Open(os.Getenv("REDIS_URL"))
	runID := uuid.NewString()

	in, err := ingest.Parse(bytes.NewReader(raw))
	if err != nil {
		log.Printf("solve: ingest: %v", err)
		return exitInputError
	}

	matrixCache, err := openMatrixCache()
	if err != nil {
		log.Printf("solve: matrix cache unavailable, continuing without it: %v", err)
	}
	oc := oracle.New(in.Matrices, matrixCache)
	rctx := routestate.NewContext(in, oc)

	runCtx := context.Background()
	var cancel context.CancelFunc
	if *timeoutMS > 0 {
		runCtx, cancel = context.WithTimeout(runCtx, time.Duration(*timeoutMS)*time.Millisecond)
		defer cancel()
	}

	stopProgress := maybeServeProgress(broker, runID)
	defer stopProgress()

	start := time.Now()
	reporter := func(snap search.ProgressSnapshot) {
		broker.Publish(runID, progress.Event{Type: "snapshot", Data: map[string]any{
			"tuple": snap.TupleIndex, "pass": snap.Pass,
			"best_cost": model.ScaleToUserCost(snap.BestCost), "unassigned": snap.Unassigned,
		}})
	}
	report, err := search.RunWithReporter(runCtx, in, rctx, *level, *threads, cfg, reporter)
	if err != nil {
		log.Printf("solve: %v", err)
		return exitSolverError
	}
	if report.Best == nil {
		log.Printf("solve: no worker produced a result")
		return exitSolverError
	}

	for _, r := range report.Results {
		metrics.RecordWorker(r.TupleIndex, r.Passes, applicationNames(r.Applications), r.Elapsed)
	}
	metrics.RecordSolve(report.Best.Solution.UnassignedCount())
	broker.Publish(runID, progress.Event{Type: "finished", Data: map[string]any{
		"unassigned": report.Best.Solution.UnassignedCount(),
	}})

	timedOut := runCtx.Err() != nil
	out := result.Build(in, report.Best.Solution, timedOut)

	if err := recordRun(runID, fingerprint(raw), report, out, start); err != nil {
		log.Printf("solve: persist run history: %v", err)
	}

	if err := writeOutput(*output, out); err != nil {
		log.Printf("solve: write output: %v", err)
		return exitSolverError
	}
	log.Printf("solve: run %s finished in %v, %d unassigned", runID, time.Since(start), out.Summary.Unassigned)
	return exitOK
}

func writeOutput(path string, out result.Output) error {
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	if path == "" {
		_, err := os.Stdout.Write(append(data, '\n'))
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func recordRun(runID, fp string, report *search.Report, out result.Output, start time.Time) error {
	dsn := os.Getenv("DATABASE_URL")
	s, err := store.Open(dsn)
	if err != nil {
		return err
	}
	run := store.SolveRun{
		ID:          runID,
		Fingerprint: fp,
		Params:      report.Best.Params,
		Summary: store.Summary{
			TotalCost:       model.ScaleFromUserCost(out.Summary.Cost),
			UnassignedTasks: out.Summary.Unassigned,
			TotalDuration:   model.ScaleFromUserDuration(out.Summary.Duration),
			Timeout:         out.Summary.Timeout,
		},
		StartedAt:  start,
		FinishedAt: time.Now(),
	}
	return s.CreateRun(context.Background(), run)
}

// maybeServeProgress starts a websocket listener for this run's live
// progress stream when PROGRESS_ADDR is set, mirroring the teacher's
// opt-in server-wiring convention for its other ambient ports. It
// returns a stop func that shuts the listener down; callers that never
// started one get a no-op.
func maybeServeProgress(broker progress.Broker, runID string) func() {
	addr := os.Getenv("PROGRESS_ADDR")
	if addr == "" {
		return func() {}
	}
	handler := progress.NewHandler(broker, 5)
	mux := http.NewServeMux()
	mux.HandleFunc("/progress/{runID}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("runID") != runID {
			http.NotFound(w, r)
			return
		}
		handler.ServeRun(w, r, runID)
	})
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("solve: progress listener: %v", err)
		}
	}()
	log.Printf("solve: streaming progress for run %s at ws://%s/progress/%s", runID, addr, runID)
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}
}

func openMatrixCache() (*oracle.MatrixCache, error) {
	url := os.Getenv("REDIS_URL")
	if url == "" {
		return nil, nil
	}
	return oracle.NewMatrixCache(url, 0)
}

func fingerprint(raw []byte) string {
	h := sha256.Sum256(raw)
	return hex.EncodeToString(h[:])
}

func applicationNames(applications map[model.OperatorName]int) map[string]int {
	out := make(map[string]int, len(applications))
	for name, n := range applications {
		out[name.String()] = n
	}
	return out
}
