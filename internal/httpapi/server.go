// Package httpapi serves the operational surface of a faultguard-enabled
// process: health, metrics, recent faults, and optional fault-injection
// endpoints for smoke testing the interception path end to end.
package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/common/expfmt"

	"github.com/RocketLaunchpad/faultguard/internal/report"
	"github.com/RocketLaunchpad/faultguard/pkg/fault"
	"github.com/RocketLaunchpad/faultguard/pkg/middleware"
	"github.com/RocketLaunchpad/faultguard/pkg/supervise"
)

// Config controls the ops server.
type Config struct {
	Addr       string // listen address, default ":8085"
	RecentSize int    // recent-fault ring buffer capacity, default 50
	EnableDemo bool   // expose /demo fault-injection endpoints
}

// Server owns its own metrics and recent-fault log: every counter it
// exports is explainable by a request that went through its own guard.
type Server struct {
	cfg        Config
	metrics    *report.Metrics
	recent     *report.RecentLog
	supervisor *supervise.Supervisor
	registry   *promclient.Registry
	httpSrv    *http.Server
}

// New creates an ops server. Nothing is listening until Start.
func New(cfg Config) *Server {
	if cfg.Addr == "" {
		cfg.Addr = ":8085"
	}
	if cfg.RecentSize <= 0 {
		cfg.RecentSize = 50
	}

	metrics := report.NewMetrics()
	recent := report.NewRecentLog(cfg.RecentSize)
	supervisor := supervise.NewWith(metrics, recent)
	supervisor.SetLogger(log.Default())

	registry := promclient.NewRegistry()
	registry.MustRegister(report.NewCollector(metrics))
	registry.MustRegister(collectors.NewGoCollector())

	return &Server{
		cfg:        cfg,
		metrics:    metrics,
		recent:     recent,
		supervisor: supervisor,
		registry:   registry,
	}
}

// Router builds the HTTP routes. The recovery middleware guards only the
// demo subrouter: ops endpoints must not inflate the supervised-call
// counters on every scrape.
func (s *Server) Router() *mux.Router {
	router := mux.NewRouter()

	router.HandleFunc("/health", s.handleHealth).Methods("GET")
	router.HandleFunc("/metrics", s.handleMetrics).Methods("GET")
	router.HandleFunc("/faults", s.handleFaults).Methods("GET")

	if s.cfg.EnableDemo {
		demo := router.PathPrefix("/demo").Subrouter()
		demo.Use(middleware.Recovery(s.supervisor))
		demo.HandleFunc("/ok", s.handleDemoOK).Methods("GET")
		demo.HandleFunc("/fault", s.handleDemoFault).Methods("GET")
		demo.HandleFunc("/runtime", s.handleDemoRuntime).Methods("GET")
	}

	return router
}

// Start begins serving and blocks until the listener fails or Shutdown
// is called.
func (s *Server) Start() error {
	s.httpSrv = &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.Router(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	log.Printf("faultguard ops server listening on %s", s.cfg.Addr)
	log.Println("  GET  /health")
	log.Println("  GET  /metrics (Prometheus format)")
	log.Println("  GET  /faults")
	if s.cfg.EnableDemo {
		log.Println("  GET  /demo/ok, /demo/fault, /demo/runtime (fault injection)")
	}

	if err := s.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops the listener gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpSrv == nil {
		return nil
	}
	return s.httpSrv.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}

// handleMetrics writes the hand-rolled counter projection first, then
// appends the registry-gathered families (Go runtime collector etc.)
// using the Prometheus text encoder, skipping our own families to avoid
// duplicates.
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; version=0.0.4")

	fmt.Fprint(w, s.metrics.PrometheusExport())
	fmt.Fprintf(w, "\n")

	metricFamilies, err := s.registry.Gather()
	if err != nil {
		fmt.Fprintf(w, "# Error gathering Prometheus metrics: %v\n", err)
		return
	}

	var buf bytes.Buffer
	encoder := expfmt.NewEncoder(&buf, expfmt.FmtText)
	for _, mf := range metricFamilies {
		// Skip metrics we've already written manually (to avoid duplicates);
		// the collector emits the exact same families as PrometheusExport.
		if mf.GetName() == "faultguard_calls_total" ||
			mf.GetName() == "faultguard_faults_intercepted_total" ||
			mf.GetName() == "faultguard_faults_by_category_total" {
			continue
		}
		if err := encoder.Encode(mf); err != nil {
			fmt.Fprintf(w, "# Error encoding metric %s: %v\n", mf.GetName(), err)
		}
	}

	w.Write(buf.Bytes())
}

type faultsResponse struct {
	Faults []report.Sample `json:"faults"`
	Count  int             `json:"count"`
}

func (s *Server) handleFaults(w http.ResponseWriter, r *http.Request) {
	n := 50
	if raw := r.URL.Query().Get("n"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			http.Error(w, "invalid n parameter", http.StatusBadRequest)
			return
		}
		n = parsed
	}

	samples := s.recent.GetRecent(n)
	resp := faultsResponse{Faults: samples, Count: len(samples)}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Printf("Failed to encode faults response: %v", err)
	}
}

func (s *Server) handleDemoOK(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

// handleDemoFault raises a named fault so operators can watch one travel
// the whole pipeline: interception, translation, record, counters,
// structured 500.
func (s *Server) handleDemoFault(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		name = "DemoFault"
	}
	reason := r.URL.Query().Get("reason")
	if reason == "" {
		reason = "fault injected by request"
	}

	fault.Raise(fault.New(name, reason).WithContext(map[string]any{
		"remote_addr": r.RemoteAddr,
		"path":        r.URL.Path,
	}))
}

// handleDemoRuntime triggers a genuine runtime fault (nil map write) to
// exercise the RuntimeError translation path.
func (s *Server) handleDemoRuntime(w http.ResponseWriter, r *http.Request) {
	var m map[string]int
	m["boom"] = 1 // nil map write, unwinds
}
