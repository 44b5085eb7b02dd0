// Package quicklook serves a read-only HTTP preview of one decoded FITS
// file: HDU summaries, header cards, table rows and image statistics as
// JSON, plus Prometheus metrics. It consumes the fits package's public API
// only and contains no format logic.
package quicklook

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/robert-malhotra/go-fits/fits"
	"github.com/robert-malhotra/go-fits/internal/ctxlog"
)

// Server exposes one decoded FITS file over HTTP.
type Server struct {
	name    string
	file    *fits.File
	metrics *Metrics
	reg     *prometheus.Registry
	log     *slog.Logger
}

// New creates a server for the given file. name is the label reported in
// listings, typically the source file name.
func New(file *fits.File, name string, log *slog.Logger) *Server {
	reg := prometheus.NewRegistry()
	return &Server{
		name:    name,
		file:    file,
		metrics: NewMetrics(reg),
		reg:     reg,
		log:     log,
	}
}

// Router builds the HTTP route tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(s.withLogger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"*"},
		MaxAge:         300,
	}))

	r.Handle("/metrics", promhttp.HandlerFor(s.reg, promhttp.HandlerOpts{}))

	r.Get("/healthz", s.metrics.Instrument("GET", "/healthz", s.handleHealth))
	r.Get("/hdus", s.metrics.Instrument("GET", "/hdus", s.handleList))
	r.Get("/hdus/{index}/header", s.metrics.Instrument("GET", "/hdus/{index}/header", s.handleHeader))
	r.Get("/hdus/{index}/table", s.metrics.Instrument("GET", "/hdus/{index}/table", s.handleTable))
	r.Get("/hdus/{index}/stats", s.metrics.Instrument("GET", "/hdus/{index}/stats", s.handleStats))

	return r
}

// ListenAndServe runs the server on addr until it fails.
func (s *Server) ListenAndServe(addr string) error {
	s.log.Info("quicklook server listening", "addr", addr, "file", s.name)
	srv := &http.Server{Addr: addr, Handler: s.Router()}
	return srv.ListenAndServe()
}

// withLogger embeds the request-scoped logger into the context.
func (s *Server) withLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := s.log.With("method", r.Method, "path", r.URL.Path)
		next.ServeHTTP(w, r.WithContext(ctxlog.WithLogger(r.Context(), log)))
	})
}

type healthResponse struct {
	Status string `json:"status"`
	File   string `json:"file"`
	HDUs   int    `json:"hdus"`
}

type hduSummary struct {
	Index  int    `json:"index"`
	Kind   string `json:"kind"`
	Shape  []int  `json:"shape"`
	Bitpix int    `json:"bitpix,omitempty"`
	Cards  int    `json:"cards"`
}

type cardResponse struct {
	Key     string `json:"key"`
	Value   any    `json:"value"`
	Comment string `json:"comment,omitempty"`
}

type statsResponse struct {
	Min     float64    `json:"min"`
	Max     float64    `json:"max"`
	Mean    float64    `json:"mean"`
	StdDev  float64    `json:"stddev"`
	Pixels  int        `json:"pixels"`
	Stretch [2]float64 `json:"stretch"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status: "ok",
		File:   s.name,
		HDUs:   s.file.NumHDUs(),
	})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	summaries := make([]hduSummary, s.file.NumHDUs())
	for i, h := range s.file.HDUs() {
		bitpix, _ := h.Header.GetInt("BITPIX")
		summaries[i] = hduSummary{
			Index:  i,
			Kind:   h.Kind(),
			Shape:  h.Shape(),
			Bitpix: bitpix,
			Cards:  h.Header.Len(),
		}
	}
	ctxlog.FromContext(r.Context()).Debug("listed HDUs", "count", len(summaries))
	writeJSON(w, http.StatusOK, summaries)
}

func (s *Server) handleHeader(w http.ResponseWriter, r *http.Request) {
	h := s.hduParam(w, r)
	if h == nil {
		return
	}

	cards := h.Header.Cards()
	out := make([]cardResponse, len(cards))
	for i, c := range cards {
		out[i] = cardResponse{Key: c.Key, Value: c.Value, Comment: c.Comment}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleTable(w http.ResponseWriter, r *http.Request) {
	h := s.hduParam(w, r)
	if h == nil {
		return
	}
	rows, ok := h.Rows()
	if !ok {
		writeError(w, http.StatusBadRequest, "HDU is not a table")
		return
	}

	if limit, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && limit >= 0 && limit < len(rows) {
		rows = rows[:limit]
	}
	writeJSON(w, http.StatusOK, rows)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	h := s.hduParam(w, r)
	if h == nil {
		return
	}
	stats, ok := h.Stats()
	if !ok {
		writeError(w, http.StatusBadRequest, "HDU has no image data")
		return
	}

	low, high := stats.DisplayRange(0)
	writeJSON(w, http.StatusOK, statsResponse{
		Min:     stats.Min,
		Max:     stats.Max,
		Mean:    stats.Mean,
		StdDev:  stats.StdDev,
		Pixels:  stats.N,
		Stretch: [2]float64{low, high},
	})
}

// hduParam resolves the {index} route parameter, writing a 404 and
// returning nil when it does not name an HDU.
func (s *Server) hduParam(w http.ResponseWriter, r *http.Request) *fits.HDU {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeError(w, http.StatusNotFound, "invalid HDU index")
		return nil
	}
	h := s.file.HDU(index)
	if h == nil {
		writeError(w, http.StatusNotFound, "no such HDU")
		return nil
	}
	return h
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
