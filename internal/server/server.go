// Package server exposes terrain generation over HTTP. Jobs run in the
// background; clients poll their status, stream progress over a websocket
// and fetch finished layers as PNG.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"

	"terragen/internal/core"
	"terragen/internal/region"
	"terragen/internal/render"
	"terragen/internal/terrain"
	pcore "terragen/pkg/core"
)

// Server routes API requests to the job store.
type Server struct {
	store    *Store
	upgrader websocket.Upgrader
	defaults terrain.Config
}

// New returns a Server whose jobs are cancelled when ctx is done. Overrides
// posted by clients are applied on top of defaults.
func New(ctx context.Context, defaults terrain.Config) *Server {
	return &Server{
		store:    NewStore(ctx),
		defaults: defaults,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Store exposes the job store.
func (s *Server) Store() *Store { return s.store }

// Routes builds the HTTP handler.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})
		r.Get("/params", s.getParams)
		r.Get("/layers", func(w http.ResponseWriter, r *http.Request) {
			respondJSON(w, http.StatusOK, render.Layers())
		})

		r.Get("/jobs", s.listJobs)
		r.Post("/jobs", s.createJob)
		r.Route("/jobs/{id}", func(r chi.Router) {
			r.Get("/", s.getJob)
			r.Delete("/", s.cancelJob)
			r.Get("/ws", s.streamJob)
			r.Get("/layers/{layer}.png", s.getLayer)
			r.Get("/continents", s.getContinents)
			r.Get("/regions/{continent}/{x}/{y}", s.getRegion)
		})
	})
	return r
}

// JobView is the JSON form of a job.
type JobView struct {
	ID       string       `json:"id"`
	Status   Status       `json:"status"`
	Created  time.Time    `json:"created"`
	Error    string       `json:"error,omitempty"`
	Progress core.Event   `json:"progress"`
	Summary  *SummaryView `json:"summary,omitempty"`
}

// SummaryView describes a finished result.
type SummaryView struct {
	Seed              int64   `json:"seed"`
	Dimension         int     `json:"dimension"`
	ErodedDimension   int     `json:"eroded_dimension"`
	Continents        int     `json:"continents"`
	Regions           int     `json:"regions"`
	LandFraction      float64 `json:"land_fraction"`
	ErosionIterations int     `json:"erosion_iterations"`
	ErosionConverged  bool    `json:"erosion_converged"`
	ElapsedSeconds    float64 `json:"elapsed_seconds"`
}

// Summarize builds the summary of a finished result.
func Summarize(res *terrain.Result) *SummaryView {
	return &SummaryView{
		Seed:              res.Seed,
		Dimension:         res.Elevation.W,
		ErodedDimension:   res.Eroded.W,
		Continents:        res.Continents,
		Regions:           res.Regions.Len(),
		LandFraction:      res.LandFraction(),
		ErosionIterations: res.ErosionIterations,
		ErosionConverged:  res.ErosionConverged,
		ElapsedSeconds:    res.Elapsed.Seconds(),
	}
}

func view(j *Job) JobView {
	status, last, err := j.State()
	v := JobView{ID: j.ID.String(), Status: status, Created: j.Created, Progress: last}
	if err != nil {
		v.Error = err.Error()
	}
	if res, rerr := j.Result(); rerr == nil {
		v.Summary = Summarize(res)
	}
	return v
}

func (s *Server) getParams(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.defaults.Parameters())
}

func (s *Server) listJobs(w http.ResponseWriter, r *http.Request) {
	jobs := s.store.List()
	sort.Slice(jobs, func(a, b int) bool { return jobs[a].Created.Before(jobs[b].Created) })
	out := make([]JobView, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, view(j))
	}
	respondJSON(w, http.StatusOK, out)
}

// createJob accepts a JSON object of key/value overrides, the same keys the
// CLI takes through -set.
func (s *Server) createJob(w http.ResponseWriter, r *http.Request) {
	overrides := map[string]string{}
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&overrides); err != nil {
			respondError(w, http.StatusBadRequest, "Invalid JSON body")
			return
		}
	}
	cfg := applyOverrides(s.defaults, overrides)
	j, err := s.store.Create(cfg)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondJSON(w, http.StatusAccepted, view(j))
}

// applyOverrides layers FromMap-style overrides over base by rendering base
// as key/value pairs first.
func applyOverrides(base terrain.Config, overrides map[string]string) terrain.Config {
	if len(overrides) == 0 {
		return base
	}
	kv := map[string]string{}
	for _, g := range base.Parameters().Groups {
		for _, p := range g.Params {
			kv[p.Key] = p.Value
		}
	}
	for k, v := range overrides {
		kv[k] = v
	}
	return terrain.FromMap(kv)
}

func (s *Server) job(w http.ResponseWriter, r *http.Request) (*Job, bool) {
	j, err := s.store.Get(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusNotFound, "Job not found")
		return nil, false
	}
	return j, true
}

func (s *Server) result(w http.ResponseWriter, r *http.Request) (*terrain.Result, bool) {
	j, ok := s.job(w, r)
	if !ok {
		return nil, false
	}
	res, err := j.Result()
	if err != nil {
		respondError(w, http.StatusConflict, "Job has no result yet")
		return nil, false
	}
	return res, true
}

func (s *Server) getJob(w http.ResponseWriter, r *http.Request) {
	j, ok := s.job(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, view(j))
}

func (s *Server) cancelJob(w http.ResponseWriter, r *http.Request) {
	j, ok := s.job(w, r)
	if !ok {
		return
	}
	j.Cancel()
	<-j.Done()
	respondJSON(w, http.StatusOK, view(j))
}

func (s *Server) getLayer(w http.ResponseWriter, r *http.Request) {
	res, ok := s.result(w, r)
	if !ok {
		return
	}
	img, err := render.Image(chi.URLParam(r, "layer"), res)
	if errors.Is(err, render.ErrUnknownLayer) {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "image/png")
	if err := render.WritePNG(w, img); err != nil {
		log.Printf("write png: %v", err)
	}
}

// ContinentView lists a continent and its drainage order.
type ContinentView struct {
	*region.Continent
	Regions int `json:"regions"`
}

func (s *Server) getContinents(w http.ResponseWriter, r *http.Request) {
	res, ok := s.result(w, r)
	if !ok {
		return
	}
	out := make([]ContinentView, 0, res.Continents)
	for _, c := range res.Regions.Continents() {
		out = append(out, ContinentView{Continent: c, Regions: len(res.Regions.Regions(c.ID))})
	}
	respondJSON(w, http.StatusOK, out)
}

// RegionView is one region with its drainage border and water-flow peak.
type RegionView struct {
	*region.Region
	Drainage     *region.Border `json:"drainage,omitempty"`
	Neighbors    []region.Key   `json:"neighbors"`
	MaxWaterFlow int            `json:"max_water_flow"`
}

func (s *Server) getRegion(w http.ResponseWriter, r *http.Request) {
	res, ok := s.result(w, r)
	if !ok {
		return
	}
	var key region.Key
	var err error
	for _, p := range []struct {
		name string
		dst  *int
	}{{"continent", &key.Continent}, {"x", &key.X}, {"y", &key.Y}} {
		if *p.dst, err = strconv.Atoi(chi.URLParam(r, p.name)); err != nil {
			respondError(w, http.StatusBadRequest, "Invalid "+p.name)
			return
		}
	}
	reg, ok := res.Regions.Region(key)
	if !ok {
		respondError(w, http.StatusNotFound, "Region not found")
		return
	}
	out := RegionView{Region: reg, Drainage: reg.Drainage, Neighbors: res.Regions.Neighbors(key)}
	if flow, err := res.Regions.WaterFlow(key, pcore.NewRNG(res.Seed), region.DefaultFlowPasses); err == nil {
		for x := range flow {
			for _, v := range flow[x] {
				out.MaxWaterFlow = max(out.MaxWaterFlow, v)
			}
		}
	}
	respondJSON(w, http.StatusOK, out)
}

// streamJob upgrades to a websocket and forwards progress events until the
// job stops, then sends the final job view and closes.
func (s *Server) streamJob(w http.ResponseWriter, r *http.Request) {
	j, ok := s.job(w, r)
	if !ok {
		return
	}
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("WebSocket upgrade error:", err)
		return
	}
	defer conn.Close()

	events, release := j.Subscribe()
	defer release()
	for {
		select {
		case ev := <-events:
			if err := conn.WriteJSON(ev); err != nil {
				return
			}
		case <-j.Done():
			if err := conn.WriteJSON(view(j)); err != nil {
				return
			}
			_ = conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, "job finished"))
			return
		case <-r.Context().Done():
			return
		}
	}
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
