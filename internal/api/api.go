// Package api serves the calculator and the plan store over HTTP/JSON.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/cory-johannsen/fleetcalc/internal/analysis"
	"github.com/cory-johannsen/fleetcalc/internal/calc"
	"github.com/cory-johannsen/fleetcalc/internal/deck"
	"github.com/cory-johannsen/fleetcalc/internal/storage/postgres"
)

// TokenHeader carries the edit token of a stored plan.
const TokenHeader = "X-Plan-Token"

// Request body limits and list paging defaults.
const (
	MaxBodyBytes     = 1 << 20
	DefaultListLimit = 20
	MaxListLimit     = 100
)

// PlanStore persists Deck4 documents. *postgres.PlanRepository satisfies it.
type PlanStore interface {
	Create(ctx context.Context, name string, deck []byte) (postgres.Plan, string, error)
	Get(ctx context.Context, id uuid.UUID) (postgres.Plan, error)
	List(ctx context.Context, limit, offset int) ([]postgres.Plan, error)
	Update(ctx context.Context, id uuid.UUID, token, name string, deck []byte) error
	Delete(ctx context.Context, id uuid.UUID, token string) error
}

// HealthChecker reports backing store health. *postgres.Pool satisfies it.
type HealthChecker interface {
	Health(ctx context.Context, timeout time.Duration) error
}

// Handler routes the HTTP API.
type Handler struct {
	svc    *calc.Service
	plans  PlanStore
	health HealthChecker
	logger *zap.Logger
	router *mux.Router
}

// NewHandler builds the router. plans and health may be nil, in which case
// the plan routes answer 503 and the health check only reports liveness.
//
// Precondition: svc and logger must be non-nil.
func NewHandler(svc *calc.Service, plans PlanStore, health HealthChecker, logger *zap.Logger) *Handler {
	h := &Handler{svc: svc, plans: plans, health: health, logger: logger}
	r := mux.NewRouter()
	r.HandleFunc("/healthz", h.healthz).Methods(http.MethodGet)

	v1 := r.PathPrefix("/v1").Subrouter()
	v1.HandleFunc("/analyze", h.analyze).Methods(http.MethodPost)
	v1.HandleFunc("/sample", h.sample).Methods(http.MethodPost)
	v1.HandleFunc("/shoot-down", h.shootDown).Methods(http.MethodPost)

	p := v1.PathPrefix("/plans").Subrouter()
	p.Use(h.requireStore)
	p.HandleFunc("", h.createPlan).Methods(http.MethodPost)
	p.HandleFunc("", h.listPlans).Methods(http.MethodGet)
	p.HandleFunc("/{id}", h.getPlan).Methods(http.MethodGet)
	p.HandleFunc("/{id}", h.updatePlan).Methods(http.MethodPut)
	p.HandleFunc("/{id}", h.deletePlan).Methods(http.MethodDelete)
	p.HandleFunc("/{id}/analysis", h.analyzePlan).Methods(http.MethodGet)

	r.Use(h.logRequests)
	h.router = r
	return h
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func (h *Handler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		h.logger.Debug("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("elapsed", time.Since(start)),
		)
	})
}

func (h *Handler) requireStore(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.plans == nil {
			writeError(w, http.StatusServiceUnavailable, "plan store not configured")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]any{
		"error":   http.StatusText(code),
		"message": msg,
		"status":  code,
	})
}

// fail maps err onto a status code and writes it.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	code := http.StatusInternalServerError
	switch {
	case calc.IsDeckError(err):
		code = http.StatusUnprocessableEntity
	case calc.IsInputError(err), errors.Is(err, postgres.ErrInvalidPlan):
		code = http.StatusBadRequest
	case errors.Is(err, postgres.ErrPlanNotFound):
		code = http.StatusNotFound
	case errors.Is(err, postgres.ErrInvalidToken):
		code = http.StatusForbidden
	}
	if code == http.StatusInternalServerError {
		h.logger.Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
		writeError(w, code, "internal error")
		return
	}
	h.logger.Warn("request rejected",
		zap.String("path", r.URL.Path),
		zap.Int("status", code),
		zap.Error(err),
	)
	writeError(w, code, err.Error())
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return false
	}
	return true
}

func (h *Handler) healthz(w http.ResponseWriter, r *http.Request) {
	if h.health != nil {
		if err := h.health.Health(r.Context(), 2*time.Second); err != nil {
			h.logger.Warn("health check failed", zap.Error(err))
			writeError(w, http.StatusServiceUnavailable, "database unavailable")
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) analyze(w http.ResponseWriter, r *http.Request) {
	var q calc.Query
	if !decode(w, r, &q) {
		return
	}
	rep, err := h.svc.Analyze(q)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

// SampleRequest is the body of POST /v1/sample.
type SampleRequest struct {
	calc.Query
	Trials int `json:"trials"`
}

func (h *Handler) sample(w http.ResponseWriter, r *http.Request) {
	var req SampleRequest
	if !decode(w, r, &req) {
		return
	}
	tallies, err := h.svc.Sample(req.Query, req.Trials)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"trials": req.Trials, "ships": tallies})
}

// ShootDownRequest is the body of POST /v1/shoot-down.
type ShootDownRequest struct {
	calc.Query
	Slot   int `json:"slot"`
	Trials int `json:"trials"`
}

func (h *Handler) shootDown(w http.ResponseWriter, r *http.Request) {
	var req ShootDownRequest
	if !decode(w, r, &req) {
		return
	}
	tallies, err := h.svc.ShootDown(req.Query, req.Slot, req.Trials)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"slot": req.Slot, "trials": req.Trials, "ships": tallies})
}

// PlanBody is the body of POST and PUT /v1/plans.
type PlanBody struct {
	Name string          `json:"name"`
	Deck json.RawMessage `json:"deck"`
}

// PlanView is a stored plan as returned by the API.
type PlanView struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Deck      json.RawMessage `json:"deck,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func viewOf(p postgres.Plan) PlanView {
	return PlanView{
		ID:        p.ID,
		Name:      p.Name,
		Deck:      json.RawMessage(p.Deck),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func planID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusNotFound, "unknown plan id")
		return uuid.Nil, false
	}
	return id, true
}

// readPlan decodes and validates a plan body, deriving the name from the
// deck's first fleet when none is given.
func (h *Handler) readPlan(w http.ResponseWriter, r *http.Request) (PlanBody, bool) {
	var body PlanBody
	if !decode(w, r, &body) {
		return PlanBody{}, false
	}
	d, err := deck.Parse(body.Deck)
	if err != nil {
		h.fail(w, r, err)
		return PlanBody{}, false
	}
	if body.Name == "" {
		if f1, ok := d.Fleets["f1"]; ok {
			body.Name = f1.Name
		}
	}
	return body, true
}

func (h *Handler) createPlan(w http.ResponseWriter, r *http.Request) {
	body, ok := h.readPlan(w, r)
	if !ok {
		return
	}
	p, token, err := h.plans.Create(r.Context(), body.Name, body.Deck)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	w.Header().Set("Location", "/v1/plans/"+p.ID.String())
	writeJSON(w, http.StatusCreated, map[string]any{
		"id":    p.ID,
		"name":  p.Name,
		"token": token,
	})
}

func (h *Handler) listPlans(w http.ResponseWriter, r *http.Request) {
	limit, offset := DefaultListLimit, 0
	var err error
	if v := r.URL.Query().Get("limit"); v != "" {
		if limit, err = strconv.Atoi(v); err != nil || limit <= 0 || limit > MaxListLimit {
			writeError(w, http.StatusBadRequest, "limit must be 1.."+strconv.Itoa(MaxListLimit))
			return
		}
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if offset, err = strconv.Atoi(v); err != nil || offset < 0 {
			writeError(w, http.StatusBadRequest, "offset must be a non-negative integer")
			return
		}
	}
	plans, err := h.plans.List(r.Context(), limit, offset)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	views := make([]PlanView, 0, len(plans))
	for _, p := range plans {
		v := viewOf(p)
		v.Deck = nil
		views = append(views, v)
	}
	writeJSON(w, http.StatusOK, map[string]any{"plans": views, "limit": limit, "offset": offset})
}

func (h *Handler) getPlan(w http.ResponseWriter, r *http.Request) {
	id, ok := planID(w, r)
	if !ok {
		return
	}
	p, err := h.plans.Get(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, viewOf(p))
}

func (h *Handler) updatePlan(w http.ResponseWriter, r *http.Request) {
	id, ok := planID(w, r)
	if !ok {
		return
	}
	body, ok := h.readPlan(w, r)
	if !ok {
		return
	}
	if err := h.plans.Update(r.Context(), id, r.Header.Get(TokenHeader), body.Name, body.Deck); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) deletePlan(w http.ResponseWriter, r *http.Request) {
	id, ok := planID(w, r)
	if !ok {
		return
	}
	if err := h.plans.Delete(r.Context(), id, r.Header.Get(TokenHeader)); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// analyzePlan analyses a stored plan with options taken from the query
// string: fleet, formation, engagement, air_state and cn.
func (h *Handler) analyzePlan(w http.ResponseWriter, r *http.Request) {
	id, ok := planID(w, r)
	if !ok {
		return
	}
	p, err := h.plans.Get(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	qs := r.URL.Query()
	q := calc.Query{
		Deck:       json.RawMessage(p.Deck),
		Fleet:      qs.Get("fleet"),
		Formation:  qs.Get("formation"),
		Engagement: qs.Get("engagement"),
		AirState:   qs.Get("air_state"),
	}
	if v := qs.Get("cn"); v != "" {
		if q.Cn, err = strconv.ParseFloat(v, 64); err != nil {
			writeError(w, http.StatusBadRequest, "cn must be a number")
			return
		}
	}
	var rep *analysis.Report
	if rep, err = h.svc.Analyze(q); err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rep)
}
