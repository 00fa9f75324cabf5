// SPDX-License-Identifier: EPL-2.0

// Package server exposes a running session over HTTP: orientation
// updates come in as JSON, state and Prometheus metrics go out.
package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/ik5/hoapbx/feed"
	"github.com/ik5/hoapbx/internal/logging"
	"github.com/ik5/hoapbx/orientation"
	"github.com/ik5/hoapbx/session"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Controller is the part of session.Controller the handler needs.
type Controller interface {
	UpdateOrientation(dir orientation.Vec3) error
	Status() session.Status
}

var _ Controller = (*session.Controller)(nil)

type Server struct {
	ctrl Controller
	log  *slog.Logger
}

// OrientationRequest is the body of POST /orientation: a look direction
// {"x":..,"y":..,"z":..} or a horizontal {"azimuth":deg}. Missing
// components are zero.
type OrientationRequest struct {
	X       *float64 `json:"x,omitempty"`
	Y       *float64 `json:"y,omitempty"`
	Z       *float64 `json:"z,omitempty"`
	Azimuth *float64 `json:"azimuth,omitempty"`
}

func (o OrientationRequest) direction() (orientation.Vec3, error) {
	vector := o.X != nil || o.Y != nil || o.Z != nil
	switch {
	case vector && o.Azimuth != nil:
		return orientation.Vec3{}, errors.New("direction and azimuth are exclusive")
	case o.Azimuth != nil:
		return feed.Direction(*o.Azimuth), nil
	case !vector:
		return orientation.Vec3{}, errors.New("direction or azimuth is required")
	}
	return orientation.Vec3{X: deref(o.X), Y: deref(o.Y), Z: deref(o.Z)}, nil
}

func deref(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

type errorResponse struct {
	Error string `json:"error"`
}

// NewHandler routes requests to ctrl. When gatherer is nil, /metrics is
// not mounted.
func NewHandler(ctrl Controller, gatherer prometheus.Gatherer, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = logging.NewNop()
	}
	s := &Server{ctrl: ctrl, log: logger}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	r.Get("/state", s.State)
	r.Post("/orientation", s.Orientation)
	if gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}
	return r
}

// State handles GET /state.
func (s *Server) State(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, s.ctrl.Status())
}

// Orientation handles POST /orientation.
func (s *Server) Orientation(w http.ResponseWriter, r *http.Request) {
	var body OrientationRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&body); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{"invalid request body: " + err.Error()})
		return
	}

	dir, err := body.direction()
	if err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{err.Error()})
		return
	}

	if err := s.ctrl.UpdateOrientation(dir); err != nil {
		s.log.Warn("orientation rejected", "error", err)
		s.writeJSON(w, statusFor(err), errorResponse{err.Error()})
		return
	}
	s.writeJSON(w, http.StatusOK, s.ctrl.Status().Orientation)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, orientation.ErrZeroDirection):
		return http.StatusBadRequest
	case errors.Is(err, session.ErrStopped),
		errors.Is(err, session.ErrInvalidTransition),
		errors.Is(err, orientation.ErrNoReference):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error("encode response", "error", err)
	}
}
