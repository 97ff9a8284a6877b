// Package server exposes the simulation over HTTP. All mutations go
// through the kernel's command queue; GET endpoints read consistent
// snapshots, so handlers never block a running tick.
package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/sirupsen/logrus"

	"github.com/CodeNexus100/signal-iq-be/kernel"
)

var log = logrus.WithField("module", "server")

// Handler serves the HTTP API on top of one kernel.
type Handler struct {
	kernel *kernel.Kernel
}

// New builds the router with all API routes mounted.
func New(k *kernel.Kernel) http.Handler {
	h := &Handler{kernel: k}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/", h.Root)
	r.Route("/api", func(r chi.Router) {
		r.Get("/grid/state", h.GridState)
		r.Get("/grid/overview", h.GridOverview)
		r.Get("/signals/{id}", h.SignalDetail)
		r.Post("/signals/{id}/update", h.SignalUpdate)
		r.Post("/signals/ai", h.SetAIMode)
		r.Post("/patterns/apply", h.ApplyPattern)
		r.Post("/emergency/start", h.StartEmergency)
		r.Post("/emergency/stop", h.StopEmergency)
		r.Post("/vehicles/spawn", h.SpawnVehicle)
		r.Get("/ai/status", h.AIStatus)
	})
	return r
}
