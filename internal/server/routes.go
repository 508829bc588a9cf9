package server

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/swaggest/swgui/v5emb"
)

func addRoutes(r chi.Router, logger *slog.Logger, deps Deps) {
	broker := NewBroker()
	sessions := NewSessions(deps.Now)
	play := NewPlay(deps.Store, deps.KV, broker, logger, deps.Now)

	r.Get("/openapi.json", handleOpenAPI())
	r.Mount("/docs", v5emb.New("Athlete Unknown API", "/openapi.json", "/docs"))
	if deps.Health != nil {
		r.Mount("/healthz", deps.Health)
	}

	r.Post("/api/sessions", handleCreateSession(sessions))

	// Player routes: {sport} resolved by sportMiddleware, session by bearer token.
	r.Route("/api/{sport}", func(r chi.Router) {
		r.Use(sportMiddleware)
		r.Use(sessionMiddleware(sessions))
		r.Get("/round", handleGetRound(play, logger))
		r.Post("/round/tiles", handleFlipTile(play, logger))
		r.Post("/round/guesses", handleSubmitGuess(play, logger))
		r.Post("/round/give-up", handleGiveUp(play, logger))
		r.Get("/round/share", handleShare(play, logger))
		r.Get("/stats", handleStats(play, logger))
		r.Get("/live", handleLive(play, broker, logger))
	})

	r.Post("/api/admin/login", handleAdminLogin(deps.Admin, logger))
	r.Post("/api/admin/logout", handleAdminLogout(deps.Admin, logger))
	r.With(adminAuthMiddleware(deps.Admin)).Get("/api/admin/me", handleAdminMe())

	r.Route("/api/admin/players/{sport}", func(r chi.Router) {
		r.Use(adminAuthMiddleware(deps.Admin))
		r.Use(sportMiddleware)
		r.Get("/", handleAdminListPlayers(deps.Store, logger))
		r.Put("/", handleAdminReplacePlayers(deps.Store, logger))
	})

	if deps.SPADir != "" {
		if info, err := os.Stat(deps.SPADir); err == nil && info.IsDir() {
			logger.Info("serving SPA", "dir", deps.SPADir)
			r.NotFound(handleSPA(deps.SPADir))
			return
		}
	}
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})
}
