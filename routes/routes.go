package routes

import (
	"net/http"

	"github.com/AmanLovesCats/RCC-Bot/handlers"
	"github.com/AmanLovesCats/RCC-Bot/middleware"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware" // Alias to avoid conflict
	"github.com/go-chi/cors"
)

func SetupRoutes(
	router *chi.Mux,
	gateway *handlers.GatewayHandler,
	dashboard *handlers.DashboardHandler,
	auth *handlers.AuthHandler,
	webSocket *handlers.WebSocketHandler,
	jwtSecret []byte,
) {
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	// События платформенного моста.
	router.Route("/gateway", func(r chi.Router) {
		r.Post("/slash", gateway.Slash)
		r.Post("/control", gateway.Control)
		r.Post("/form", gateway.Form)
		r.Post("/attachments", gateway.Attachments)
	})

	router.Post("/auth/login", auth.Login)

	// Админский дашборд, только по JWT.
	router.Route("/api", func(r chi.Router) {
		r.Use(middleware.Authenticate(jwtSecret))
		r.Use(middleware.Authorize("admin"))

		r.Get("/tournaments", dashboard.ListTournaments)
		r.Get("/tournaments/{name}", dashboard.GetTournament)
		r.Delete("/tournaments/{name}", dashboard.DeleteTournament)
	})

	router.Get("/ws", webSocket.ServeWs)
}
