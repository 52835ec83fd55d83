package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimid "github.com/go-chi/chi/v5/middleware"

	"github.com/finboard-io/engine/internal/api/handlers"
	mw "github.com/finboard-io/engine/internal/api/middleware"
)

type Dependencies struct {
	HealthHandler   *handlers.HealthHandler
	UsersHandler    *handlers.UsersHandler
	ProjectsHandler *handlers.ProjectsHandler
	GraphsHandler   *handlers.GraphsHandler
	EventsHandler   *handlers.EventsHandler
	ReportsHandler  *handlers.ReportsHandler
}

func NewRouter(dep Dependencies) http.Handler {
	r := chi.NewRouter()

	// Built-in middleware
	r.Use(mw.RequestID)
	r.Use(mw.Recovery)
	r.Use(mw.Logging)
	r.Use(mw.CORS)
	r.Use(mw.RateLimit(10, 20))
	r.Use(chimid.Compress(5))

	r.Route("/api", func(api chi.Router) {
		api.Get("/hello", dep.HealthHandler.Hello)
		api.Post("/echo", dep.HealthHandler.Echo)
		api.Get("/health", dep.HealthHandler.Health)

		api.Get("/agent-query", dep.EventsHandler.AgentQuery)
		api.Post("/generate-report", dep.ReportsHandler.Generate)

		api.Route("/users", func(ur chi.Router) {
			ur.Post("/", dep.UsersHandler.Create)
			ur.Get("/", dep.UsersHandler.List)
			ur.Get("/{id}", dep.UsersHandler.Get)
			ur.Put("/{id}", dep.UsersHandler.Update)
			ur.Delete("/{id}", dep.UsersHandler.Delete)
		})

		api.Route("/projects", func(pr chi.Router) {
			pr.Post("/", dep.ProjectsHandler.Create)
			pr.Get("/", dep.ProjectsHandler.List)
			pr.Get("/{id}", dep.ProjectsHandler.Get)
			pr.Get("/user/{user_id}", dep.ProjectsHandler.ListByUser)
			pr.Put("/{id}", dep.ProjectsHandler.Update)
			pr.Delete("/{id}", dep.ProjectsHandler.Delete)
		})

		api.Route("/graphs", func(gr chi.Router) {
			gr.Post("/", dep.GraphsHandler.Create)
			gr.Get("/", dep.GraphsHandler.List)
			gr.Get("/{id}", dep.GraphsHandler.Get)
			gr.Put("/{id}", dep.GraphsHandler.Update)
			gr.Delete("/{id}", dep.GraphsHandler.Delete)
		})
	})

	return r
}
