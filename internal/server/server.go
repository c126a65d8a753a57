package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/example/vocadrill/internal/database"
)

// Server is the HTTP surface over the repositories
type Server struct {
	router    chi.Router
	users     *database.UserRepository
	units     *database.UnitRepository
	words     *database.WordRepository
	sessions  *database.SessionRepository
	jwtSecret []byte
}

// New builds the server and its routes
func New(jwtSecret string) *Server {
	s := &Server{
		users:     database.NewUserRepository(),
		units:     database.NewUnitRepository(),
		words:     database.NewWordRepository(),
		sessions:  database.NewSessionRepository(),
		jwtSecret: []byte(jwtSecret),
	}

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Post("/api/auth/register", s.register)
	r.Post("/api/auth/login", s.login)

	r.Group(func(r chi.Router) {
		r.Use(s.authenticate)

		r.Get("/api/units", s.listUnits)
		r.Post("/api/units", s.uploadUnit)
		r.Get("/api/units/{id}", s.getUnit)
		r.Delete("/api/units/{id}", s.deleteUnit)
		r.Get("/api/words", s.getWords)

		r.Get("/api/session", s.getSession)
		r.Post("/api/session", s.createSession)
		r.Put("/api/session", s.updateSession)
		r.Delete("/api/session", s.deleteSession)
	})

	s.router = r
	return s
}

// Handler returns the root handler for http.Server
func (s *Server) Handler() http.Handler {
	return s.router
}
