// Package http exposes the course-work backend over HTTP/JSON using a
// chi router. Handlers decode requests, call the services, and map
// sentinel errors onto status codes; all business rules live below.
package http

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/courseboard/server/internal/logging"
	"github.com/courseboard/server/internal/server/auth"
	"github.com/courseboard/server/internal/server/config"
	"github.com/courseboard/server/internal/server/models"
)

// UserService is the slice of the user service the handlers need.
type UserService interface {
	Register(ctx context.Context, name, email, password, role string) (string, error)
	Login(ctx context.Context, email, password string) (string, string, error)
	Profile(ctx context.Context, userID int64) (*models.User, error)
}

// WorkService covers course, work, comment, and grade operations.
type WorkService interface {
	List(ctx context.Context, ident *auth.Identity) ([]*models.WorkSummary, error)
	Create(ctx context.Context, studentID int64, title, description string, deadline *time.Time) (*models.Work, error)
	Details(ctx context.Context, workID int64) (*models.WorkDetails, error)
	UpdateProgress(ctx context.Context, workID int64, progress int) (*models.Work, error)
	AddGrade(ctx context.Context, ident *auth.Identity, workID int64, grade int, feedback string) (*models.Grade, error)
	Comments(ctx context.Context, workID int64) ([]*models.Comment, error)
	AddComment(ctx context.Context, ident *auth.Identity, workID int64, text string) (*models.Comment, error)
	Grades(ctx context.Context, workID int64) ([]*models.Grade, error)
	ListCourses(ctx context.Context) ([]*models.Course, error)
}

// FileService stores and retrieves uploaded work files.
type FileService interface {
	Upload(ctx context.Context, workID int64, fileName, contentType string, body io.Reader) (*models.WorkFile, error)
	DownloadURL(ctx context.Context, storedName string) (string, error)
	ListByWork(ctx context.Context, workID int64) ([]*models.WorkFile, error)
}

// Server wires the services into an http.Handler.
type Server struct {
	users    UserService
	works    WorkService
	files    FileService
	verifier *auth.Verifier
	config   *config.Config
	log      logging.Logger
}

func NewServer(users UserService, works WorkService, files FileService, verifier *auth.Verifier, cfg *config.Config, log logging.Logger) *Server {
	return &Server{
		users:    users,
		works:    works,
		files:    files,
		verifier: verifier,
		config:   cfg,
		log:      log,
	}
}

// Router builds the route table. Everything under the authenticated group
// sees a verified *auth.Identity in the request context.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Get("/health", s.handleHealth)

	r.Post("/auth/register", s.handleRegister)
	r.Post("/auth/login", s.handleLogin)
	// Kept for clients that predate the /auth prefix.
	r.Post("/login", s.handleLogin)

	r.Get("/course-works/file/{filename}", s.handleFileRedirect)

	r.Group(func(r chi.Router) {
		r.Use(s.authenticate)

		r.Get("/auth/verify", s.handleVerify)
		r.Get("/dashboard", s.handleDashboard)
		r.Get("/user", s.handleProfile)
		r.Get("/courses", s.handleCourses)

		r.Route("/course-works", func(r chi.Router) {
			r.Get("/", s.handleListWorks)
			r.Post("/", s.handleCreateWork)
			r.Post("/upload", s.handleUpload)
			r.Get("/{id}", s.handleWorkDetails)
			r.Put("/{id}/progress", s.handleUpdateProgress)
			r.Post("/{id}/grade", s.handleAddGrade)
			r.Get("/{id}/comments", s.handleComments)
			r.Post("/{id}/comments", s.handleAddComment)
			r.Get("/{id}/grades", s.handleGrades)
			r.Get("/{id}/files", s.handleWorkFiles)
		})
	})

	return r
}
