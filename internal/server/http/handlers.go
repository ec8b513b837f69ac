package http

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/courseboard/server/internal/common"
)

func workIDParam(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid work id", common.ErrValidation)
	}
	return id, nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(r.Context(), w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}
	if err := readJSON(r, &req); err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	token, err := s.users.Register(r.Context(), req.Name, req.Email, req.Password, req.Role)
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	s.writeJSON(r.Context(), w, http.StatusOK, map[string]string{"token": token})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := readJSON(r, &req); err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	token, role, err := s.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	s.writeJSON(r.Context(), w, http.StatusOK, map[string]string{
		"token": token,
		"role":  role,
	})
}

func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	// Reaching this handler means the middleware already accepted the token.
	s.writeJSON(r.Context(), w, http.StatusOK, true)
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	ident := IdentityFromContext(r.Context())
	s.writeJSON(r.Context(), w, http.StatusOK, map[string]any{
		"message": "Welcome to the dashboard!",
		"userId":  ident.ID,
		"role":    ident.Role,
	})
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	ident := IdentityFromContext(r.Context())

	user, err := s.users.Profile(r.Context(), ident.ID)
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	s.writeJSON(r.Context(), w, http.StatusOK, user)
}

func (s *Server) handleCourses(w http.ResponseWriter, r *http.Request) {
	courses, err := s.works.ListCourses(r.Context())
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	s.writeJSON(r.Context(), w, http.StatusOK, courses)
}

func (s *Server) handleListWorks(w http.ResponseWriter, r *http.Request) {
	works, err := s.works.List(r.Context(), IdentityFromContext(r.Context()))
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	s.writeJSON(r.Context(), w, http.StatusOK, works)
}

func (s *Server) handleCreateWork(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title       string     `json:"title"`
		Description string     `json:"description"`
		Deadline    *time.Time `json:"deadline"`
	}
	if err := readJSON(r, &req); err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	ident := IdentityFromContext(r.Context())

	work, err := s.works.Create(r.Context(), ident.ID, req.Title, req.Description, req.Deadline)
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	s.writeJSON(r.Context(), w, http.StatusCreated, work)
}

func (s *Server) handleWorkDetails(w http.ResponseWriter, r *http.Request) {
	id, err := workIDParam(r)
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	details, err := s.works.Details(r.Context(), id)
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	s.writeJSON(r.Context(), w, http.StatusOK, details)
}

func (s *Server) handleUpdateProgress(w http.ResponseWriter, r *http.Request) {
	id, err := workIDParam(r)
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	var req struct {
		Progress int `json:"progress"`
	}
	if err := readJSON(r, &req); err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	work, err := s.works.UpdateProgress(r.Context(), id, req.Progress)
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	s.writeJSON(r.Context(), w, http.StatusOK, work)
}

func (s *Server) handleAddGrade(w http.ResponseWriter, r *http.Request) {
	id, err := workIDParam(r)
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	var req struct {
		Grade    int    `json:"grade"`
		Feedback string `json:"feedback"`
	}
	if err := readJSON(r, &req); err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	grade, err := s.works.AddGrade(r.Context(), IdentityFromContext(r.Context()), id, req.Grade, req.Feedback)
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	s.writeJSON(r.Context(), w, http.StatusCreated, grade)
}

func (s *Server) handleComments(w http.ResponseWriter, r *http.Request) {
	id, err := workIDParam(r)
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	comments, err := s.works.Comments(r.Context(), id)
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	s.writeJSON(r.Context(), w, http.StatusOK, comments)
}

func (s *Server) handleAddComment(w http.ResponseWriter, r *http.Request) {
	id, err := workIDParam(r)
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	var req struct {
		Text string `json:"comment_text"`
	}
	if err := readJSON(r, &req); err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	comment, err := s.works.AddComment(r.Context(), IdentityFromContext(r.Context()), id, req.Text)
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	s.writeJSON(r.Context(), w, http.StatusCreated, comment)
}

func (s *Server) handleGrades(w http.ResponseWriter, r *http.Request) {
	id, err := workIDParam(r)
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	grades, err := s.works.Grades(r.Context(), id)
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	s.writeJSON(r.Context(), w, http.StatusOK, grades)
}

func (s *Server) handleWorkFiles(w http.ResponseWriter, r *http.Request) {
	id, err := workIDParam(r)
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	files, err := s.files.ListByWork(r.Context(), id)
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	s.writeJSON(r.Context(), w, http.StatusOK, files)
}

// handleUpload accepts a multipart form with a "file" part and a "workId"
// value. Bodies over the configured cap are rejected before buffering.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.config.MaxUploadBytes)

	if err := r.ParseMultipartForm(s.config.MaxUploadBytes); err != nil {
		s.writeError(r.Context(), w, fmt.Errorf("%w: invalid multipart form", common.ErrValidation))
		return
	}

	workID, err := strconv.ParseInt(r.FormValue("workId"), 10, 64)
	if err != nil {
		s.writeError(r.Context(), w, fmt.Errorf("%w: work id is required", common.ErrMissingFields))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.writeError(r.Context(), w, fmt.Errorf("%w: file is required", common.ErrMissingFields))
		return
	}
	defer file.Close()

	stored, err := s.files.Upload(r.Context(), workID, header.Filename, header.Header.Get("Content-Type"), file)
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	s.writeJSON(r.Context(), w, http.StatusCreated, stored)
}

// handleFileRedirect resolves a stored file name to a short-lived storage
// URL. It is public on purpose: stored names are unguessable UUIDs.
func (s *Server) handleFileRedirect(w http.ResponseWriter, r *http.Request) {
	url, err := s.files.DownloadURL(r.Context(), chi.URLParam(r, "filename"))
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	http.Redirect(w, r, url, http.StatusFound)
}
