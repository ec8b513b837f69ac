package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/courseboard/server/internal/common"
	"github.com/courseboard/server/internal/server/auth"
	"github.com/courseboard/server/internal/server/models"
	"github.com/courseboard/server/internal/server/repositories/repomanager"
)

// WorkService implements course-work operations: role-scoped listings,
// details aggregation, progress updates, grading, and comments.
type WorkService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewWorkService(db *sql.DB, m repomanager.RepositoryManager) *WorkService {
	return &WorkService{db: db, repomanager: m}
}

// List returns works visible to the identity: students see their own,
// teachers see everything.
func (s *WorkService) List(ctx context.Context, ident *auth.Identity) ([]*models.WorkSummary, error) {
	repo := s.repomanager.Works(s.db)

	if ident.Role == models.RoleStudent {
		return repo.ListByStudent(ctx, ident.ID)
	}
	return repo.ListAll(ctx)
}

// Create adds a work for the student. Title is required.
func (s *WorkService) Create(ctx context.Context, studentID int64, title, description string, deadline *time.Time) (*models.Work, error) {
	if strings.TrimSpace(title) == "" {
		return nil, fmt.Errorf("%w: title is required", common.ErrMissingFields)
	}

	work, err := s.repomanager.Works(s.db).Create(ctx, &models.Work{
		StudentID:   studentID,
		Title:       title,
		Description: description,
		Deadline:    deadline,
	})
	if err != nil {
		return nil, fmt.Errorf("error creating work: %w", err)
	}
	return work, nil
}

// Details aggregates the work summary with its files, comments, and the
// most recent grade (nil when ungraded).
func (s *WorkService) Details(ctx context.Context, workID int64) (*models.WorkDetails, error) {
	summary, err := s.repomanager.Works(s.db).GetSummary(ctx, workID)
	if err != nil {
		return nil, err
	}

	files, err := s.repomanager.WorkFiles(s.db).ListByWork(ctx, workID)
	if err != nil {
		return nil, fmt.Errorf("error fetching files: %w", err)
	}

	comments, err := s.repomanager.Comments(s.db).ListByWork(ctx, workID)
	if err != nil {
		return nil, fmt.Errorf("error fetching comments: %w", err)
	}

	grade, err := s.repomanager.Grades(s.db).LatestByWork(ctx, workID)
	if err != nil && !errors.Is(err, common.ErrorNotFound) {
		return nil, fmt.Errorf("error fetching grade: %w", err)
	}

	return &models.WorkDetails{
		WorkSummary: *summary,
		Files:       files,
		Comments:    comments,
		Grade:       grade,
	}, nil
}

// UpdateProgress sets the work's progress, which must be within 0..100.
func (s *WorkService) UpdateProgress(ctx context.Context, workID int64, progress int) (*models.Work, error) {
	if progress < 0 || progress > 100 {
		return nil, fmt.Errorf("%w: progress must be between 0 and 100", common.ErrValidation)
	}
	return s.repomanager.Works(s.db).UpdateProgress(ctx, workID, progress)
}

// AddGrade records a teacher's mark for a work. Only teachers may grade;
// the mark must be within 0..100 and the work must exist.
func (s *WorkService) AddGrade(ctx context.Context, ident *auth.Identity, workID int64, grade int, feedback string) (*models.Grade, error) {
	if ident.Role != models.RoleTeacher {
		return nil, fmt.Errorf("%w: only teachers may grade", common.ErrForbidden)
	}
	if grade < 0 || grade > 100 {
		return nil, fmt.Errorf("%w: grade must be between 0 and 100", common.ErrValidation)
	}

	exists, err := s.repomanager.Works(s.db).Exists(ctx, workID)
	if err != nil {
		return nil, fmt.Errorf("error checking work: %w", err)
	}
	if !exists {
		return nil, common.ErrorNotFound
	}

	stored, err := s.repomanager.Grades(s.db).Create(ctx, &models.Grade{
		WorkID:    workID,
		TeacherID: ident.ID,
		Grade:     grade,
		Feedback:  feedback,
	})
	if err != nil {
		return nil, fmt.Errorf("error adding grade: %w", err)
	}
	stored.TeacherName = ident.Name
	return stored, nil
}

// Comments returns a work's comments, newest first, with author names.
func (s *WorkService) Comments(ctx context.Context, workID int64) ([]*models.Comment, error) {
	return s.repomanager.Comments(s.db).ListByWork(ctx, workID)
}

// AddComment stores a comment and returns it with the author's name filled
// in from the identity.
func (s *WorkService) AddComment(ctx context.Context, ident *auth.Identity, workID int64, text string) (*models.Comment, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: comment text is required", common.ErrMissingFields)
	}

	stored, err := s.repomanager.Comments(s.db).Create(ctx, &models.Comment{
		WorkID: workID,
		UserID: ident.ID,
		Text:   text,
	})
	if err != nil {
		return nil, fmt.Errorf("error adding comment: %w", err)
	}
	stored.UserName = ident.Name
	return stored, nil
}

// Grades returns all grades for a work, newest first, with teacher names.
func (s *WorkService) Grades(ctx context.Context, workID int64) ([]*models.Grade, error) {
	return s.repomanager.Grades(s.db).ListByWork(ctx, workID)
}

// ListCourses returns the course catalogue ordered by name.
func (s *WorkService) ListCourses(ctx context.Context) ([]*models.Course, error) {
	return s.repomanager.Courses(s.db).List(ctx)
}
