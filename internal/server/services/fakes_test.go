package services

import (
	"context"
	"database/sql"

	"github.com/courseboard/server/internal/dbx"
	"github.com/courseboard/server/internal/server/models"
	"github.com/courseboard/server/internal/server/repositories/comments"
	"github.com/courseboard/server/internal/server/repositories/courses"
	"github.com/courseboard/server/internal/server/repositories/grades"
	"github.com/courseboard/server/internal/server/repositories/users"
	"github.com/courseboard/server/internal/server/repositories/workfiles"
	"github.com/courseboard/server/internal/server/repositories/works"
)

// --- fake repositories shared by the service tests ---

type fakeUsersRepo struct {
	createOut *models.User
	createErr error

	byEmailOut *models.User
	byEmailErr error

	byIDOut *models.User
	byIDErr error
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.createOut, nil
}

func (f *fakeUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if f.byEmailErr != nil {
		return nil, f.byEmailErr
	}
	return f.byEmailOut, nil
}

func (f *fakeUsersRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	if f.byIDErr != nil {
		return nil, f.byIDErr
	}
	return f.byIDOut, nil
}

type fakeWorksRepo struct {
	createOut *models.Work
	createErr error

	allOut       []*models.WorkSummary
	byStudentOut []*models.WorkSummary
	listErr      error

	summaryOut *models.WorkSummary
	summaryErr error

	updateOut *models.Work
	updateErr error

	existsOut bool
	existsErr error
}

func (f *fakeWorksRepo) Create(ctx context.Context, w *models.Work) (*models.Work, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.createOut, nil
}

func (f *fakeWorksRepo) ListAll(ctx context.Context) ([]*models.WorkSummary, error) {
	return f.allOut, f.listErr
}

func (f *fakeWorksRepo) ListByStudent(ctx context.Context, studentID int64) ([]*models.WorkSummary, error) {
	return f.byStudentOut, f.listErr
}

func (f *fakeWorksRepo) GetSummary(ctx context.Context, id int64) (*models.WorkSummary, error) {
	if f.summaryErr != nil {
		return nil, f.summaryErr
	}
	return f.summaryOut, nil
}

func (f *fakeWorksRepo) UpdateProgress(ctx context.Context, id int64, progress int) (*models.Work, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return f.updateOut, nil
}

func (f *fakeWorksRepo) Exists(ctx context.Context, id int64) (bool, error) {
	return f.existsOut, f.existsErr
}

type fakeCommentsRepo struct {
	listOut []*models.Comment
	listErr error

	createErr error
}

func (f *fakeCommentsRepo) Create(ctx context.Context, c *models.Comment) (*models.Comment, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	c.ID = 1
	return c, nil
}

func (f *fakeCommentsRepo) ListByWork(ctx context.Context, workID int64) ([]*models.Comment, error) {
	return f.listOut, f.listErr
}

type fakeGradesRepo struct {
	listOut []*models.Grade
	listErr error

	latestOut *models.Grade
	latestErr error

	createErr error
}

func (f *fakeGradesRepo) Create(ctx context.Context, g *models.Grade) (*models.Grade, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	g.ID = 1
	return g, nil
}

func (f *fakeGradesRepo) ListByWork(ctx context.Context, workID int64) ([]*models.Grade, error) {
	return f.listOut, f.listErr
}

func (f *fakeGradesRepo) LatestByWork(ctx context.Context, workID int64) (*models.Grade, error) {
	if f.latestErr != nil {
		return nil, f.latestErr
	}
	return f.latestOut, nil
}

type fakeWorkFilesRepo struct {
	listOut []*models.WorkFile
	listErr error

	createErr error

	byNameOut *models.WorkFile
	byNameErr error
}

func (f *fakeWorkFilesRepo) Create(ctx context.Context, wf *models.WorkFile) (*models.WorkFile, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	wf.ID = 1
	return wf, nil
}

func (f *fakeWorkFilesRepo) ListByWork(ctx context.Context, workID int64) ([]*models.WorkFile, error) {
	return f.listOut, f.listErr
}

func (f *fakeWorkFilesRepo) GetByStoredName(ctx context.Context, storedName string) (*models.WorkFile, error) {
	if f.byNameErr != nil {
		return nil, f.byNameErr
	}
	return f.byNameOut, nil
}

type fakeCoursesRepo struct {
	listOut []*models.Course
	listErr error
}

func (f *fakeCoursesRepo) List(ctx context.Context) ([]*models.Course, error) {
	return f.listOut, f.listErr
}

// fakeRepoManager hands the fakes out regardless of the DB handle.
type fakeRepoManager struct {
	users     *fakeUsersRepo
	courses   *fakeCoursesRepo
	works     *fakeWorksRepo
	comments  *fakeCommentsRepo
	grades    *fakeGradesRepo
	workFiles *fakeWorkFilesRepo
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{
		users:     &fakeUsersRepo{},
		courses:   &fakeCoursesRepo{},
		works:     &fakeWorksRepo{},
		comments:  &fakeCommentsRepo{},
		grades:    &fakeGradesRepo{},
		workFiles: &fakeWorkFilesRepo{},
	}
}

func (f *fakeRepoManager) RunMigrations(ctx context.Context, db *sql.DB) error { return nil }

func (f *fakeRepoManager) Users(db dbx.DBTX) users.Repository            { return f.users }
func (f *fakeRepoManager) Courses(db dbx.DBTX) courses.Repository        { return f.courses }
func (f *fakeRepoManager) Works(db dbx.DBTX) works.Repository            { return f.works }
func (f *fakeRepoManager) Comments(db dbx.DBTX) comments.Repository      { return f.comments }
func (f *fakeRepoManager) Grades(db dbx.DBTX) grades.Repository          { return f.grades }
func (f *fakeRepoManager) WorkFiles(db dbx.DBTX) workfiles.Repository    { return f.workFiles }
