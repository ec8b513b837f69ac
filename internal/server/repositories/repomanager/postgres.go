package repomanager

import (
	"context"
	"database/sql"

	"github.com/courseboard/server/internal/dbx"
	"github.com/courseboard/server/internal/server/migrations"
	"github.com/courseboard/server/internal/server/repositories/comments"
	"github.com/courseboard/server/internal/server/repositories/courses"
	"github.com/courseboard/server/internal/server/repositories/grades"
	"github.com/courseboard/server/internal/server/repositories/users"
	"github.com/courseboard/server/internal/server/repositories/workfiles"
	"github.com/courseboard/server/internal/server/repositories/works"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

type PostgresRepositoryManager struct {
}

func NewPostgresRepositoryManager() *PostgresRepositoryManager {
	return &PostgresRepositoryManager{}
}

func (m *PostgresRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Courses(db dbx.DBTX) courses.Repository {
	return courses.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Works(db dbx.DBTX) works.Repository {
	return works.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Comments(db dbx.DBTX) comments.Repository {
	return comments.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Grades(db dbx.DBTX) grades.Repository {
	return grades.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) WorkFiles(db dbx.DBTX) workfiles.Repository {
	return workfiles.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}

	if err := goose.UpContext(ctx, db, "."); err != nil {
		return err
	}

	return nil
}
