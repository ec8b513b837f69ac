// Package repomanager hands out repositories bound to a DB handle (either
// the pool or an open transaction) and runs schema migrations.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/courseboard/server/internal/dbx"
	"github.com/courseboard/server/internal/server/repositories/comments"
	"github.com/courseboard/server/internal/server/repositories/courses"
	"github.com/courseboard/server/internal/server/repositories/grades"
	"github.com/courseboard/server/internal/server/repositories/users"
	"github.com/courseboard/server/internal/server/repositories/workfiles"
	"github.com/courseboard/server/internal/server/repositories/works"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Courses(db dbx.DBTX) courses.Repository
	Works(db dbx.DBTX) works.Repository
	Comments(db dbx.DBTX) comments.Repository
	Grades(db dbx.DBTX) grades.Repository
	WorkFiles(db dbx.DBTX) workfiles.Repository
}
