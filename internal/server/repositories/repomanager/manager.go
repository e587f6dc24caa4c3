package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/taskvault/internal/dbx"
	"github.com/dmitrijs2005/taskvault/internal/server/repositories/addresses"
	"github.com/dmitrijs2005/taskvault/internal/server/repositories/todos"
	"github.com/dmitrijs2005/taskvault/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a particular DBTX, so the
// same repository code runs against *sql.DB or inside a transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Todos(db dbx.DBTX) todos.Repository
	Addresses(db dbx.DBTX) addresses.Repository
}
