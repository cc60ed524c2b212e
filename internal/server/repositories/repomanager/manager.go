package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/fuel/internal/dbx"
	"github.com/dmitrijs2005/fuel/internal/server/repositories/profiles"
	"github.com/dmitrijs2005/fuel/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/fuel/internal/server/repositories/users"
)

// RepositoryManager hands out repositories bound to either the pool or a
// transaction, so services can group writes with dbx.WithTx.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Profiles(db dbx.DBTX) profiles.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
}
