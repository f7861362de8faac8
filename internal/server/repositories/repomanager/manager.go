// Package repomanager builds repositories bound to a specific database
// handle, so services can run the same repository code against *sql.DB or an
// open transaction.
package repomanager

import (
	"github.com/eventkeeper/eventkeeper/internal/dbx"
	"github.com/eventkeeper/eventkeeper/internal/server/repositories/documents"
	"github.com/eventkeeper/eventkeeper/internal/server/repositories/refreshtokens"
	"github.com/eventkeeper/eventkeeper/internal/server/repositories/users"
)

type RepositoryManager interface {
	Users(db dbx.DBTX) users.Repository
	Documents(db dbx.DBTX) documents.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
}
