// Package storage groups the data-access contracts the server wires at
// startup. The concrete implementation lives in storage/postgres.
package storage

import (
	"github.com/prajayganiga-design/Mini-project/internal/domain/accounts"
	"github.com/prajayganiga-design/Mini-project/internal/domain/events"
	"github.com/prajayganiga-design/Mini-project/internal/domain/registrations"
)

// Repository groups data access by domain. Transaction scoping lives on
// the per-domain repositories, which each expose their own WithTx.
type Repository interface {
	Events() events.Repository
	Registrations() registrations.Repository
	Accounts() accounts.Repository
}
