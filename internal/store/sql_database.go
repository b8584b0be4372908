package store

import (
	"database/sql"

	"github.com/MKhiriev/go-rpa-cadastro/internal/logger"
	"github.com/MKhiriev/go-rpa-cadastro/migrations"
)

type DB struct {
	*sql.DB
	logger *logger.Logger
}

func (db *DB) Migrate() error {
	if err := migrations.Migrate(db.DB); err != nil {
		db.logger.Err(err).Str("func", "DB.Migrate").Msg("error applying journal migrations")
		return err
	}
	db.logger.Debug().Str("func", "DB.Migrate").Msg("journal schema is up to date")
	return nil
}
