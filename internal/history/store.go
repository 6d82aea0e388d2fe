// Package history records every hosted render in Postgres.
package history

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"juriscontent-workers/internal/common/errors"
	"juriscontent-workers/internal/models"
)

const schema = `
CREATE TABLE IF NOT EXISTS render_records (
	id          UUID PRIMARY KEY,
	kind        TEXT NOT NULL,
	template    TEXT NOT NULL,
	format      TEXT NOT NULL DEFAULT '',
	palette     TEXT NOT NULL DEFAULT '',
	image_url   TEXT NOT NULL,
	process_key BIGINT NOT NULL DEFAULT 0,
	created_at  TIMESTAMPTZ NOT NULL
)`

const insertRecord = `
INSERT INTO render_records (id, kind, template, format, palette, image_url, process_key, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

type Store struct {
	db  *sql.DB
	now func() time.Time
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
	}
}

func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return errors.NewDatabaseConnectionFailedError(err)
	}
	return nil
}

// Record assigns an id and creation time when missing and inserts r.
func (s *Store) Record(ctx context.Context, r models.RenderRecord) (models.RenderRecord, error) {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = s.now()
	}

	_, err := s.db.ExecContext(ctx, insertRecord,
		r.ID,
		string(r.Kind),
		r.Template,
		r.Format,
		r.Palette,
		r.ImageURL,
		r.ProcessKey,
		r.CreatedAt,
	)
	if err != nil {
		return r, errors.NewDatabaseInsertFailedError(err)
	}
	return r, nil
}
