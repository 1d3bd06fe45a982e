package character

import (
	"context"
	"database/sql"
	stderrors "errors"
	"log/slog"
	"path/filepath"
	"strings"

	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"

	"github.com/KirkDiggler/chargen/internal/errors"
	"github.com/KirkDiggler/chargen/internal/pkg/sqlitemigrate"
	"github.com/KirkDiggler/chargen/internal/repositories/character/migrations"
)

// MemoryPath opens a private in-memory database
const MemoryPath = ":memory:"

type sqliteRepository struct {
	db *sql.DB
}

// SQLiteConfig contains configuration for the SQLite character repository.
type SQLiteConfig struct {
	// Path to the database file, or MemoryPath
	Path string
}

// Validate validates the SQLiteConfig.
func (cfg *SQLiteConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("path", cfg.Path, vb)
	return vb.Build()
}

// SQLiteRepository is a Repository that owns its database handle
type SQLiteRepository interface {
	Repository
	Close() error
}

// OpenSQLite opens the database and applies the embedded migrations
func OpenSQLite(ctx context.Context, cfg *SQLiteConfig) (SQLiteRepository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	dsn := filepath.Clean(cfg.Path) + "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL"
	if cfg.Path == MemoryPath {
		dsn = "file::memory:"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to open sqlite db")
	}
	if cfg.Path == MemoryPath {
		// every pooled connection would otherwise get its own empty database
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to ping sqlite db")
	}
	if err := sqlitemigrate.Apply(ctx, db, migrations.FS, ""); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "failed to run migrations")
	}

	return &sqliteRepository{db: db}, nil
}

func (r *sqliteRepository) Close() error {
	return r.db.Close()
}

func (r *sqliteRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	if err := validateWrite(input.ID, input.Character); err != nil {
		return nil, err
	}

	data, err := encode(input.Character)
	if err != nil {
		return nil, err
	}
	meta := input.Character.Metadata()

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO characters (id, state, player_name, record, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		input.ID,
		string(input.Character.State()),
		meta.PlayerName,
		string(data),
		meta.CreatedAt,
		meta.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, errors.AlreadyExistsf("character with ID %s already exists", input.ID)
		}
		return nil, errors.Wrapf(err, "failed to create character")
	}

	return &CreateOutput{Entry: &Entry{ID: input.ID, Character: input.Character}}, nil
}

func (r *sqliteRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errIDEmpty)
	}

	var data string
	err := r.db.QueryRowContext(ctx, `SELECT record FROM characters WHERE id = ?`, input.ID).Scan(&data)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFoundf("character with ID %s not found", input.ID)
		}
		return nil, errors.Wrapf(err, "failed to get character")
	}

	c, err := decode(input.ID, []byte(data))
	if err != nil {
		return nil, err
	}

	return &GetOutput{Entry: &Entry{ID: input.ID, Character: c}}, nil
}

func (r *sqliteRepository) Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error) {
	if err := validateWrite(input.ID, input.Character); err != nil {
		return nil, err
	}

	data, err := encode(input.Character)
	if err != nil {
		return nil, err
	}
	meta := input.Character.Metadata()

	res, err := r.db.ExecContext(ctx,
		`UPDATE characters
		 SET state = ?, player_name = ?, record = ?, updated_at = ?
		 WHERE id = ?`,
		string(input.Character.State()),
		meta.PlayerName,
		string(data),
		meta.UpdatedAt,
		input.ID,
	)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to update character")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, errors.NotFoundf("character with ID %s not found", input.ID)
	}

	return &UpdateOutput{Entry: &Entry{ID: input.ID, Character: input.Character}}, nil
}

func (r *sqliteRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errIDEmpty)
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM characters WHERE id = ?`, input.ID)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to delete character")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, errors.NotFoundf("character with ID %s not found", input.ID)
	}

	return &DeleteOutput{}, nil
}

func (r *sqliteRepository) List(ctx context.Context, _ ListInput) (*ListOutput, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, record FROM characters ORDER BY created_at, id`)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list characters")
	}
	defer func() { _ = rows.Close() }()

	var entries []*Entry
	for rows.Next() {
		var id, data string
		if err := rows.Scan(&id, &data); err != nil {
			return nil, errors.Wrapf(err, "failed to scan character")
		}

		c, err := decode(id, []byte(data))
		if err != nil {
			slog.WarnContext(ctx, "skipping unreadable character",
				"character_id", id,
				"error", err.Error())
			continue
		}
		entries = append(entries, &Entry{ID: id, Character: c})
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to list characters")
	}

	return &ListOutput{Entries: entries}, nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr *msqlite.Error
	if stderrors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint failed")
}
