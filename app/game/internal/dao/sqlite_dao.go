package dao

import (
	"context"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/cockroachdb/errors"
	"github.com/lk2023060901/xdooria/app/game/internal/metrics"
	"github.com/lk2023060901/xdooria/pkg/database/sqlite"
	"github.com/lk2023060901/xdooria/pkg/logger"
)

var _ SaveDAO = (*SQLiteDAO)(nil)

const saveTable = "save_records"

var saveSchema = []string{
	`CREATE TABLE IF NOT EXISTS save_records (
		slot          TEXT PRIMARY KEY,
		payload       BLOB NOT NULL,
		checksum      INTEGER NOT NULL,
		checksum_type TEXT NOT NULL,
		codec         TEXT NOT NULL,
		compression   TEXT NOT NULL,
		updated_at    INTEGER NOT NULL
	)`,
}

// SQLiteDAO SQLite 存档后端
type SQLiteDAO struct {
	db      *sqlite.Client
	logger  logger.Logger
	metrics *metrics.InventoryMetrics
}

// NewSQLiteDAO 创建 DAO 并建表
func NewSQLiteDAO(ctx context.Context, db *sqlite.Client, l logger.Logger, m *metrics.InventoryMetrics) (*SQLiteDAO, error) {
	if err := db.Migrate(ctx, saveSchema...); err != nil {
		return nil, errors.Wrap(err, "failed to migrate save schema")
	}
	return &SQLiteDAO{
		db:      db,
		logger:  logger.OrNoop(l).Named("dao.sqlite"),
		metrics: m,
	}, nil
}

func (d *SQLiteDAO) Backend() string { return "sqlite" }

func (d *SQLiteDAO) Load(ctx context.Context, slot string) (*StoredRecord, error) {
	query, args, err := squirrel.
		Select("payload", "checksum", "checksum_type", "codec", "compression", "updated_at").
		From(saveTable).
		Where(squirrel.Eq{"slot": slot}).
		PlaceholderFormat(squirrel.Question).
		ToSql()
	if err != nil {
		return nil, err
	}

	var (
		rec       = &StoredRecord{Slot: slot}
		checksum  int64
		updatedAt int64
	)
	err = d.db.QueryRow(ctx, query, args,
		&rec.Payload, &checksum, &rec.ChecksumType, &rec.Codec, &rec.Compression, &updatedAt)
	if err != nil {
		if errors.Is(err, sqlite.ErrNoRows) {
			d.metrics.RecordStore(d.Backend(), "load", true)
			return nil, errors.Wrapf(ErrNotFound, "slot %s", slot)
		}
		d.metrics.RecordStore(d.Backend(), "load", false)
		return nil, errors.Wrap(err, "failed to load save record")
	}

	d.metrics.RecordStore(d.Backend(), "load", true)
	// SQLite INTEGER 为有符号 64 位，按位存取
	rec.Checksum = uint64(checksum)
	rec.UpdatedAt = time.UnixMilli(updatedAt)
	return rec, nil
}

// Store Upsert 存档
func (d *SQLiteDAO) Store(ctx context.Context, rec *StoredRecord) error {
	updatedAt := rec.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now()
	}

	query, args, err := squirrel.
		Insert(saveTable).
		Columns("slot", "payload", "checksum", "checksum_type", "codec", "compression", "updated_at").
		Values(rec.Slot, rec.Payload, int64(rec.Checksum), rec.ChecksumType, rec.Codec, rec.Compression, updatedAt.UnixMilli()).
		Suffix("ON CONFLICT (slot) DO UPDATE SET " +
			"payload = excluded.payload, checksum = excluded.checksum, checksum_type = excluded.checksum_type, " +
			"codec = excluded.codec, compression = excluded.compression, updated_at = excluded.updated_at").
		PlaceholderFormat(squirrel.Question).
		ToSql()
	if err != nil {
		return err
	}

	if _, err := d.db.Exec(ctx, query, args...); err != nil {
		d.metrics.RecordStore(d.Backend(), "store", false)
		return errors.Wrap(err, "failed to store save record")
	}
	d.metrics.RecordStore(d.Backend(), "store", true)
	d.logger.Debug("save record stored", "slot", rec.Slot, "bytes", len(rec.Payload))
	return nil
}

func (d *SQLiteDAO) Delete(ctx context.Context, slot string) error {
	query, args, err := squirrel.
		Delete(saveTable).
		Where(squirrel.Eq{"slot": slot}).
		PlaceholderFormat(squirrel.Question).
		ToSql()
	if err != nil {
		return err
	}
	if _, err := d.db.Exec(ctx, query, args...); err != nil {
		return errors.Wrap(err, "failed to delete save record")
	}
	return nil
}

func (d *SQLiteDAO) Close() error {
	return d.db.Close()
}
