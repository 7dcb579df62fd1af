package dao

import (
	"context"
	"strconv"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/lk2023060901/xdooria/app/game/internal/metrics"
	"github.com/lk2023060901/xdooria/pkg/database/redis"
	"github.com/lk2023060901/xdooria/pkg/logger"
)

var _ SaveDAO = (*RedisDAO)(nil)

// Redis 哈希字段
const (
	fieldPayload      = "payload"
	fieldChecksum     = "checksum"
	fieldChecksumType = "checksum_type"
	fieldCodec        = "codec"
	fieldCompression  = "compression"
	fieldUpdatedAt    = "updated_at"
)

// RedisDAO Redis 存档后端，每个存档位一个哈希
type RedisDAO struct {
	redis   *redis.Client
	logger  logger.Logger
	metrics *metrics.InventoryMetrics
}

func NewRedisDAO(rdb *redis.Client, l logger.Logger, m *metrics.InventoryMetrics) *RedisDAO {
	return &RedisDAO{
		redis:   rdb,
		logger:  logger.OrNoop(l).Named("dao.redis"),
		metrics: m,
	}
}

func (d *RedisDAO) Backend() string { return "redis" }

func (d *RedisDAO) key(slot string) string {
	return d.redis.Key("save", slot)
}

func (d *RedisDAO) Load(ctx context.Context, slot string) (*StoredRecord, error) {
	m, err := d.redis.HGetAll(ctx, d.key(slot))
	if err != nil {
		if errors.Is(err, redis.ErrNil) {
			d.metrics.RecordStore(d.Backend(), "load", true)
			return nil, errors.Wrapf(ErrNotFound, "slot %s", slot)
		}
		d.metrics.RecordStore(d.Backend(), "load", false)
		d.logger.Error("failed to load save record", "slot", slot, "error", err)
		return nil, errors.Wrap(err, "failed to load save record")
	}
	d.metrics.RecordStore(d.Backend(), "load", true)

	checksum, err := strconv.ParseUint(m[fieldChecksum], 10, 64)
	if err != nil {
		d.logger.Warn("save record has invalid checksum field", "slot", slot, "error", err)
		return nil, errors.Join(ErrMalformedRecord, errors.Wrapf(err, "slot %s: invalid checksum field", slot))
	}
	updatedAt, _ := strconv.ParseInt(m[fieldUpdatedAt], 10, 64)

	return &StoredRecord{
		Slot:         slot,
		Payload:      []byte(m[fieldPayload]),
		Checksum:     checksum,
		ChecksumType: m[fieldChecksumType],
		Codec:        m[fieldCodec],
		Compression:  m[fieldCompression],
		UpdatedAt:    time.UnixMilli(updatedAt),
	}, nil
}

func (d *RedisDAO) Store(ctx context.Context, rec *StoredRecord) error {
	updatedAt := rec.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now()
	}

	err := d.redis.HSet(ctx, d.key(rec.Slot), map[string]any{
		fieldPayload:      rec.Payload,
		fieldChecksum:     strconv.FormatUint(rec.Checksum, 10),
		fieldChecksumType: rec.ChecksumType,
		fieldCodec:        rec.Codec,
		fieldCompression:  rec.Compression,
		fieldUpdatedAt:    strconv.FormatInt(updatedAt.UnixMilli(), 10),
	})
	d.metrics.RecordStore(d.Backend(), "store", err == nil)
	if err != nil {
		return errors.Wrap(err, "failed to store save record")
	}
	return nil
}

func (d *RedisDAO) Delete(ctx context.Context, slot string) error {
	if _, err := d.redis.Del(ctx, d.key(slot)); err != nil {
		return errors.Wrap(err, "failed to delete save record")
	}
	return nil
}

func (d *RedisDAO) Close() error {
	return d.redis.Close()
}
