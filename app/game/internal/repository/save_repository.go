package repository

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/lk2023060901/xdooria/app/game/internal/dao"
	"github.com/lk2023060901/xdooria/app/game/internal/metrics"
	"github.com/lk2023060901/xdooria/app/game/internal/savedata"
	"github.com/lk2023060901/xdooria/pkg/checksum"
	"github.com/lk2023060901/xdooria/pkg/compress"
	"github.com/lk2023060901/xdooria/pkg/config"
	"github.com/lk2023060901/xdooria/pkg/database/redis"
	"github.com/lk2023060901/xdooria/pkg/database/sqlite"
	"github.com/lk2023060901/xdooria/pkg/logger"
)

var (
	// ErrNotFound 存档不存在
	ErrNotFound = dao.ErrNotFound
	// ErrCorrupt 存档损坏：校验失败、解压失败或无法解码
	ErrCorrupt = errors.New("repository: corrupt save record")
)

// SaveRepository 存档仓储：记录 <-> 字节，负责编码、压缩与完整性校验
type SaveRepository struct {
	cfg    *Config
	dao    dao.SaveDAO
	logger logger.Logger
}

// NewSaveRepository 创建存档仓储
func NewSaveRepository(cfg *Config, d dao.SaveDAO, l logger.Logger) (*SaveRepository, error) {
	newCfg, err := config.MergeConfig(DefaultConfig(), cfg)
	if err != nil {
		return nil, errors.Wrap(err, "failed to merge repository config")
	}
	if err := config.NewValidator().Validate(newCfg); err != nil {
		return nil, err
	}
	if d == nil {
		return nil, errors.New("repository: nil dao")
	}

	r := &SaveRepository{
		cfg:    newCfg,
		dao:    d,
		logger: logger.OrNoop(l).Named("repository.save"),
	}
	if !r.plainText() {
		// 提前暴露配置错误，不等到第一次存档
		if _, err := compress.New(newCfg.Compression); err != nil {
			return nil, err
		}
		if _, err := checksum.New(newCfg.Checksum); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// OpenDAO 按配置打开存档后端
func OpenDAO(ctx context.Context, cfg *Config, l logger.Logger, m *metrics.InventoryMetrics) (dao.SaveDAO, error) {
	switch cfg.Backend {
	case "", BackendFile:
		return dao.NewFileDAO(cfg.DataDir, savedata.FileName, l, m), nil
	case BackendSQLite:
		db, err := sqlite.New(cfg.SQLite)
		if err != nil {
			return nil, err
		}
		d, err := dao.NewSQLiteDAO(ctx, db, l, m)
		if err != nil {
			_ = db.Close()
			return nil, err
		}
		return d, nil
	case BackendRedis:
		rdb, err := redis.NewClient(cfg.Redis)
		if err != nil {
			return nil, err
		}
		if err := rdb.Ping(ctx); err != nil {
			_ = rdb.Close()
			return nil, errors.Wrap(err, "redis unreachable")
		}
		return dao.NewRedisDAO(rdb, l, m), nil
	default:
		return nil, errors.Newf("repository: unknown save backend %q", cfg.Backend)
	}
}

// Backend 当前后端名
func (r *SaveRepository) Backend() string {
	return r.dao.Backend()
}

func (r *SaveRepository) plainText() bool {
	return r.dao.Backend() == BackendFile
}

// Save 写入存档
func (r *SaveRepository) Save(ctx context.Context, rec *savedata.Record) error {
	stored, err := r.pack(rec)
	if err != nil {
		return err
	}
	if err := r.dao.Store(ctx, stored); err != nil {
		return err
	}
	r.logger.Debug("save record written",
		"backend", r.dao.Backend(),
		"slot", stored.Slot,
		"bytes", len(stored.Payload),
	)
	return nil
}

// Load 读取存档；不存在返回 ErrNotFound，内容或元数据损坏返回 ErrCorrupt
func (r *SaveRepository) Load(ctx context.Context) (*savedata.Record, error) {
	stored, err := r.dao.Load(ctx, r.cfg.Slot)
	if err != nil {
		if errors.Is(err, dao.ErrMalformedRecord) {
			return nil, errors.Join(ErrCorrupt, err)
		}
		return nil, err
	}
	rec, err := unpack(stored)
	if err != nil {
		r.logger.Warn("save record rejected",
			"backend", r.dao.Backend(),
			"slot", r.cfg.Slot,
			"error", err,
		)
		return nil, errors.Join(ErrCorrupt, err)
	}
	return rec, nil
}

// Delete 删除存档
func (r *SaveRepository) Delete(ctx context.Context) error {
	return r.dao.Delete(ctx, r.cfg.Slot)
}

func (r *SaveRepository) Close() error {
	return r.dao.Close()
}

func (r *SaveRepository) pack(rec *savedata.Record) (*dao.StoredRecord, error) {
	if r.plainText() {
		data, err := savedata.Encode(rec, savedata.FormatJSON)
		if err != nil {
			return nil, err
		}
		return &dao.StoredRecord{Slot: r.cfg.Slot, Payload: data, Codec: string(savedata.FormatJSON)}, nil
	}

	data, err := savedata.Encode(rec, savedata.Format(r.cfg.Codec))
	if err != nil {
		return nil, err
	}
	c, err := compress.New(r.cfg.Compression)
	if err != nil {
		return nil, err
	}
	packed, err := c.Compress(data)
	if err != nil {
		return nil, errors.Wrap(err, "failed to compress save record")
	}
	h, err := checksum.New(r.cfg.Checksum)
	if err != nil {
		return nil, err
	}

	return &dao.StoredRecord{
		Slot:         r.cfg.Slot,
		Payload:      packed,
		Checksum:     h.Sum(packed),
		ChecksumType: string(h.Type()),
		Codec:        r.cfg.Codec,
		Compression:  string(c.Type()),
		UpdatedAt:    time.Now(),
	}, nil
}

// unpack 按记录自带的算法元数据解包，配置变更不影响旧存档
func unpack(stored *dao.StoredRecord) (*savedata.Record, error) {
	payload := stored.Payload
	if stored.ChecksumType != "" {
		h, err := checksum.New(checksum.Type(stored.ChecksumType))
		if err != nil {
			return nil, err
		}
		if err := checksum.Verify(h, payload, stored.Checksum); err != nil {
			return nil, err
		}
	}
	if stored.Compression != "" {
		c, err := compress.New(compress.Type(stored.Compression))
		if err != nil {
			return nil, err
		}
		if payload, err = c.Decompress(payload); err != nil {
			return nil, errors.Wrap(err, "failed to decompress save record")
		}
	}
	return savedata.Decode(payload, savedata.Format(stored.Codec))
}
