package dao

import (
	"context"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/lk2023060901/xdooria/app/game/internal/metrics"
	"github.com/lk2023060901/xdooria/pkg/logger"
	"github.com/lk2023060901/xdooria/pkg/serializer"
)

var _ SaveDAO = (*FileDAO)(nil)

// DefaultSlot 默认存档位，文件后端直接写在数据目录下
const DefaultSlot = "default"

// FileDAO 文件存档：每个存档位一个明文文件
// 默认存档位为 <dir>/<fileName>，其它存档位为 <dir>/<slot>/<fileName>
type FileDAO struct {
	dir      string
	fileName string
	logger   logger.Logger
	metrics  *metrics.InventoryMetrics
}

func NewFileDAO(dir, fileName string, l logger.Logger, m *metrics.InventoryMetrics) *FileDAO {
	return &FileDAO{
		dir:      dir,
		fileName: fileName,
		logger:   logger.OrNoop(l).Named("dao.file"),
		metrics:  m,
	}
}

// Path 存档位对应的文件路径；只取存档位名的最后一段，"." 与 ".." 返回 ErrInvalidSlot
func (d *FileDAO) Path(slot string) (string, error) {
	if slot == "" || slot == DefaultSlot {
		return filepath.Join(d.dir, d.fileName), nil
	}
	base := filepath.Base(slot)
	if base == "." || base == ".." || base == string(filepath.Separator) {
		return "", errors.Wrapf(ErrInvalidSlot, "slot %q", slot)
	}
	return filepath.Join(d.dir, base, d.fileName), nil
}

func (d *FileDAO) Backend() string { return "file" }

func (d *FileDAO) Load(ctx context.Context, slot string) (*StoredRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path, err := d.Path(slot)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			d.metrics.RecordStore(d.Backend(), "load", true)
			return nil, errors.Wrapf(ErrNotFound, "path %s", path)
		}
		d.metrics.RecordStore(d.Backend(), "load", false)
		return nil, errors.Wrapf(err, "failed to read save file %s", path)
	}

	d.metrics.RecordStore(d.Backend(), "load", true)
	info, _ := os.Stat(path)
	rec := &StoredRecord{Slot: slot, Payload: data, Codec: serializer.NameJSON}
	if info != nil {
		rec.UpdatedAt = info.ModTime()
	}
	return rec, nil
}

// Store 先写临时文件再 rename，写入中途失败不会破坏旧存档
func (d *FileDAO) Store(ctx context.Context, rec *StoredRecord) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	defer func() { d.metrics.RecordStore(d.Backend(), "store", err == nil) }()

	if rec.Codec != "" && rec.Codec != serializer.NameJSON {
		return errors.Newf("file backend only stores json, got %s", rec.Codec)
	}

	path, err := d.Path(rec.Slot)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrapf(err, "failed to create save dir %s", filepath.Dir(path))
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".saveData-*.tmp")
	if err != nil {
		return errors.Wrap(err, "failed to create temp save file")
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(rec.Payload); err != nil {
		_ = tmp.Close()
		return errors.Wrap(err, "failed to write temp save file")
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return errors.Wrap(err, "failed to sync temp save file")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "failed to close temp save file")
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return errors.Wrapf(err, "failed to replace save file %s", path)
	}

	d.logger.Debug("save file written", "path", path, "bytes", len(rec.Payload))
	return nil
}

func (d *FileDAO) Delete(ctx context.Context, slot string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path, err := d.Path(slot)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return errors.Wrap(err, "failed to delete save file")
	}
	return nil
}

func (d *FileDAO) Close() error { return nil }
