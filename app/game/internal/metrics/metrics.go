package metrics

import (
	"net/http"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/lk2023060901/xdooria/pkg/config"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Config 指标配置
type Config struct {
	// Namespace 指标命名空间
	Namespace string `mapstructure:"namespace" validate:"required"`
	// EnableGoCollector 是否采集 Go 运行时指标
	EnableGoCollector bool `mapstructure:"enable_go_collector"`
}

// DefaultConfig 默认配置
func DefaultConfig() *Config {
	return &Config{Namespace: "inventory"}
}

// InventoryMetrics 背包子系统指标，使用独立的 Registry，由宿主决定如何暴露
type InventoryMetrics struct {
	registry *prometheus.Registry

	DragOutcomes   *prometheus.CounterVec   // 拖拽结算（按结果）
	Crafts         *prometheus.CounterVec   // 合成（按结果）
	Pickups        *prometheus.CounterVec   // 拾取（按结果）
	SaveOps        *prometheus.CounterVec   // 存读档（按操作、结果）
	SaveDuration   *prometheus.HistogramVec // 存读档延迟
	StoreOps       *prometheus.CounterVec   // 存储后端操作（按后端、操作、结果）
	InventoryItems prometheus.Gauge         // 当前背包物品数
	LogEntries     *prometheus.CounterVec   // 日志条数（按等级）
}

// New 创建指标并注册到内部 Registry
func New(cfg *Config) (*InventoryMetrics, error) {
	newCfg, err := config.MergeConfig(DefaultConfig(), cfg)
	if err != nil {
		return nil, errors.Wrap(err, "failed to merge metrics config")
	}
	ns := newCfg.Namespace

	m := &InventoryMetrics{
		registry: prometheus.NewRegistry(),

		DragOutcomes: prometheus.NewCounterVec(
			prometheus.CounterOpts{Namespace: ns, Name: "drag_outcomes_total", Help: "拖拽结算总数"},
			[]string{"outcome"},
		),
		Crafts: prometheus.NewCounterVec(
			prometheus.CounterOpts{Namespace: ns, Name: "crafts_total", Help: "合成次数"},
			[]string{"result"}, // result: recipe/fallback/skipped
		),
		Pickups: prometheus.NewCounterVec(
			prometheus.CounterOpts{Namespace: ns, Name: "pickups_total", Help: "拾取次数"},
			[]string{"result"}, // result: collected/rejected
		),
		SaveOps: prometheus.NewCounterVec(
			prometheus.CounterOpts{Namespace: ns, Name: "save_operations_total", Help: "存读档次数"},
			[]string{"operation", "result"}, // operation: save/load
		),
		SaveDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: ns,
				Name:      "save_duration_seconds",
				Help:      "存读档延迟（秒）",
				Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
			},
			[]string{"operation"},
		),
		StoreOps: prometheus.NewCounterVec(
			prometheus.CounterOpts{Namespace: ns, Name: "store_operations_total", Help: "存储后端操作次数"},
			[]string{"backend", "operation", "result"},
		),
		InventoryItems: prometheus.NewGauge(
			prometheus.GaugeOpts{Namespace: ns, Name: "inventory_items", Help: "当前背包物品数"},
		),
		LogEntries: prometheus.NewCounterVec(
			prometheus.CounterOpts{Namespace: ns, Name: "log_entries_total", Help: "日志条数"},
			[]string{"level"},
		),
	}

	cs := []prometheus.Collector{
		m.DragOutcomes, m.Crafts, m.Pickups, m.SaveOps, m.SaveDuration,
		m.StoreOps, m.InventoryItems, m.LogEntries,
	}
	if newCfg.EnableGoCollector {
		cs = append(cs, collectors.NewGoCollector())
	}
	for _, c := range cs {
		if err := m.registry.Register(c); err != nil {
			return nil, errors.Wrap(err, "failed to register collector")
		}
	}
	return m, nil
}

func result(ok bool) string {
	if ok {
		return "success"
	}
	return "failed"
}

// 以下方法均允许 nil 接收者，便于可选注入

func (m *InventoryMetrics) RecordDrag(outcome string) {
	if m == nil {
		return
	}
	m.DragOutcomes.WithLabelValues(outcome).Inc()
}

func (m *InventoryMetrics) RecordCraft(result string) {
	if m == nil {
		return
	}
	m.Crafts.WithLabelValues(result).Inc()
}

func (m *InventoryMetrics) RecordPickup(collected bool) {
	if m == nil {
		return
	}
	label := "collected"
	if !collected {
		label = "rejected"
	}
	m.Pickups.WithLabelValues(label).Inc()
}

// RecordSave 记录存读档，operation: save/load
func (m *InventoryMetrics) RecordSave(operation string, ok bool, d time.Duration) {
	if m == nil {
		return
	}
	m.SaveOps.WithLabelValues(operation, result(ok)).Inc()
	m.SaveDuration.WithLabelValues(operation).Observe(d.Seconds())
}

// RecordStore 记录存储后端操作
func (m *InventoryMetrics) RecordStore(backend, operation string, ok bool) {
	if m == nil {
		return
	}
	m.StoreOps.WithLabelValues(backend, operation, result(ok)).Inc()
}

func (m *InventoryMetrics) SetInventoryItems(n int) {
	if m == nil {
		return
	}
	m.InventoryItems.Set(float64(n))
}

// RecordLog 用于 logger.LevelHook
func (m *InventoryMetrics) RecordLog(level string) {
	if m == nil {
		return
	}
	m.LogEntries.WithLabelValues(level).Inc()
}

// Registry 内部 Registry，宿主可合并到自己的采集体系
func (m *InventoryMetrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler 返回 /metrics 的 HTTP 处理器
func (m *InventoryMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
