package metrics

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

var (
	// API 请求计数器
	apiRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "path", "status"},
	)

	// API 请求响应时间
	apiRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// 合同创建数
	contractsCreatedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "contracts_created_total",
			Help: "Total number of contracts created",
		},
	)

	// 审批决定数
	decisionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "decisions_total",
			Help: "Total number of workflow decisions recorded",
		},
		[]string{"decision"}, // Approved, Rejected, Changes Requested
	)

	// 高风险标记数
	highRiskFlaggedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "high_risk_flagged_total",
			Help: "Total number of contracts flagged as high risk",
		},
	)

	// 通知发送数
	notificationsSentTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notifications_sent_total",
			Help: "Total number of workflow notifications dispatched",
		},
		[]string{"status"}, // delivered, failed
	)

	// 数据库连接数
	databaseConnectionsActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "database_connections_active",
			Help: "Number of active database connections",
		},
	)

	databaseConnectionsIdle = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "database_connections_idle",
			Help: "Number of idle database connections",
		},
	)

	databaseConnectionsMax = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "database_connections_max",
			Help: "Maximum number of database connections",
		},
	)

	// 合同状态分布
	contractsByStatus = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "contracts_by_status",
			Help: "Number of contracts by workflow status",
		},
		[]string{"status"},
	)
)

var once sync.Once

func init() {
	prometheus.MustRegister(apiRequestsTotal)
	prometheus.MustRegister(apiRequestDuration)
	prometheus.MustRegister(contractsCreatedTotal)
	prometheus.MustRegister(decisionsTotal)
	prometheus.MustRegister(highRiskFlaggedTotal)
	prometheus.MustRegister(notificationsSentTotal)
	prometheus.MustRegister(databaseConnectionsActive)
	prometheus.MustRegister(databaseConnectionsIdle)
	prometheus.MustRegister(databaseConnectionsMax)
	prometheus.MustRegister(contractsByStatus)

	// 注册 Go 运行时指标（只注册一次）
	once.Do(func() {
		_ = prometheus.Register(prometheus.NewGoCollector())
		_ = prometheus.Register(prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}))
	})
}

// Handler 返回 Prometheus 指标处理器
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordAPIRequest 记录 API 请求
func RecordAPIRequest(method, path string, status int, duration float64) {
	statusText := http.StatusText(status)
	if statusText == "" {
		statusText = fmt.Sprintf("%d", status)
	}
	apiRequestsTotal.WithLabelValues(method, path, statusText).Inc()
	apiRequestDuration.WithLabelValues(method, path).Observe(duration)
}

// RecordContractCreated 记录合同创建
func RecordContractCreated() {
	contractsCreatedTotal.Inc()
}

// RecordDecision 记录审批决定
func RecordDecision(decision string) {
	decisionsTotal.WithLabelValues(decision).Inc()
}

// RecordHighRiskFlagged 记录高风险标记
func RecordHighRiskFlagged() {
	highRiskFlaggedTotal.Inc()
}

// RecordNotification 记录通知发送结果
func RecordNotification(status string) {
	notificationsSentTotal.WithLabelValues(status).Inc()
}

// UpdateDatabaseConnections 更新数据库连接数指标
func UpdateDatabaseConnections(db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("database connection is nil")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}

	stats := sqlDB.Stats()
	databaseConnectionsActive.Set(float64(stats.OpenConnections - stats.Idle))
	databaseConnectionsIdle.Set(float64(stats.Idle))
	databaseConnectionsMax.Set(float64(stats.MaxOpenConnections))

	return nil
}

// UpdateContractsByStatus 更新合同状态分布指标
func UpdateContractsByStatus(status string, count float64) {
	contractsByStatus.WithLabelValues(status).Set(count)
}
