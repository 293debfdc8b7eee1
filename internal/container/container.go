package container

import (
	"fmt"
	"time"

	"github.com/Trident-Energy/TridentEnergy-GlobalRiskManager-sub000/internal/api"
	"github.com/Trident-Energy/TridentEnergy-GlobalRiskManager-sub000/internal/assistant"
	"github.com/Trident-Energy/TridentEnergy-GlobalRiskManager-sub000/internal/config"
	"github.com/Trident-Energy/TridentEnergy-GlobalRiskManager-sub000/internal/database"
	"github.com/Trident-Energy/TridentEnergy-GlobalRiskManager-sub000/internal/directory"
	"github.com/Trident-Energy/TridentEnergy-GlobalRiskManager-sub000/internal/notify"
	"github.com/Trident-Energy/TridentEnergy-GlobalRiskManager-sub000/internal/repository"
	"github.com/Trident-Energy/TridentEnergy-GlobalRiskManager-sub000/internal/service"
	"github.com/Trident-Energy/TridentEnergy-GlobalRiskManager-sub000/internal/utils"
	"github.com/Trident-Energy/TridentEnergy-GlobalRiskManager-sub000/internal/websocket"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Container 依赖注入容器
// 管理所有应用依赖,包括数据库、通知出口、用户目录等
type Container struct {
	db      *gorm.DB
	logger  *logrus.Logger
	hub     *websocket.Hub
	sink    notify.Sink
	dir     directory.UserDirectory
	refiner assistant.TextRefiner
	locker  *service.ContractLocker
	idgen   utils.IDGenerator
}

// NewContainer 创建依赖注入容器
// 根据配置初始化所有依赖组件
func NewContainer(cfg *config.Config) (*Container, error) {
	// 1. 初始化日志
	logger, err := api.NewLoggerFromConfig(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	// 2. 初始化数据库（带重试机制）
	// 默认重试 3 次，初始间隔 1 秒，指数退避
	db, err := database.ConnectWithRetry(cfg.Database, 3, time.Second)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// 执行数据库迁移
	if err := database.Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	// 3. 初始化 WebSocket Hub 并启动事件循环
	hub := websocket.NewHub()
	go hub.Run()

	// 4. 初始化通知出口: 模拟投递 + WebSocket 广播
	var sink notify.Sink = notify.NewLogSink(logger, cfg.Notify.Sender)
	sink = notify.NewHubSink(hub, sink)

	// 5. 初始化用户目录
	dir := directory.NewDirectory(repository.NewUserRepository(db))

	// 6. 初始化文本润色助手
	// 未配置外部服务时使用本地回显实现
	var refiner assistant.TextRefiner = assistant.EchoRefiner{}
	if cfg.Assistant.Endpoint != "" {
		refiner = assistant.NewHTTPRefiner(cfg.Assistant.Endpoint, time.Duration(cfg.Assistant.Timeout)*time.Second)
	}

	return &Container{
		db:      db,
		logger:  logger,
		hub:     hub,
		sink:    sink,
		dir:     dir,
		refiner: refiner,
		locker:  service.NewContractLocker(),
		idgen:   utils.UUIDGenerator{},
	}, nil
}

// DB 获取数据库连接
func (c *Container) DB() *gorm.DB {
	return c.db
}

// Logger 获取日志记录器
func (c *Container) Logger() *logrus.Logger {
	return c.logger
}

// Hub 获取 WebSocket Hub
func (c *Container) Hub() *websocket.Hub {
	return c.hub
}

// Sink 获取通知出口
func (c *Container) Sink() notify.Sink {
	return c.sink
}

// Directory 获取用户目录
func (c *Container) Directory() directory.UserDirectory {
	return c.dir
}

// Refiner 获取文本润色助手
func (c *Container) Refiner() assistant.TextRefiner {
	return c.refiner
}

// Locker 获取合同锁管理器
func (c *Container) Locker() *service.ContractLocker {
	return c.locker
}

// IDGenerator 获取 ID 生成器
func (c *Container) IDGenerator() utils.IDGenerator {
	return c.idgen
}

// Close 关闭容器,清理资源
func (c *Container) Close() error {
	if c.db != nil {
		sqlDB, err := c.db.DB()
		if err == nil {
			sqlDB.Close()
		}
	}
	return nil
}
