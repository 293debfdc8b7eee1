/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Trident-Energy/TridentEnergy-GlobalRiskManager-sub000/internal/api"
	"github.com/Trident-Energy/TridentEnergy-GlobalRiskManager-sub000/internal/config"
	"github.com/Trident-Energy/TridentEnergy-GlobalRiskManager-sub000/internal/container"
	"github.com/Trident-Energy/TridentEnergy-GlobalRiskManager-sub000/internal/metrics"
	"github.com/Trident-Energy/TridentEnergy-GlobalRiskManager-sub000/internal/repository"
	"github.com/Trident-Energy/TridentEnergy-GlobalRiskManager-sub000/internal/service"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// serverCmd represents the server command
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the API server",
	Long: `Start the Global Risk Manager API server.
The server will listen on the configured host and port,
and provide REST API interfaces for contract risk evaluation
and approval workflow management.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// 1. 加载配置
		configPath, _ := cmd.Flags().GetString("config")
		cfg, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if cmd.Flags().Changed("host") {
			cfg.Server.Host, _ = cmd.Flags().GetString("host")
		}
		if cmd.Flags().Changed("port") {
			cfg.Server.Port, _ = cmd.Flags().GetInt("port")
		}

		// 2. 初始化容器
		ctr, err := container.NewContainer(cfg)
		if err != nil {
			return fmt.Errorf("failed to initialize container: %w", err)
		}
		defer ctr.Close()

		// 3. 初始化仓储与服务
		db := ctr.DB()
		contracts := repository.NewContractRepository(db)
		reviews := repository.NewReviewRepository(db)
		reviewers := repository.NewReviewerRepository(db)
		comments := repository.NewCommentRepository(db)
		documents := repository.NewDocumentRepository(db)
		entries := repository.NewAuditEntryRepository(db)

		auditSvc := service.NewAuditService(entries, ctr.IDGenerator())
		notifySvc := service.NewNotificationService(ctr.Sink(), ctr.Directory(), auditSvc, ctr.Logger())
		contractSvc := service.NewContractService(db, contracts, auditSvc, ctr.Locker(), ctr.IDGenerator())
		workflowSvc := service.NewWorkflowService(db, contracts, reviews, reviewers, ctr.Directory(), auditSvc, notifySvc, ctr.Locker(), ctr.IDGenerator())
		commentSvc := service.NewCommentService(db, contracts, comments, auditSvc, ctr.Locker(), ctr.IDGenerator())
		documentSvc := service.NewDocumentService(db, contracts, documents, auditSvc, ctr.IDGenerator())

		// 4. 初始化控制器并设置路由
		ctrl := api.NewControllers(contractSvc, workflowSvc, commentSvc, documentSvc, auditSvc, ctr.Refiner(), ctr.Directory())
		router := api.SetupRoutes(cfg, db, ctr.Hub(), ctr.Directory(), ctrl)

		// 5. 配置热更新: 日志级别可在运行时调整
		if configPath != "" {
			watcher := config.NewWatcher(cfg, configPath)
			watcher.OnChange(func(newCfg *config.Config) {
				if level, err := logrus.ParseLevel(newCfg.Log.Level); err == nil {
					ctr.Logger().SetLevel(level)
					log.Printf("Log level changed to %s", newCfg.Log.Level)
				}
			})
			if err := watcher.Start(); err != nil {
				log.Printf("Config watcher disabled: %v", err)
			} else {
				defer watcher.Stop()
			}
		}

		// 6. 后台刷新数据库连接与合同状态分布指标
		metricsDone := make(chan struct{})
		defer close(metricsDone)
		go func() {
			ticker := time.NewTicker(30 * time.Second)
			defer ticker.Stop()
			for {
				select {
				case <-metricsDone:
					return
				case <-ticker.C:
					if err := metrics.UpdateDatabaseConnections(db); err != nil {
						ctr.Logger().WithError(err).Warn("failed to update database metrics")
					}
					counts, err := contracts.CountByStatus()
					if err != nil {
						ctr.Logger().WithError(err).Warn("failed to update contract status metrics")
						continue
					}
					for status, count := range counts {
						metrics.UpdateContractsByStatus(status, float64(count))
					}
				}
			}
		}()

		// 7. 启动服务器
		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		srv := &http.Server{
			Addr:    addr,
			Handler: router,
		}

		// 启动服务器（在 goroutine 中）
		go func() {
			log.Printf("Server starting on %s", addr)
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Fatalf("Failed to start server: %v", err)
			}
		}()

		// 等待中断信号
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		log.Println("Shutting down server...")

		// 优雅关闭
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Fatalf("Server forced to shutdown: %v", err)
		}

		log.Println("Server exited")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)

	// 服务器配置标志
	serverCmd.Flags().String("config", "", "Config file path (default: config.yaml)")
	serverCmd.Flags().String("host", "0.0.0.0", "Server host")
	serverCmd.Flags().Int("port", 8080, "Server port")
}
