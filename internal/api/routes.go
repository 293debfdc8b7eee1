package api

import (
	"github.com/Trident-Energy/TridentEnergy-GlobalRiskManager-sub000/internal/assistant"
	"github.com/Trident-Energy/TridentEnergy-GlobalRiskManager-sub000/internal/config"
	"github.com/Trident-Energy/TridentEnergy-GlobalRiskManager-sub000/internal/directory"
	"github.com/Trident-Energy/TridentEnergy-GlobalRiskManager-sub000/internal/service"
	"github.com/Trident-Energy/TridentEnergy-GlobalRiskManager-sub000/internal/websocket"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// Controllers 路由需要的全部控制器
type Controllers struct {
	Contract  *ContractController
	Workflow  *WorkflowController
	Comment   *CommentController
	Document  *DocumentController
	Assistant *AssistantController
	Directory *DirectoryController
	Rates     *RatesController
}

// NewControllers 组装全部控制器
func NewControllers(
	contractSvc service.ContractService,
	workflowSvc service.WorkflowService,
	commentSvc service.CommentService,
	documentSvc service.DocumentService,
	auditSvc service.AuditService,
	refiner assistant.TextRefiner,
	dir directory.UserDirectory,
) *Controllers {
	return &Controllers{
		Contract:  NewContractController(contractSvc, workflowSvc, auditSvc),
		Workflow:  NewWorkflowController(workflowSvc),
		Comment:   NewCommentController(commentSvc),
		Document:  NewDocumentController(documentSvc),
		Assistant: NewAssistantController(refiner),
		Directory: NewDirectoryController(dir),
		Rates:     NewRatesController(),
	}
}

// SetupRoutes 配置路由
func SetupRoutes(cfg *config.Config, db *gorm.DB, hub *websocket.Hub, dir directory.UserDirectory, ctrl *Controllers) *gin.Engine {
	if config.IsProduction(cfg) {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	// 中间件
	router.Use(RequestIDMiddleware())
	router.Use(RequestLogMiddleware())
	router.Use(CORSMiddleware(cfg.CORS.AllowedOrigins))
	router.Use(RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst))

	// 健康检查
	healthController := NewHealthController(db)
	router.GET("/health", healthController.Check)

	// Prometheus 指标端点
	router.GET("/metrics", MetricsHandler)

	// WebSocket 路由
	if hub != nil {
		router.GET("/ws/contracts/:id", websocket.Handler(hub))
	}

	// Swagger UI 路由
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler,
		ginSwagger.URL("http://localhost:8080/swagger/doc.json"), // Swagger JSON URL
	))

	// API v1 路由组
	v1 := router.Group("/api/v1")
	v1.Use(CurrentUserMiddleware(dir))
	{
		// 基础数据路由
		v1.GET("/rates", ctrl.Rates.Rates)
		v1.GET("/entities", ctrl.Rates.Entities)
		v1.GET("/users", ctrl.Directory.List)

		// 助手路由
		v1.POST("/assistant/refine", ctrl.Assistant.Refine)

		// 合同管理路由
		contracts := v1.Group("/contracts")
		{
			contracts.POST("", ctrl.Contract.Create)
			contracts.GET("", ctrl.Contract.List)
			contracts.GET("/:id", ctrl.Contract.Get)
			contracts.PUT("/:id", ctrl.Contract.Update)
			contracts.GET("/:id/audit", ctrl.Contract.Audit)

			// 审批工作流路由
			contracts.POST("/:id/submit", ctrl.Workflow.Submit)
			contracts.POST("/:id/decision", ctrl.Workflow.Decide)
			contracts.POST("/:id/reviewers", ctrl.Workflow.AddReviewer)
			contracts.GET("/:id/reviewers", ctrl.Workflow.Reviewers)
			contracts.GET("/:id/reviews", ctrl.Workflow.Reviews)

			// 评论路由
			contracts.POST("/:id/comments", ctrl.Comment.Add)
			contracts.GET("/:id/comments", ctrl.Comment.List)
			contracts.POST("/:id/comments/read", ctrl.Comment.MarkRead)
			contracts.POST("/:id/comments/:comment_id/like", ctrl.Comment.ToggleLike)

			// 附件路由
			contracts.POST("/:id/documents", ctrl.Document.Upload)
			contracts.GET("/:id/documents", ctrl.Document.List)
		}
	}

	// 未匹配路由统一返回 JSON 404
	router.NoRoute(func(c *gin.Context) {
		Error(c, 404, "route not found", c.Request.URL.Path)
	})

	return router
}
