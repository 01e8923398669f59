package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/colechengame/Nreporter/internal/controller"
	"github.com/colechengame/Nreporter/internal/model"
	"github.com/colechengame/Nreporter/internal/repository"
	"github.com/colechengame/Nreporter/internal/router"
	"github.com/colechengame/Nreporter/internal/seed"
	"github.com/colechengame/Nreporter/internal/service"
	"github.com/colechengame/Nreporter/pkg/config"
	"github.com/colechengame/Nreporter/pkg/database"
	"github.com/colechengame/Nreporter/pkg/logger"
)

func main() {
	// 1. 加载配置与日志
	cfg := config.Load()
	if err := logger.Init(cfg.Env); err != nil {
		panic(err)
	}
	defer logger.Sync()

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 2. 初始化数据库
	db := initDatabase(cfg)

	// 3. 种子资料
	if cfg.SeedOnStart {
		if err := seed.Run(db); err != nil {
			logger.L().Fatal("種子資料建立失敗", zap.Error(err))
		}
	}

	// 4. 初始化依赖
	deps := initDependencies(cfg, db)

	// 5. 初始化路由并启动
	r := router.SetupRouter(cfg.CORSOrigin, deps.Controllers)
	startServer(r, cfg.ServerPort)
}

// ==================== 依赖容器 ====================

// Dependencies 依赖容器
type Dependencies struct {
	DB          *gorm.DB
	Repos       *Repositories
	Services    *Services
	Controllers router.Controllers
}

// Repositories 仓库集合
type Repositories struct {
	Report   repository.ReportRepository
	Staff    repository.StaffRepository
	Store    repository.StoreRepository
	Group    repository.GroupRepository
	Template repository.TemplateRepository
	Scope    repository.ScopeRepository
	AILog    repository.AICommandLogRepository
	Uow      *repository.AuthUnitOfWork
}

// Services 服务集合
type Services struct {
	Report   *service.ReportService
	Staff    *service.StaffService
	Store    *service.StoreService
	Group    *service.GroupService
	Template *service.TemplateService
	Scope    *service.ScopeService
	AI       *service.AIService
}

// ==================== 初始化函数 ====================

// initDatabase 初始化数据库并迁移表结构
func initDatabase(cfg *config.Config) *gorm.DB {
	return database.InitDB(cfg.DB.DSN(),
		// Catalog
		&model.Report{}, &model.ReportTemplate{}, &model.TemplateReport{},
		// People
		&model.Staff{},
		// Store graph
		&model.Store{}, &model.StoreManager{}, &model.StoreAuthUser{}, &model.StoreAuthScope{},
		// Group graph
		&model.Group{}, &model.GroupStore{}, &model.GroupManager{}, &model.GroupManagerScope{},
		// Audit
		&model.AICommandLog{},
	)
}

// initDependencies 初始化所有依赖
func initDependencies(cfg *config.Config, db *gorm.DB) *Dependencies {
	repos := &Repositories{
		Report:   repository.NewReportRepository(db),
		Staff:    repository.NewStaffRepository(db),
		Store:    repository.NewStoreRepository(db),
		Group:    repository.NewGroupRepository(db),
		Template: repository.NewTemplateRepository(db),
		Scope:    repository.NewScopeRepository(db),
		AILog:    repository.NewAICommandLogRepository(db),
		Uow:      repository.NewAuthUnitOfWork(db),
	}

	scopeSvc := service.NewScopeService()
	services := &Services{
		Scope:    scopeSvc,
		Report:   service.NewReportService(repos.Report),
		Staff:    service.NewStaffService(repos.Staff),
		Template: service.NewTemplateService(repos.Uow, repos.Template, scopeSvc),
	}
	services.Store = service.NewStoreService(repos.Uow, repos.Store, repos.Staff, scopeSvc)
	services.Group = service.NewGroupService(repos.Uow, repos.Group, repos.Staff, scopeSvc)
	services.AI = service.NewAIService(&service.AIConfig{
		APIKey: cfg.AI.APIKey,
		Model:  cfg.AI.Model,
	}, repos.Store, repos.Staff, repos.AILog, services.Store)

	controllers := router.Controllers{
		Report:   controller.NewReportController(services.Report),
		Staff:    controller.NewStaffController(services.Staff),
		Store:    controller.NewStoreController(services.Store),
		Group:    controller.NewGroupController(services.Group),
		Template: controller.NewTemplateController(services.Template),
		AI:       controller.NewAIController(services.AI),
	}

	return &Dependencies{
		DB:          db,
		Repos:       repos,
		Services:    services,
		Controllers: controllers,
	}
}

// ==================== 服务启动 ====================

// startServer 启动服务并等待退出信号
func startServer(r *gin.Engine, port string) {
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	go func() {
		logger.L().Info("服務啟動", zap.String("port", port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.L().Fatal("服務啟動失敗", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.L().Info("正在關閉服務...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.L().Fatal("服務強制關閉", zap.Error(err))
	}

	logger.L().Info("服務已退出")
}
