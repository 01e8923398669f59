package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/colechengame/Nreporter/internal/controller"
	"github.com/colechengame/Nreporter/internal/middleware"
)

// aiCommandCooldown 同一来源触发 AI 指令的最小间隔
const aiCommandCooldown = 3 * time.Second

// Controllers 路由依赖的全部控制器
type Controllers struct {
	Report   *controller.ReportController
	Staff    *controller.StaffController
	Store    *controller.StoreController
	Group    *controller.GroupController
	Template *controller.TemplateController
	AI       *controller.AIController
}

// SetupRouter 注册所有路由
func SetupRouter(corsOrigin string, ctls Controllers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(corsOrigin))

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
		})
	})

	api := r.Group("/api")
	{
		// API 索引
		api.GET("", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"name": "Nreporter API",
				"endpoints": []string{
					"/api/reports",
					"/api/staff",
					"/api/stores",
					"/api/groups",
					"/api/templates",
					"/api/ai/command",
				},
			})
		})

		// 报表目录
		reports := api.Group("/reports")
		{
			reports.GET("", ctls.Report.ListReports)
			reports.GET("/:id", ctls.Report.GetReport)
		}

		// 人员管理
		staff := api.Group("/staff")
		{
			staff.GET("", ctls.Staff.ListStaff)
			staff.GET("/:id", ctls.Staff.GetStaff)
			staff.POST("", ctls.Staff.CreateStaff)
			staff.PUT("/:id", ctls.Staff.UpdateStaff)
			staff.DELETE("/:id", ctls.Staff.DeleteStaff)
		}

		// 门市管理
		stores := api.Group("/stores")
		{
			stores.GET("", ctls.Store.ListStores)
			stores.GET("/:id", ctls.Store.GetStore)
			stores.POST("", ctls.Store.CreateStore)
			stores.PUT("/:id", ctls.Store.UpdateStore)
			stores.DELETE("/:id", ctls.Store.DeleteStore)
			stores.POST("/:id/managers", ctls.Store.AssignManager)
			stores.POST("/:id/auth-users", ctls.Store.AddAuthUser)
			stores.DELETE("/:id/auth-users/:authUserId", ctls.Store.RemoveAuthUser)
		}

		// 群组管理
		groups := api.Group("/groups")
		{
			groups.GET("", ctls.Group.ListGroups)
			groups.GET("/:id", ctls.Group.GetGroup)
			groups.POST("", ctls.Group.CreateGroup)
			groups.PUT("/:id", ctls.Group.UpdateGroup)
			groups.DELETE("/:id", ctls.Group.DeleteGroup)
			groups.POST("/:id/managers", ctls.Group.AddGroupManager)
			groups.DELETE("/:id/managers/:managerId", ctls.Group.RemoveGroupManager)
		}

		// 报表组合
		templates := api.Group("/templates")
		{
			templates.GET("", ctls.Template.ListTemplates)
			templates.GET("/:id", ctls.Template.GetTemplate)
			templates.POST("", ctls.Template.CreateTemplate)
			templates.PUT("/:id", ctls.Template.UpdateTemplate)
			templates.DELETE("/:id", ctls.Template.DeleteTemplate)
		}

		// AI 指令
		ai := api.Group("/ai")
		{
			limiter := middleware.NewCommandRateLimiter()
			ai.POST("/command", middleware.RateLimit(limiter, aiCommandCooldown), ctls.AI.ExecuteCommand)
			ai.GET("/logs", ctls.AI.ListCommandLogs)
		}
	}

	// 统一 404 响应
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "路由不存在",
			},
		})
	})

	return r
}
