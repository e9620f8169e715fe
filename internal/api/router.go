package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/torvik/mapwiki-backend-go/internal/config"
	"github.com/torvik/mapwiki-backend-go/internal/database"
	"github.com/torvik/mapwiki-backend-go/internal/handler"
	"github.com/torvik/mapwiki-backend-go/internal/heatmap"
	"github.com/torvik/mapwiki-backend-go/internal/middleware"
	"github.com/torvik/mapwiki-backend-go/internal/repository"
	"github.com/torvik/mapwiki-backend-go/internal/service"
)

// SetupRouter 设置路由
func SetupRouter(cfg *config.Config, styles *heatmap.StyleResolver) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())

	// CORS 中间件
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Mapwiki Backend API is running",
		})
	})

	// 依赖装配
	nodeRepo := repository.NewNodeRepository(database.GetDB())
	heatmapService := service.NewHeatmapService(nodeRepo, styles)
	nodeService := service.NewNodeService(nodeRepo)
	heatmapHandler := handler.NewHeatmapHandler(heatmapService)
	nodeHandler := handler.NewNodeHandler(nodeService)

	// API 路由组
	api := r.Group("/api/v1")
	api.Use(middleware.RateLimit(120, time.Minute))
	{
		// 热力图接口
		maps := api.Group("/maps/:mapId")
		{
			maps.GET("/heatmap", heatmapHandler.GetHeatmap)
			maps.GET("/heatmap/batch", heatmapHandler.GetHeatmapBatch)
			maps.GET("/items", nodeHandler.ListItems)

			// 资源点管理接口（需要编辑权限）
			nodes := maps.Group("/nodes")
			nodes.Use(middleware.Auth(cfg.JWTSecret))
			{
				nodes.POST("", nodeHandler.ImportNodes)
				nodes.DELETE("", nodeHandler.DeleteNodes)
			}
		}

		// 渲染样式接口
		api.GET("/heatmap/style", heatmapHandler.GetStyle)
	}

	return r
}
