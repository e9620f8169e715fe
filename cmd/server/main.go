package main

import (
	"log"

	"github.com/torvik/mapwiki-backend-go/internal/api"
	"github.com/torvik/mapwiki-backend-go/internal/config"
	"github.com/torvik/mapwiki-backend-go/internal/database"
	"github.com/torvik/mapwiki-backend-go/internal/heatmap"
)

func main() {
	// 加载配置
	cfg := config.Load()

	// 初始化数据库
	dbConfig := database.Config{
		Path: cfg.DBPath,
	}
	if err := database.Init(dbConfig); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer database.Close()

	// 加载热力图样式
	styles, err := heatmap.LoadStyleResolver(cfg.StylePath)
	if err != nil {
		log.Fatal("Failed to load heatmap styles:", err)
	}

	// 初始化路由
	router := api.SetupRouter(cfg, styles)

	// 启动服务器
	log.Printf("Server starting on port %s", cfg.Port)
	if err := router.Run(cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
