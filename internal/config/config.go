package config

import (
	"os"
)

// Config 应用配置
type Config struct {
	Port      string
	DBPath    string
	JWTSecret string
	StylePath string // Optional YAML file of heatmap zoom style brackets
}

// Load 加载配置
func Load() *Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = ":8080"
	}

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "./data/maps/nodes.db"
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = "your-secret-key-change-in-production"
	}

	return &Config{
		Port:      port,
		DBPath:    dbPath,
		JWTSecret: jwtSecret,
		StylePath: os.Getenv("STYLE_PATH"),
	}
}
