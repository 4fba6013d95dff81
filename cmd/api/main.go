package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"

	"juntos-mais-api/internal/donations"
	"juntos-mais-api/internal/handlers"
	"juntos-mais-api/internal/logger"
	"juntos-mais-api/internal/middleware"
	"juntos-mais-api/internal/store"
	ws "juntos-mais-api/internal/websocket"
)

// Config holds the loaded configuration.
type Config struct {
	DSN         string `mapstructure:"DSN"`
	Port        string `mapstructure:"PORT"`
	LogMode     string `mapstructure:"LOG_MODE"`
	CorsOrigins string `mapstructure:"CORS_ORIGINS"`
}

// loadConfig reads config.env from the working directory, with environment
// variables taking precedence. A missing file is fine in containers.
func loadConfig() (config Config, err error) {
	viper.AddConfigPath(".")
	viper.SetConfigName("config")
	viper.SetConfigType("env")
	viper.AutomaticEnv()

	viper.SetDefault("DSN", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("LOG_MODE", "development")
	viper.SetDefault("CORS_ORIGINS", "*")

	if err = viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return
		}
		err = nil
	}

	err = viper.Unmarshal(&config)
	return
}

func corsConfig(origins string) cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "PATCH"}
	cfg.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	if origins == "*" {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = strings.Split(origins, ",")
		cfg.AllowCredentials = true
	}
	return cfg
}

func main() {
	config, err := loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "cannot load config:", err)
		os.Exit(1)
	}

	log, err := logger.New(config.LogMode)
	if err != nil {
		fmt.Fprintln(os.Stderr, "cannot init logger:", err)
		os.Exit(1)
	}
	defer log.Sync()

	st, err := store.Open(config.DSN, log)
	if err != nil {
		log.Fatal("cannot connect to database", "error", err)
	}
	defer st.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := st.Migrate(ctx); err != nil {
		log.Fatal("cannot run migrations", "error", err)
	}
	log.Info("connected to database")

	hub := ws.NewHub(log)
	go hub.Run()

	ctrl := donations.NewController(st, log, hub)

	if strings.HasPrefix(config.LogMode, "prod") {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.New(corsConfig(config.CorsOrigins)))
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(log))

	handlers.RegisterRoutes(r, st, ctrl, hub, log)

	addr := ":" + config.Port
	log.Info("server starting", "addr", addr)
	if err := r.Run(addr); err != nil {
		log.Fatal("could not start server", "error", err)
	}
}
