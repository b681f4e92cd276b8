package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/VehicleRegistry/VehicleRegistry/internal/admin"
	"github.com/VehicleRegistry/VehicleRegistry/internal/common/config"
	"github.com/VehicleRegistry/VehicleRegistry/internal/common/db"
	"github.com/VehicleRegistry/VehicleRegistry/internal/common/logger"
	"github.com/VehicleRegistry/VehicleRegistry/internal/common/server"
	"github.com/VehicleRegistry/VehicleRegistry/internal/common/tracing"
	"github.com/VehicleRegistry/VehicleRegistry/internal/httpapi"
	"github.com/VehicleRegistry/VehicleRegistry/internal/vehicle"
)

var (
	configPath = flag.String("config", "configs/registry-server.json", "配置文件路径")
)

func main() {
	flag.Parse()

	// 加载配置
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}

	// 初始化日志
	log, err := logger.NewLogger(cfg.Log.Level, cfg.Log.Format, cfg.Log.Output, cfg.Log.Path)
	if err != nil {
		panic(fmt.Sprintf("failed to init logger: %v", err))
	}

	// 签名密钥必须外部下发（配置文件或 JWT_SECRET），不提供硬编码兜底
	if cfg.Auth.Enabled && cfg.Auth.JWTSecret == "" {
		log.Fatal("auth.jwt_secret is required (set it in config or via JWT_SECRET)")
	}

	// 初始化链路追踪
	tracer, closer, err := tracing.InitTracer(
		cfg.Server.Name,
		cfg.Jaeger.Endpoint,
		cfg.Jaeger.Sampler,
	)
	if err != nil {
		log.Warnf("failed to init tracer: %v", err)
	} else {
		defer closer.Close()
	}
	_ = tracer

	// 初始化数据库
	gormDB, err := db.NewMySQL(
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Database,
		cfg.Database.MaxIdle,
		cfg.Database.MaxOpen,
	)
	if err != nil {
		log.Fatalf("failed to init mysql: %v", err)
	}
	if err := gormDB.AutoMigrate(&vehicle.Vehicle{}, &admin.Administrator{}); err != nil {
		log.Fatalf("failed to migrate mysql schema: %v", err)
	}

	// 领域服务 + 默认管理员种子
	vehicles := vehicle.NewService(vehicle.NewRepo(gormDB))
	admins := admin.NewService(admin.NewRepo(gormDB))
	if err := admins.SeedDefault(context.Background()); err != nil {
		log.Fatalf("failed to seed default administrator: %v", err)
	}

	// 启动统一的 HTTP 服务模板
	api := httpapi.New(vehicles, admins, cfg.Auth, log)
	if err := server.RunHTTPServer(cfg, log, api.Router()); err != nil {
		log.Fatalf("registry-server exited with error: %v", err)
	}
}
