package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/overdrive-dev/garage16-visit-scheduler/internal/adapters/in/http"
	"github.com/overdrive-dev/garage16-visit-scheduler/internal/adapters/in/rabbitmq"
	"github.com/overdrive-dev/garage16-visit-scheduler/internal/adapters/out/backend"
	"github.com/overdrive-dev/garage16-visit-scheduler/internal/adapters/out/cache"
	"github.com/overdrive-dev/garage16-visit-scheduler/internal/adapters/out/logger"
	"github.com/overdrive-dev/garage16-visit-scheduler/internal/config"
	"github.com/overdrive-dev/garage16-visit-scheduler/internal/core/ports/out"
	"github.com/overdrive-dev/garage16-visit-scheduler/internal/core/services"
)

func main() {
	// .env для локальной разработки, в остальных окружениях файла нет
	_ = godotenv.Load()

	// Загрузка конфигурации
	cfg, err := config.NewConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализация логгера с таймзоной
	mainLogger, err := logger.NewConsoleLogger(cfg.App.Timezone)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	log := mainLogger.WithModule("Main")

	log.Info("app.starting", out.LogFields{
		"version":         cfg.App.Version,
		"env":             cfg.App.Env,
		"timezone":        cfg.App.Timezone,
		"rabbitmqEnabled": cfg.RabbitMq.Enabled,
		"cacheEnabled":    cfg.Cache.Enabled,
	})

	// Настройка Gin в зависимости от окружения
	if cfg.IsNotLocal() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Инициализация адаптеров
	backendAdapter := backend.NewBackendAdapter(cfg, mainLogger.WithModule("BackendAdapter"))

	var cacheAdapter out.CachePort
	if cfg.Cache.Enabled {
		adapter, err := cache.NewCacheAdapter(cfg, mainLogger.WithModule("CacheAdapter"))
		if err != nil {
			log.Error("app.cache.init_failed", out.LogFields{
				"error": err.Error(),
			})
			os.Exit(1)
		}
		cacheAdapter = adapter
	}

	// Инициализация сервисов
	visitSchedulerService := services.NewVisitSchedulerService(
		backendAdapter,
		cacheAdapter,
		mainLogger.WithModule("VisitSchedulerService"),
	)
	listingService := services.NewListingService(
		backendAdapter,
		mainLogger.WithModule("ListingService"),
	)

	// Настройка HTTP сервера
	router := gin.Default()
	visitController := http.NewVisitController(
		visitSchedulerService,
		cfg,
		mainLogger.WithModule("HttpController"),
	)
	visitController.RegisterRoutes(router)

	listingController := http.NewListingController(listingService, cfg)
	listingController.RegisterRoutes(router)

	// Настройка слушателя ленты изменений только если он включен
	if cfg.RabbitMq.Enabled {
		listener, err := rabbitmq.NewChangeFeedListener(
			visitSchedulerService,
			cfg,
			mainLogger.WithModule("RabbitMQListener"),
		)
		if err != nil {
			log.Error("app.rabbitmq.init_failed", out.LogFields{
				"error": err.Error(),
			})
			os.Exit(1)
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		if err := listener.Start(ctx); err != nil {
			log.Error("app.rabbitmq.start_failed", out.LogFields{
				"error": err.Error(),
			})
			os.Exit(1)
		}

		defer func() {
			if err := listener.Stop(); err != nil {
				log.Error("app.rabbitmq.stop_failed", out.LogFields{
					"error": err.Error(),
				})
			}
		}()
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Info("app.http.starting", out.LogFields{
			"host": cfg.HTTP.Host,
			"port": cfg.HTTP.Port,
		})

		if err := router.Run(cfg.HTTP.Host + ":" + cfg.HTTP.Port); err != nil {
			log.Error("app.http.failed", out.LogFields{
				"error": err.Error(),
			})
			sigChan <- syscall.SIGTERM
		}
	}()

	sig := <-sigChan
	log.Info("app.shutdown.initiated", out.LogFields{
		"signal": sig.String(),
	})
}
