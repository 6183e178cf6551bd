package main

import (
	"context"
	"fmt"
	"net/http"
	"net/http/pprof"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"log/slog"

	"github.com/rickwengdev/crypto-portfolio-tracker/internal/app/port"
	"github.com/rickwengdev/crypto-portfolio-tracker/internal/app/service"
	"github.com/rickwengdev/crypto-portfolio-tracker/internal/client"
	"github.com/rickwengdev/crypto-portfolio-tracker/internal/infrastructure/chains"
	"github.com/rickwengdev/crypto-portfolio-tracker/internal/infrastructure/configloader"
	"github.com/rickwengdev/crypto-portfolio-tracker/internal/infrastructure/providers"
	"github.com/rickwengdev/crypto-portfolio-tracker/internal/infrastructure/restapi"
	"github.com/rickwengdev/crypto-portfolio-tracker/internal/pkg/logger"
	"github.com/rickwengdev/crypto-portfolio-tracker/internal/pkg/utils"
	"github.com/rickwengdev/crypto-portfolio-tracker/pkg/metrics"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"go.uber.org/zap"
	"go.uber.org/zap/exp/zapslog"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)
	// Default level, will be updated by config
	log.SetLevel(logrus.InfoLevel)

	zapLogger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize zap logger: %v", err)
	}
	defer zapLogger.Sync() // flushes buffer, if any

	// Route slog through zap until the configured slog logger takes over.
	slogHandler := zapslog.NewHandler(zapLogger.Core(), &zapslog.HandlerOptions{})
	slog.SetDefault(slog.New(slogHandler))

	if err := godotenv.Load(); err != nil {
		log.Infof("No .env file loaded: %v", err)
	}

	// Load configuration
	cfgPath := utils.GetEnv("CONFIG_PATH", "config/config.yaml")
	cfg, err := configloader.Load(cfgPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Update log level from config
	level, err := logrus.ParseLevel(cfg.Logging.Level)
	if err != nil {
		log.Warnf("Invalid log level in config: %s. Defaulting to Info.", cfg.Logging.Level)
		level = logrus.InfoLevel
	}
	log.SetLevel(level)
	if cfg.Logging.File != "" {
		file, err := os.OpenFile(cfg.Logging.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err == nil {
			log.SetOutput(file)
		} else {
			log.Infof("Failed to log to file, using default stdout: %v", err)
		}
	}

	logger.InitSlog(cfg.Logging.Level)
	appLogger := logger.NewSlogAdapter()

	zapLogger.Info("Configuration loaded", zap.String("path", cfgPath))

	// Initialize Prometheus metrics
	metrics.MustRegisterMetrics()

	// Initialize blockchain data providers
	esploraClient := providers.NewEsploraClient(cfg.Bitcoin, zapLogger)
	blockchairClient := providers.NewBlockchairClient(cfg.Bitcoin, zapLogger)

	var ethereumProvider port.EthereumDataProvider
	switch strings.ToLower(cfg.Ethereum.Backend) {
	case "etherscan":
		ethereumProvider = providers.NewEtherscanClient(cfg.Ethereum, zapLogger)
	case "rpc":
		ethereumProvider, err = providers.NewEthRPCClient(cfg.Ethereum, zapLogger)
		if err != nil {
			log.Fatalf("Failed to initialize Ethereum RPC client: %v", err)
		}
	default:
		log.Fatalf("Unknown ethereum backend %q, want \"etherscan\" or \"rpc\"", cfg.Ethereum.Backend)
	}
	zapLogger.Info("Ethereum provider initialized", zap.String("backend", cfg.Ethereum.Backend))

	solanaClient := providers.NewSolanaRPCClient(cfg.Solana, zapLogger)
	blockfrostClient := providers.NewBlockfrostClient(cfg.Cardano, zapLogger)

	// Chain resolvers behind one dispatch registry
	registry := chains.NewRegistry(zapLogger,
		chains.NewBitcoinResolver(esploraClient, blockchairClient, cfg.Bitcoin.XPubLookahead, zapLogger),
		chains.NewEthereumResolver(ethereumProvider, zapLogger),
		chains.NewSolanaResolver(solanaClient, zapLogger),
		chains.NewCardanoResolver(blockfrostClient, zapLogger),
	)
	zapLogger.Info("Chain resolvers initialized", zap.Int("chains", len(registry.SupportedChains())))

	// Initialize CoinGecko client
	coinGeckoRequestTimeout := time.Duration(cfg.CoinGecko.RequestTimeoutMillis) * time.Millisecond
	coinGeckoClient := client.NewCoinGeckoClient(cfg.CoinGecko.BaseURL, cfg.CoinGecko.APIKey, coinGeckoRequestTimeout, zapLogger)
	zapLogger.Info("CoinGecko client initialized")

	// Initialize services
	priceService := service.NewPriceService(coinGeckoClient, appLogger, cfg.PriceSvc)
	portfolioService := service.NewPortfolioService(registry, priceService, appLogger, cfg.Resolve)
	zapLogger.Info("PortfolioService initialized")

	// Initialize Gin router
	router := gin.New()

	// Setup CORS
	corsConfig := cors.DefaultConfig()
	if len(cfg.Server.CORSAllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.Server.CORSAllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true // Adjust for production
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	router.Use(cors.New(corsConfig))

	// Custom logging middleware using zap
	router.Use(restapi.ZapLoggerMiddleware(zapLogger))
	router.Use(gin.Recovery())

	// Setup routes
	portfolioHandler := restapi.NewPortfolioHandler(portfolioService, registry, zapLogger)
	restapi.RegisterPortfolioRoutes(router, portfolioHandler)

	// Swagger documentation if enabled
	if cfg.Swagger.Enabled {
		restapi.RegisterSwaggerRoutes(router, cfg.Swagger.Path)
		zapLogger.Info("Swagger UI enabled", zap.String("path", cfg.Swagger.Path+"/index.html"))
	}

	// Prometheus metrics endpoint
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	zapLogger.Info("Prometheus metrics endpoint enabled", zap.String("path", "/metrics"))

	// Pprof endpoints (for debugging performance issues)
	// Make sure to protect these in a production environment
	pprofRouter := router.Group("/debug/pprof")
	{
		pprofRouter.GET("/", gin.WrapF(pprof.Index))
		pprofRouter.GET("/cmdline", gin.WrapF(pprof.Cmdline))
		pprofRouter.GET("/profile", gin.WrapF(pprof.Profile))
		pprofRouter.POST("/symbol", gin.WrapF(pprof.Symbol))
		pprofRouter.GET("/symbol", gin.WrapF(pprof.Symbol))
		pprofRouter.GET("/trace", gin.WrapF(pprof.Trace))
		pprofRouter.GET("/allocs", gin.WrapH(pprof.Handler("allocs")))
		pprofRouter.GET("/block", gin.WrapH(pprof.Handler("block")))
		pprofRouter.GET("/goroutine", gin.WrapH(pprof.Handler("goroutine")))
		pprofRouter.GET("/heap", gin.WrapH(pprof.Handler("heap")))
		pprofRouter.GET("/mutex", gin.WrapH(pprof.Handler("mutex")))
		pprofRouter.GET("/threadcreate", gin.WrapH(pprof.Handler("threadcreate")))
	}
	zapLogger.Info("Pprof endpoints enabled under /debug/pprof")

	// Start server
	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		zapLogger.Info(fmt.Sprintf("Server starting on %s", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zapLogger.Info("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		zapLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	zapLogger.Info("Server exiting")
}
