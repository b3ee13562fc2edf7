package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"slotplan-service/internal/app/config"
	"slotplan-service/internal/app/delivery/http/controllers"
	"slotplan-service/internal/app/delivery/http/middlewares"
	"slotplan-service/internal/app/delivery/http/routers"
	"slotplan-service/internal/app/drivers/database"
	"slotplan-service/internal/app/drivers/logger"
	"slotplan-service/internal/app/drivers/messaging"
	storagedriver "slotplan-service/internal/app/drivers/storage"
	"slotplan-service/internal/app/services/core/analysis"
	"slotplan-service/internal/app/services/core/capacityplans"
	"slotplan-service/internal/app/services/core/datasets"
	"slotplan-service/internal/app/services/core/ingest"
	"slotplan-service/internal/app/services/core/shares"
	"slotplan-service/internal/app/services/shared/ingestqueue"
	"slotplan-service/internal/app/services/shared/jwtmanager"
	"slotplan-service/internal/app/services/shared/locker"
	"slotplan-service/internal/app/services/shared/ratelimiter"
	"slotplan-service/internal/app/services/shared/redis"
	"slotplan-service/internal/app/services/shared/storage"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
	"go.uber.org/zap"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	zapLogger := logger.NewZapLogger(driverConfig, internalConfig)

	location, err := time.LoadLocation(internalConfig.App.Timezone)
	if err != nil {
		zapLogger.Fatal("Error loading location", zap.Error(err))
	}
	time.Local = location

	mongoDB := database.NewMongoDB(driverConfig)
	redisClient := database.NewRedisClient(driverConfig)
	rabbitMQ := messaging.NewRabbitMQ(driverConfig)
	minioClient := storagedriver.NewMinio(driverConfig)
	chiRouter := chi.NewRouter()

	bootstrap := &config.Bootstrap{
		Router:         chiRouter,
		MongoDB:        mongoDB,
		Redis:          redisClient,
		Minio:          minioClient,
		Logger:         zapLogger,
		RabbitMQ:       rabbitMQ,
		DriverConfig:   driverConfig,
		InternalConfig: internalConfig,
	}
	bootstrapingTheApp(bootstrap)

	server := &http.Server{
		Addr:    internalConfig.App.Port,
		Handler: chiRouter,
	}

	go func() {
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("Server failed to start", zap.Error(err))
		}
	}()
	zapLogger.Info("Server started",
		zap.String("address", internalConfig.App.Port),
		zap.String("environment", internalConfig.App.Env),
	)

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	logrus.Println("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeoutInSeconds),
	)
	defer cancel()

	// Shutdown the server
	err = server.Shutdown(shutdownCtx)
	if err != nil {
		zapLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	if err := bootstrap.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("Error while closing application resources", zap.Error(err))
	}

	log.Println("Server exiting")
}

func bootstrapingTheApp(bootstrap *config.Bootstrap) {
	// Redis
	redisRepository := redis.NewRedisRepository(bootstrap.Redis)

	// Object storage
	objectStorage := storage.NewMinioStorage(bootstrap.Minio, bootstrap.DriverConfig.Minio.BucketName)

	// Ingest queue
	ingestQueue, err := ingestqueue.NewService(bootstrap.RabbitMQ, bootstrap.Logger, bootstrap.InternalConfig.Ingest.WorkerBatchSize)
	if err != nil {
		log.Fatalf("Failed to initialize ingest queue: %v", err)
	}

	// Distributed lock
	lockService := locker.NewLockService(redisRepository, bootstrap.Logger)

	// Upload endpoints are expensive to ingest, keep a tight per-IP limit
	uploadLimiter := middlewares.NewRateLimiter(10, time.Minute, 10*time.Minute)

	// Middlewares
	middlewares := middlewares.NewMiddlewares(bootstrap.Logger, bootstrap.InternalConfig)

	// Dataset
	datasetMongoRepository := datasets.NewDatasetMongoRepository(bootstrap.MongoDB, bootstrap.DriverConfig.MongoDB.DbName)
	triageRequestMongoRepository := datasets.NewTriageRequestMongoRepository(bootstrap.MongoDB, bootstrap.DriverConfig.MongoDB.DbName)

	// Capacity plan
	capacityPlanMongoRepository := capacityplans.NewCapacityPlanMongoRepository(bootstrap.MongoDB, bootstrap.DriverConfig.MongoDB.DbName)
	capacityPlanUsecase := capacityplans.NewCapacityPlanUsecase(capacityPlanMongoRepository, bootstrap.Logger)
	capacityPlanController := controllers.NewCapacityPlanController(bootstrap.Logger, capacityPlanUsecase)

	// Analysis
	analysisUsecase := analysis.NewAnalysisUsecase(
		datasetMongoRepository,
		triageRequestMongoRepository,
		capacityPlanMongoRepository,
		redisRepository,
		bootstrap.InternalConfig,
		bootstrap.Logger,
	)
	analysisController := controllers.NewAnalysisController(bootstrap.Logger, analysisUsecase)

	// Dataset usecase depends on analysis for cache invalidation
	exportFetcher := ingest.NewExportFetcher(bootstrap.Logger, bootstrap.InternalConfig.Ingest.ExportMaxUploadSizeInMB<<20)
	datasetUsecase := datasets.NewDatasetUsecase(
		datasetMongoRepository,
		triageRequestMongoRepository,
		objectStorage,
		ingestQueue,
		exportFetcher,
		analysisUsecase,
		bootstrap.Logger,
	)
	datasetController := controllers.NewDatasetController(bootstrap.Logger, datasetUsecase, bootstrap.InternalConfig)

	// Share
	tokenManager, err := jwtmanager.NewShareTokenManager(
		bootstrap.InternalConfig.Share.TokenSecret,
		time.Duration(bootstrap.InternalConfig.Share.DefaultTTLHours)*time.Hour,
		bootstrap.Logger,
	)
	if err != nil {
		log.Fatalf("Failed to initialize share token manager: %v", err)
	}
	resourceLimiter := ratelimiter.NewResourceLimiter(redisRepository, bootstrap.Logger)
	shareRateLimiter := ratelimiter.NewShareRateLimiter(
		resourceLimiter,
		bootstrap.Logger,
		bootstrap.InternalConfig.Share.RateLimitWindowSec,
		bootstrap.InternalConfig.Share.RateLimitMaxPerWindow,
	)
	shareUsecase := shares.NewShareUsecase(analysisUsecase, redisRepository, tokenManager, shareRateLimiter, bootstrap.Logger)
	shareController := controllers.NewShareController(bootstrap.Logger, shareUsecase)

	// Ingest worker
	ingestWorker := ingest.NewWorker(
		bootstrap.Logger,
		bootstrap.InternalConfig,
		lockService,
		ingestQueue,
		objectStorage,
		datasetMongoRepository,
		triageRequestMongoRepository,
	)
	bootstrap.WorkerStop = ingestWorker.Start(context.Background())

	routers.SetupRoutes(
		bootstrap.Router,
		bootstrap.InternalConfig,
		middlewares,
		uploadLimiter,
		datasetController,
		capacityPlanController,
		analysisController,
		shareController,
	)
}
