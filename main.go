package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"sync"
	"syscall"
	"time"

	"github.com/alecthomas/kingpin"
	"github.com/estafette/estafette-ci-scheduler/pkg/api"
	"github.com/estafette/estafette-ci-scheduler/pkg/clients/circleciapi"
	"github.com/estafette/estafette-ci-scheduler/pkg/clients/computeapi"
	"github.com/estafette/estafette-ci-scheduler/pkg/clients/database"
	"github.com/estafette/estafette-ci-scheduler/pkg/services/gc"
	"github.com/estafette/estafette-ci-scheduler/pkg/services/scheduler"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"github.com/sethvargo/go-envconfig"
	compute "google.golang.org/api/compute/v1"
)

const app = "estafette-ci-scheduler"

var (
	version   string
	branch    string
	revision  string
	buildDate string
	goVersion = runtime.Version()
)

var (
	// flags
	apiAddress               = kingpin.Flag("api-listen-address", "The address to listen on for api HTTP requests.").Default(":5000").Envar("API_LISTEN_ADDRESS").String()
	prometheusMetricsAddress = kingpin.Flag("metrics-listen-address", "The address to listen on for Prometheus metrics requests.").Default(":9001").Envar("METRICS_LISTEN_ADDRESS").String()
	prometheusMetricsPath    = kingpin.Flag("metrics-path", "The path to listen for Prometheus metrics requests.").Default("/metrics").Envar("METRICS_PATH").String()
	configFilePath           = kingpin.Flag("config-file-path", "The path to yaml config file configuring this application.").Default("/configs/config.yaml").Envar("CONFIG_FILE_PATH").String()
	logLevel                 = kingpin.Flag("log-level", "The minimum level to log, one of debug, info, warn or error.").Default("info").Envar("LOG_LEVEL").String()
)

func main() {

	// parse command line parameters
	kingpin.Parse()

	// configure json logging
	api.InitLogging(app, version, *logLevel)

	log.Info().
		Str("branch", branch).
		Str("revision", revision).
		Str("buildDate", buildDate).
		Str("goVersion", goVersion).
		Msgf("Starting %v version %v...", app, version)

	// init tracing
	closer, err := api.InitTracing(app)
	if err != nil {
		log.Fatal().Err(err).Msg("Initializing jaeger tracer failed")
	}
	defer closer.Close()

	// define channels and waitgroup to gracefully shutdown the application
	sigs := make(chan os.Signal, 1)                                    // Create channel to receive OS signals
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM, syscall.SIGINT) // Register the sigs channel to receieve SIGTERM
	wg := &sync.WaitGroup{}                                            // Goroutines can add themselves to this to be waited on so that they finish

	ctx, cancel := context.WithCancel(context.Background())

	// start prometheus
	go startPrometheus()

	configReader := api.NewConfigReader(envconfig.OsLookuper())
	config, err := configReader.ReadConfigFromFile(*configFilePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed reading configuration")
	}

	databaseClient, circleciapiClient, computeapiClient := getClients(ctx, config)
	schedulerService, gcService := getServices(config, databaseClient, circleciapiClient, computeapiClient)
	schedulerHandler, gcHandler := getHandlers(schedulerService, gcService)

	srv := initRequestHandlers(config, schedulerHandler, gcHandler)

	// reload the gc projects when the mounted configmap changes
	wg.Add(1)
	go func() {
		defer wg.Done()
		err := api.WatchConfigFile(ctx, configReader, *configFilePath, func(config *api.APIConfig) {
			gcService.SetProjects(config.GC.Projects)
		})
		if err != nil && ctx.Err() == nil {
			log.Warn().Err(err).Msgf("Stopped watching %v", *configFilePath)
		}
	}()

	if config.GC.Enable {
		wg.Add(1)
		go func() {
			defer wg.Done()
			gc.NewJanitor(gcService, config.GC.Interval).Run(ctx)
		}()
	}

	// wait for graceful shutdown to finish
	<-sigs // Wait for signals (this hangs until a signal arrives)
	log.Debug().Msg("Shutting down...")

	// shut down gracefully
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Graceful server shutdown failed")
	}

	log.Debug().Msg("Stopping goroutines...")
	cancel() // Tell goroutines to stop themselves

	log.Debug().Msg("Awaiting waitgroup...")
	wg.Wait() // Wait for all to be stopped

	log.Info().Msg("Server gracefully stopped")
}

func startPrometheus() {
	log.Debug().
		Str("port", *prometheusMetricsAddress).
		Str("path", *prometheusMetricsPath).
		Msg("Serving Prometheus metrics...")

	http.Handle(*prometheusMetricsPath, promhttp.Handler())

	if err := http.ListenAndServe(*prometheusMetricsAddress, nil); err != nil {
		log.Fatal().Err(err).Msg("Starting Prometheus listener failed")
	}
}

func getClients(ctx context.Context, config *api.APIConfig) (databaseClient database.Client, circleciapiClient circleciapi.Client, computeapiClient computeapi.Client) {

	log.Debug().Msg("Creating clients...")

	// database client
	databaseClient = database.NewClient(config)
	databaseClient = database.NewTracingClient(databaseClient)
	databaseClient = database.NewLoggingClient(databaseClient)
	databaseClient = database.NewMetricsClient(databaseClient, api.NewRequestCounter("database_client"), api.NewRequestHistogram("database_client"))

	err := databaseClient.Connect(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed connecting to database")
	}
	err = databaseClient.AwaitDatabaseReadiness(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Database isn't ready")
	}
	err = databaseClient.MigrateSchema(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed migrating database schema")
	}

	// circleciapi client
	circleciapiClient = circleciapi.NewClient(config.Integrations.CircleCI)
	circleciapiClient = circleciapi.NewTracingClient(circleciapiClient)
	circleciapiClient = circleciapi.NewLoggingClient(circleciapiClient)
	circleciapiClient = circleciapi.NewMetricsClient(circleciapiClient, api.NewRequestCounter("circleciapi_client"), api.NewRequestHistogram("circleciapi_client"))

	// computeapi client
	var computeService *compute.Service
	if config.Integrations.Compute.Enable {
		computeService, err = computeapi.NewComputeService(ctx, config.Integrations.Compute)
		if err != nil {
			log.Fatal().Err(err).Msg("Creating google compute service has failed")
		}
	}
	computeapiClient = computeapi.NewClient(config, computeService)
	computeapiClient = computeapi.NewTracingClient(computeapiClient)
	computeapiClient = computeapi.NewLoggingClient(computeapiClient)
	computeapiClient = computeapi.NewMetricsClient(computeapiClient, api.NewRequestCounter("computeapi_client"), api.NewRequestHistogram("computeapi_client"))

	return
}

func getServices(config *api.APIConfig, databaseClient database.Client, circleciapiClient circleciapi.Client, computeapiClient computeapi.Client) (schedulerService scheduler.Service, gcService gc.Service) {

	log.Debug().Msg("Creating services...")

	// scheduler service
	schedulerService = scheduler.NewService(config, databaseClient)
	schedulerService = scheduler.NewTracingService(schedulerService)
	schedulerService = scheduler.NewLoggingService(schedulerService)
	schedulerService = scheduler.NewMetricsService(schedulerService, api.NewRequestCounter("scheduler_service"), api.NewRequestHistogram("scheduler_service"))

	// gc service
	gcService = gc.NewService(config.GC, circleciapiClient, computeapiClient, api.NewGarbageCollectionCounter())
	gcService = gc.NewTracingService(gcService)
	gcService = gc.NewLoggingService(gcService)
	gcService = gc.NewMetricsService(gcService, api.NewRequestCounter("gc_service"), api.NewRequestHistogram("gc_service"))

	return
}

func getHandlers(schedulerService scheduler.Service, gcService gc.Service) (schedulerHandler scheduler.Handler, gcHandler gc.Handler) {

	log.Debug().Msg("Creating http handlers...")

	schedulerHandler = scheduler.NewHandler(schedulerService)
	gcHandler = gc.NewHandler(gcService)

	return
}

func initRequestHandlers(config *api.APIConfig, schedulerHandler scheduler.Handler, gcHandler gc.Handler) *http.Server {

	srv := configureGinGonic(config, schedulerHandler, gcHandler)

	go func() {
		log.Debug().Str("address", *apiAddress).Msg("Serving api calls...")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Starting gin router failed")
		}
	}()

	return srv
}

func configureGinGonic(config *api.APIConfig, schedulerHandler scheduler.Handler, gcHandler gc.Handler) *http.Server {

	// run gin in release mode and other defaults
	gin.SetMode(gin.ReleaseMode)
	gin.DefaultWriter = log.Logger
	gin.DisableConsoleColor()

	// creates a router without any middleware by default
	router := gin.New()

	// logging middleware
	router.Use(api.ZeroLogMiddleware())

	// opentracing middleware
	router.Use(api.OpenTracingMiddleware())

	// recovery middleware recovers from any panics and writes a 500 if there was one.
	router.Use(gin.Recovery())

	// gzip middleware
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	// liveness and readiness
	router.GET("/liveness", func(c *gin.Context) {
		c.String(200, "I'm alive!")
	})
	router.GET("/readiness", func(c *gin.Context) {
		c.String(200, "I'm ready!")
	})

	// runtime reports and shard requests from the test runners
	router.POST("/record/*testNameAndRuntime", schedulerHandler.RecordRuntime)
	router.POST("/schedule/:testRun/:shardCount/:shard", schedulerHandler.GetShard)

	// garbage collection trigger for cron
	router.GET("/tasks/gc", gcHandler.GarbageCollect)

	// inspection of the stored state
	apiRoutes := router.Group("/api")
	{
		apiRoutes.GET("/tests/*testName", schedulerHandler.GetTestCost)
		apiRoutes.GET("/schedules/:testRun/:shardCount", schedulerHandler.GetStoredSchedule)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"code": "PAGE_NOT_FOUND", "message": "Page not found"})
	})

	// instantiate servers instead of using router.Run in order to handle graceful shutdown
	srv := &http.Server{
		Addr:           *apiAddress,
		Handler:        router,
		ReadTimeout:    30 * time.Second,
		WriteTimeout:   getWriteTimeout(config),
		MaxHeaderBytes: 1 << 20,
	}

	return srv
}

// getWriteTimeout leaves room for a full /tasks/gc pass, in which projects run in waves of gc.parallelism with each
// project bounded by gc.timeout
func getWriteTimeout(config *api.APIConfig) time.Duration {
	writeTimeout := 30 * time.Second
	if config.GC == nil || config.GC.Parallelism < 1 {
		return writeTimeout
	}

	waves := (len(config.GC.Projects) + config.GC.Parallelism - 1) / config.GC.Parallelism
	if waves < 1 {
		waves = 1
	}

	return writeTimeout + time.Duration(waves)*config.GC.Timeout
}
