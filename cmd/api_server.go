package cmd

import (
	"fmt"
	"net/http"
	"time"

	"github.com/Depado/ginprom"
	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/go-co-op/gocron/v2"
	"github.com/rm-hull/photo-filters/internal"
	"github.com/rm-hull/photo-filters/internal/api"
	log "github.com/sirupsen/logrus"
	healthcheck "github.com/tavsec/gin-healthcheck"
	"github.com/tavsec/gin-healthcheck/checks"
	hc_config "github.com/tavsec/gin-healthcheck/config"
)

const maxUploadBytes = 32 << 20

type ApiServerOptions struct {
	RootDir string
	Port    int
	Debug   bool
	// InboxDir, when set, is polled every InboxInterval and its images are
	// filtered into RootDir with the InboxFilter settings.
	InboxDir      string
	InboxInterval time.Duration
	InboxFilter   FilterOptions
}

func ApiServer(opts ApiServerOptions) {
	internal.ShowVersion()
	internal.UserInfo()
	internal.EnvironmentVars()

	var sched gocron.Scheduler
	if opts.InboxDir != "" {
		req, extra, err := opts.InboxFilter.Build()
		if err != nil {
			log.Fatalf("invalid inbox filter: %v", err)
		}
		sched, err = internal.NewInboxScheduler(internal.BatchConfig{
			InDir:      opts.InboxDir,
			OutDir:     opts.RootDir,
			PoolSize:   1,
			Request:    *req,
			BottomPath: opts.InboxFilter.Bottom,
			Extra:      extra,
		}, opts.InboxInterval)
		if err != nil {
			log.Fatal(err)
		}
	}

	r := NewRouter(opts.RootDir, opts.Debug)

	addr := fmt.Sprintf(":%d", opts.Port)
	log.Printf("Starting HTTP API Server on port %d...", opts.Port)
	if err := r.Run(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("HTTP API Server failed to start on port %d: %v", opts.Port, err)
	}

	if sched != nil {
		if err := sched.Shutdown(); err != nil {
			log.Fatalf("failed to shutdown scheduler: %v", err)
		}
	}
}

func NewRouter(rootDir string, debug bool) *gin.Engine {
	r := gin.New()
	r.MaxMultipartMemory = maxUploadBytes

	prometheus := ginprom.New(
		ginprom.Engine(r),
		ginprom.Path("/metrics"),
		ginprom.Ignore("/healthz"),
	)

	r.Use(
		gin.Recovery(),
		gin.LoggerWithWriter(gin.DefaultWriter, "/healthz", "/metrics"),
		prometheus.Instrument(),
	)

	if debug {
		log.Warn("pprof endpoints are enabled and exposed. Do not run with this flag in production.")
		pprof.Register(r)
	}

	if err := healthcheck.New(r, hc_config.DefaultConfig(), []checks.Check{}); err != nil {
		log.Fatalf("failed to initialize healthcheck: %v", err)
	}

	api.RegisterFilterRoutes(r)
	r.Static("/v1/results", rootDir)
	return r
}
