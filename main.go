package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	easy "git.fiblab.net/utils/logrus-easy-formatter"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/CodeNexus100/signal-iq-be/kernel"
	"github.com/CodeNexus100/signal-iq-be/server"
	"github.com/CodeNexus100/signal-iq-be/utils/config"
)

var (
	listenAddr = flag.String("listen", ":8080", "HTTP listening address")
	configPath = flag.String("config", "", "config file path (empty means built-in defaults)")
	seed       = flag.Uint64("seed", 0, "simulation seed (0 means the configured seed)")

	// log
	logLevels = map[string]logrus.Level{
		"trace":    logrus.TraceLevel,
		"debug":    logrus.DebugLevel,
		"info":     logrus.InfoLevel,
		"warn":     logrus.WarnLevel,
		"error":    logrus.ErrorLevel,
		"critical": logrus.FatalLevel,
		"off":      logrus.PanicLevel,
	}
	logLevel = flag.String("log.level", "info", "log level (one of: trace debug info warn error critical off)")

	log = logrus.WithField("module", "main")
)

func main() {
	flag.Parse()
	logrus.SetFormatter(&easy.Formatter{
		TimestampFormat: "2006-01-02 15:04:05.0000",
		LogFormat:       "[%module%] [%time%] [%lvl%] %msg%\n",
	})
	if level, ok := logLevels[*logLevel]; ok {
		logrus.SetLevel(level)
	} else {
		log.Panicf("log.level must be one of %v", logLevels)
	}

	// .env is optional; a PORT entry overrides the default listen address.
	_ = godotenv.Load()
	addr := *listenAddr
	if port := os.Getenv("PORT"); port != "" && addr == ":8080" {
		addr = ":" + port
	}

	c := config.Default()
	if *configPath != "" {
		var err error
		if c, err = config.Load(*configPath); err != nil {
			log.Panicf("config file load err: %v", err)
		}
	}
	log.Infof("%+v", c)

	k := kernel.New(c)
	s := *seed
	if s == 0 {
		s = c.Control.Seed
	}
	k.Initialize(s)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	go k.Run(ctx)

	srv := &http.Server{
		Addr:    addr,
		Handler: server.New(k),
	}
	go func() {
		log.Infof("listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Panicf("http server err: %v", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warnf("http shutdown err: %v", err)
	}
	log.Info("stopped")
}
