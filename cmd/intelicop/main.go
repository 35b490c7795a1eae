package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/pflag"

	"github.com/intelicop/console/internal/adapters/backend"
	"github.com/intelicop/console/internal/adapters/handler"
	"github.com/intelicop/console/internal/adapters/messaging"
	"github.com/intelicop/console/internal/adapters/outbox"
	"github.com/intelicop/console/internal/adapters/storage"
	"github.com/intelicop/console/internal/config"
	"github.com/intelicop/console/internal/core/ports"
	"github.com/intelicop/console/internal/core/services"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	var configPath, logFile, metricsFile string
	var verbose bool

	flagSet := pflag.NewFlagSet("intelicop", pflag.ContinueOnError)
	flagSet.StringVar(&configPath, "config", "", "YAML config file (default $INTELICOP_CONFIG)")
	flagSet.StringVar(&logFile, "log-file", "", "append log output to this file")
	flagSet.StringVar(&metricsFile, "metrics-textfile", "", "write request metrics to this file on exit")
	flagSet.BoolVarP(&verbose, "verbose", "v", false, "log to stderr")
	flagSet.SetInterspersed(false)
	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return 2
	}

	closeLog, err := setupLogging(logFile, verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	defer closeLog()

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	if metricsFile != "" {
		cfg.Metrics.Textfile = metricsFile
	}
	log.Printf("config: %s", cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	defer closeStore()

	session := services.NewSession(store, storage.NewJWTCodec(cfg.Session.Secret))
	session.Restore(ctx)

	registry := prometheus.NewRegistry()
	client := backend.NewClient(cfg.Backend.AuthURL, cfg.Backend.APIURL, nil, backend.NewMetrics(registry))
	defer writeMetrics(cfg.Metrics.Textfile, registry)

	var publisher ports.MeetingEventPublisher
	if cfg.Events.RabbitMQURL != "" {
		var broker ports.MeetingEventPublisher
		rmq, err := messaging.NewRabbitMQBroker(cfg.Events.RabbitMQURL, cfg.Events.Exchange, cfg.Events.Queue)
		if err != nil {
			log.Printf("events: WARNING - RabbitMQ unreachable, parking meeting events: %v", err)
		} else {
			defer rmq.Close()
			broker = rmq
		}
		relay := outbox.NewRelay(store, broker)
		if n, err := relay.Flush(ctx); err != nil {
			log.Printf("events: could not flush parked events: %v", err)
		} else if n > 0 {
			log.Printf("events: delivered %d parked events", n)
		}
		publisher = relay
	}

	preferenceService := services.NewPreferenceService(store)
	console := handler.NewConsole(os.Stdin, os.Stdout, os.Stderr, preferenceService.Load(ctx))

	visitorService := services.NewVisitorService(client, publisher, services.SystemClock{}, services.VisitorOptions{
		RevalidateOnReschedule: cfg.Visitors.RevalidateOnReschedule,
	}).WithActor(func() string {
		id, _ := session.Identity()
		return id.Username
	})

	mux := newMux(dependencies{
		session:     session,
		auth:        services.NewAuthenticator(client, session),
		navigator:   services.NewNavigator(session),
		visitors:    visitorService,
		users:       services.NewUserService(client),
		criminals:   services.NewCriminalService(client),
		health:      services.NewHealthService(client),
		preferences: preferenceService,
		console:     console,
	})

	rest := flagSet.Args()
	if len(rest) == 0 {
		rest = []string{"dashboard"}
	}
	if err := mux.Dispatch(ctx, rest); err != nil {
		return exitCode(console, mux, err)
	}
	return 0
}

func setupLogging(path string, verbose bool) (func(), error) {
	var writers []io.Writer
	closer := func() {}
	if verbose {
		writers = append(writers, os.Stderr)
	}
	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		writers = append(writers, f)
		closer = func() { f.Close() }
	}
	if len(writers) == 0 {
		log.SetOutput(io.Discard)
	} else {
		log.SetOutput(io.MultiWriter(writers...))
	}
	return closer, nil
}

func openStore(ctx context.Context, cfg *config.Config) (ports.KeyValueStore, func(), error) {
	if cfg.Session.Store == config.SessionStoreFile {
		return storage.NewFileStore(cfg.Session.File), func() {}, nil
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		redisClient.Close()
		return nil, nil, fmt.Errorf("connect to redis at %s: %w", cfg.Redis.Address, err)
	}
	log.Println("session: connected to Redis")
	return storage.NewRedisStore(redisClient, cfg.Session.Namespace), func() { redisClient.Close() }, nil
}

func writeMetrics(path string, g prometheus.Gatherer) {
	if path == "" {
		return
	}
	if err := prometheus.WriteToTextfile(path, g); err != nil {
		log.Printf("metrics: could not write %s: %v", path, err)
	}
}

func exitCode(console *handler.Console, mux *handler.Mux, err error) int {
	var unknown *handler.ErrUnknownCommand
	switch {
	case errors.As(err, &unknown):
		fmt.Fprintf(console.Err, "%v\n\ncommands:\n", err)
		for _, c := range mux.Commands() {
			fmt.Fprintf(console.Err, "  %s\n", c)
		}
		return 2
	case errors.Is(err, pflag.ErrHelp):
		return 0
	case errors.Is(err, handler.ErrLoginFailed):
		return 1
	}
	console.Report(err)
	log.Printf("command failed: %v", err)
	return 1
}
