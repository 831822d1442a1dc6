package app

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Astemirdum/books-service/books/config"
	"github.com/Astemirdum/books-service/books/internal/handler"
	"github.com/Astemirdum/books-service/books/internal/repository"
	"github.com/Astemirdum/books-service/books/internal/server"
	"github.com/Astemirdum/books-service/books/internal/service"
	"github.com/Astemirdum/books-service/books/migrations"
	"github.com/Astemirdum/books-service/pkg/kafka"
	"github.com/Astemirdum/books-service/pkg/logger"
	"github.com/Astemirdum/books-service/pkg/postgres"
)

type application struct {
	log       *zap.Logger
	db        *sqlx.DB
	publisher kafka.Publisher
	router    http.Handler
}

// newApplication owns the db pool and the publisher until close.
func newApplication(ctx context.Context, cfg *config.Config, log *zap.Logger) (*application, error) {
	dbCfg := cfg.DB()
	db, err := postgres.NewPostgresDB(ctx, &dbCfg, migrations.MigrationFiles)
	if err != nil {
		return nil, fmt.Errorf("db init %w", err)
	}
	log.Info("db connected", zap.String("env", cfg.Env), zap.String("db", dbCfg.NameDB))

	repo, err := repository.NewRepository(db, log)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("repo %w", err)
	}

	publisher, err := newPublisher(cfg.Kafka, log)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("kafka.NewProducer %w", err)
	}

	svc := service.NewService(repo, publisher, log)
	h := handler.New(svc, log)

	return &application{
		log:       log,
		db:        db,
		publisher: publisher,
		router:    h.NewRouter(),
	}, nil
}

func (a *application) close() {
	if err := a.publisher.Close(); err != nil {
		a.log.Error("publisher.Close", zap.Error(err))
	}
	if err := a.db.Close(); err != nil {
		a.log.Error("db.Close", zap.Error(err))
	}
}

func Run(cfg *config.Config) error {
	log, err := logger.NewLogger(cfg.Log, "books")
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := newApplication(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer a.close()

	srv := server.NewServer(cfg.Server, a.router)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("http server start ON: ",
			zap.String("addr",
				net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)))
		return srv.Run()
	})
	g.Go(func() error {
		<-gCtx.Done()
		log.Debug("Graceful shutdown")

		closeCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return srv.Stop(closeCtx)
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("server %w", err)
	}
	log.Info("Graceful shutdown finished")
	return nil
}

func newPublisher(cfg kafka.Config, log *zap.Logger) (kafka.Publisher, error) {
	if !cfg.Enabled() {
		log.Info("kafka brokers are not configured, book events are disabled")
		return kafka.NopPublisher{}, nil
	}
	producer, err := kafka.NewProducer(cfg)
	if err != nil {
		return nil, err
	}
	return kafka.NewPublisher(producer, cfg.Topic), nil
}
