package app

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/hondana-app/library-service/config"
	"github.com/hondana-app/library-service/internal/handler"
	"github.com/hondana-app/library-service/internal/repository"
	"github.com/hondana-app/library-service/internal/server"
	"github.com/hondana-app/library-service/internal/service"
	"github.com/hondana-app/library-service/migrations"
	"github.com/hondana-app/library-service/pkg/kafka"
	"github.com/hondana-app/library-service/pkg/logger"
	"github.com/hondana-app/library-service/pkg/postgres"
)

func Run(cfg *config.Config) {
	log := logger.NewLogger(cfg.Log, "library")
	db, err := postgres.NewPostgresDB(context.Background(), &cfg.Database, migrations.MigrationFiles)
	if err != nil {
		log.Fatal("db init", zap.Error(err))
	}
	repo, err := repository.NewRepository(db, log)
	if err != nil {
		log.Fatal("repo", zap.Error(err))
	}
	svc := service.NewService(repo, service.JWTConfig{
		Secret: cfg.JWT.Secret,
		TTL:    cfg.JWT.TTL,
	}, log)

	producer, err := kafka.NewProducer(cfg.Kafka)
	if err != nil {
		log.Fatal("kafka.NewProducer", zap.Error(err))
	}

	consumer, err := kafka.NewConsumer(cfg.Kafka, kafka.StatsConsumerGroup)
	if err != nil {
		log.Fatal("kafka.NewConsumer", zap.Error(err))
	}
	consumeCtx, consumeCancel := context.WithCancel(context.Background())
	defer consumeCancel()
	go kafka.Consume(consumeCtx, consumer, handler.NewConsumer(svc.ApplyRentalEvent, log), kafka.RentalTopic)

	h := handler.New(svc, svc, svc, svc, handler.NewEnqueuer(producer), log)
	srv := server.NewServer(cfg.Server, h.NewRouter([]byte(cfg.JWT.Secret)))
	log.Info("http server start ON: ",
		zap.String("addr",
			net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)))
	go func() {
		if err := srv.Run(); err != nil {
			log.Error("server run", zap.Error(err))
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	termSig := <-sig

	log.Debug("Graceful shutdown", zap.Any("signal", termSig))

	closeCtx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if err = srv.Stop(closeCtx); err != nil {
		log.DPanic("srv.Stop", zap.Error(err))
	}
	consumeCancel()
	_ = consumer.Close()
	_ = producer.Close()
	db.Close()
	log.Info("Graceful shutdown finished")
}
