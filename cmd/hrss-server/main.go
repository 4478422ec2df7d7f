package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hrss-server/internal/config"
	"hrss-server/internal/httpapi"
	"hrss-server/internal/logger"
	"hrss-server/internal/notify"
	"hrss-server/internal/repository"
	"hrss-server/internal/seed"
	"hrss-server/internal/service"
	"hrss-server/internal/store"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()
	cfg := config.Load()

	log, err := logger.NewLogger(cfg.Log.Level, cfg.Log.Format, "hrss-server")
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	var (
		attendings  repository.AttendingsRepo
		patients    repository.PatientsRepo
		admins      repository.AdminsRepo
		redisClient *redis.Client
	)
	if cfg.Store.Backend == "redis" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		kv := store.NewRedisKV(redisClient)
		attendings = repository.NewRedisAttendingsRepo(kv)
		patients = repository.NewRedisPatientsRepo(kv)
		admins = repository.NewRedisAdminsRepo(kv)
		log.Info("redis store backend enabled", zap.String("addr", cfg.Redis.Addr))
	} else {
		attendings = repository.NewMemoryAttendingsRepo()
		patients = repository.NewMemoryPatientsRepo()
		admins = repository.NewMemoryAdminsRepo()
	}

	if cfg.Seed.Dir != "" {
		if err := seed.Load(ctx, cfg.Seed.Dir, attendings, patients, admins, log); err != nil {
			log.Warn("seed loading failed, starting with what loaded", zap.Error(err))
		}
	}

	var mailer notify.Mailer = notify.NopMailer{}
	if cfg.SMTP.Enabled {
		mailer = notify.NewSMTPMailer(cfg.SMTP.Addr, log)
	}

	registration := service.NewRegistrationService(attendings, patients, admins, log)
	vitals := service.NewVitalsService(attendings, patients, mailer, log)
	admin := service.NewAdminService(attendings, patients, admins, log)

	handler := httpapi.NewHandler(registration, vitals, admin, log)
	router := httpapi.NewRouter(log)
	router.RegisterAPIRoutes(handler)

	srv := service.NewServer(cfg.HTTP.Addr, router, log)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigCh:
	case <-errCh:
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = srv.Stop(shutdownCtx)
	if redisClient != nil {
		_ = redisClient.Close()
	}
}
