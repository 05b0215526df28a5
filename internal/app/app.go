package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/kgahlisomanunu-byte/TerraLearn/internal/app/server"
	"github.com/kgahlisomanunu-byte/TerraLearn/internal/config"
	"github.com/kgahlisomanunu-byte/TerraLearn/internal/delivery/http"
	"github.com/kgahlisomanunu-byte/TerraLearn/internal/service"
	"github.com/kgahlisomanunu-byte/TerraLearn/internal/service/admin"
	"github.com/kgahlisomanunu-byte/TerraLearn/internal/service/auth"
	"github.com/kgahlisomanunu-byte/TerraLearn/internal/service/geo"
	"github.com/kgahlisomanunu-byte/TerraLearn/internal/service/lesson"
	"github.com/kgahlisomanunu-byte/TerraLearn/internal/service/notification"
	"github.com/kgahlisomanunu-byte/TerraLearn/internal/service/progress"
	"github.com/kgahlisomanunu-byte/TerraLearn/internal/service/quiz"
	"github.com/kgahlisomanunu-byte/TerraLearn/internal/storage/elastic"
	"github.com/kgahlisomanunu-byte/TerraLearn/internal/storage/minio_storage"
	"github.com/kgahlisomanunu-byte/TerraLearn/internal/storage/postgres"
	"github.com/kgahlisomanunu-byte/TerraLearn/pkg/logger"
)

func Run(cfg *config.Config) {
	log := logger.New(cfg.Env)
	log.Info("Starting with Env: " + cfg.Env)

	pg, err := postgres.NewPostgresPool(cfg.Postgres.User, cfg.Postgres.Password, cfg.Postgres.Host, cfg.Postgres.Port, cfg.Postgres.DBName, cfg.Postgres.QueryTimeout)
	if err != nil {
		log.FatalErr("error connecting to database", err)
	}
	defer pg.Close()

	esClient, err := elastic.NewElasticClient(cfg.ES.Password, cfg.ES.Hosts)
	if err != nil {
		log.FatalErr("error connecting to elasticsearch", err)
	}
	searchRepo := elastic.NewLessonSearchRepository(esClient, cfg.ES.Index)
	if err := searchRepo.CreateIndexIfNotExist(context.Background()); err != nil {
		log.FatalErr("error creating search index", err)
	}

	minioClient, err := minio_storage.NewMinioStorage(cfg.Minio.Endpoint, cfg.Minio.AccessKey, cfg.Minio.SecretKey, cfg.Minio.UseSSL)
	if err != nil {
		log.FatalErr("error connecting to minio", err)
	}
	mediaStorage, err := minio_storage.NewMediaStorage(minioClient, cfg.Minio.Bucket, cfg.Minio.PresignTTL)
	if err != nil {
		log.FatalErr("error preparing media bucket", err)
	}

	userRepo := postgres.NewUserPostgres(pg.Pool)
	tokenRepo := postgres.NewTokensPostgres(pg.Pool)
	lessonRepo := postgres.NewLessonPostgres(pg.Pool)
	quizRepo := postgres.NewQuizPostgres(pg.Pool)
	progressRepo := postgres.NewProgressPostgres(pg.Pool)
	geoRepo := postgres.NewGeoPostgres(pg.Pool)
	notificationRepo := postgres.NewNotificationPostgres(pg.Pool)

	jwtManager := auth.NewJWTManager(cfg.JWT.SecretKey, "terralearn", cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL)

	notificationService := notification.NewNotificationService(log, notificationRepo)
	u := service.Collection{
		AuthService:         auth.NewAuthService(log, jwtManager, userRepo, tokenRepo),
		LessonService:       lesson.NewLessonService(log, lessonRepo, progressRepo, quizRepo, searchRepo, notificationService),
		QuizService:         quiz.NewQuizService(log, quizRepo, progressRepo, notificationService),
		ProgressService:     progress.NewProgressService(log, progressRepo, lessonRepo, quizRepo, userRepo),
		GeoService:          geo.NewGeoService(log, geoRepo, mediaStorage),
		AdminService:        admin.NewAdminService(log, userRepo, lessonRepo, quizRepo, progressRepo, geoRepo),
		NotificationService: notificationService,
	}

	r := http.InitRoutes(log, u)

	srv := server.New(cfg.HTTPServer.Address, cfg.HTTPServer.Timeout, cfg.HTTPServer.IdleTimeout, r)
	srv.Start()
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	select {
	case s := <-interrupt:
		log.Info("app signal: " + s.String())
	case err := <-srv.Notify():
		log.ErrorErr("server error", err)
	}
	if err = srv.Shutdown(); err != nil {
		log.ErrorErr("shutdown error", err)
	}
}
