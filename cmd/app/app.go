package app

import (
	"log"

	"privatepartyy/internal/config"
	"privatepartyy/internal/database"
	"privatepartyy/internal/logger"
	"privatepartyy/internal/repository"
	"privatepartyy/internal/service"
	"privatepartyy/internal/storage"
)

func App(cfg *config.Config) (*database.DB, *repository.Repository, *service.Service) {
	// connection DB, миграции применяет ConnectDB
	db, err := database.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("Не удалось подключиться к БД: %v", err)
	}

	// connection MinIO
	minioClient, err := storage.NewMinIOClient(cfg)
	if err != nil {
		log.Fatalf("Не удалось инициализировать MinIO: %v", err)
	}

	// enabling dependencies
	repo := repository.NewRepository(db.DB)

	services := service.NewService(repo, cfg, minioClient, logger.Log)

	return db, repo, services
}
