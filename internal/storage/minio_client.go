package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"privatepartyy/internal/config"

	"github.com/google/uuid"
)

type Storage interface {
	UploadObject(ctx context.Context, objectName, contentType string, file io.Reader, size int64) (string, error)
	DeleteObject(ctx context.Context, objectName string) error
	DeleteObjects(ctx context.Context, objectNames []string) error
	PresignedUploadURL(ctx context.Context, objectName string) (string, error)
	PublicURL(objectName string) string
	URLExpiry() time.Duration
}

type MinIOClient struct {
	client *minio.Client
	cfg    *config.Config
}

func NewMinIOClient(cfg *config.Config) (*MinIOClient, error) {
	client, err := minio.New(cfg.MinIO.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinIO.AccessKey, cfg.MinIO.SecretKey, ""),
		Secure: cfg.MinIO.UseSSL,
		Region: cfg.MinIO.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка подключения к MinIO: %w", err)
	}

	// create bucket if missing
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, cfg.MinIO.BucketName)
	if err != nil {
		return nil, fmt.Errorf("ошибка при проверке бакета MinIO: %w", err)
	}
	if !exists {
		err = client.MakeBucket(ctx, cfg.MinIO.BucketName, minio.MakeBucketOptions{Region: cfg.MinIO.Region})
		if err != nil {
			return nil, fmt.Errorf("ошибка при создании бакета MinIO: %w", err)
		}
	}

	return &MinIOClient{client: client, cfg: cfg}, nil
}

// BuildObjectName строит путь объекта: event id + время + случайный суффикс,
// чтобы избежать коллизий имен
func BuildObjectName(eventID, fileName string) string {
	fileExt := strings.ToLower(filepath.Ext(fileName))
	if fileExt == "" {
		fileExt = ".jpg"
	}

	return fmt.Sprintf("events/%s/%d_%s%s",
		eventID,
		time.Now().UnixNano(),
		uuid.New().String(),
		fileExt)
}

func (m *MinIOClient) UploadObject(ctx context.Context, objectName, contentType string, file io.Reader, size int64) (string, error) {
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err := m.client.PutObject(ctx, m.cfg.MinIO.BucketName, objectName, file, size,
		minio.PutObjectOptions{
			ContentType: contentType,
			UserMetadata: map[string]string{
				"uploaded-at": time.Now().Format(time.RFC3339),
			},
		})
	if err != nil {
		return "", fmt.Errorf("ошибка загрузки в MinIO: %w", err)
	}

	return m.PublicURL(objectName), nil
}

func (m *MinIOClient) DeleteObject(ctx context.Context, objectName string) error {
	err := m.client.RemoveObject(ctx, m.cfg.MinIO.BucketName, objectName,
		minio.RemoveObjectOptions{
			GovernanceBypass: true,
		})
	if err != nil {
		return fmt.Errorf("ошибка удаления из MinIO: %w", err)
	}
	return nil
}

// DeleteObjects удаляет объекты одним пакетным вызовом
func (m *MinIOClient) DeleteObjects(ctx context.Context, objectNames []string) error {
	objectsCh := make(chan minio.ObjectInfo)

	go func() {
		defer close(objectsCh)
		for _, name := range objectNames {
			objectsCh <- minio.ObjectInfo{Key: name}
		}
	}()

	return drainRemoveErrors(m.client.RemoveObjects(ctx, m.cfg.MinIO.BucketName, objectsCh, minio.RemoveObjectsOptions{GovernanceBypass: true}))
}

// drainRemoveErrors вычитывает канал результатов до закрытия: ранний выход
// оставил бы воркеры minio-go заблокированными на отправке. Наружу уходит
// первая ошибка
func drainRemoveErrors(results <-chan minio.RemoveObjectError) error {
	var firstErr error

	for rErr := range results {
		if rErr.Err != nil && firstErr == nil {
			firstErr = fmt.Errorf("ошибка пакетного удаления из MinIO (%s): %w", rErr.ObjectName, rErr.Err)
		}
	}

	return firstErr
}

func (m *MinIOClient) PresignedUploadURL(ctx context.Context, objectName string) (string, error) {
	presignedURL, err := m.client.PresignedPutObject(ctx, m.cfg.MinIO.BucketName, objectName, m.cfg.MinIO.URLExpiry)
	if err != nil {
		return "", fmt.Errorf("ошибка создания presigned URL: %w", err)
	}

	return presignedURL.String(), nil
}

func (m *MinIOClient) PublicURL(objectName string) string {
	scheme := "http"
	if m.cfg.MinIO.UseSSL {
		scheme = "https"
	}

	return fmt.Sprintf("%s://%s/%s/%s", scheme, m.cfg.MinIO.Endpoint, m.cfg.MinIO.BucketName, objectName)
}

func (m *MinIOClient) URLExpiry() time.Duration {
	return m.cfg.MinIO.URLExpiry
}
