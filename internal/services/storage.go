package services

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
)

// Storage uploads profile and vehicle images to S3, falling back to local
// disk when AWS is not configured.
type Storage struct {
	uploader  *s3manager.Uploader
	bucket    string
	useS3     bool
	baseURL   string
	uploadDir string
	logger    *slog.Logger
}

// StorageConfig carries the subset of configuration the storage layer needs.
type StorageConfig struct {
	AWSRegion    string
	AWSAccessKey string
	AWSSecretKey string
	S3Bucket     string
	BaseURL      string
	UploadDir    string
}

// NewStorage initializes either S3 or local storage based on configuration.
func NewStorage(cfg StorageConfig, logger *slog.Logger) (*Storage, error) {
	if cfg.AWSRegion != "" && cfg.AWSAccessKey != "" && cfg.AWSSecretKey != "" {
		sess, err := session.NewSession(&aws.Config{
			Region: aws.String(cfg.AWSRegion),
			Credentials: credentials.NewStaticCredentials(
				cfg.AWSAccessKey,
				cfg.AWSSecretKey,
				"",
			),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create AWS session: %v", err)
		}

		logger.Info("s3 storage initialized", "bucket", cfg.S3Bucket)
		return &Storage{
			uploader: s3manager.NewUploader(sess),
			bucket:   cfg.S3Bucket,
			useS3:    true,
			logger:   logger,
		}, nil
	}

	if err := os.MkdirAll(filepath.Join(cfg.UploadDir, "avatars"), 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %v", err)
	}
	if err := os.MkdirAll(filepath.Join(cfg.UploadDir, "vehicles"), 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %v", err)
	}

	logger.Warn("aws s3 not configured, using local file storage")
	return &Storage{
		useS3:     false,
		baseURL:   cfg.BaseURL,
		uploadDir: cfg.UploadDir,
		logger:    logger,
	}, nil
}

// UploadImage stores an image under folder and returns its public URL.
func (s *Storage) UploadImage(file *multipart.FileHeader, folder string) (string, error) {
	if s.useS3 {
		return s.uploadToS3(file, folder)
	}
	return s.uploadLocally(file, folder)
}

func (s *Storage) uploadToS3(file *multipart.FileHeader, folder string) (string, error) {
	if s.bucket == "" {
		return "", fmt.Errorf("S3 bucket name not configured")
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open file: %v", err)
	}
	defer src.Close()

	buffer := bytes.NewBuffer(nil)
	if _, err := io.Copy(buffer, src); err != nil {
		return "", fmt.Errorf("failed to read file: %v", err)
	}

	contentType := http.DetectContentType(buffer.Bytes())
	fileExt := filepath.Ext(file.Filename)
	fileName := fmt.Sprintf("%s/%d%s", folder, time.Now().UnixNano(), fileExt)

	result, err := s.uploader.Upload(&s3manager.UploadInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(fileName),
		Body:        bytes.NewReader(buffer.Bytes()),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %v", err)
	}

	return result.Location, nil
}

func (s *Storage) uploadLocally(file *multipart.FileHeader, folder string) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open file: %v", err)
	}
	defer src.Close()

	fileExt := filepath.Ext(file.Filename)
	fileName := fmt.Sprintf("%d%s", time.Now().UnixNano(), fileExt)
	destPath := filepath.Join(s.uploadDir, folder, fileName)

	dest, err := os.Create(destPath)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %v", err)
	}
	defer dest.Close()

	if _, err := io.Copy(dest, src); err != nil {
		return "", fmt.Errorf("failed to write file: %v", err)
	}

	return fmt.Sprintf("%s/uploads/%s/%s", s.baseURL, folder, fileName), nil
}
