package services

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	appconfig "dailyshop-backend/internal/config"
	"dailyshop-backend/internal/timeutil"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// BackupService zips the CSV data directory and uploads snapshots to an
// S3-compatible bucket (R2 in production). A service with no credentials
// configured is disabled, not an error.
type BackupService struct {
	client  *s3.Client
	bucket  string
	dataDir string
}

func NewBackupService(cfg *appconfig.Config) *BackupService {
	if cfg.Backup.Bucket == "" || cfg.Backup.AccessKey == "" {
		log.Printf("[Backup] Not configured, snapshots disabled")
		return &BackupService{dataDir: cfg.Storage.DataDir}
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.Backup.AccessKey,
			cfg.Backup.SecretKey,
			"",
		)),
		awsconfig.WithRegion(cfg.Backup.Region),
	)
	if err != nil {
		log.Printf("[Backup] Failed to configure client: %v", err)
		return &BackupService{dataDir: cfg.Storage.DataDir}
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Backup.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Backup.Endpoint)
		}
	})
	return &BackupService{
		client:  client,
		bucket:  cfg.Backup.Bucket,
		dataDir: cfg.Storage.DataDir,
	}
}

// Enabled reports whether snapshots can be uploaded.
func (s *BackupService) Enabled() bool {
	return s.client != nil
}

// Snapshot zips every CSV in the data directory and uploads it. Returns
// the object key.
func (s *BackupService) Snapshot(ctx context.Context) (string, error) {
	if s.client == nil {
		return "", fmt.Errorf("backup is not configured")
	}

	archive, err := s.zipDataDir()
	if err != nil {
		return "", err
	}

	key := fmt.Sprintf("backups/dailyshop-%s.zip", timeutil.Now().Format("20060102-150405"))
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(archive),
	})
	if err != nil {
		return "", fmt.Errorf("upload snapshot: %w", err)
	}
	log.Printf("[Backup] Snapshot uploaded: %s (%d bytes)", key, len(archive))
	return key, nil
}

func (s *BackupService) zipDataDir() ([]byte, error) {
	entries, err := os.ReadDir(s.dataDir)
	if err != nil {
		return nil, fmt.Errorf("read data dir: %w", err)
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".csv") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.dataDir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", entry.Name(), err)
		}
		f, err := zw.Create(entry.Name())
		if err != nil {
			return nil, err
		}
		if _, err := f.Write(data); err != nil {
			return nil, err
		}
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
