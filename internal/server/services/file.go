package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/courseboard/server/internal/common"
	sc "github.com/courseboard/server/internal/server/config"
	"github.com/courseboard/server/internal/server/models"
	"github.com/courseboard/server/internal/server/repositories/repomanager"
	"github.com/google/uuid"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Seams for the S3 client so tests can stub object-storage calls.
var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		return c.PutObject(ctx, in, optFns...)
	}

	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

// presignValidity bounds how long a retrieval link stays usable.
const presignValidity = 15 * time.Minute

// maxFileTypeLen matches the work_files.file_type column width.
const maxFileTypeLen = 50

// FileService stores uploaded work files in S3-compatible object storage
// and their metadata in the work_files table.
type FileService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	config      *sc.Config
}

func NewFileService(db *sql.DB, m repomanager.RepositoryManager, cfg *sc.Config) *FileService {
	return &FileService{db: db, repomanager: m, config: cfg}
}

// NewStoredName generates a collision-free object name preserving the
// original extension.
func NewStoredName(fileName string) string {
	return uuid.NewString() + path.Ext(fileName)
}

// storageKey maps a stored name to its object-storage key.
func storageKey(storedName string) string {
	return path.Join("uploads", storedName)
}

func (s *FileService) getS3Client(ctx context.Context) (*s3.Client, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(s.config.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3AccessKey,
			s.config.S3SecretKey,
			"",
		)))
	if err != nil {
		return nil, err
	}

	return newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
	}), nil
}

// Upload streams the file body into object storage and records its
// metadata. The original file name is kept for display; retrieval goes
// through the generated stored name.
func (s *FileService) Upload(ctx context.Context, workID int64, fileName, contentType string, body io.Reader) (*models.WorkFile, error) {
	if workID == 0 {
		return nil, fmt.Errorf("%w: work id is required", common.ErrMissingFields)
	}

	exists, err := s.repomanager.Works(s.db).Exists(ctx, workID)
	if err != nil {
		return nil, fmt.Errorf("error checking work: %w", err)
	}
	if !exists {
		return nil, common.ErrorNotFound
	}

	client, err := s.getS3Client(ctx)
	if err != nil {
		return nil, fmt.Errorf("error creating storage client: %w", err)
	}

	stored := NewStoredName(fileName)
	key := storageKey(stored)
	bucket := s.config.S3Bucket

	if _, err := putObject(client, ctx, &s3.PutObjectInput{
		Bucket:      &bucket,
		Key:         &key,
		Body:        body,
		ContentType: aws.String(contentType),
	}); err != nil {
		return nil, fmt.Errorf("error storing file: %w", err)
	}

	if len(contentType) > maxFileTypeLen {
		contentType = contentType[:maxFileTypeLen]
	}

	file, err := s.repomanager.WorkFiles(s.db).Create(ctx, &models.WorkFile{
		WorkID:   workID,
		FileName: fileName,
		FilePath: stored,
		FileType: contentType,
	})
	if err != nil {
		return nil, fmt.Errorf("error saving file metadata: %w", err)
	}

	return file, nil
}

// DownloadURL resolves a stored name to a temporary presigned GET URL.
// Unknown names yield common.ErrorNotFound.
func (s *FileService) DownloadURL(ctx context.Context, storedName string) (string, error) {
	file, err := s.repomanager.WorkFiles(s.db).GetByStoredName(ctx, storedName)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorNotFound
		}
		return "", fmt.Errorf("error fetching file metadata: %w", err)
	}

	client, err := s.getS3Client(ctx)
	if err != nil {
		return "", fmt.Errorf("error creating storage client: %w", err)
	}

	bucket := s.config.S3Bucket
	key := storageKey(file.FilePath)

	req, err := presignGetObject(newS3PresignClient(client), ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(presignValidity))
	if err != nil {
		return "", fmt.Errorf("error presigning file url: %w", err)
	}

	return req.URL, nil
}

// ListByWork returns the metadata rows for a work's files.
func (s *FileService) ListByWork(ctx context.Context, workID int64) ([]*models.WorkFile, error) {
	return s.repomanager.WorkFiles(s.db).ListByWork(ctx, workID)
}
