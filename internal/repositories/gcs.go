package repositories

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/sovr-labs/go-fp-clearing/internal/config"
	"github.com/sovr-labs/go-fp-clearing/internal/models"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// ReportStorageRepository stores the reports produced by the worker jobs.
type ReportStorageRepository interface {
	WriteStream(ctx context.Context, payload *models.CloudStoragePayload, data <-chan []byte) models.WriteStreamResult
	NewReader(ctx context.Context, payload *models.CloudStoragePayload) (io.ReadCloser, error)
	IsObjectExist(ctx context.Context, payload *models.CloudStoragePayload) (isExist bool, url string)
	GetURL(payload *models.CloudStoragePayload) (url string)
	DeleteFile(ctx context.Context, payload *models.CloudStoragePayload) error
	Close() error
}

type cloudStorageClient struct {
	config *config.CloudStorageConfig
	client *storage.Client
}

func NewReportStorageRepository(cfg *config.Config, opts ...option.ClientOption) (ReportStorageRepository, error) {
	if cfg.CloudStorageConfig.BucketName == "" {
		return nil, fmt.Errorf("failed to init cloud storage bucket name not set")
	}

	client, err := storage.NewClient(context.Background(), opts...)
	if err != nil {
		return nil, err
	}

	return &cloudStorageClient{client: client, config: &cfg.CloudStorageConfig}, nil
}

func (cs *cloudStorageClient) object(payload *models.CloudStoragePayload) *storage.ObjectHandle {
	return cs.client.Bucket(cs.config.BucketName).Object(payload.GetFilePath())
}

func (cs *cloudStorageClient) GetURL(payload *models.CloudStoragePayload) (url string) {
	return fmt.Sprintf("%s/%s/%s", cs.config.BaseURL, cs.config.BucketName, payload.GetFilePath())
}

func (cs *cloudStorageClient) newWriter(ctx context.Context, payload *models.CloudStoragePayload) io.WriteCloser {
	writer := cs.object(payload).NewWriter(ctx)
	writer.ContentType = "text/csv"
	writer.ContentDisposition = fmt.Sprintf("attachment; filename=%s", payload.Filename)
	return writer
}

// WriteStream drains data into the object. The result resolves once the
// writer is closed.
func (cs *cloudStorageClient) WriteStream(ctx context.Context, payload *models.CloudStoragePayload, data <-chan []byte) models.WriteStreamResult {
	ch := make(chan error)
	r := models.NewWriteStreamResult(ch, cs.GetURL(payload))

	go func() {
		writer := cs.newWriter(ctx, payload)
		defer func() {
			if err := writer.Close(); err != nil {
				ch <- err
			}
			close(ch)
		}()

		for v := range data {
			if _, err := writer.Write(v); err != nil {
				ch <- err
			}
		}
	}()

	return r
}

func (cs *cloudStorageClient) NewReader(ctx context.Context, payload *models.CloudStoragePayload) (io.ReadCloser, error) {
	rc, err := cs.object(payload).NewReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to open object in bucket: %w", err)
	}

	return rc, nil
}

func (cs *cloudStorageClient) IsObjectExist(ctx context.Context, payload *models.CloudStoragePayload) (isExist bool, url string) {
	_, err := cs.object(payload).Attrs(ctx)
	if err == nil {
		isExist = true
		url = cs.GetURL(payload)
	}

	return
}

func (cs *cloudStorageClient) DeleteFile(ctx context.Context, payload *models.CloudStoragePayload) error {
	err := cs.object(payload).Delete(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return nil
	}
	return err
}

func (cs *cloudStorageClient) Close() error {
	return cs.client.Close()
}
