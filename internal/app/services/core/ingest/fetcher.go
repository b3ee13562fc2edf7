package ingest

import (
	"context"
	"fmt"
	"time"

	"slotplan-service/internal/pkg/constvars"
	"slotplan-service/internal/pkg/exceptions"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// ExportFetcher pulls a triage export from a remote URL so clinics can point
// the service at a file their reporting system already hosts.
type ExportFetcher struct {
	client   *resty.Client
	log      *zap.Logger
	maxBytes int64
}

func NewExportFetcher(log *zap.Logger, maxBytes int64) *ExportFetcher {
	client := resty.New().
		SetTimeout(30 * time.Second).
		SetRetryCount(3).
		SetRetryWaitTime(1 * time.Second).
		SetRetryMaxWaitTime(5 * time.Second)

	return &ExportFetcher{
		client:   client,
		log:      log,
		maxBytes: maxBytes,
	}
}

// FetchExport downloads the export body. The size cap guards against a
// misconfigured URL pointing at something that is not a spreadsheet.
func (f *ExportFetcher) FetchExport(ctx context.Context, url string) ([]byte, error) {
	f.log.Info("ExportFetcher.FetchExport called",
		zap.String("url", url),
	)

	resp, err := f.client.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		return nil, exceptions.ErrIngestFetch(err)
	}
	if resp.StatusCode() != constvars.StatusOK {
		return nil, exceptions.ErrIngestFetch(fmt.Errorf("unexpected status %d from %s", resp.StatusCode(), url))
	}

	body := resp.Body()
	if f.maxBytes > 0 && int64(len(body)) > f.maxBytes {
		return nil, exceptions.ErrFileTooLarge(fmt.Errorf("export is %d bytes, cap is %d", len(body), f.maxBytes))
	}
	return body, nil
}
