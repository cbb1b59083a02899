package archive

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/pkg/errors"

	"github.com/jingkaihe/skillsync/pkg/logger"
)

// MaxDownloadSize bounds remote archive payloads (10 MiB).
const MaxDownloadSize = 10 * 1024 * 1024

// Download fetches a skill archive over HTTPS. Plain HTTP is rejected and
// payloads above MaxDownloadSize are refused. Transient failures are retried
// a few times with backoff.
func Download(ctx context.Context, rawURL string) ([]byte, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid URL %q", rawURL)
	}
	if parsed.Scheme != "https" {
		return nil, errors.Errorf("refusing to download over %s; only https URLs are supported", parsed.Scheme)
	}

	client := &http.Client{Timeout: 60 * time.Second}

	var data []byte
	err = retry.Do(
		func() error {
			data, err = fetch(ctx, client, rawURL)
			return err
		},
		retry.Context(ctx),
		retry.Attempts(3),
		retry.Delay(time.Second),
		retry.OnRetry(func(n uint, err error) {
			logger.G(ctx).WithError(err).WithField("attempt", n+1).Debug("Retrying download")
		}),
	)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to download %s", rawURL)
	}

	return data, nil
}

func fetch(ctx context.Context, client *http.Client, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("unexpected status %s", resp.Status)
	}

	if resp.ContentLength > MaxDownloadSize {
		return nil, retry.Unrecoverable(errors.Errorf("payload is %d bytes, limit is %d", resp.ContentLength, MaxDownloadSize))
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxDownloadSize+1))
	if err != nil {
		return nil, err
	}
	if len(data) > MaxDownloadSize {
		return nil, retry.Unrecoverable(errors.Errorf("payload exceeds %d byte limit", MaxDownloadSize))
	}

	return data, nil
}
