package printer

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Client hands complete report documents to the print relay. One call per
// print; the relay replies once the platform print flow has been triggered,
// which is the completion signal the report controller waits on.
type Client struct {
	endpoint string
	httpc    *http.Client
	log      *zap.Logger
}

func New(endpoint string, log *zap.Logger) *Client {
	return &Client{
		endpoint: strings.TrimSpace(endpoint),
		httpc:    &http.Client{Timeout: 30 * time.Second},
		log:      log,
	}
}

// Configured reports whether a print relay endpoint was set.
func (c *Client) Configured() bool {
	return c.endpoint != ""
}

func (c *Client) Print(ctx context.Context, document string) error {
	if c.endpoint == "" {
		return fmt.Errorf("print relay endpoint is not configured")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(document))
	if err != nil {
		return fmt.Errorf("build print request: %w", err)
	}
	req.Header.Set("Content-Type", "text/html; charset=utf-8")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("print relay: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 300 {
		return fmt.Errorf("print relay replied %d", resp.StatusCode)
	}

	c.log.Info("report dispatched to print relay", zap.Int("bytes", len(document)))
	return nil
}
