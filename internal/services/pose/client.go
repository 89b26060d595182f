// Package pose talks to the landmark inference service. The engine treats
// it as a black box that returns (label, x, y, confidence) tuples; the
// keypoint mapper owns the vocabulary translation.
package pose

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"time"

	"herdscore/internal/keypoint"
	"herdscore/internal/services"
)

// Client calls a remote pose inference endpoint with a bounded timeout.
type Client struct {
	endpoint string
	timeout  time.Duration
	http     *http.Client
	logger   *slog.Logger
}

// NewClient builds a Client for the given inference endpoint.
func NewClient(endpoint string, timeout time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		endpoint: endpoint,
		timeout:  timeout,
		http:     &http.Client{},
		logger:   logger,
	}
}

// DetectLandmarks posts image bytes to the inference service and returns the
// raw landmark list. An empty list means the detector saw nothing, which is
// a normal state, not an error. A deadline miss is reported as a timeout
// error; the call is never retried here.
func (c *Client) DetectLandmarks(ctx context.Context, image []byte) ([]keypoint.RawLandmark, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", "image.jpg")
	if err != nil {
		return nil, services.Wrap(services.ErrExternalTool, "pose", "detect", "build multipart request", err)
	}
	if _, err := io.Copy(part, bytes.NewReader(image)); err != nil {
		return nil, services.Wrap(services.ErrExternalTool, "pose", "detect", "copy image data", err)
	}
	if err := writer.Close(); err != nil {
		return nil, services.Wrap(services.ErrExternalTool, "pose", "detect", "finalize multipart request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, body)
	if err != nil {
		return nil, services.Wrap(services.ErrExternalTool, "pose", "detect", "create request", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, services.Wrap(services.ErrTimeout, "pose", "detect",
				fmt.Sprintf("no response within %s", c.timeout), err)
		}
		return nil, services.Wrap(services.ErrExternalTool, "pose", "detect", "send request", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, services.Wrap(services.ErrExternalTool, "pose", "detect",
			fmt.Sprintf("inference returned status %d", resp.StatusCode), nil)
	}

	var result struct {
		Landmarks []keypoint.RawLandmark `json:"landmarks"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, services.Wrap(services.ErrExternalTool, "pose", "detect", "decode response", err)
	}

	c.logger.Debug("pose inference complete",
		"landmarks", len(result.Landmarks),
		"elapsed", time.Since(start))
	return result.Landmarks, nil
}

// Health probes the inference service. A failure here means the detection
// model is unavailable and should abort startup rather than silently
// disable detection.
func (c *Client) Health(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"/health", nil)
	if err != nil {
		return services.Wrap(services.ErrConfiguration, "pose", "health", "create request", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return services.Wrap(services.ErrConfiguration, "pose", "health", "inference service unreachable", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return services.Wrap(services.ErrConfiguration, "pose", "health",
			fmt.Sprintf("inference service unhealthy: status %d", resp.StatusCode), nil)
	}
	return nil
}
