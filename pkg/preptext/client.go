package preptext

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/pkg/errors"
)

// Client is the voice-agent side of the preparation boundary. One blocking
// round trip per utterance, bounded by an explicit timeout.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(host string, port int, apiPath string, timeout time.Duration) *Client {
	scheme := "http"
	if port == 443 {
		scheme = "https"
	}
	return &Client{
		baseURL:    fmt.Sprintf("%s://%s:%d/%s", scheme, host, port, apiPath),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Prepare sends text to the preparation service and returns its decision.
// Transport and protocol failures surface as errors; the caller decides the
// fallback (the gate keeps the original text).
func (c *Client) Prepare(ctx context.Context, text string) (Response, error) {
	body, err := json.Marshal(Request{Text: text})
	if err != nil {
		return Response{}, errors.Wrap(err, "cannot marshal prepare_text request")
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return Response{}, errors.Wrap(err, "cannot build prepare_text request")
	}
	request.Header.Set("Content-Type", "application/json")

	httpResponse, err := c.httpClient.Do(request)
	if err != nil {
		return Response{}, errors.Wrap(err, "prepare_text request failed")
	}
	defer httpResponse.Body.Close()

	if httpResponse.StatusCode != http.StatusOK {
		return Response{}, errors.Errorf("prepare_text returned status %d", httpResponse.StatusCode)
	}

	var response Response
	if err := json.NewDecoder(httpResponse.Body).Decode(&response); err != nil {
		return Response{}, errors.Wrap(err, "cannot decode prepare_text response")
	}
	return response, nil
}

// URL exposes the resolved endpoint, mostly for startup logging.
func (c *Client) URL() string {
	return c.baseURL
}
