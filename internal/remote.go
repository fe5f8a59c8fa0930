package internal

import (
	"fmt"
	"io"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type ImageClient interface {
	Get(url string) (io.ReadCloser, error)
}

type RemoteImageClient struct {
	userAgent string
	client    HTTPClient
}

func NewRemoteImageClient(userAgent string) ImageClient {
	return &RemoteImageClient{
		userAgent: userAgent,
		client:    &http.Client{Timeout: 30 * time.Second},
	}
}

// Get fetches the image at url. The caller must close the returned body.
func (c *RemoteImageClient) Get(url string) (io.ReadCloser, error) {
	log.Printf("Retrieving: %s", url)
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "image/*")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	res, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch from %s: %w", url, err)
	}

	if res.StatusCode > 299 {
		_ = res.Body.Close()
		return nil, fmt.Errorf("http status response from %s: %s", url, res.Status)
	}

	return res.Body, nil
}
