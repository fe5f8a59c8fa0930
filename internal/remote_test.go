package internal

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

// MockHTTPClient is a mock implementation of http.Client for testing
type MockHTTPClient struct {
	DoFunc func(req *http.Request) (*http.Response, error)
}

func (m *MockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	return m.DoFunc(req)
}

type closeTracker struct {
	io.Reader
	closed bool
}

func (c *closeTracker) Close() error {
	c.closed = true
	return nil
}

func TestRemoteImageClient_Get(t *testing.T) {
	t.Run("successful response", func(t *testing.T) {
		var seen *http.Request
		mockClient := &MockHTTPClient{
			DoFunc: func(req *http.Request) (*http.Response, error) {
				seen = req
				return &http.Response{
					StatusCode: http.StatusOK,
					Body:       io.NopCloser(bytes.NewBufferString("png-bytes")),
					Header:     make(http.Header),
				}, nil
			},
		}

		c := &RemoteImageClient{userAgent: "photo-filters/test", client: mockClient}
		body, err := c.Get("http://test-url/cat.png")
		assert.NoError(t, err)
		defer body.Close()

		data, err := io.ReadAll(body)
		assert.NoError(t, err)
		assert.Equal(t, "png-bytes", string(data))
		assert.Equal(t, "image/*", seen.Header.Get("Accept"))
		assert.Equal(t, "photo-filters/test", seen.Header.Get("User-Agent"))
	})

	t.Run("error status closes body", func(t *testing.T) {
		tracker := &closeTracker{Reader: bytes.NewBufferString("not found")}
		mockClient := &MockHTTPClient{
			DoFunc: func(req *http.Request) (*http.Response, error) {
				return &http.Response{
					StatusCode: http.StatusNotFound,
					Status:     "404 Not Found",
					Body:       tracker,
				}, nil
			},
		}

		c := &RemoteImageClient{client: mockClient}
		body, err := c.Get("http://test-url/missing.png")
		assert.Nil(t, body)
		assert.ErrorContains(t, err, "http://test-url/missing.png")
		assert.ErrorContains(t, err, "404 Not Found")
		assert.True(t, tracker.closed)
	})

	t.Run("transport error", func(t *testing.T) {
		boom := errors.New("connection refused")
		mockClient := &MockHTTPClient{
			DoFunc: func(req *http.Request) (*http.Response, error) {
				return nil, boom
			},
		}

		c := &RemoteImageClient{client: mockClient}
		_, err := c.Get("http://test-url/cat.png")
		assert.ErrorIs(t, err, boom)
	})

	t.Run("invalid url", func(t *testing.T) {
		c := &RemoteImageClient{client: &MockHTTPClient{}}
		_, err := c.Get("http://bad url\x7f")
		assert.ErrorContains(t, err, "failed to create request")
	})
}
