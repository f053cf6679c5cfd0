package google

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(Config{
		Endpoint: srv.URL + "/customsearch/v1",
		APIKey:   "k3y",
		EngineID: "cx-1",
	})
}

func TestSearch_SendsParameters(t *testing.T) {
	var got url.Values
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/customsearch/v1", r.URL.Path)
		got = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"items":[]}`))
	})

	body, err := c.Search(context.Background(), `"cloud engineer" jobs`, 0)
	require.NoError(t, err)
	assert.JSONEq(t, `{"items":[]}`, string(body))

	assert.Equal(t, "k3y", got.Get("key"))
	assert.Equal(t, "cx-1", got.Get("cx"))
	assert.Equal(t, `"cloud engineer" jobs`, got.Get("q"))
	assert.Equal(t, "1", got.Get("start"))
	assert.Equal(t, "in", got.Get("gl"))
}

func TestSearch_Non2xx(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"quota"}}`, http.StatusTooManyRequests)
	})

	_, err := c.Search(context.Background(), "golang", 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "google status 429")
	assert.Contains(t, err.Error(), "quota")
}

func TestSearch_InvalidJSON(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>oops</html>`))
	})

	_, err := c.Search(context.Background(), "golang", 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not valid JSON")
}

func TestSearch_NetworkErrorRedactsKey(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	endpoint := srv.URL
	srv.Close()

	c := New(Config{Endpoint: endpoint, APIKey: "s3cr3t-key", EngineID: "cx"})
	_, err := c.Search(context.Background(), "golang", 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "google get")
	assert.NotContains(t, err.Error(), "s3cr3t-key")
}

func TestSearch_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(2 * time.Second):
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()

	c := New(Config{Endpoint: srv.URL, APIKey: "k", EngineID: "cx", Timeout: 50 * time.Millisecond})
	_, err := c.Search(context.Background(), "golang", 1)
	assert.Error(t, err)
}

func TestSearch_EmptyQuery(t *testing.T) {
	c := New(Config{APIKey: "k", EngineID: "cx"})
	_, err := c.Search(context.Background(), "   ", 1)
	assert.Error(t, err)
}

func TestRun(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("q") == "broken" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(`{"items":[
			{"title":"SRE","link":"https://x.com/a","snippet":"Chennai"},
			{"title":"DevOps","link":"https://x.com/b"}
		]}`))
	})

	res := c.Run(context.Background(), "sre")
	require.True(t, res.OK())
	assert.Equal(t, "sre", res.Query)
	require.Len(t, res.Records, 2)
	assert.Equal(t, "https://x.com/a", res.Records[0].URL)
	assert.Equal(t, "", res.Records[1].Snippet)

	res = c.Run(context.Background(), "broken")
	assert.False(t, res.OK())
	assert.Empty(t, res.Records)
	assert.Equal(t, "broken", res.Query)
}

func TestNew_Defaults(t *testing.T) {
	c := New(Config{})
	assert.Equal(t, DefaultEndpoint, c.cfg.Endpoint)
	assert.Equal(t, DefaultRegion, c.cfg.Region)
	assert.Equal(t, DefaultTimeout, c.hc.Timeout)
	assert.Equal(t, "google", c.Name())
}
