package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/arcanaland/konamimap/internal/card"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchReturnsBody(t *testing.T) {
	var gotUA, gotAccept, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotAccept = r.Header.Get("Accept")
		gotQuery = r.URL.Query().Get("misc")
		_, _ = w.Write([]byte(`{"data":[]}`))
	}))
	defer srv.Close()

	c := NewClient(5*time.Second, "konamimap-test")
	body, err := c.Fetch(context.Background(), srv.URL+"/cardinfo.php?misc=yes")
	require.NoError(t, err)

	assert.Equal(t, `{"data":[]}`, string(body))
	assert.Equal(t, "konamimap-test", gotUA)
	assert.Equal(t, "application/json", gotAccept)
	assert.Equal(t, "yes", gotQuery)
}

func TestFetchNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewClient(0, "").Fetch(context.Background(), srv.URL)
	require.Error(t, err)
	assert.ErrorIs(t, err, card.ErrNetwork)
	assert.Contains(t, err.Error(), "502")
}

func TestFetchConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewClient(time.Second, "").Fetch(context.Background(), url)
	assert.ErrorIs(t, err, card.ErrNetwork)
}

func TestFetchInvalidURL(t *testing.T) {
	_, err := NewClient(time.Second, "").Fetch(context.Background(), "://bad")
	assert.ErrorIs(t, err, card.ErrNetwork)
}

func TestNewClientDefaultTimeout(t *testing.T) {
	c := NewClient(-1, "")
	assert.Equal(t, DefaultTimeout, c.HTTP.Timeout)
}

func TestFetchInterruptedTransfer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", "1024")
		_, _ = w.Write([]byte(`{"data":[`))
	}))
	defer srv.Close()

	_, err := NewClient(5*time.Second, "").Fetch(context.Background(), srv.URL)
	require.Error(t, err)
	assert.ErrorIs(t, err, card.ErrNetwork)
	assert.Contains(t, err.Error(), "reading response body")
}
