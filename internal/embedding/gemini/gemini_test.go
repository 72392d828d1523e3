package gemini

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"esgrag/internal/domain"
)

// newServer answers every request with status and body, after checking that
// the request targets the default model and carries the text.
func newServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Contains(t, r.URL.Path, DefaultModel)
		raw, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		assert.Contains(t, string(raw), "net zero targets")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestEmbedder(t *testing.T, srv *httptest.Server) *Embedder {
	t.Helper()
	e, err := NewEmbedder(context.Background(), Config{APIKey: "test-key", BaseURL: srv.URL + "/"})
	require.NoError(t, err)
	return e
}

func TestNewEmbedder_MissingKey(t *testing.T) {
	_, err := NewEmbedder(context.Background(), Config{})
	assert.ErrorIs(t, err, domain.ErrMissingAPIKey)
}

func TestNewEmbedder_Defaults(t *testing.T) {
	e, err := NewEmbedder(context.Background(), Config{APIKey: "test-key"})
	require.NoError(t, err)

	assert.Equal(t, "gemini:"+DefaultModel, e.Name())
	assert.Equal(t, DefaultTimeout, e.timeout)
}

func TestEmbed_ConvertsValuesToFloat64(t *testing.T) {
	srv := newServer(t, http.StatusOK, `{"embeddings":[{"values":[0.5,-0.25,1]}]}`)

	v, err := newTestEmbedder(t, srv).Embed(context.Background(), "net zero targets")

	require.NoError(t, err)
	assert.Equal(t, []float64{0.5, -0.25, 1}, v)
}

func TestEmbed_NoEmbeddingReturned(t *testing.T) {
	for _, body := range []string{`{"embeddings":[]}`, `{"embeddings":[{"values":[]}]}`, `{}`} {
		srv := newServer(t, http.StatusOK, body)

		_, err := newTestEmbedder(t, srv).Embed(context.Background(), "net zero targets")

		require.Error(t, err, body)
		assert.Contains(t, err.Error(), "no embedding returned", body)
	}
}

func TestEmbed_ProviderError(t *testing.T) {
	srv := newServer(t, http.StatusBadRequest,
		`{"error":{"code":400,"message":"API key not valid","status":"INVALID_ARGUMENT"}}`)

	_, err := newTestEmbedder(t, srv).Embed(context.Background(), "net zero targets")

	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "gemini embed: "))
	assert.Contains(t, err.Error(), "API key not valid")
}
