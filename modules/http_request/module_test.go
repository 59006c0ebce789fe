package http_request

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/specialistvlad/circuitgo/internal/block"
	"github.com/specialistvlad/circuitgo/internal/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBlock(t *testing.T, srv *httptest.Server) block.Block {
	t.Helper()
	return Request(srv.Client(), slog.New(slog.DiscardHandler))
}

func TestRequest(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		w.Header().Set("X-Method", r.Method)
		w.Header().Set("X-Token", r.Header.Get("Authorization"))
		switch r.URL.Path {
		case "/missing":
			w.WriteHeader(http.StatusNotFound)
		default:
			w.WriteHeader(http.StatusOK)
		}
		_, _ = w.Write(append([]byte("echo:"), body...))
	}))
	t.Cleanup(srv.Close)

	t.Run("GET by default", func(t *testing.T) {
		b := newBlock(t, srv)

		out, err := b.Execute(block.NewContext(nil, value.Map{"url": value.String(srv.URL)}))

		require.NoError(t, err)
		assert.True(t, out["status"].Equal(value.Int(200)))
		assert.True(t, out["body"].Equal(value.String("echo:")))
		hdrs, ok := out["headers"].AsObject()
		require.True(t, ok)
		assert.True(t, hdrs["X-Method"].Equal(value.String("GET")))
	})

	t.Run("POST with headers and a JSON body", func(t *testing.T) {
		b := newBlock(t, srv)
		cfg := value.Map{
			"url":     value.String(srv.URL),
			"method":  value.String("post"),
			"headers": value.Object(value.Map{"Authorization": value.String("Bearer x")}),
		}
		in := value.Map{"body": value.Object(value.Map{"n": value.Int(1)})}

		out, err := b.Execute(block.NewContext(in, cfg))

		require.NoError(t, err)
		assert.True(t, out["body"].Equal(value.String(`echo:{"n":1}`)))
		hdrs, _ := out["headers"].AsObject()
		assert.True(t, hdrs["X-Method"].Equal(value.String("POST")))
		assert.True(t, hdrs["X-Token"].Equal(value.String("Bearer x")))
	})

	t.Run("error statuses are outputs", func(t *testing.T) {
		b := newBlock(t, srv)

		out, err := b.Execute(block.NewContext(nil, value.Map{"url": value.String(srv.URL + "/missing")}))

		require.NoError(t, err)
		assert.True(t, out["status"].Equal(value.Int(404)))
	})
}

func TestRequestFailures(t *testing.T) {
	t.Parallel()

	b := Request(http.DefaultClient, slog.New(slog.DiscardHandler))

	t.Run("missing url", func(t *testing.T) {
		_, err := b.Execute(block.NewContext(nil, nil))
		assert.ErrorIs(t, err, block.ErrInvalidInput)
		assert.ErrorIs(t, block.Validate(b, nil), block.ErrInvalidInput)
	})

	t.Run("non-positive timeout", func(t *testing.T) {
		err := block.Validate(b, value.Map{"url": value.String("http://x"), "timeout_seconds": value.Float(0)})
		assert.ErrorContains(t, err, "timeout_seconds")
	})

	t.Run("timeout beyond the limit", func(t *testing.T) {
		err := block.Validate(b, value.Map{"url": value.String("http://x"), "timeout_seconds": value.Float(1e12)})
		assert.ErrorIs(t, err, block.ErrInvalidInput)
		assert.ErrorContains(t, err, "timeout_seconds")
	})

	t.Run("non-string header", func(t *testing.T) {
		err := block.Validate(b, value.Map{
			"url":     value.String("http://x"),
			"headers": value.Object(value.Map{"A": value.Int(1)}),
		})
		assert.ErrorContains(t, err, "header 'A' must be a string")
	})

	t.Run("unreachable server", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()

		_, err := b.Execute(block.NewContext(nil, value.Map{"url": value.String(url)}))

		assert.ErrorIs(t, err, block.ErrExecution)
	})
}

func TestTimeoutSeconds(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		config  value.Map
		want    time.Duration
		wantErr bool
	}{
		{name: "default", config: value.Map{}, want: 30 * time.Second},
		{name: "fractional", config: value.Map{"timeout_seconds": value.Float(1.5)}, want: 1500 * time.Millisecond},
		{name: "int", config: value.Map{"timeout_seconds": value.Int(2)}, want: 2 * time.Second},
		{name: "at the limit", config: value.Map{"timeout_seconds": value.Float(MaxTimeout.Seconds())}, want: MaxTimeout},
		{name: "zero", config: value.Map{"timeout_seconds": value.Float(0)}, wantErr: true},
		{name: "negative", config: value.Map{"timeout_seconds": value.Float(-1)}, wantErr: true},
		{name: "overflowing", config: value.Map{"timeout_seconds": value.Float(1e12)}, wantErr: true},
		{name: "not a number", config: value.Map{"timeout_seconds": value.String("10")}, wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := TimeoutSeconds(block.NewContext(nil, tc.config), "timeout_seconds", defaultTimeout)
			if tc.wantErr {
				assert.ErrorIs(t, err, block.ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
