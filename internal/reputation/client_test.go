package reputation

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProduct_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/products/example.com", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"name":"Example","slug":"example","score":7.5,"rubric":[` +
			`{"question":{"category":"handling","slug":"data-deletion"},"option":{"percent":100}}]}`))
	}))
	defer server.Close()

	client, err := New(WithHTTPClient(server.Client()), WithBaseURL(server.URL+"/"))
	require.NoError(t, err)

	product, err := client.Product(context.Background(), "example.com")
	require.NoError(t, err)

	require.NotNil(t, product.Score)
	assert.InDelta(t, 7.5, *product.Score, 1e-9)
	assert.Equal(t, "Example", product.Name)
	require.Len(t, product.Rubric, 1)
	assert.Equal(t, "data-deletion", product.Rubric[0].Question.Slug)
	assert.InDelta(t, 100, product.Rubric[0].Option.Percent, 1e-9)
}

func TestProduct_NullScore(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"name":"Example","score":null}`))
	}))
	defer server.Close()

	client, err := New(WithHTTPClient(server.Client()), WithBaseURL(server.URL))
	require.NoError(t, err)

	product, err := client.Product(context.Background(), "example.com")
	require.NoError(t, err)
	assert.Nil(t, product.Score)
}

func TestProduct_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		err    error
	}{
		{"not found", http.StatusNotFound, `{"error":"not found"}`, ErrProductNotFound},
		{"server error", http.StatusInternalServerError, "", ErrUnexpectedStatus},
		{"bad body", http.StatusOK, "<html>", ErrInvalidResponse},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer server.Close()

			client, err := New(WithHTTPClient(server.Client()), WithBaseURL(server.URL))
			require.NoError(t, err)

			product, err := client.Product(context.Background(), "example.com")

			assert.Nil(t, product)
			assert.ErrorIs(t, err, tc.err)
		})
	}
}

func TestProduct_CanceledContext(t *testing.T) {
	client, err := New(WithBaseURL("http://127.0.0.1:1"), WithRateLimit(0.001, 1))
	require.NoError(t, err)

	// consume the only token so Wait has to block on the canceled context
	require.True(t, client.limiter.Allow())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = client.Product(ctx, "example.com")
	assert.ErrorIs(t, err, ErrRequestFailed)
}
