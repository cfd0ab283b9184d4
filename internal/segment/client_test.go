package segment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"roof-planner/internal/detect"
	"roof-planner/pkg/geometry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectPassesThroughCandidates(t *testing.T) {
	t.Parallel()

	var gotMaxCandidates string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/segment", r.URL.Path)

		require.NoError(t, r.ParseMultipartForm(1<<20))
		gotMaxCandidates = r.FormValue("max_candidates")

		file, _, err := r.FormFile("file")
		require.NoError(t, err)
		file.Close()

		json.NewEncoder(w).Encode(detect.Result{
			Success: true,
			Candidates: []detect.BoundaryCandidate{{
				Points:     []geometry.Point2D{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}},
				Vertices:   4,
				Confidence: 88,
			}},
			TotalFound: 1,
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	result := client.Detect(context.Background(), []byte("fake-jpeg"), 2)

	assert.Equal(t, "2", gotMaxCandidates)
	require.True(t, result.Success)
	require.Len(t, result.Candidates, 1)
	assert.Equal(t, 88.0, result.Candidates[0].Confidence)
}

func TestDetectServerErrorIsEmptyResult(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model loading", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	result := NewClient(server.URL, 5*time.Second).Detect(context.Background(), []byte("x"), 3)
	assert.True(t, result.Success)
	assert.Empty(t, result.Candidates)
	assert.Equal(t, unavailableMessage, result.Message)
}

func TestDetectTransportErrorIsEmptyResult(t *testing.T) {
	t.Parallel()

	// Nothing listens here.
	result := NewClient("http://127.0.0.1:1", 500*time.Millisecond).Detect(context.Background(), []byte("x"), 3)
	assert.True(t, result.Success)
	assert.Empty(t, result.Candidates)
	assert.Equal(t, unavailableMessage, result.Message)
}

func TestDetectBadPayloadIsEmptyResult(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	result := NewClient(server.URL, 5*time.Second).Detect(context.Background(), []byte("x"), 3)
	assert.True(t, result.Success)
	assert.Empty(t, result.Candidates)
	assert.Equal(t, unavailableMessage, result.Message)
}

func TestDetectRemoteFailureIsEmptyResult(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(detect.Result{Success: false, Error: "inference failed"})
	}))
	defer server.Close()

	result := NewClient(server.URL, 5*time.Second).Detect(context.Background(), []byte("x"), 3)
	assert.True(t, result.Success)
	assert.Empty(t, result.Candidates)
	assert.Equal(t, unavailableMessage, result.Message)
}

func TestDetectHonorsContext(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(2 * time.Second)
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	result := NewClient(server.URL, 5*time.Second).Detect(ctx, []byte("x"), 3)
	assert.True(t, result.Success)
	assert.Empty(t, result.Candidates)
}

func TestHealth(t *testing.T) {
	t.Parallel()

	t.Run("healthy", func(t *testing.T) {
		t.Parallel()
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/health", r.URL.Path)
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()
		assert.NoError(t, NewClient(server.URL, time.Second).Health(context.Background()))
	})

	t.Run("unhealthy", func(t *testing.T) {
		t.Parallel()
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()
		assert.Error(t, NewClient(server.URL, time.Second).Health(context.Background()))
	})
}

func TestSharedReturnsSameClient(t *testing.T) {
	a := Shared("http://example.invalid", time.Second)
	b := Shared("http://other.invalid", 2*time.Second)
	assert.Same(t, a, b)
}
