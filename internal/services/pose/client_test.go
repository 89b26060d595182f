package pose_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"herdscore/internal/services"
	"herdscore/internal/services/pose"
)

func TestDetectLandmarksDecodesResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if err := r.ParseMultipartForm(10 << 20); err != nil {
			t.Errorf("expected multipart form: %v", err)
		}
		if _, _, err := r.FormFile("file"); err != nil {
			t.Errorf("expected file part: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"landmarks":[
			{"label":"neck","x":100,"y":50,"confidence":0.9},
			{"label":"backbone","x":250,"y":60,"confidence":0.85}
		]}`))
	}))
	defer server.Close()

	client := pose.NewClient(server.URL, 5*time.Second, nil)
	landmarks, err := client.DetectLandmarks(context.Background(), []byte("jpeg-bytes"))
	if err != nil {
		t.Fatalf("DetectLandmarks: %v", err)
	}
	if len(landmarks) != 2 {
		t.Fatalf("expected 2 landmarks, got %d", len(landmarks))
	}
	if landmarks[0].Label != "neck" || landmarks[0].Confidence != 0.9 {
		t.Fatalf("unexpected landmark: %#v", landmarks[0])
	}
}

func TestDetectLandmarksEmptyIsNotError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"landmarks":[]}`))
	}))
	defer server.Close()

	client := pose.NewClient(server.URL, 5*time.Second, nil)
	landmarks, err := client.DetectLandmarks(context.Background(), []byte("jpeg-bytes"))
	if err != nil {
		t.Fatalf("absence must not be an error: %v", err)
	}
	if len(landmarks) != 0 {
		t.Fatalf("expected no landmarks, got %d", len(landmarks))
	}
}

func TestDetectLandmarksTimeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer server.Close()
	defer close(release)

	client := pose.NewClient(server.URL, 50*time.Millisecond, nil)
	_, err := client.DetectLandmarks(context.Background(), []byte("jpeg-bytes"))
	if !errors.Is(err, services.ErrTimeout) {
		t.Fatalf("expected timeout marker, got %v", err)
	}
}

func TestDetectLandmarksServerFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model crashed", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := pose.NewClient(server.URL, 5*time.Second, nil)
	_, err := client.DetectLandmarks(context.Background(), []byte("jpeg-bytes"))
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected external tool marker, got %v", err)
	}
}

func TestHealth(t *testing.T) {
	healthy := true
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			http.NotFound(w, r)
			return
		}
		if !healthy {
			http.Error(w, "down", http.StatusServiceUnavailable)
		}
	}))
	defer server.Close()

	client := pose.NewClient(server.URL, time.Second, nil)
	if err := client.Health(context.Background()); err != nil {
		t.Fatalf("Health: %v", err)
	}

	healthy = false
	err := client.Health(context.Background())
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration marker for unhealthy service, got %v", err)
	}
}
