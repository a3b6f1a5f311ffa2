package httpserver

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"git.home.luguber.info/inful/gitsemver/internal/config"
	"git.home.luguber.info/inful/gitsemver/internal/store"
)

type fakeRuntime struct{}

func (fakeRuntime) AnalyzeRepository(_ context.Context, path, _, _, _ string) (*store.Analysis, error) {
	return &store.Analysis{ID: "id-1", Repository: path, Version: "1.0.0"}, nil
}

func (fakeRuntime) RecentAnalyses(context.Context, int) ([]*store.Analysis, error) {
	return []*store.Analysis{{ID: "id-1", Version: "1.0.0"}}, nil
}

func (fakeRuntime) AnalysesByRepository(context.Context, string, int) ([]*store.Analysis, error) {
	return nil, nil
}

func (fakeRuntime) AnalysisByID(_ context.Context, id string) (*store.Analysis, error) {
	return &store.Analysis{ID: id, Version: "1.0.0"}, nil
}

func (fakeRuntime) GetStatus() string             { return "running" }
func (fakeRuntime) GetStartTime() time.Time       { return time.Now() }
func (fakeRuntime) AnalysesTotal() int            { return 1 }
func (fakeRuntime) LastAnalysisDurationMS() int64 { return 5 }
func (fakeRuntime) RepositoriesTotal() int        { return 1 }

func startTestServer(t *testing.T, opts Options) *Server {
	t.Helper()
	cfg := &config.Config{Server: config.ServerConfig{Host: "127.0.0.1", Port: 0}}
	srv := New(cfg, fakeRuntime{}, opts)
	if err := srv.Start(t.Context()); err != nil {
		t.Fatalf("start: %v", err)
	}
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Stop(ctx); err != nil {
			t.Errorf("stop: %v", err)
		}
	})
	return srv
}

func get(t *testing.T, url string) (int, string) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp.StatusCode, string(body)
}

func TestServer_ServesHealthAndStatus(t *testing.T) {
	srv := startTestServer(t, Options{})

	code, body := get(t, "http://"+srv.Addr()+"/healthz")
	if code != http.StatusOK {
		t.Fatalf("healthz: expected 200, got %d: %s", code, body)
	}
	if !strings.Contains(body, `"status":"healthy"`) {
		t.Fatalf("unexpected health body: %s", body)
	}

	code, body = get(t, "http://"+srv.Addr()+"/api/v1/status")
	if code != http.StatusOK {
		t.Fatalf("status: expected 200, got %d: %s", code, body)
	}
	if !strings.Contains(body, `"analyses_total":1`) {
		t.Fatalf("unexpected status body: %s", body)
	}
}

func TestServer_AnalyzeRoundTrip(t *testing.T) {
	srv := startTestServer(t, Options{})

	resp, err := http.Post("http://"+srv.Addr()+"/api/v1/analyze", "application/json",
		strings.NewReader(`{"path": "/srv/demo"}`))
	if err != nil {
		t.Fatalf("POST analyze: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.StatusCode, body)
	}
	if !strings.Contains(string(body), `"repository":"/srv/demo"`) {
		t.Fatalf("unexpected analyze body: %s", body)
	}
}

func TestServer_MetricsRouteOnlyWhenConfigured(t *testing.T) {
	plain := startTestServer(t, Options{})
	code, _ := get(t, "http://"+plain.Addr()+"/metrics")
	if code != http.StatusNotFound {
		t.Fatalf("expected 404 without metrics handler, got %d", code)
	}

	withMetrics := startTestServer(t, Options{MetricsHandler: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("# metrics"))
	})})
	code, body := get(t, "http://"+withMetrics.Addr()+"/metrics")
	if code != http.StatusOK {
		t.Fatalf("expected 200 with metrics handler, got %d", code)
	}
	if !strings.Contains(body, "# metrics") {
		t.Fatalf("unexpected metrics body: %s", body)
	}
}

func TestServer_StopBeforeStartIsNoop(t *testing.T) {
	srv := New(&config.Config{}, fakeRuntime{}, Options{})
	if err := srv.Stop(context.Background()); err != nil {
		t.Fatalf("stop before start: %v", err)
	}
}
