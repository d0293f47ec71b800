package tasks

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Khurshid0109/Dicebear/internal/avatar"
	"github.com/Khurshid0109/Dicebear/internal/config"
	"github.com/Khurshid0109/Dicebear/internal/logger"
)

func newDeps(srvURL string, client *http.Client, timeout time.Duration) TaskDeps {
	return TaskDeps{
		Logger:  logger.Discard(),
		Fetcher: avatar.NewHTTPFetcher(client, srvURL, nil),
		Config: &config.Config{Scheduler: config.SchedulerConfig{Tasks: map[string]config.TaskConfig{
			config.ProbeTaskName: {Enabled: true, Schedule: config.DefaultProbeSchedule, Timeout: timeout},
		}}},
	}
}

func TestRegisterAllTasks(t *testing.T) {
	t.Parallel()

	got := RegisterAllTasks(TaskDeps{Logger: logger.Discard()})
	if _, ok := got[config.ProbeTaskName]; !ok || len(got) != 1 {
		t.Fatalf("RegisterAllTasks() = %v, want only %q", got, config.ProbeTaskName)
	}
}

func TestProbeTask(t *testing.T) {
	t.Parallel()

	cases := map[string]struct {
		handler http.HandlerFunc
		wantErr bool
	}{
		"healthy": {
			handler: func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/bottts/png" || r.URL.Query().Get("seed") != "healthcheck" {
					http.NotFound(w, r)
					return
				}
				_, _ = w.Write([]byte("\x89PNG"))
			},
		},
		"server error": {
			handler: func(w http.ResponseWriter, r *http.Request) { http.Error(w, "down", http.StatusBadGateway) },
			wantErr: true,
		},
		"empty body": {
			handler: func(w http.ResponseWriter, r *http.Request) {},
			wantErr: true,
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			srv := httptest.NewServer(tc.handler)
			defer srv.Close()

			err := newProbeTask(newDeps(srv.URL, srv.Client(), time.Second))(t.Context())
			if (err != nil) != tc.wantErr {
				t.Errorf("probe error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestProbeTaskTimeout(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	start := time.Now()
	err := newProbeTask(newDeps(srv.URL, srv.Client(), 50*time.Millisecond))(t.Context())
	if err == nil {
		t.Fatal("probe error = nil, want timeout")
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Errorf("probe took %v, timeout not honored", elapsed)
	}
}
