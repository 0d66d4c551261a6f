package ping

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestPingSuccess(t *testing.T) {
	var gotBody atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		gotBody.Store(string(b))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := New(srv.URL, []time.Duration{time.Second}, discardLogger())
	attempts, err := c.Ping(context.Background(), "all good")
	if err != nil {
		t.Fatalf("Ping: %v", err)
	}
	if attempts != 1 {
		t.Errorf("attempts = %d, want 1", attempts)
	}
	if gotBody.Load() != "all good" {
		t.Errorf("body = %q, want %q", gotBody.Load(), "all good")
	}
}

func TestPingRejectedNoRetry(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(srv.URL, []time.Duration{time.Second, time.Second, time.Second}, discardLogger())
	attempts, err := c.Ping(context.Background(), "")
	if err == nil {
		t.Fatal("expected error for 500 response")
	}

	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("error = %v, want StatusError", err)
	}
	if se.Code != http.StatusInternalServerError {
		t.Errorf("code = %d, want 500", se.Code)
	}
	if attempts != 1 {
		t.Errorf("attempts = %d, want 1 (rejection is not retried)", attempts)
	}
	if calls.Load() != 1 {
		t.Errorf("server calls = %d, want 1", calls.Load())
	}
}

func TestPingTimeoutExhaustsSchedule(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		time.Sleep(300 * time.Millisecond)
	}))
	defer srv.Close()

	schedule := []time.Duration{30 * time.Millisecond, 30 * time.Millisecond, 30 * time.Millisecond}
	c := New(srv.URL, schedule, discardLogger())
	attempts, err := c.Ping(context.Background(), "")
	if err == nil {
		t.Fatal("expected timeout error")
	}

	var te *TimeoutError
	if !errors.As(err, &te) {
		t.Fatalf("error = %v, want TimeoutError", err)
	}
	if te.Attempts != 3 {
		t.Errorf("TimeoutError.Attempts = %d, want 3", te.Attempts)
	}
	if attempts != 3 {
		t.Errorf("attempts = %d, want 3", attempts)
	}
	if calls.Load() != 3 {
		t.Errorf("server calls = %d, want 3", calls.Load())
	}
}

func TestPingRetryThenSuccess(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			time.Sleep(300 * time.Millisecond)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := New(srv.URL, []time.Duration{30 * time.Millisecond, 2 * time.Second}, discardLogger())
	attempts, err := c.Ping(context.Background(), "")
	if err != nil {
		t.Fatalf("Ping: %v", err)
	}
	if attempts != 2 {
		t.Errorf("attempts = %d, want 2 (timeout then success)", attempts)
	}
}

func TestPingConnectionErrorNoRetry(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	c := New(srv.URL, []time.Duration{time.Second, time.Second}, discardLogger())
	attempts, err := c.Ping(context.Background(), "")
	if err == nil {
		t.Fatal("expected connection error")
	}

	var se *StatusError
	var te *TimeoutError
	if errors.As(err, &se) || errors.As(err, &te) {
		t.Errorf("error = %v, want plain transport error", err)
	}
	if attempts != 1 {
		t.Errorf("attempts = %d, want 1 (connection error is not retried)", attempts)
	}
}
