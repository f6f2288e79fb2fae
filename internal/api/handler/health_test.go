package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"
)

func TestHealthHandler_Liveness(t *testing.T) {
	c, rec := newContext(http.MethodGet, "/health", "")
	if err := NewHealthHandler().Liveness(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	env, obj := decodeEnvelope(t, rec)
	if !env.Success || env.Message != "OK" || env.Errors != nil {
		t.Fatalf("unexpected envelope: %+v", env)
	}
	if obj["status"] != "ok" {
		t.Fatalf("unexpected object: %v", obj)
	}
}

func TestReadinessHandler(t *testing.T) {
	ok := Check{Name: "mongodb", Ping: func(context.Context) error { return nil }}
	down := Check{Name: "redis", Ping: func(context.Context) error { return errors.New("connection refused") }}

	tests := []struct {
		name   string
		checks []Check
		want   int
	}{
		{"all healthy", []Check{ok}, http.StatusOK},
		{"one dependency down", []Check{ok, down}, http.StatusServiceUnavailable},
		{"no dependencies", nil, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newContext(http.MethodGet, "/health/ready", "")
			if err := NewReadinessHandler(tt.checks...).Readiness(c); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if rec.Code != tt.want {
				t.Fatalf("expected %d, got %d", tt.want, rec.Code)
			}
			env, obj := decodeEnvelope(t, rec)
			if env.Success != (tt.want == http.StatusOK) {
				t.Fatalf("success flag does not match status: %+v", env)
			}
			if env.Success && obj["status"] != "ok" {
				t.Fatalf("unexpected object: %v", obj)
			}
		})
	}
}

func TestReadinessHandler_DegradedNamesFailingDependency(t *testing.T) {
	ok := Check{Name: "mongodb", Ping: func(context.Context) error { return nil }}
	down := Check{Name: "redis", Ping: func(context.Context) error { return errors.New("connection refused") }}

	c, rec := newContext(http.MethodGet, "/health/ready", "")
	if err := NewReadinessHandler(ok, down).Readiness(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	env, _ := decodeEnvelope(t, rec)
	if env.Success || env.Message != msgUnavailable || env.Object != nil {
		t.Fatalf("unexpected envelope: %+v", env)
	}
	if len(env.Errors) != 1 || env.Errors[0] != "redis: connection refused" {
		t.Fatalf("unexpected errors: %v", env.Errors)
	}
}
