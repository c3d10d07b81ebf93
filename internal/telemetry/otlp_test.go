package telemetry

import (
	"context"
	"testing"
	"time"

	"go.opentelemetry.io/otel"
)

func TestSetup_DisabledWithoutEndpoint(t *testing.T) {
	t.Setenv(endpointEnv, "")

	p, err := Setup(context.Background(), nil)
	if err != nil {
		t.Fatalf("Setup returned error: %v", err)
	}
	if p != nil {
		t.Fatalf("Setup returned %#v, want nil when %s is unset", p, endpointEnv)
	}
	if err := p.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown on nil provider returned error: %v", err)
	}
	if p.ServiceName() != "" {
		t.Fatalf("ServiceName on nil provider = %q, want empty", p.ServiceName())
	}
}

func TestSetup_InstallsGlobalProvider(t *testing.T) {
	previous := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(previous) })

	cases := []struct {
		name     string
		endpoint string
		service  string
		want     string
	}{
		{"host and port", "127.0.0.1:4318", "", defaultServiceName},
		{"url", "http://127.0.0.1:4318", "birdwatch", "birdwatch"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(endpointEnv, tc.endpoint)
			t.Setenv(serviceNameEnv, tc.service)

			p, err := Setup(context.Background(), nil)
			if err != nil {
				t.Fatalf("Setup returned error: %v", err)
			}
			if p == nil {
				t.Fatalf("Setup returned nil provider with endpoint set")
			}
			if p.ServiceName() != tc.want {
				t.Fatalf("ServiceName = %q, want %q", p.ServiceName(), tc.want)
			}
			if otel.GetTracerProvider() != p.provider {
				t.Fatalf("global tracer provider not replaced")
			}

			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			if err := p.Shutdown(ctx); err != nil {
				t.Fatalf("Shutdown returned error: %v", err)
			}
		})
	}
}
