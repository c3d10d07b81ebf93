package state

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/five82/fledgling/internal/birds"
)

type stubFetcher struct {
	payload *birds.Payload
	err     error
	block   chan struct{}
}

func (f *stubFetcher) FetchBirds(ctx context.Context) (*birds.Payload, error) {
	if f.block != nil {
		<-f.block
	}
	return f.payload, f.err
}

func TestLoader_Success(t *testing.T) {
	var store Store
	fetcher := &stubFetcher{payload: mustPayload(t, `["Robin","Jay"]`)}
	loader := NewLoader(&store, fetcher, nil)

	require.True(t, loader.Load(context.Background()))

	snap := store.Snapshot()
	assert.False(t, snap.Loading)
	assert.Empty(t, snap.Err)
	assert.Equal(t, []string{"Robin", "Jay"}, birds.Classify(snap.Payload).Strings)
}

func TestLoader_FailureBecomesErrorState(t *testing.T) {
	var store Store
	store.Succeed(store.Begin(), mustPayload(t, `["old"]`))

	loader := NewLoader(&store, &stubFetcher{err: errors.New("boom")}, nil)
	require.True(t, loader.Load(context.Background()))

	snap := store.Snapshot()
	assert.False(t, snap.Loading)
	assert.Equal(t, "boom", snap.Err)
	assert.Nil(t, snap.Payload)
}

func TestLoader_NetworkFailureWithoutMessage(t *testing.T) {
	var store Store
	loader := NewLoader(&store, &stubFetcher{err: &birds.TransportError{Op: "execute request", Err: errors.New("")}}, nil)

	loader.Load(context.Background())
	assert.Equal(t, "Failed to fetch birds.", store.Snapshot().Err)
}

func TestLoader_StaleCompletionIsDropped(t *testing.T) {
	var store Store
	slow := &stubFetcher{payload: mustPayload(t, `["stale"]`), block: make(chan struct{})}
	fast := &stubFetcher{payload: mustPayload(t, `["fresh"]`)}

	slowLoader := NewLoader(&store, slow, nil)
	fastLoader := NewLoader(&store, fast, nil)

	firstSeq := store.Begin()
	done := make(chan bool)
	go func() { done <- slowLoader.Complete(context.Background(), firstSeq) }()

	require.True(t, fastLoader.Load(context.Background()))
	close(slow.block)
	assert.False(t, <-done)

	snap := store.Snapshot()
	assert.False(t, snap.Loading)
	assert.Equal(t, []string{"fresh"}, birds.Classify(snap.Payload).Strings)
}

func TestLoader_AgainstHTTPServer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("db down"))
	}))
	t.Cleanup(server.Close)

	client, err := birds.NewClient(server.URL)
	require.NoError(t, err)

	var store Store
	NewLoader(&store, client, nil).Load(context.Background())

	snap := store.Snapshot()
	assert.Contains(t, snap.Err, "500")
	assert.Contains(t, snap.Err, "db down")
	assert.Nil(t, snap.Payload)
}

func TestLoader_RecordsSpans(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	var store Store
	ok := NewLoader(&store, &stubFetcher{payload: mustPayload(t, `[{"name":"Robin"}]`)}, nil).
		WithTracer(provider.Tracer("test"))
	bad := NewLoader(&store, &stubFetcher{err: &birds.RequestError{Status: 502, StatusText: "Bad Gateway"}}, nil).
		WithTracer(provider.Tracer("test"))

	ok.Load(context.Background())
	bad.Load(context.Background())

	spans := recorder.Ended()
	require.Len(t, spans, 2)

	assert.Equal(t, "birds.load", spans[0].Name())
	attrs := map[string]string{}
	for _, kv := range spans[0].Attributes() {
		attrs[string(kv.Key)] = kv.Value.Emit()
	}
	assert.Equal(t, "records", attrs["fledgling.payload.shape"])
	assert.Equal(t, "1", attrs["fledgling.payload.entries"])
	assert.Equal(t, "true", attrs["fledgling.load.applied"])

	assert.Equal(t, codes.Error, spans[1].Status().Code)
	assert.Equal(t, "Request failed (502): Bad Gateway", spans[1].Status().Description)
}

func TestErrorKind(t *testing.T) {
	assert.Equal(t, "request", errorKind(&birds.RequestError{Status: 404}))
	assert.Equal(t, "transport", errorKind(&birds.TransportError{Err: errors.New("x")}))
	assert.Equal(t, "other", errorKind(errors.New("x")))
}
