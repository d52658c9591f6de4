package httpapi

import (
	"testing"
)

func TestStartSpan_NoParentReturnsNoop(t *testing.T) {
	t.Parallel()

	ctx, span := startSpan(t.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	if span.SpanContext().IsValid() {
		t.Fatalf("without a parent span no real span should be started")
	}
	if ctx == nil {
		t.Fatalf("context must be returned unchanged")
	}
}

func TestShouldCreateHTTPAPISpan(t *testing.T) {
	t.Parallel()

	if !shouldCreateHTTPAPISpan("httpapi.Handler.Analyze") {
		t.Fatalf("handler spans should be created")
	}
	for _, name := range []string{"httpapi.writeJSON", "httpapi.CORS", "usecase.Analyze"} {
		if shouldCreateHTTPAPISpan(name) {
			t.Fatalf("expected %q to be skipped", name)
		}
	}
}
