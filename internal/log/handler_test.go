package log_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	ctxlog "github.com/ErlanBelekov/portfolio/internal/log"
	"github.com/ErlanBelekov/portfolio/internal/reqctx"
)

func TestContextHandler_AddsRequestScopedAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(ctxlog.NewContextHandler(slog.NewJSONHandler(&buf, nil)))

	ctx := reqctx.WithOperator(reqctx.WithRequestID(context.Background(), "req-42"), true)
	logger.InfoContext(ctx, "hello")

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("decode log line: %v", err)
	}
	if rec["request_id"] != "req-42" {
		t.Errorf("request_id = %v, want req-42", rec["request_id"])
	}
	if rec["operator"] != true {
		t.Errorf("operator = %v, want true", rec["operator"])
	}
}

func TestContextHandler_AnonymousRequestHasNoOperatorAttr(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(ctxlog.NewContextHandler(slog.NewJSONHandler(&buf, nil)))

	logger.InfoContext(context.Background(), "hello")

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("decode log line: %v", err)
	}
	if _, ok := rec["operator"]; ok {
		t.Error("operator attr present on anonymous record")
	}
	if _, ok := rec["request_id"]; ok {
		t.Error("request_id attr present without a request ID")
	}
}
