package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-confluence-content/internal/logging"
	"github.com/goliatone/go-confluence-content/pkg/interfaces"
)

type testMessage struct{ Label string }

func (testMessage) Type() string { return "confluence.test.message" }

func (testMessage) Validate() error { return nil }

type invalidMessage struct{}

func (invalidMessage) Type() string { return "confluence.test.invalid" }

func (invalidMessage) Validate() error { return errors.New("invalid") }

type fieldsLogger struct {
	fields map[string]any
	infos  []string
	errors []string
}

func (l *fieldsLogger) Trace(string, ...any)         {}
func (l *fieldsLogger) Debug(string, ...any)         {}
func (l *fieldsLogger) Info(msg string, _ ...any)    { l.infos = append(l.infos, msg) }
func (l *fieldsLogger) Warn(string, ...any)          {}
func (l *fieldsLogger) Error(msg string, _ ...any)   { l.errors = append(l.errors, msg) }
func (l *fieldsLogger) Fatal(string, ...any)         {}
func (l *fieldsLogger) WithContext(context.Context) interfaces.Logger { return l }

func (l *fieldsLogger) WithFields(fields map[string]any) interfaces.Logger {
	if l.fields == nil {
		l.fields = map[string]any{}
	}
	for k, v := range fields {
		l.fields[k] = v
	}
	return l
}

func TestHandlerExecuteSuccess(t *testing.T) {
	called := false
	h := NewHandler(func(ctx context.Context, msg testMessage) error {
		called = true
		return nil
	})

	if err := h.Execute(context.Background(), testMessage{}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if !called {
		t.Fatal("expected handler to be invoked")
	}
}

func TestHandlerValidationShortCircuitsExecution(t *testing.T) {
	called := false
	h := NewHandler(func(ctx context.Context, msg invalidMessage) error {
		called = true
		return nil
	})

	err := h.Execute(context.Background(), invalidMessage{})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
	if called {
		t.Fatal("expected handler not to run when validation fails")
	}
}

func TestHandlerContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	h := NewHandler(func(ctx context.Context, msg testMessage) error {
		called = true
		return nil
	})

	err := h.Execute(ctx, testMessage{})
	if err == nil {
		t.Fatal("expected context cancellation error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
	if called {
		t.Fatal("expected handler not to run when context is cancelled")
	}
}

func TestHandlerWrapsExecutionError(t *testing.T) {
	h := NewHandler(func(ctx context.Context, msg testMessage) error {
		return errors.New("boom")
	})

	err := h.Execute(context.Background(), testMessage{})
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
}

func TestHandlerKeepsCategorisedErrors(t *testing.T) {
	parseErr := goerrors.Wrap(errors.New("diagnostics"), goerrors.CategoryValidation, "parse failed")
	h := NewHandler(func(ctx context.Context, msg testMessage) error {
		return parseErr
	})

	err := h.Execute(context.Background(), testMessage{})
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category to survive, got %v", err)
	}
}

func TestHandlerHonoursTimeoutOption(t *testing.T) {
	h := NewHandler(func(ctx context.Context, msg testMessage) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(200 * time.Millisecond):
			return nil
		}
	}, WithTimeout[testMessage](10*time.Millisecond))

	err := h.Execute(context.Background(), testMessage{})
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category for timeout, got %v", err)
	}
}

func TestHandlerMessageFieldsAndTelemetry(t *testing.T) {
	logger := &fieldsLogger{}
	var got []TelemetryInfo

	h := NewHandler(func(ctx context.Context, msg testMessage) error {
		return nil
	},
		WithLogger[testMessage](logger),
		WithOperation[testMessage]("parse.content"),
		WithMessageFields(func(msg testMessage) map[string]any {
			return map[string]any{"label": msg.Label}
		}),
		WithTelemetry(ChainTelemetry(
			DefaultTelemetry[testMessage](nil),
			func(_ context.Context, _ testMessage, info TelemetryInfo) {
				got = append(got, info)
			},
		)),
	)

	if err := h.Execute(context.Background(), testMessage{Label: "home"}); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if logger.fields["label"] != "home" || logger.fields["operation"] != "parse.content" {
		t.Fatalf("expected message fields on the logger, got %#v", logger.fields)
	}
	if len(got) != 1 || got[0].Status != TelemetryStatusSuccess || got[0].Command != "confluence.test.message" {
		t.Fatalf("unexpected telemetry %+v", got)
	}
	if len(logger.infos) != 1 || logger.infos[0] != "command.execute.success" {
		t.Fatalf("expected success log, got %v", logger.infos)
	}
}

func TestHandlerTelemetryReportsFailures(t *testing.T) {
	var status TelemetryStatus
	h := NewHandler(func(ctx context.Context, msg testMessage) error {
		return errors.New("boom")
	}, WithTelemetry(func(_ context.Context, _ testMessage, info TelemetryInfo) {
		status = info.Status
	}))

	if err := h.Execute(context.Background(), testMessage{}); err == nil {
		t.Fatal("expected error")
	}
	if status != TelemetryStatusFailed {
		t.Fatalf("expected failed status, got %q", status)
	}
}

func TestHandlerPropagatesFieldsOnContext(t *testing.T) {
	var seen map[string]any
	h := NewHandler(func(ctx context.Context, msg testMessage) error {
		seen = logging.ContextFields(ctx)
		return nil
	}, WithOperation[testMessage]("content.parse"))

	if err := h.Execute(context.Background(), testMessage{}); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if seen["command"] != "confluence.test.message" || seen["operation"] != "content.parse" {
		t.Fatalf("unexpected context fields %v", seen)
	}
}
