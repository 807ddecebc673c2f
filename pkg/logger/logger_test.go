package logger

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestLogger(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Logger Suite")
}

var _ = Describe("Logger", func() {
	AfterEach(func() {
		Init("development")
	})

	It("parses levels with an info fallback", func() {
		Expect(parseLevel("DEBUG")).To(Equal(slog.LevelDebug))
		Expect(parseLevel("warn")).To(Equal(slog.LevelWarn))
		Expect(parseLevel("error")).To(Equal(slog.LevelError))
		Expect(parseLevel("verbose")).To(Equal(slog.LevelInfo))
	})

	It("installs the configured logger as default", func() {
		Configure("json", "warn")
		Expect(LoggerWrapper()).To(BeIdenticalTo(slog.Default()))
		Expect(LoggerWrapper().Enabled(context.Background(), slog.LevelInfo)).To(BeFalse())
		Expect(LoggerWrapper().Enabled(context.Background(), slog.LevelWarn)).To(BeTrue())
	})

	It("carries request fields through the context", func() {
		var buf bytes.Buffer
		defaultLogger = slog.New(slog.NewTextHandler(&buf, nil))

		ctx := With(context.Background(), "request_id", "req-1")
		ctx = With(ctx, "department", "IT")
		From(ctx).Info("checkout approved")

		Expect(buf.String()).To(ContainSubstring("request_id=req-1"))
		Expect(buf.String()).To(ContainSubstring("department=IT"))
		Expect(buf.String()).To(ContainSubstring("checkout approved"))
	})

	It("falls back to the default logger", func() {
		Expect(From(context.Background())).To(BeIdenticalTo(LoggerWrapper()))
	})
})
