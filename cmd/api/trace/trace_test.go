package trace

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"product-compare/internal/logger"
)

func TestNextSpanIDIncrementsWithinRequest(t *testing.T) {
	ctx := WithRequestAndSpan(context.Background(), "req-1", 0)

	assert.Equal(t, "0", CurrentSpanID(ctx))

	reqID, span := NextSpanID(ctx)
	assert.Equal(t, "req-1", reqID)
	assert.Equal(t, "1", span)

	_, span = NextSpanID(ctx)
	assert.Equal(t, "2", span)
	assert.Equal(t, "2", CurrentSpanID(ctx))
}

func TestNextSpanIDOutsideMiddleware(t *testing.T) {
	reqID, span := NextSpanID(context.Background())
	assert.NotEmpty(t, reqID)
	assert.Equal(t, "1", span)
	assert.Equal(t, "", RequestIDFromContext(context.Background()))
}

func TestLogFieldsAddsCorrelationID(t *testing.T) {
	ctx := WithRequestAndSpan(context.Background(), "req-9", 0)

	fields := LogFields(ctx, logger.Fields{"error_kind": "analysis"})
	assert.Equal(t, "req-9", fields["request_id"])
	assert.Equal(t, "analysis", fields["error_kind"])

	bare := LogFields(context.Background(), nil)
	assert.NotContains(t, bare, "request_id")
}
