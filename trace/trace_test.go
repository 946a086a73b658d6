package trace

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSpanSequence(t *testing.T) {
	ctx := WithRequestAndSpan(context.Background(), "req-1", 0)

	assert.Equal(t, "req-1", RequestIDFromContext(ctx))
	assert.Equal(t, "0", CurrentSpanID(ctx))

	reqID, span := NextSpanID(ctx)
	assert.Equal(t, "req-1", reqID)
	assert.Equal(t, "1", span)

	_, span = NextSpanID(ctx)
	assert.Equal(t, "2", span)
	assert.Equal(t, "2", CurrentSpanID(ctx))
}

func TestWithoutTraceInfo(t *testing.T) {
	ctx := context.Background()

	assert.Equal(t, "", RequestIDFromContext(ctx))
	assert.Equal(t, "0", CurrentSpanID(ctx))
	reqID, span := NextSpanID(ctx)
	assert.Equal(t, "", reqID)
	assert.Equal(t, "0", span)
}

func TestNextSpanIDConcurrent(t *testing.T) {
	ctx := WithRequestAndSpan(context.Background(), "req-2", 0)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			NextSpanID(ctx)
		}()
	}
	wg.Wait()

	assert.Equal(t, "50", CurrentSpanID(ctx))
}

func TestGenerateIDIsUnique(t *testing.T) {
	assert.NotEqual(t, GenerateID(), GenerateID())
}
