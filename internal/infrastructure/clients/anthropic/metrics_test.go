package anthropic

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestRecordAnthropicMetric_ConcurrentFirstUse(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			recordAnthropicMetric(context.Background(), "claude-test", 200, time.Millisecond, nil)
		}()
	}
	wg.Wait()
}
