package goroutine

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sismaterial/helpdesk/internal/shared/logger"
)

func TestGroup_WaitsAndSurvivesPanics(t *testing.T) {
	g := NewGroup(logger.Nop())
	var done atomic.Int32

	for i := 0; i < 5; i++ {
		g.Go("worker", func() { done.Add(1) })
	}
	g.Go("broken", func() { panic("boom") })
	g.Wait()

	assert.Equal(t, int32(5), done.Load())
}
