// Package goroutine launches background work that logs panics instead of
// crashing the process.
package goroutine

import (
	"fmt"
	"runtime/debug"
	"sync"

	"github.com/sismaterial/helpdesk/internal/shared/logger"
)

// Group tracks the goroutines it starts so shutdown can wait for them.
type Group struct {
	wg  sync.WaitGroup
	log logger.Interface
}

func NewGroup(log logger.Interface) *Group {
	return &Group{log: log}
}

// Go runs fn on a new goroutine. A panic in fn is logged under name with its stack.
func (g *Group) Go(name string, fn func()) {
	g.wg.Add(1)
	go func() {
		defer g.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				g.log.Errorw("goroutine panicked",
					"goroutine", name,
					"panic", fmt.Sprintf("%v", r),
					"stack", string(debug.Stack()),
				)
			}
		}()
		fn()
	}()
}

// Wait blocks until every goroutine started with Go has returned.
func (g *Group) Wait() {
	g.wg.Wait()
}
