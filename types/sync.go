// SPDX-License-Identifier: NONE
package types

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

type (
	// SafeCounter is a thread-safe counter.
	SafeCounter struct {
		m   sync.Mutex
		val int
	}
)

// Synchronization errors.
var (
	ErrInvalidGoroutineCount = errors.New("invalid goroutine count")
)

// Add increases the counter by delta.
func (c *SafeCounter) Add(delta int) {
	c.m.Lock()
	defer c.m.Unlock()
	c.val += delta
}

// Value returns the current value of the counter.
func (c *SafeCounter) Value() int {
	c.m.Lock()
	defer c.m.Unlock()
	return c.val
}

// MonitorChannels waits for the completion of operations goroutines, each reporting on either
// done or errChan, collecting the `error`s.
//
// A closed done channel ends the wait early. errPrefix should be in the singular form.
func MonitorChannels(ctx context.Context, operations int, done chan bool, errChan chan error, errPrefix string) (err error) {
	if operations < 1 {
		err = fmt.Errorf("%s %w: %d", errPrefix, ErrInvalidGoroutineCount, operations)
		return
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	var errs []error
	for index := 0; index < operations; index++ {
		select {
		case _, open := <-done:
			if !open {
				index = operations
			}
		case e := <-errChan:
			errs = append(errs, e)
		}
	}

	if len(errs) > 0 {
		err = fmt.Errorf("%s %w", errPrefix, errors.Join(errs...))
	}

	return
}
