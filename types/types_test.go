// SPDX-License-Identifier: NONE
package types

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"
)

func TestStringSlice(t *testing.T) {
	sl := StringSlice{"b.u"}
	sl.UniqueAppend("a.u", "b.u", "c.u", "a.u")
	if want := (StringSlice{"b.u", "a.u", "c.u"}); !reflect.DeepEqual(sl, want) {
		t.Errorf("StringSlice.UniqueAppend() = %v, want %v", sl, want)
	}

	if got := sl.Locate("c.u"); got != 2 {
		t.Errorf("StringSlice.Locate() = %d, want 2", got)
	}
	if got := sl.Locate("d.u"); got != -1 {
		t.Errorf("StringSlice.Locate() = %d, want -1", got)
	}
}

func TestSafeCounter(t *testing.T) {
	var (
		c  SafeCounter
		wg sync.WaitGroup
	)

	for index := 0; index < 50; index++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Add(3)
		}()
	}
	wg.Wait()

	if got := c.Value(); got != 150 {
		t.Errorf("SafeCounter.Value() = %d, want 150", got)
	}
}

func TestMonitorChannels(t *testing.T) {
	errFailed := errors.New("failed")

	tests := []struct {
		name       string
		operations int
		failures   int
		wantErr    error
	}{
		{name: "all done", operations: 4},
		{name: "some failures", operations: 4, failures: 2, wantErr: errFailed},
		{name: "no operations", operations: 0, wantErr: ErrInvalidGoroutineCount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			done, errChan := make(chan bool, tt.operations), make(chan error, tt.operations)
			for index := 0; index < tt.operations; index++ {
				go func(index int) {
					if index < tt.failures {
						errChan <- errFailed
						return
					}
					done <- true
				}(index)
			}

			err := MonitorChannels(context.Background(), tt.operations, done, errChan, "operation")
			if !errors.Is(err, tt.wantErr) || (tt.wantErr == nil) != (err == nil) {
				t.Errorf("MonitorChannels() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
