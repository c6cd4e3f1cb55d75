package parallel

import "sync"

// ErrorCollector records the first non-nil error reported by concurrent
// workers. The zero value is ready to use and safe for concurrent use.
type ErrorCollector struct {
	once sync.Once
	err  error
}

// SetError records err if it is the first non-nil error seen. Nil errors are
// ignored so that they never claim the slot.
func (c *ErrorCollector) SetError(err error) {
	if err == nil {
		return
	}
	c.once.Do(func() {
		c.err = err
	})
}

// Err returns the first recorded error, or nil. It must only be called after
// every writer has finished (e.g. after a WaitGroup.Wait).
func (c *ErrorCollector) Err() error {
	return c.err
}
