package parallel

import (
	"fmt"
	"runtime/debug"
	"sync"
)

// Do runs every thunk on its own goroutine and returns once all of them have
// terminated. The returned error is the first non-nil error reported.
//
// No thunk is cancelled when another one fails or panics. If one or more
// thunks panic, the panics are recovered on their goroutines and Do re-panics
// on the caller's goroutine with the left-most recovered value, annotated
// with the worker's stack.
func Do(thunks ...func() error) error {
	switch len(thunks) {
	case 0:
		return nil
	case 1:
		return thunks[0]()
	}

	var (
		wg     sync.WaitGroup
		errs   ErrorCollector
		panics = make([]any, len(thunks))
	)
	wg.Add(len(thunks))
	for i, thunk := range thunks {
		go func() {
			defer func() {
				if p := recover(); p != nil {
					panics[i] = wrapPanic(p)
				}
				wg.Done()
			}()
			errs.SetError(thunk())
		}()
	}
	wg.Wait()

	for _, p := range panics {
		if p != nil {
			panic(p)
		}
	}
	return errs.Err()
}

func wrapPanic(p any) any {
	if err, ok := p.(error); ok {
		return fmt.Errorf("%w\n%s\nrethrown at", err, debug.Stack())
	}
	return fmt.Sprintf("%v\n%s\nrethrown at", p, debug.Stack())
}
