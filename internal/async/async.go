package async

import (
	"log"
	"runtime/debug"
)

// Go runs fn on a new goroutine, logging any panic under the given name
// before re-panicking.
func Go(logger *log.Logger, name string, fn func()) {
	if logger == nil {
		panic("async: logger cannot be nil")
	}
	go func() {
		defer func() {
			if r := recover(); r != nil {
				logger.Printf("PANIC in %s: %v\n%s", name, r, debug.Stack())
				panic(r)
			}
		}()
		fn()
	}()
}
