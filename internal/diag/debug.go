package diag

import (
	"fmt"
	"log"

	"github.com/petermattis/goid"
)

// Debugf logs a debug trace line tagged with the calling goroutine's id, so
// interleaved output from the driver's concurrent per-file parses can still
// be attributed to the goroutine that produced it.
func Debugf(format string, args ...any) {
	log.Printf("[g%d] %s", goid.Get(), fmt.Sprintf(format, args...))
}
