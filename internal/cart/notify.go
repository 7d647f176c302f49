package cart

import (
	"fmt"
	"io"
)

// Notifier receives user-facing toasts for cart mutations. It is an
// injected capability: callers that do not care pass nothing and get
// the discarding default.
type Notifier interface {
	Successf(format string, args ...any)
	Warnf(format string, args ...any)
}

type discard struct{}

func (discard) Successf(string, ...any) {}
func (discard) Warnf(string, ...any)    {}

// WriterNotifier prints notifications as plain lines, for CLI use.
type WriterNotifier struct {
	Out io.Writer
}

func (n WriterNotifier) Successf(format string, args ...any) {
	fmt.Fprintf(n.Out, format+"\n", args...)
}

func (n WriterNotifier) Warnf(format string, args ...any) {
	fmt.Fprintf(n.Out, "Warning: "+format+"\n", args...)
}
