package output

import (
	"fmt"
	"io"
	"os"

	"github.com/jwalton/go-supportscolor"
)

var (
	red   = "\033[31m"
	reset = "\033[0m"
)

func init() {
	if !supportscolor.Stderr().SupportsColor {
		red, reset = "", ""
	}
}

// PrintRetry announces the n-th retry. It is the only routine line the
// proxy itself writes to stdout; w defaults to os.Stdout.
func PrintRetry(w io.Writer, n int) {
	if w == nil {
		w = os.Stdout
	}
	_, _ = fmt.Fprintf(w, "Retry attempt: %d\n", n)
}

// PrintError writes err as a single red line; w defaults to os.Stderr.
// Errors with an empty message print nothing.
func PrintError(w io.Writer, err error) {
	if err == nil || err.Error() == "" {
		return
	}
	if w == nil {
		w = os.Stderr
	}
	_, _ = fmt.Fprintf(w, "%s%s%s\n", red, err, reset)
}
