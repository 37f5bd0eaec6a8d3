package exec

import (
	"strings"
	"unicode"
)

// QuoteArg wraps arg in double quotes when it contains whitespace, so the
// Windows command interpreter does not split it.
func QuoteArg(arg string) string {
	if strings.IndexFunc(arg, unicode.IsSpace) < 0 {
		return arg
	}
	return `"` + arg + `"`
}

// CommandLine joins the program and its arguments into one interpreter line,
// quoting each element as needed.
func CommandLine(name string, args []string) string {
	var b strings.Builder
	b.WriteString(QuoteArg(name))
	for _, arg := range args {
		b.WriteByte(' ')
		b.WriteString(QuoteArg(arg))
	}
	return b.String()
}
