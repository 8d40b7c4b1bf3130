package pkg

import (
	"io"

	"github.com/mitchellh/colorstring"
)

func PrintTask(w io.Writer, msg string) {
	colorstring.Fprintf(w, "[blue][bold]==>[default] %s\n", msg)
}
