package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

var (
	noticeTitle = color.New(color.FgRed, color.Bold)
	successText = color.New(color.FgGreen)
	accentText  = color.New(color.FgCyan, color.Bold)
	faintText   = color.New(color.Faint)
)

// notice shows a blocking error with a short title and the underlying message.
func notice(w io.Writer, title string, err error) {
	noticeTitle.Fprintln(w, title)
	fmt.Fprintf(w, "  %v\n", err)
}

func success(w io.Writer, format string, args ...any) {
	successText.Fprintf(w, format+"\n", args...)
}
