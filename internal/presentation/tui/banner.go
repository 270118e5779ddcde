package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the hackterm banner to w.
func PrintBanner(w io.Writer) {
	o := termenv.NewOutput(w)
	lines := []struct {
		text  string
		color string
	}{
		{" _                _    _                      ", "#14532d"},
		{"| |__   __ _  ___| | _| |_ ___ _ __ _ __ ___  ", "#166534"},
		{"| '_ \\ / _` |/ __| |/ / __/ _ \\ '__| '_ ` _ \\ ", "#15803d"},
		{"| | | | (_| | (__|   <| ||  __/ |  | | | | | |", "#16a34a"},
		{"|_| |_|\\__,_|\\___|_|\\_\\\\__\\___|_|  |_| |_| |_|", "#22c55e"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, o.String(l.text).Foreground(o.Color(l.color)))
	}
	fmt.Fprintln(w)
}
