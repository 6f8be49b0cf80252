package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

var bannerLines = []struct {
	text  string
	color string
}{
	{"       _                        ", "#818cf8"},
	{"  _ __(_) __ _  __ _  ___ _ __  ", "#a78bfa"},
	{" | '__| |/ _` |/ _` |/ _ \\ '_ \\ ", "#c084fc"},
	{" | |  | | (_| | (_| |  __/ | | |", "#e879f9"},
	{" |_|  |_|\\__, |\\__, |\\___|_| |_|", "#f472b6"},
	{"         |___/ |___/            ", "#fb7185"},
}

// PrintBanner writes the riggen ASCII banner, colored when the profile allows.
func PrintBanner(w io.Writer, profile termenv.Profile) {
	out := termenv.NewOutput(w, termenv.WithProfile(profile))

	fmt.Fprintln(out)
	for _, l := range bannerLines {
		fmt.Fprintln(out, out.String(l.text).Foreground(out.Color(l.color)))
	}
	fmt.Fprintln(out)
}
