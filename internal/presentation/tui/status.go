package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Printer writes one-line status messages, colored only when w is a terminal.
type Printer struct {
	out *termenv.Output
}

type fder interface {
	Fd() uintptr
}

// ProfileFor returns the color profile for w: the environment's profile for a
// terminal, plain ASCII for anything else.
func ProfileFor(w io.Writer) termenv.Profile {
	if f, ok := w.(fder); ok && term.IsTerminal(int(f.Fd())) {
		return termenv.EnvColorProfile()
	}
	return termenv.Ascii
}

// NewPrinter creates a Printer for w.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{out: termenv.NewOutput(w, termenv.WithProfile(ProfileFor(w)))}
}

// Success prints a green message.
func (p *Printer) Success(format string, args ...any) {
	p.line("#4ade80", format, args...)
}

// Warn prints a yellow message.
func (p *Printer) Warn(format string, args ...any) {
	p.line("#facc15", format, args...)
}

// Failure prints a red message.
func (p *Printer) Failure(format string, args ...any) {
	p.line("#f87171", format, args...)
}

func (p *Printer) line(color, format string, args ...any) {
	s := p.out.String(fmt.Sprintf(format, args...)).Foreground(p.out.Color(color))
	fmt.Fprintln(p.out, s)
}
