package cli

// This file implements terminal output for the CLI on top of pterm.
// Colors are only used when the destination is a terminal.

import (
	"fmt"
	"io"
	"os"

	"github.com/pterm/pterm"
	"golang.org/x/term"
)

// Printer writes human-oriented CLI output. Error lines go to Err so they
// never mix with command output on Out.
type Printer struct {
	Out   io.Writer
	Err   io.Writer
	Quiet bool
	Color bool
}

// NewPrinter returns a printer writing to w and to stderr for errors, with
// color enabled when w is a terminal.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{Out: w, Err: os.Stderr, Color: IsTerminal(w)}
}

// DefaultPrinter writes to stdout and stderr.
var DefaultPrinter = NewPrinter(os.Stdout)

// IsTerminal reports whether w is a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// ConfigureColor disables pterm styling globally when w is not a terminal.
func ConfigureColor(w io.Writer) {
	if IsTerminal(w) {
		pterm.EnableColor()
		return
	}
	pterm.DisableColor()
}

func (p *Printer) out() io.Writer {
	if p == nil || p.Out == nil {
		return os.Stdout
	}
	return p.Out
}

func (p *Printer) errOut() io.Writer {
	if p == nil || p.Err == nil {
		return os.Stderr
	}
	return p.Err
}

func (p *Printer) paint(color pterm.Color, s string) string {
	if p == nil || !p.Color {
		return s
	}
	return color.Sprint(s)
}

// Printf writes formatted output, even in quiet mode.
func (p *Printer) Printf(format string, args ...any) {
	fmt.Fprintf(p.out(), format, args...)
}

// Println writes a line, even in quiet mode.
func (p *Printer) Println(args ...any) {
	fmt.Fprintln(p.out(), args...)
}

// Section prints a section title.
func (p *Printer) Section(title string) {
	if p.Quiet {
		return
	}
	fmt.Fprintln(p.out(), p.paint(pterm.FgCyan, title))
}

// Step prints a progress line.
func (p *Printer) Step(msg string) {
	if p.Quiet {
		return
	}
	fmt.Fprintln(p.out(), p.paint(pterm.FgCyan, "→ ")+msg)
}

// Info prints an informational line.
func (p *Printer) Info(msg string) {
	if p.Quiet {
		return
	}
	fmt.Fprintln(p.out(), msg)
}

// Warn prints a warning line.
func (p *Printer) Warn(msg string) {
	if p.Quiet {
		return
	}
	fmt.Fprintln(p.out(), p.paint(pterm.FgYellow, "warning: ")+msg)
}

// Error prints an error line to Err. Errors are printed in quiet mode too.
func (p *Printer) Error(msg string) {
	fmt.Fprintln(p.errOut(), p.paint(pterm.FgRed, "error: ")+msg)
}

// Table prints rows with the first row as header.
func (p *Printer) Table(data [][]string) {
	p.table(data, false)
}

// TableBoxed prints rows with the first row as header inside a box.
func (p *Printer) TableBoxed(data [][]string) {
	p.table(data, true)
}

func (p *Printer) table(data [][]string, boxed bool) {
	if len(data) == 0 {
		return
	}
	rendered, err := pterm.DefaultTable.
		WithHasHeader().
		WithBoxed(boxed).
		WithData(data).
		Srender()
	if err != nil {
		// fall back to tab-separated rows
		for _, row := range data {
			for i, cell := range row {
				if i > 0 {
					fmt.Fprint(p.out(), "\t")
				}
				fmt.Fprint(p.out(), cell)
			}
			fmt.Fprintln(p.out())
		}
		return
	}
	fmt.Fprintln(p.out(), rendered)
}

// Package-level helpers writing through DefaultPrinter.

// Table prints a table with DefaultPrinter.
func Table(data [][]string) { DefaultPrinter.Table(data) }

// TableBoxed prints a boxed table with DefaultPrinter.
func TableBoxed(data [][]string) { DefaultPrinter.TableBoxed(data) }

// Green returns s in green.
func Green(s string) string { return pterm.FgGreen.Sprint(s) }

// Yellow returns s in yellow.
func Yellow(s string) string { return pterm.FgYellow.Sprint(s) }

// Red returns s in red.
func Red(s string) string { return pterm.FgRed.Sprint(s) }

// Cyan returns s in cyan.
func Cyan(s string) string { return pterm.FgCyan.Sprint(s) }
