package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

const labelWidth = 30

// Printer renders console output in the sectioned key/value style of the
// diagnostics screens.
type Printer struct {
	out io.Writer

	section *color.Color
	label   *color.Color
	value   *color.Color
	good    *color.Color
	fair    *color.Color
	bad     *color.Color
	info    *color.Color
	plain   *color.Color
}

func New(out io.Writer, noColor bool) *Printer {
	p := &Printer{
		out:     out,
		section: color.New(color.FgCyan, color.Bold),
		label:   color.New(color.FgCyan),
		value:   color.New(color.FgWhite, color.Bold),
		good:    color.New(color.FgGreen, color.Bold),
		fair:    color.New(color.FgYellow, color.Bold),
		bad:     color.New(color.FgRed, color.Bold),
		info:    color.New(color.FgCyan, color.Bold),
		plain:   color.New(color.FgWhite),
	}

	for _, c := range []*color.Color{p.section, p.label, p.value, p.good, p.fair, p.bad, p.info, p.plain} {
		if noColor {
			c.DisableColor()
		} else {
			c.EnableColor()
		}
	}

	return p
}

func (p *Printer) Section(title string) {
	fmt.Fprintf(p.out, "\n%s\n\n", p.section.Sprintf("   --- %s ---", title))
}

func (p *Printer) KV(label, value string) {
	p.kv(label, p.value, value)
}

func (p *Printer) kv(label string, c *color.Color, value string) {
	dots := max(labelWidth-len(label), 2)
	fmt.Fprintf(p.out, "   %s %s %s\n", p.label.Sprint(label), strings.Repeat(".", dots), c.Sprint(value))
}

func (p *Printer) OK(msg string) {
	fmt.Fprintf(p.out, "   %s %s\n", p.good.Sprint("[OK]"), msg)
}

func (p *Printer) Warn(msg string) {
	fmt.Fprintf(p.out, "   %s %s\n", p.fair.Sprint("[!!]"), msg)
}

func (p *Printer) Err(msg string) {
	fmt.Fprintf(p.out, "   %s %s\n", p.bad.Sprint("[XX]"), msg)
}

func (p *Printer) Info(msg string) {
	fmt.Fprintf(p.out, "   %s  %s\n", p.info.Sprint("(i)"), msg)
}

func (p *Printer) Blank() {
	fmt.Fprintln(p.out)
}
