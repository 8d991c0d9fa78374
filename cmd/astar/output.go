package main

import (
	"fmt"
	"strings"

	"github.com/IlikeChooros/go-astar/pkg/astar"
)

func (a *app) bold(s string) string {
	return a.out.String(s).Bold().String()
}

func (a *app) good(s string) string {
	return a.out.String(s).Foreground(a.out.Color("2")).String()
}

func (a *app) bad(s string) string {
	return a.out.String(s).Foreground(a.out.Color("1")).String()
}

func (a *app) faint(s string) string {
	return a.out.String(s).Faint().String()
}

// Line with every delta coloured by sign
func colorLine[M any](a *app, line astar.Line[M]) string {
	parts := make([]string, len(line.Steps))
	for i, step := range line.Steps {
		delta := fmt.Sprintf("(%+d)", step.Delta)
		switch {
		case step.Delta > 0:
			delta = a.good(delta)
		case step.Delta < 0:
			delta = a.bad(delta)
		default:
			delta = a.faint(delta)
		}
		parts[i] = fmt.Sprint(step.Move) + delta
	}
	return strings.Join(parts, " ")
}

func (a *app) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}
