package btree

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

var (
	separatorColor = color.New(color.FgCyan, color.Bold)
	leafColor      = color.New(color.FgGreen)
	levelColor     = color.New(color.FgHiBlack)
)

// Visualizer draws a tree one level per line, left to right:
//
//	L0  [ 4 ]
//	L1  [ 1 2 3 ] [ 5 6 7 8 ]
//
// Separator keys and leaf keys get different colours when the output is a
// terminal (see color.NoColor).
type Visualizer[K any] struct {
	Tree *Btree[K]
	// Format renders a single key; fmt.Sprint is used when nil.
	Format func(K) string
}

// Visualize returns the rendered tree.
func (v *Visualizer[K]) Visualize() string {
	format := v.Format
	if format == nil {
		format = func(k K) string { return fmt.Sprint(k) }
	}

	var b strings.Builder
	level := []*node[K]{v.Tree.root}
	for depth := 0; len(level) > 0; depth++ {
		if depth > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(levelColor.Sprintf("L%-2d", depth))
		var next []*node[K]
		for _, n := range level {
			paint := separatorColor
			if n.leaf {
				paint = leafColor
			}
			b.WriteString(" [")
			for _, k := range n.keys {
				b.WriteByte(' ')
				b.WriteString(paint.Sprint(format(k)))
			}
			b.WriteString(" ]")
			next = append(next, n.children...)
		}
		level = next
	}
	return b.String()
}
