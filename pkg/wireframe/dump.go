package wireframe

import (
	"fmt"
	"io"
)

// DumpNodes writes one line per node for debugging.
func (w *Wireframe) DumpNodes(out io.Writer) error {
	if _, err := fmt.Fprintln(out, "--- Nodes ---"); err != nil {
		return err
	}
	for i, n := range w.nodes {
		if _, err := fmt.Fprintf(out, " %d: (%g, %g, %g)\n", i, n.X, n.Y, n.Z); err != nil {
			return err
		}
	}
	return nil
}

// DumpEdges writes one line per edge with both endpoints' coordinates.
func (w *Wireframe) DumpEdges(out io.Writer) error {
	if _, err := fmt.Fprintln(out, "--- Edges ---"); err != nil {
		return err
	}
	for i, e := range w.edges {
		a, b := w.nodes[e.Start], w.nodes[e.End]
		_, err := fmt.Fprintf(out, " %d: %d -> %d  (%g, %g, %g) to (%g, %g, %g)\n",
			i, e.Start, e.End, a.X, a.Y, a.Z, b.X, b.Y, b.Z)
		if err != nil {
			return err
		}
	}
	return nil
}
