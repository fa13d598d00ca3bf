package rbm

import (
	"fmt"

	"github.com/awalterschulze/gographviz"
)

// ToDot renders the machine as an undirected Graphviz graph: one cluster per layer, with every
// node labelled by its bias and every edge by its weight.
func (m *RBM) ToDot() string {
	g := gographviz.NewGraph()
	if err := g.SetName("G"); err != nil {
		panic(err)
	}
	g.SetDir(false)

	layers := []struct {
		name, prefix, label string
		bias                func(int) float64
		n                   int
	}{
		{"cluster_visible", "v", "visible", m.params.Bv.AtVec, m.Visible},
		{"cluster_hidden", "h", "hidden", m.params.Bh.AtVec, m.Hidden},
	}
	for _, l := range layers {
		if err := g.AddSubGraph("G", l.name, map[string]string{"label": quote(l.label)}); err != nil {
			panic(err)
		}
		for i := 0; i < l.n; i++ {
			attrs := map[string]string{
				"shape": "circle",
				"label": quote(fmt.Sprintf("%s%d\n%.3f", l.prefix, i, l.bias(i))),
			}
			if err := g.AddNode(l.name, fmt.Sprintf("%s%d", l.prefix, i), attrs); err != nil {
				panic(err)
			}
		}
	}

	for j := 0; j < m.Hidden; j++ {
		for i := 0; i < m.Visible; i++ {
			attrs := map[string]string{"label": quote(fmt.Sprintf("%.3f", m.params.W.At(j, i)))}
			if err := g.AddEdge(fmt.Sprintf("h%d", j), fmt.Sprintf("v%d", i), false, attrs); err != nil {
				panic(err)
			}
		}
	}
	return g.String()
}

func quote(s string) string { return fmt.Sprintf("%q", s) }
