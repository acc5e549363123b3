package sdfg

// DemoGraph builds a small two-state program with a nested stencil, used
// by the command-line tools. With N and M defined every edge resolves
// except the ones over P (inner scope) and Q (outer scope).
func DemoGraph() *Graph {
	b := NewBuilder()
	g := b.Graph("demo")

	compute := b.State(g, "compute")
	a := b.Access(compute, "A")
	entry := b.Node(compute, KindMapEntry, "map[i=0:N]")
	mul := b.Tasklet(compute, "mul")
	exit := b.Node(compute, KindMapExit, "map[i=0:N]")
	out := b.Access(compute, "B")
	stencil := b.Nested(compute, "stencil", map[string]string{
		"K": "ceiling(N/2)",
		"L": "M",
	})
	c := b.Access(compute, "C")

	b.Edge(compute, a, entry, Memlet{Data: "A", Subset: "0:N, 0:M", Volume: "N*M"})
	b.Edge(compute, entry, mul, Memlet{Data: "A", Subset: "i, 0:M", Volume: "M"})
	b.Edge(compute, mul, exit, Memlet{Data: "B", Subset: "i, 0:M", Volume: "M"})
	b.Edge(compute, exit, out, Memlet{Data: "B", Subset: "0:N, 0:M", Volume: "N*M"})
	b.Edge(compute, a, stencil, Memlet{Data: "A", Subset: "0:N", Volume: "N"})
	b.Edge(compute, stencil, c, Memlet{Data: "C", Subset: "0:2**M", Volume: "2**M"})

	inner := b.State(stencil.SDFG, "stencil_body")
	x := b.Access(inner, "X")
	smooth := b.Tasklet(inner, "smooth")
	y := b.Access(inner, "Y")
	b.Edge(inner, x, smooth, Memlet{Data: "X", Subset: "0:K, 0:L", Volume: "K*L"})
	b.Edge(inner, smooth, y, Memlet{Data: "Y", Subset: "0:K", Volume: "K"})
	b.Edge(inner, x, y, Memlet{Data: "X", Subset: "0:P", Volume: "P*K", Dynamic: true})

	reduce := b.State(g, "reduce")
	src := b.Access(reduce, "C")
	sum := b.Tasklet(reduce, "sum")
	total := b.Access(reduce, "total")
	flag := b.Access(reduce, "flag")
	b.Edge(reduce, src, sum, Memlet{Data: "C", Subset: "0:Q", Volume: "Q"})
	b.Edge(reduce, sum, total, Memlet{Data: "total", Subset: "0", Volume: "1"})
	b.Edge(reduce, total, flag, Memlet{Data: "flag", Volume: "N-N"})
	b.Edge(reduce, sum, flag, Memlet{Data: "flag"})

	return g
}
