package graph

// Graph is an undirected, simple, node and edge typed graph. Graphs are
// built once (see Builder) and then shared read only.
type Graph struct {
	V   Nodes
	E   Edges
	Adj [][]int // node idx -> incident edge idxs
}

// NamedGraph is a training instance: a graph, its name and its class label
// (+1/-1, or 0 when the graph is unlabeled).
type NamedGraph struct {
	*Graph
	Name  string
	Value int
}

func (g *Graph) NodeCount() int {
	return len(g.V)
}

func (g *Graph) EdgeCount() int {
	return len(g.E)
}

func (g *Graph) Node(i int) *Node {
	return &g.V[i]
}

func (g *Graph) Edge(i int) *Edge {
	return &g.E[i]
}

func (g *Graph) Degree(i int) int {
	return len(g.Adj[i])
}

func (g *Graph) NodeType(i int) int {
	return g.V[i].Type
}

func (g *Graph) EdgeType(i int) int {
	return g.E[i].Type
}

// Other gives the endpoint of edge eidx opposite to node u.
func (g *Graph) Other(eidx, u int) int {
	return g.E[eidx].Other(u)
}

// Connected reports whether every node can reach every other node. The
// empty graph is connected.
func (g *Graph) Connected() bool {
	if len(g.V) <= 1 {
		return true
	}
	visited := make([]bool, len(g.V))
	stack := make([]int, 0, len(g.V))
	stack = append(stack, 0)
	visited[0] = true
	count := 1
	for len(stack) > 0 {
		u := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, e := range g.Adj[u] {
			v := g.Other(e, u)
			if !visited[v] {
				visited[v] = true
				count++
				stack = append(stack, v)
			}
		}
	}
	return count == len(g.V)
}

// Graphs strips the names and labels off a list of named graphs.
func Graphs(named []*NamedGraph) []*Graph {
	graphs := make([]*Graph, 0, len(named))
	for _, n := range named {
		graphs = append(graphs, n.Graph)
	}
	return graphs
}
