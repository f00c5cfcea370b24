// Package cycles enumerates simple cycles of small undirected graphs.
//
// Vertices are dense integers 0..n-1. Callers keep their own mapping from
// domain values to vertex numbers.
//
// Enumeration is lazy: [Graph.Through] yields cycles as an iterator, shortest
// first, so a caller that only needs the first acceptable cycle stops the
// search as soon as it finds one.
package cycles

import (
	"context"
	"iter"
	"slices"
)

// ctxCheckInterval is how many search steps pass between context checks.
const ctxCheckInterval = 1024

// Graph is an undirected simple graph. Self loops and parallel edges are
// ignored. The zero value is an empty graph with no vertices.
//
// Graph is not safe for concurrent mutation; concurrent reads are fine.
type Graph struct {
	adj [][]int
}

// New returns a graph with n vertices and no edges.
func New(n int) *Graph {
	return &Graph{adj: make([][]int, n)}
}

// Len returns the number of vertices.
func (g *Graph) Len() int { return len(g.adj) }

// AddEdge connects u and v. Neighbour lists stay sorted.
func (g *Graph) AddEdge(u, v int) {
	if u == v || g.HasEdge(u, v) {
		return
	}
	g.adj[u] = insertSorted(g.adj[u], v)
	g.adj[v] = insertSorted(g.adj[v], u)
}

func insertSorted(s []int, v int) []int {
	i, _ := slices.BinarySearch(s, v)
	return slices.Insert(s, i, v)
}

// HasEdge reports whether u and v are connected.
func (g *Graph) HasEdge(u, v int) bool {
	_, ok := slices.BinarySearch(g.adj[u], v)
	return ok
}

// Neighbours returns the neighbours of v in ascending order.
func (g *Graph) Neighbours(v int) []int { return g.adj[v] }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int {
	n := 0
	for _, a := range g.adj {
		n += len(a)
	}
	return n / 2
}

// distances returns BFS hop counts from src. Unreachable vertices get -1.
func (g *Graph) distances(src int) []int {
	dist := make([]int, len(g.adj))
	for i := range dist {
		dist[i] = -1
	}
	dist[src] = 0
	queue := []int{src}
	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		for _, w := range g.adj[v] {
			if dist[w] < 0 {
				dist[w] = dist[v] + 1
				queue = append(queue, w)
			}
		}
	}
	return dist
}

// Through yields every simple cycle passing through v, shortest first, up
// to maxLen vertices. A maxLen of zero or less means no limit. Each cycle is
// yielded once, as its vertex sequence starting at v, in the orientation
// whose second vertex is smaller than its last.
//
// The iterator stops early when ctx is done; callers check ctx.Err() after
// ranging to tell exhaustion from cancellation.
func (g *Graph) Through(ctx context.Context, v, maxLen int) iter.Seq[[]int] {
	return func(yield func([]int) bool) {
		n := len(g.adj)
		if v < 0 || v >= n {
			return
		}
		if maxLen <= 0 || maxLen > n {
			maxLen = n
		}
		s := &search{g: g, ctx: ctx, dist: g.distances(v), onPath: make([]bool, n)}
		for length := 3; length <= maxLen; length++ {
			s.path = append(s.path[:0], v)
			s.onPath[v] = true
			more := s.walk(length, yield)
			s.onPath[v] = false
			if !more || ctx.Err() != nil {
				return
			}
		}
	}
}

type search struct {
	g      *Graph
	ctx    context.Context
	dist   []int
	onPath []bool
	path   []int
	steps  int
	limit  int // maximum steps, zero for none

	// accept, when set, filters complete cycles before they are yielded.
	accept func(path []int) bool
	// prune, when set, cuts partial paths that cannot lead to an accepted
	// cycle of the given length.
	prune func(path []int, length int) bool
}

// walk extends s.path to exactly length vertices and yields each closing
// cycle. It returns false once the consumer or the context stops it.
func (s *search) walk(length int, yield func([]int) bool) bool {
	s.steps++
	if s.limit > 0 && s.steps > s.limit {
		return false
	}
	if s.steps%ctxCheckInterval == 0 && s.ctx.Err() != nil {
		return false
	}

	start := s.path[0]
	last := s.path[len(s.path)-1]
	if len(s.path) == length {
		if !s.g.HasEdge(last, start) || s.path[1] > s.path[len(s.path)-1] {
			return true
		}
		if s.accept != nil && !s.accept(s.path) {
			return true
		}
		return yield(slices.Clone(s.path))
	}
	if s.prune != nil && s.prune(s.path, length) {
		return true
	}

	remaining := length - len(s.path)
	for _, w := range s.g.adj[last] {
		if s.onPath[w] || s.dist[w] < 0 || s.dist[w] > remaining {
			continue
		}
		s.onPath[w] = true
		s.path = append(s.path, w)
		more := s.walk(length, yield)
		s.path = s.path[:len(s.path)-1]
		s.onPath[w] = false
		if !more {
			return false
		}
	}
	return true
}
