package graph

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

import (
	"github.com/timtadh/data-structures/errors"
)

// SimpleLoader reads a database of graphs in a line oriented format:
//
//	start-graph	"name", <value>[, <weight>]
//	vertex	<id>, "<type>"
//	edge	<src-id>, <targ-id>, "<type>"
//	end-graph
//
// Lines are tab separated into a kind and a comma separated list of
// tokens. Types are recoded through Labels.
type SimpleLoader struct {
	Labels  *Labels
	Graphs  []*NamedGraph
	Weights []float64
	builder *Builder
	current *NamedGraph
	weight  float64
	vidxs   map[int]int
	line    int
}

func LoadSimple(labels *Labels, input io.Reader) ([]*NamedGraph, []float64, error) {
	l := &SimpleLoader{
		Labels:  labels,
		Graphs:  make([]*NamedGraph, 0, 100),
		Weights: make([]float64, 0, 100),
	}
	err := l.load(input)
	if err != nil {
		return nil, nil, err
	}
	return l.Graphs, l.Weights, nil
}

func (l *SimpleLoader) load(input io.Reader) error {
	scanner := bufio.NewScanner(input)
	for scanner.Scan() {
		l.line++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		split := strings.SplitN(line, "\t", 2)
		kind, rest := split[0], split[1:]
		var err error
		switch kind {
		case "start-graph":
			err = l.start(rest)
		case "end-graph":
			err = l.end()
		case "vertex":
			err = l.vertex(rest)
		case "edge":
			err = l.edge(rest)
		default:
			err = errors.Errorf("Unexpected kind `%v` for line `%v`", kind, line)
		}
		if err != nil {
			return errors.Errorf("line %d: %v", l.line, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	if l.builder != nil {
		return errors.Errorf("graph %q was never ended", l.current.Name)
	}
	return nil
}

func (l *SimpleLoader) start(rest []string) error {
	if l.builder != nil {
		return errors.Errorf("graph %q was not ended before the next started", l.current.Name)
	}
	if len(rest) != 1 {
		return errors.Errorf("line in unexpected format: `%v`", rest)
	}
	tokens, err := tokens(rest[0])
	if err != nil {
		return err
	}
	if len(tokens) != 2 && len(tokens) != 3 {
		return errors.Errorf("line in unexpected format (expected 2 or 3 tokens): `%v`", tokens)
	}
	name, err := strconv.Unquote(tokens[0])
	if err != nil {
		return err
	}
	value, err := strconv.Atoi(tokens[1])
	if err != nil {
		return err
	}
	l.weight = 1
	if len(tokens) == 3 {
		l.weight, err = strconv.ParseFloat(tokens[2], 64)
		if err != nil {
			return err
		}
	}
	l.builder = Build(20, 20)
	l.current = &NamedGraph{Name: name, Value: value}
	l.vidxs = make(map[int]int)
	return nil
}

func (l *SimpleLoader) end() error {
	if l.builder == nil {
		return errors.Errorf("end-graph without start-graph")
	}
	l.current.Graph = l.builder.Build()
	l.Graphs = append(l.Graphs, l.current)
	l.Weights = append(l.Weights, l.weight)
	l.builder = nil
	l.current = nil
	return nil
}

func (l *SimpleLoader) vertex(rest []string) error {
	if l.builder == nil {
		return errors.Errorf("vertex outside of a graph")
	}
	if len(rest) != 1 {
		return errors.Errorf("line in unexpected format: `%v`", rest)
	}
	tokens, err := tokens(rest[0])
	if err != nil {
		return err
	}
	if len(tokens) != 2 {
		return errors.Errorf("line in unexpected format (expected 2 tokens): `%v`", tokens)
	}
	id, err := strconv.Atoi(tokens[0])
	if err != nil {
		return err
	}
	label, err := strconv.Unquote(tokens[1])
	if err != nil {
		return err
	}
	if _, has := l.vidxs[id]; has {
		return errors.Errorf("duplicate vertex id %v", id)
	}
	n := l.builder.AddNode(l.Labels.Type(label))
	l.vidxs[id] = n.Idx
	return nil
}

func (l *SimpleLoader) edge(rest []string) error {
	if l.builder == nil {
		return errors.Errorf("edge outside of a graph")
	}
	if len(rest) != 1 {
		return errors.Errorf("line in unexpected format: `%v`", rest)
	}
	tokens, err := tokens(rest[0])
	if err != nil {
		return err
	}
	if len(tokens) != 3 {
		return errors.Errorf("line in unexpected format (expected 3 tokens): `%v`", tokens)
	}
	sid, err := strconv.Atoi(tokens[0])
	if err != nil {
		return err
	}
	tid, err := strconv.Atoi(tokens[1])
	if err != nil {
		return err
	}
	label, err := strconv.Unquote(tokens[2])
	if err != nil {
		return err
	}
	sidx, has := l.vidxs[sid]
	if !has {
		return errors.Errorf("unknown src id %v", sid)
	}
	tidx, has := l.vidxs[tid]
	if !has {
		return errors.Errorf("unknown targ id %v", tid)
	}
	_, err = l.builder.AddEdge(&l.builder.V[sidx], &l.builder.V[tidx], l.Labels.Type(label))
	return err
}

func tokens(s string) ([]string, error) {
	buf := make([]rune, 0, len(s))
	parts := make([]string, 0, 4)
	quotes := false
	backslash := false
	for _, c := range s {
		switch c {
		case '"':
			if !backslash {
				quotes = !quotes
			}
		case ',':
			if !backslash && !quotes {
				parts = append(parts, strings.TrimSpace(string(buf)))
				buf = buf[:0]
				continue
			}
		}
		if c == '\\' {
			backslash = !backslash
		} else if backslash {
			backslash = false
		}
		buf = append(buf, c)
	}
	if backslash {
		return nil, errors.Errorf("unfinished backslash: `%v`", s)
	}
	if quotes {
		return nil, errors.Errorf("unclosed quote: `%v`", s)
	}
	if len(buf) > 0 {
		parts = append(parts, strings.TrimSpace(string(buf)))
	}
	return parts, nil
}

// WriteSimple writes graphs in the format LoadSimple reads. weights may be
// nil.
func WriteSimple(w io.Writer, labels *Labels, graphs []*NamedGraph, weights []float64) error {
	out := bufio.NewWriter(w)
	for i, g := range graphs {
		if weights != nil {
			fmt.Fprintf(out, "start-graph\t%q, %d, %v\n", g.Name, g.Value, weights[i])
		} else {
			fmt.Fprintf(out, "start-graph\t%q, %d\n", g.Name, g.Value)
		}
		for _, n := range g.V {
			fmt.Fprintf(out, "vertex\t%d, %q\n", n.Idx, labels.Label(n.Type))
		}
		for _, e := range g.E {
			fmt.Fprintf(out, "edge\t%d, %d, %q\n", e.Src, e.Targ, labels.Label(e.Type))
		}
		fmt.Fprintln(out, "end-graph")
	}
	return out.Flush()
}
