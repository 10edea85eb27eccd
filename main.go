package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

import (
	"github.com/timtadh/data-structures/errors"
	"github.com/timtadh/getopt"
)

import (
	"github.com/timtadh/gstump/cmd"
	"github.com/timtadh/gstump/graph"
	"github.com/timtadh/gstump/mine"
	"github.com/timtadh/gstump/stump"
	"github.com/timtadh/gstump/subgraph"
)

func main() {
	c := cmd.DefaultConfig()
	cmd.Main(os.Args[1:], c, cmd.Concat(
		NewMainParser(c),
		cmd.Commands(map[string]cmd.Runnable{
			"mine": NewMineCommand(c),
		}),
	))
}

func NewMainParser(c *cmd.Config) cmd.Runnable {
	return cmd.Cmd(
		os.Args[0],
		`[options]`,
		`
Option Flags
    -h,--help                         Show this message
    -p,--cpu-profile=<path>           Path to write the cpu-profile
    -c,--config=<path>                YAML config supplying defaults
    --workers=<int>                   Goroutines used to verify stumps
                                      (defaults to the number of cpus)
    --debug                           Log every search step
    --skip-log=<level>                Don't output the given log level
`,
		"p:c:",
		[]string{
			"cpu-profile=",
			"config=",
			"workers=",
			"debug",
			"skip-log=",
		},
		func(r cmd.Runnable, args []string, optargs []getopt.OptArg) ([]string, *cmd.Error) {
			for _, oa := range optargs {
				switch oa.Opt() {
				case "-c", "--config":
					f, err := os.Open(oa.Arg())
					if err != nil {
						return nil, cmd.Errorf(cmd.ExitInput, "could not open config %v: %v", oa.Arg(), err)
					}
					err = c.Load(f)
					f.Close()
					if err != nil {
						return nil, cmd.Errorf(cmd.ExitInput, "could not load config %v: %v", oa.Arg(), err)
					}
				}
			}
			cpuProfile := ""
			for _, oa := range optargs {
				switch oa.Opt() {
				case "-p", "--cpu-profile":
					cpuProfile = oa.Arg()
				case "--workers":
					w, err := parseInt(oa)
					if err != nil {
						return nil, err
					}
					c.Workers = w
				case "--debug":
					c.Debug = true
				case "--skip-log":
					c.SkipLog = append(c.SkipLog, oa.Arg())
				}
			}
			c.SkipLogging()
			if cpuProfile != "" {
				cleanup, err := cmd.CPUProfile(cpuProfile)
				if err != nil {
					return nil, err
				}
				c.Defer(cleanup)
			}
			return args, nil
		},
	)
}

func NewMineCommand(c *cmd.Config) cmd.Runnable {
	return cmd.Cmd(
		"mine",
		`[options] <graphs>`,
		`
Mine the top-k decision stumps for a labeled graph database.

<graphs> a file (or directory of files, optionally gzipped) of labeled graphs:

    start-graph	"name", <+1|-1>[, <weight>]
    vertex	<id>, "<type>"
    edge	<src-id>, <targ-id>, "<type>"
    end-graph

Option Flags
    -h,--help                         Show this message
    -k,--top-k=<int>                  Number of stumps to report
    -s,--min-support=<int>            Graphs (labeled and unlabeled) a
                                      pattern must occur in
    -w,--min-weighted-support=<float> Weight of the labeled graphs a
                                      pattern must occur in
    -m,--max-edges=<int>              Largest pattern to consider
    -t,--timeout=<duration>           Report the best stumps found so far
                                      when the duration elapses (eg. 30s)
    -u,--unlabeled=<path>             Unlabeled graphs for semi-supervised
                                      mining (their labels are ignored)
    -x,--exclude=<path>               Graphs whose patterns must not be
                                      reported (eg. an earlier round)
    -o,--output=<path>                Write the stump patterns as dot
`,
		"k:s:w:m:t:u:x:o:",
		[]string{
			"top-k=",
			"min-support=",
			"min-weighted-support=",
			"max-edges=",
			"timeout=",
			"unlabeled=",
			"exclude=",
			"output=",
		},
		func(r cmd.Runnable, args []string, optargs []getopt.OptArg) ([]string, *cmd.Error) {
			mc := c.Mine
			unlabeledPath := ""
			excludePath := ""
			output := ""
			for _, oa := range optargs {
				var err *cmd.Error
				switch oa.Opt() {
				case "-k", "--top-k":
					mc.K, err = parseInt(oa)
				case "-s", "--min-support":
					mc.MinSupport, err = parseInt(oa)
				case "-w", "--min-weighted-support":
					mc.MinWeightedSupport, err = parseFloat(oa)
				case "-m", "--max-edges":
					mc.MaxEdges, err = parseInt(oa)
				case "-t", "--timeout":
					d, perr := time.ParseDuration(oa.Arg())
					if perr != nil {
						err = cmd.Usage(r, cmd.ExitUsage, "could not parse arg to `%v` expected a duration (got %v). err: %v", oa.Opt(), oa.Arg(), perr)
					}
					mc.Timeout = d
				case "-u", "--unlabeled":
					unlabeledPath = oa.Arg()
				case "-x", "--exclude":
					excludePath = oa.Arg()
				case "-o", "--output":
					output = oa.Arg()
				}
				if err != nil {
					return nil, err
				}
			}
			if len(args) != 1 {
				return nil, cmd.Usage(r, cmd.ExitUsage, "expected exactly one graph database got: [%v]", strings.Join(args, ", "))
			}
			labels := graph.NewLabels()
			graphs, weights, err := load(labels, args[0])
			if err != nil {
				return nil, cmd.Errorf(cmd.ExitInput, "could not load graphs from %v: %v", args[0], err)
			}
			var unlabeled []*graph.Graph
			if unlabeledPath != "" {
				named, _, err := load(labels, unlabeledPath)
				if err != nil {
					return nil, cmd.Errorf(cmd.ExitInput, "could not load unlabeled graphs from %v: %v", unlabeledPath, err)
				}
				unlabeled = graph.Graphs(named)
			}
			var exclude []*subgraph.SubGraph
			if excludePath != "" {
				exclude, err = loadPatterns(labels, excludePath)
				if err != nil {
					return nil, cmd.Errorf(cmd.ExitInput, "could not load excluded patterns from %v: %v", excludePath, err)
				}
			}
			params := mine.Params{
				Exclude:            exclude,
				MinSupport:         mc.MinSupport,
				MinWeightedSupport: mc.MinWeightedSupport,
				K:                  mc.K,
				MaxEdges:           mc.MaxEdges,
			}
			ctx := context.Background()
			if mc.Timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, mc.Timeout)
				defer cancel()
			}
			miner := mine.NewMiner(mine.Workers(c.Workers), mine.Debug(c.Debug), mine.Labels(labels))
			var result *mine.Result
			if unlabeled != nil {
				result, err = miner.MineSemiSupervised(ctx, graphs, weights, unlabeled, params)
			} else {
				result, err = miner.MineSupervised(ctx, graphs, weights, params)
			}
			if err != nil {
				return nil, mineError(err)
			}
			if result.Partial {
				errors.Logf("INFO", "timed out after %v, reporting the best stumps found so far", mc.Timeout)
			}
			for i, s := range result.Stumps {
				fmt.Printf("%d\t%v\n", i+1, s.Pretty(labels))
			}
			if output != "" {
				if err := writeDot(output, labels, result.Stumps); err != nil {
					return nil, cmd.Errorf(cmd.ExitInput, "could not write %v: %v", output, err)
				}
			}
			return nil, nil
		},
	)
}

func mineError(err error) *cmd.Error {
	switch e := err.(type) {
	case *mine.InvalidInputError:
		return cmd.Err(cmd.ExitInput, e)
	case *stump.ConsistencyViolation:
		return cmd.Err(cmd.ExitInconsistent, e)
	default:
		return cmd.Err(cmd.ExitMine, e)
	}
}

func load(labels *graph.Labels, path string) ([]*graph.NamedGraph, []float64, error) {
	input, closer, err := cmd.Input(path)
	if err != nil {
		return nil, nil, err
	}
	defer closer()
	return graph.LoadSimple(labels, input)
}

func loadPatterns(labels *graph.Labels, path string) ([]*subgraph.SubGraph, error) {
	graphs, _, err := load(labels, path)
	if err != nil {
		return nil, err
	}
	patterns := make([]*subgraph.SubGraph, 0, len(graphs))
	for _, g := range graphs {
		if !g.Connected() {
			return nil, errors.Errorf("excluded pattern %q is not connected", g.Name)
		}
		patterns = append(patterns, subgraph.FromGraph(g.Graph))
	}
	return patterns, nil
}

func writeDot(path string, labels *graph.Labels, stumps []*stump.Stump) error {
	w, closer, err := cmd.Output(path)
	if err != nil {
		return err
	}
	defer closer()
	for i, s := range stumps {
		_, err := fmt.Fprintf(w, "// %v\n%v\n", s.Pretty(labels), s.Pattern.Dotty(fmt.Sprintf("stump-%d", i+1), labels))
		if err != nil {
			return err
		}
	}
	return nil
}

func parseInt(oa getopt.OptArg) (int, *cmd.Error) {
	i, err := strconv.Atoi(oa.Arg())
	if err != nil {
		return 0, cmd.Errorf(cmd.ExitUsage, "could not parse arg to `%v` expected an int (got %v). err: %v", oa.Opt(), oa.Arg(), err)
	}
	return i, nil
}

func parseFloat(oa getopt.OptArg) (float64, *cmd.Error) {
	f, err := strconv.ParseFloat(oa.Arg(), 64)
	if err != nil {
		return 0, cmd.Errorf(cmd.ExitUsage, "could not parse arg to `%v` expected a float (got %v). err: %v", oa.Opt(), oa.Arg(), err)
	}
	return f, nil
}
