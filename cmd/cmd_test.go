package cmd

import (
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

import (
	"github.com/stretchr/testify/assert"
	"github.com/timtadh/getopt"
)

func TestConfigLoad(x *testing.T) {
	t := assert.New(x)
	c := DefaultConfig()
	err := c.Load(strings.NewReader(`
workers: 3
skip-log: [DEBUG]
mine:
  k: 4
  min-weighted-support: 0.5
  timeout: 30s
`))
	t.NoError(err)
	t.Equal(3, c.Workers)
	t.Equal([]string{"DEBUG"}, c.SkipLog)
	t.Equal(4, c.Mine.K)
	t.Equal(0.5, c.Mine.MinWeightedSupport)
	t.Equal(30*time.Second, c.Mine.Timeout)
	// untouched keys keep their defaults
	t.Equal(2, c.Mine.MinSupport)
	t.Equal(5, c.Mine.MaxEdges)
}

func TestConfigEmpty(x *testing.T) {
	t := assert.New(x)
	c := DefaultConfig()
	t.NoError(c.Load(strings.NewReader("")))
	t.Equal(DefaultConfig().Mine, c.Mine)
}

func TestConfigRejects(x *testing.T) {
	t := assert.New(x)
	for _, doc := range []string{
		"mine:\n  k: 0\n",
		"mine:\n  min-support: 0\n",
		"mine:\n  min-weighted-support: -1\n",
		"mine:\n  max-edges: 0\n",
		"workers: -2\n",
		"wrokers: 2\n",
	} {
		t.Error(DefaultConfig().Load(strings.NewReader(doc)), doc)
	}
}

func TestLoadConfigFile(x *testing.T) {
	t := assert.New(x)
	path := filepath.Join(x.TempDir(), "gstump.yaml")
	t.NoError(os.WriteFile(path, []byte("debug: true\nmine:\n  max-edges: 3\n"), 0644))
	c, err := LoadConfig(path)
	t.NoError(err)
	t.True(c.Debug)
	t.Equal(3, c.Mine.MaxEdges)
	_, err = LoadConfig(filepath.Join(x.TempDir(), "missing.yaml"))
	t.Error(err)
}

func TestConfigClose(x *testing.T) {
	t := assert.New(x)
	var order []int
	c := DefaultConfig()
	c.Defer(func() { order = append(order, 1) })
	c.Defer(func() { order = append(order, 2) })
	c.Close()
	c.Close()
	t.Equal([]int{2, 1}, order)
}

func TestCommands(x *testing.T) {
	t := assert.New(x)
	var got []string
	var flag string
	sub := Cmd("sub", "[-f <x>] <arg>", "Option Flags\n    -f <x>  a flag", "f:", []string{"flag="},
		func(r Runnable, args []string, optargs []getopt.OptArg) ([]string, *Error) {
			for _, oa := range optargs {
				switch oa.Opt() {
				case "-f", "--flag":
					flag = oa.Arg()
				}
			}
			got = args
			return nil, nil
		})
	main := Concat(
		Cmd("main", "[options]", "", "", nil,
			func(r Runnable, args []string, optargs []getopt.OptArg) ([]string, *Error) {
				return args, nil
			}),
		Commands(map[string]Runnable{"sub": sub}),
	)
	rest, err := main.Run([]string{"sub", "-f", "y", "z"})
	t.Nil(err)
	t.Empty(rest)
	t.Equal("y", flag)
	t.Equal([]string{"z"}, got)

	_, err = main.Run([]string{"nope"})
	if t.NotNil(err) {
		t.Equal(ExitUsage, err.ExitCode)
		t.Contains(err.Error(), "nope")
	}

	_, err = main.Run([]string{"sub", "-h"})
	if t.NotNil(err) {
		t.Equal(0, err.ExitCode)
		t.Contains(err.Error(), "a flag")
	}
}

func TestInputDir(x *testing.T) {
	t := assert.New(x)
	dir := x.TempDir()
	t.NoError(os.WriteFile(filepath.Join(dir, "a.txt"), []byte("one\n"), 0644))
	f, err := os.Create(filepath.Join(dir, "b.txt.gz"))
	t.NoError(err)
	gz := gzip.NewWriter(f)
	_, err = gz.Write([]byte("two\n"))
	t.NoError(err)
	t.NoError(gz.Close())
	t.NoError(f.Close())
	t.NoError(os.Mkdir(filepath.Join(dir, "skipped"), 0755))

	r, closer, err := Input(dir)
	t.NoError(err)
	defer closer()
	bytes, err := io.ReadAll(r)
	t.NoError(err)
	t.Equal("one\ntwo\n", string(bytes))
}
