package cmd

import (
	"fmt"
	"sort"
	"strings"
)

import (
	"github.com/timtadh/getopt"
)

// Runnable is one piece of a command line. Runnables consume the arguments
// they understand and hand the rest to whatever runs next.
type Runnable interface {
	Run(argv []string) ([]string, *Error)
	ShortOpts() string
	LongOpts() []string
	Name() string
	ShortUsage() string
	Usage() string
}

type Action func(r Runnable, argv []string, optargs []getopt.OptArg) ([]string, *Error)

type Command struct {
	Action    Action
	shortOpts string
	longOpts  []string
	name      string
	shortMsg  string
	message   string
}

type Sequence struct {
	runners []Runnable
}

type Alternatives struct {
	runners map[string]Runnable
}

func Cmd(name, shortMsg, msg, shortOpts string, longOpts []string, act Action) Runnable {
	return &Command{
		Action:    act,
		shortOpts: shortOpts,
		longOpts:  longOpts,
		name:      strings.TrimSpace(name),
		shortMsg:  strings.TrimSpace(shortMsg),
		message:   strings.TrimSpace(msg),
	}
}

// Concat runs each runner on the arguments left over by the previous one.
func Concat(runners ...Runnable) Runnable {
	return &Sequence{
		runners: runners,
	}
}

// Commands dispatches on the first argument. The "" entry runs when no
// arguments are left.
func Commands(runners map[string]Runnable) Runnable {
	return &Alternatives{
		runners: runners,
	}
}

func (c *Command) Run(argv []string) ([]string, *Error) {
	args, optargs, err := getopt.GetOpt(argv, c.ShortOpts(), c.LongOpts())
	if err != nil {
		return nil, Usage(c, -1, "could not process args: %v", err)
	}
	for _, oa := range optargs {
		switch oa.Opt() {
		case "-h", "--help":
			return nil, Usage(c, 0)
		}
	}
	return c.Action(c, args, optargs)
}

func (c *Command) ShortOpts() string {
	short := c.shortOpts
	if !strings.Contains(short, "h") {
		short += "h"
	}
	return short
}

func (c *Command) LongOpts() []string {
	for _, item := range c.longOpts {
		if item == "help" {
			return c.longOpts
		}
	}
	return append(c.longOpts[:len(c.longOpts):len(c.longOpts)], "help")
}

func (c *Command) Name() string {
	return c.name
}

func (c *Command) ShortUsage() string {
	return fmt.Sprintf("%v %v", c.name, c.shortMsg)
}

func (c *Command) Usage() string {
	return c.message
}

func (s *Sequence) Run(argv []string) ([]string, *Error) {
	for _, r := range s.runners {
		var err *Error
		argv, err = r.Run(argv)
		if err != nil {
			return nil, err
		}
	}
	return argv, nil
}

func (s *Sequence) Name() string {
	return s.runners[0].Name()
}

func (s *Sequence) ShortOpts() string {
	return s.runners[0].ShortOpts()
}

func (s *Sequence) LongOpts() []string {
	return s.runners[0].LongOpts()
}

func (s *Sequence) ShortUsage() string {
	shorts := make([]string, 0, len(s.runners))
	for _, r := range s.runners {
		shorts = append(shorts, r.ShortUsage())
	}
	return strings.Join(shorts, " ")
}

func (s *Sequence) Usage() string {
	longs := make([]string, 0, len(s.runners))
	for _, r := range s.runners {
		if u := r.Usage(); u != "" {
			longs = append(longs, u)
		}
	}
	return strings.Join(longs, "\n\n")
}

func (a *Alternatives) Run(argv []string) ([]string, *Error) {
	if len(argv) == 0 {
		if r, has := a.runners[""]; has {
			return r.Run(argv)
		}
		return nil, Usage(a, -1, "expected one of %v got end of arguments", a.Name())
	}
	r, has := a.runners[argv[0]]
	if !has {
		return nil, Usage(a, -1, "expected one of %v got %v", a.Name(), argv[0])
	}
	return r.Run(argv[1:])
}

func (a *Alternatives) Name() string {
	keys := a.keys()
	if len(keys) == 1 && len(a.runners) == 1 {
		return keys[0]
	}
	optional := ""
	if _, has := a.runners[""]; has {
		optional = "?"
	}
	return fmt.Sprintf("(%v)%v", strings.Join(keys, "|"), optional)
}

func (a *Alternatives) ShortOpts() string {
	return ""
}

func (a *Alternatives) LongOpts() []string {
	return nil
}

func (a *Alternatives) ShortUsage() string {
	return a.Name()
}

func (a *Alternatives) Usage() string {
	keys := a.keys()
	names := make([]string, 0, len(keys))
	longs := make([]string, 0, len(keys))
	for _, name := range keys {
		r := a.runners[name]
		names = append(names, fmt.Sprintf("    %-15v", r.ShortUsage()))
		longs = append(longs, fmt.Sprintf("%v\n%v", r.ShortUsage(), indent(r.Usage(), 4)))
	}
	if len(names) <= 1 {
		return strings.Join(longs, "\n\n")
	}
	return fmt.Sprintf("Commands\n%v\n\n%v",
		strings.Join(names, "\n"), indent(strings.Join(longs, "\n\n"), 2))
}

// keys are the named alternatives in sorted order
func (a *Alternatives) keys() []string {
	keys := make([]string, 0, len(a.runners))
	for k := range a.runners {
		if k != "" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

func indent(s string, spaces int) string {
	pad := strings.Repeat(" ", spaces)
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = pad + line
		}
	}
	return strings.Join(lines, "\n")
}
