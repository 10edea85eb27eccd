package cmd

import (
	"fmt"
	"os"
)

// Exit codes shared by the gstump commands.
const (
	ExitUsage        = -1
	ExitInput        = 1
	ExitMine         = 2
	ExitInconsistent = 3
)

// Error carries the exit code a failed command should terminate with.
type Error struct {
	Err      error
	ExitCode int
}

func Err(code int, err error) *Error {
	return &Error{Err: err, ExitCode: code}
}

func Errorf(code int, format string, args ...interface{}) *Error {
	return &Error{Err: fmt.Errorf(format, args...), ExitCode: code}
}

func Usage(cmd Runnable, code int, format_and_args ...interface{}) *Error {
	var err error
	if len(format_and_args) > 0 {
		format := format_and_args[0].(string)
		args := format_and_args[1:]
		err = fmt.Errorf("error: %v\n\n%v\n", fmt.Sprintf(format, args...), cmd.ShortUsage())
	} else {
		err = fmt.Errorf("%v\n\n%v\n", cmd.ShortUsage(), cmd.Usage())
	}
	return &Error{Err: err, ExitCode: code}
}

func (c *Error) Error() string {
	return c.Err.Error()
}

func (c *Error) Unwrap() error {
	return c.Err
}

func (c *Error) String() string {
	return c.Err.Error()
}

// Main runs r, releases whatever the config is holding and exits. It
// diverges.
func Main(argv []string, c *Config, r Runnable) {
	args, err := r.Run(argv)
	c.Close()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(err.ExitCode)
	}
	if len(args) != 0 {
		fmt.Fprintf(os.Stderr, "expected 0 args left got %v\n", args)
		os.Exit(ExitUsage)
	}
	os.Exit(0)
}
