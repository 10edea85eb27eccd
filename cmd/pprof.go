package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"runtime/pprof"
	"syscall"
)

// CPUProfile starts profiling into output. The returned cleanup stops the
// profile; an interrupt stops it too before the process dies.
func CPUProfile(output string) (func(), *Error) {
	f, err := os.Create(output)
	if err != nil {
		return nil, Err(ExitInput, err)
	}
	err = pprof.StartCPUProfile(f)
	if err != nil {
		f.Close()
		return nil, Err(ExitInput, err)
	}
	sigs := make(chan os.Signal, 1)
	done := make(chan struct{})
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case sig := <-sigs:
			pprof.StopCPUProfile()
			f.Close()
			panic(fmt.Errorf("caught signal: %v", sig))
		case <-done:
		}
	}()
	cleanup := func() {
		signal.Stop(sigs)
		close(done)
		pprof.StopCPUProfile()
		f.Close()
	}
	return cleanup, nil
}
