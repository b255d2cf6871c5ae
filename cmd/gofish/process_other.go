//go:build !linux && !windows

package main

import (
	"fmt"
	"runtime"

	"gofish/process"
)

func openProcess(pid process.ProcessID) (process.Process, error) {
	return nil, fmt.Errorf("%w: pid %d: unsupported platform %s", process.ErrProcessOpen, pid, runtime.GOOS)
}
