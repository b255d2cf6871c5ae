//go:build linux

package main

import (
	"gofish/process"
	"gofish/process_linux"
)

func openProcess(pid process.ProcessID) (process.Process, error) {
	return process_linux.NewWithPID(pid)
}
