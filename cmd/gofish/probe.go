package main

import (
	"encoding/hex"
	"fmt"

	"gofish/process"

	"github.com/urfave/cli/v2"
)

// tracingReader prints every hop of a chain walk.
type tracingReader struct {
	inner process.PointerReader
	step  int
}

func (t *tracingReader) ReadPOINTER(addr process.ProcessMemoryAddress) (process.ProcessMemoryAddress, error) {
	ptr, err := t.inner.ReadPOINTER(addr)
	if err != nil {
		fmt.Printf("[chain] step %d: *(%#x) failed: %v\n", t.step, uint64(addr), err)
	} else {
		fmt.Printf("[chain] step %d: *(%#x) => %#x\n", t.step, uint64(addr), uint64(ptr))
	}
	t.step++
	return ptr, err
}

func probeAction(c *cli.Context) error {
	chain, name, err := target(c)
	if err != nil {
		return err
	}

	pid, ok, err := process.NewFinder().FindProcessID(name)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s", process.ErrProcessNotFound, name)
	}

	proc, err := openProcess(pid)
	if err != nil {
		return err
	}
	defer proc.Close()

	moduleBase, err := proc.FindModuleBase(chain.Module)
	if err != nil {
		return err
	}
	fmt.Printf("[chain] %s base=%#x\n", chain.Module, uint64(moduleBase))

	addr, err := process.ResolvePointerChain(&tracingReader{inner: proc}, moduleBase+chain.Base, chain.Offsets...)
	if err != nil {
		return err
	}

	value, err := proc.ReadUINT32(addr)
	if err != nil {
		return err
	}
	fmt.Printf("[chain] final: %s => %d\n", addr.ToString(), value)

	const around = 16
	data, err := proc.ReadMemory(addr-around, 2*around)
	if err == nil {
		fmt.Print(hex.Dump(data))
	}
	return nil
}
