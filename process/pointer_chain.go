package process

import (
	"fmt"
	"strings"
)

// PointerChain is a static base (relative to a module's load address) plus the offsets
// walked from it. Every offset except the last is the offset of a field holding a pointer
// to the next struct; the last is the offset of the scalar itself.
//
// Chains are tied to one build of the target and break when its layout changes.
type PointerChain struct {
	Module  string
	Base    ProcessMemoryAddress
	Offsets []ProcessMemorySize
}

// NewPointerChain copies offsets so the chain cannot be mutated through the caller's slice.
func NewPointerChain(module string, base ProcessMemoryAddress, offsets ...ProcessMemorySize) PointerChain {
	return PointerChain{
		Module:  module,
		Base:    base,
		Offsets: append([]ProcessMemorySize(nil), offsets...),
	}
}

func (c PointerChain) String() string {
	parts := make([]string, len(c.Offsets))
	for i, off := range c.Offsets {
		parts[i] = fmt.Sprintf("%#x", uint64(off))
	}
	return fmt.Sprintf("%s+%#x -> [%s]", c.Module, uint64(c.Base), strings.Join(parts, ", "))
}

// Resolve locates the chain's module and walks the chain from module base + Base.
func (c PointerChain) Resolve(mem interface {
	ModuleLocator
	PointerReader
}) (ProcessMemoryAddress, error) {
	moduleBase, err := mem.FindModuleBase(c.Module)
	if err != nil {
		return 0, fmt.Errorf("locate module %q: %w", c.Module, err)
	}
	return ResolvePointerChain(mem, moduleBase+c.Base, c.Offsets...)
}

// ResolvePointerChain starts at base and for every offset reads a pointer at the current
// address and adds the offset to it. The final address is returned without a trailing
// dereference. N offsets cost exactly N reads; any failed read fails the whole chain.
//
// Example:
//
//	// base -> ptrA; ptrA+0x230 -> ptrB; ... ; final = ptrN + 0xC
//	addr, err := process.ResolvePointerChain(proc, moduleBase+0x05A5D218, 0, 0x230, 0xC)
func ResolvePointerChain(mem PointerReader, base ProcessMemoryAddress, offsets ...ProcessMemorySize) (ProcessMemoryAddress, error) {
	current := base
	for i, off := range offsets {
		ptr, err := mem.ReadPOINTER(current)
		if err != nil {
			return 0, fmt.Errorf("pointer chain step %d (addr=%#x): %w", i, uint64(current), err)
		}
		current = ptr + ProcessMemoryAddress(off)
	}
	return current, nil
}
