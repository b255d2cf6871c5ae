//go:build linux

package process_linux

import (
	"gofish/process"
)

// ReadUINT32 reads an unsigned 32-bit integer from the specified address
func (p *LinuxProcess) ReadUINT32(addr process.ProcessMemoryAddress) (uint32, error) {
	return process.Read[uint32](p, addr)
}

// ReadUINT64 reads an unsigned 64-bit integer from the specified address
func (p *LinuxProcess) ReadUINT64(addr process.ProcessMemoryAddress) (uint64, error) {
	return process.Read[uint64](p, addr)
}

// ReadPOINTER reads a pointer value from the specified address
func (p *LinuxProcess) ReadPOINTER(addr process.ProcessMemoryAddress) (process.ProcessMemoryAddress, error) {
	return process.Read[process.ProcessMemoryAddress](p, addr)
}
