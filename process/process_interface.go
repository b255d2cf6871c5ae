package process

// Process is the interface that defines operations for interacting with a target process.
// Implementations serialize every operation on the underlying handle behind one lock.
type Process interface {
	// Open opens a process with the given PID for memory operations
	Open(pid ProcessID) error

	// Close releases the handle. Calling it more than once is a no-op.
	Close() error

	// GetPID returns the process ID
	GetPID() ProcessID

	// ReadMemory reads exactly size bytes from the process at the specified address
	ReadMemory(addr ProcessMemoryAddress, size ProcessMemorySize) ([]byte, error)

	ModuleLocator

	// Typed memory reading operations
	ProcessRead
}

// ModuleLocator finds where a module is loaded in the target address space.
type ModuleLocator interface {
	// FindModuleBase returns the load address of the module whose name equals name exactly
	FindModuleBase(name string) (ProcessMemoryAddress, error)
}

// PointerReader reads pointer-width values.
type PointerReader interface {
	// ReadPOINTER reads a pointer value from the specified address
	ReadPOINTER(addr ProcessMemoryAddress) (ProcessMemoryAddress, error)
}

// ProcessRead defines typed read operations for process memory
type ProcessRead interface {
	// ReadUINT32 reads an unsigned 32-bit integer from the specified address
	ReadUINT32(addr ProcessMemoryAddress) (uint32, error)

	// ReadUINT64 reads an unsigned 64-bit integer from the specified address
	ReadUINT64(addr ProcessMemoryAddress) (uint64, error)

	PointerReader
}

// MemoryReader is the minimal raw read surface needed by Read.
type MemoryReader interface {
	ReadMemory(addr ProcessMemoryAddress, size ProcessMemorySize) ([]byte, error)
}
