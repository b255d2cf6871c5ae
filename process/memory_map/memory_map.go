package memory_map

import (
	"fmt"
	"path/filepath"
)

// MemoryMapItem represents a memory region in a process's address space
type MemoryMapItem struct {
	Address uint64 // The starting address of the memory region
	Size    uint   // The size of the memory region in bytes
	Perms   string // Permissions (e.g., "r-xp" for read, execute, private)
	Path    string // Backing file, empty for anonymous mappings
}

// String returns a string representation of the memory map item
func (mmItem MemoryMapItem) String() string {
	return fmt.Sprintf("Address: %x, Size: %d, Perms: %s, Path: %s", mmItem.Address, mmItem.Size, mmItem.Perms, mmItem.Path)
}

func (mmItem MemoryMapItem) IsReadable() bool {
	return len(mmItem.Perms) > 0 && mmItem.Perms[0] == 'r'
}

// ModuleName is the base name of the backing file
func (mmItem MemoryMapItem) ModuleName() string {
	if mmItem.Path == "" || mmItem.Path[0] == '[' {
		return ""
	}
	return filepath.Base(mmItem.Path)
}

// FindModuleBase returns the lowest mapped address whose backing file base name equals name.
// The match is case-sensitive.
func FindModuleBase(name string, memoryMap []MemoryMapItem) (uint64, bool) {
	found := false
	var base uint64
	for _, item := range memoryMap {
		if item.ModuleName() != name {
			continue
		}
		if !found || item.Address < base {
			base = item.Address
			found = true
		}
	}
	return base, found
}
