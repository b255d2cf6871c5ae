//go:build linux

package process_linux

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"syscall"
	"testing"
	"unsafe"

	"gofish/process"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openSelf(t *testing.T) process.Process {
	t.Helper()
	p, err := NewWithPID(process.ProcessID(os.Getpid()))
	require.NoError(t, err)
	t.Cleanup(func() { p.Close() })
	return p
}

func addrOf[T any](v *T) process.ProcessMemoryAddress {
	return process.ProcessMemoryAddress(uintptr(unsafe.Pointer(v)))
}

func TestOpenMissingProcess(t *testing.T) {
	_, err := NewWithPID(process.ProcessID(1 << 30))
	assert.ErrorIs(t, err, process.ErrProcessOpen)
}

func TestReadUINT32Self(t *testing.T) {
	p := openSelf(t)

	value := new(uint32)
	*value = 0xCAFEBABE

	got, err := p.ReadUINT32(addrOf(value))
	require.NoError(t, err)
	assert.Equal(t, uint32(0xCAFEBABE), got)
	runtime.KeepAlive(value)
}

func TestReadUnmappedAddress(t *testing.T) {
	p := openSelf(t)

	_, err := p.ReadUINT32(0x10)
	var readErr *process.ReadError
	require.True(t, errors.As(err, &readErr))
	assert.Equal(t, syscall.EFAULT, readErr.Code)
	assert.Equal(t, process.ProcessMemoryAddress(0x10), readErr.Address)
}

type leaf struct {
	_     [0xC]byte
	value uint32
}

type middle struct {
	_    [0x18]byte
	next *leaf
}

type root struct {
	next *middle
}

func TestResolvePointerChainSelf(t *testing.T) {
	p := openSelf(t)

	l := &leaf{value: 42}
	m := &middle{next: l}
	r := &root{next: m}
	holder := &r

	addr, err := process.ResolvePointerChain(p, addrOf(holder), 0, 0x18, 0xC)
	require.NoError(t, err)
	assert.Equal(t, addrOf(&l.value), addr)

	got, err := p.ReadUINT32(addr)
	require.NoError(t, err)
	assert.Equal(t, uint32(42), got)
	runtime.KeepAlive(holder)
}

func TestFindModuleBaseSelf(t *testing.T) {
	p := openSelf(t)

	exe, err := os.Executable()
	require.NoError(t, err)

	base, err := p.FindModuleBase(filepath.Base(exe))
	require.NoError(t, err)
	assert.NotZero(t, base)

	_, err = p.FindModuleBase("gofish-no-such-module.so")
	assert.ErrorIs(t, err, process.ErrModuleNotFound)
}

func TestCloseIsIdempotent(t *testing.T) {
	p, err := NewWithPID(process.ProcessID(os.Getpid()))
	require.NoError(t, err)

	require.NoError(t, p.Close())
	require.NoError(t, p.Close())

	_, err = p.ReadUINT32(0x1000)
	assert.ErrorIs(t, err, process.ErrProcessNotOpen)
	_, err = p.FindModuleBase("anything")
	assert.ErrorIs(t, err, process.ErrProcessNotOpen)
}

func TestConcurrentReadsAreSerialized(t *testing.T) {
	p := openSelf(t)

	value := new(uint32)
	*value = 7

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				got, err := p.ReadUINT32(addrOf(value))
				assert.NoError(t, err)
				assert.Equal(t, uint32(7), got)
			}
		}()
	}
	wg.Wait()
	runtime.KeepAlive(value)
}
