package process

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFinderExistsSelf(t *testing.T) {
	f := NewFinder()
	assert.True(t, f.Exists(ProcessID(os.Getpid())))
}

func TestFinderMissingProcess(t *testing.T) {
	f := NewFinder()
	_, ok, err := f.FindProcessID("gofish-no-such-process-name")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestWaitForProcessHonoursContext(t *testing.T) {
	f := &Finder{MaxWaitInterval: 10 * time.Millisecond}
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	_, err := f.WaitForProcess(ctx, "gofish-no-such-process-name")
	assert.Error(t, err)
}
