// Package input simulates the player's mouse in the game window.
package input

import (
	"fmt"
	"time"

	"gofish/fishing"

	"github.com/go-vgo/robotgo"
	"go.uber.org/multierr"
)

// Mouse presses and releases one button per action.
type Mouse struct {
	Button string
	Hold   time.Duration
}

// NewMouse returns the injector the game expects: a right click held for 50ms.
func NewMouse() *Mouse {
	return &Mouse{Button: "right", Hold: 50 * time.Millisecond}
}

// Trigger always attempts the release, even when the press failed.
func (m *Mouse) Trigger(kind fishing.ActionKind) error {
	if kind != fishing.PrimaryAction {
		return fmt.Errorf("unsupported action %s", kind)
	}

	var err error
	if pressErr := robotgo.Toggle(m.Button); pressErr != nil {
		err = multierr.Append(err, fmt.Errorf("press %s: %w", m.Button, pressErr))
	}
	time.Sleep(m.Hold)
	if releaseErr := robotgo.Toggle(m.Button, "up"); releaseErr != nil {
		err = multierr.Append(err, fmt.Errorf("release %s: %w", m.Button, releaseErr))
	}
	return err
}
