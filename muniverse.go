package skipenv

import (
	"fmt"
	"time"

	"github.com/unixpickle/essentials"
	"github.com/unixpickle/muniverse"
	"github.com/unixpickle/muniverse/chrome"
)

// MuniverseEnv is an Env backed by a muniverse game.
//
// Actions are either key names (with "" meaning no key)
// or slices of raw chrome events.
// Keys are pressed and released within the same step.
type MuniverseEnv struct {
	Env         muniverse.Env
	TimePerStep time.Duration
}

// MakeMuniverseEnv launches the named muniverse game.
func MakeMuniverseEnv(name string, timePerStep time.Duration) (*MuniverseEnv,
	error) {
	spec := muniverse.SpecForName(name)
	if spec == nil {
		return nil, fmt.Errorf("make muniverse env: environment not found: %s",
			name)
	}
	env, err := muniverse.NewEnv(spec)
	if err != nil {
		return nil, essentials.AddCtx("make muniverse env", err)
	}
	return &MuniverseEnv{Env: env, TimePerStep: timePerStep}, nil
}

// Reset resets the environment.
func (m *MuniverseEnv) Reset() (obs *Image, err error) {
	defer essentials.AddCtxTo("reset muniverse env", &err)
	if err = m.Env.Reset(); err != nil {
		return
	}
	return m.observe()
}

// Step takes a step in the environment.
//
// The info value is always nil.
func (m *MuniverseEnv) Step(action interface{}) (obs *Image, reward float64,
	done bool, info interface{}, err error) {
	defer essentials.AddCtxTo("step muniverse env", &err)
	events, err := KeyPressEvents(action)
	if err != nil {
		return
	}
	reward, done, err = m.Env.Step(m.TimePerStep, events...)
	if err != nil {
		return
	}
	obs, err = m.observe()
	return
}

// Render does nothing, since muniverse games run in a
// headless browser.
func (m *MuniverseEnv) Render() error {
	return nil
}

// Close stops the game.
func (m *MuniverseEnv) Close() error {
	return m.Env.Close()
}

func (m *MuniverseEnv) observe() (*Image, error) {
	rawObs, err := m.Env.Observe()
	if err != nil {
		return nil, err
	}
	buffer, width, height, err := muniverse.RGB(rawObs)
	if err != nil {
		return nil, err
	}
	return NewImageUint8(width, height, 3, buffer)
}

// KeyPressEvents converts a key name into a key down and
// key up event.
//
// Event slices are returned unchanged, and nil or "" turn
// into no events.
func KeyPressEvents(action interface{}) ([]interface{}, error) {
	switch action := action.(type) {
	case nil:
		return nil, nil
	case []interface{}:
		return action, nil
	case string:
		if action == "" {
			return nil, nil
		}
		evt, ok := chrome.KeyEvents[action]
		if !ok {
			return nil, fmt.Errorf("%w: unknown key %q", ErrActionType, action)
		}
		evt1 := evt
		evt.Type = chrome.KeyDown
		evt1.Type = chrome.KeyUp
		return []interface{}{&evt, &evt1}, nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrActionType, action)
	}
}
