package skipenv

import (
	"fmt"

	"github.com/unixpickle/essentials"
	gym "github.com/unixpickle/gym-socket-api/binding-go"
)

// GymEnv is an Env backed by a gym-socket-api environment.
//
// Byte observations are reshaped using Width and Height.
// Other observations are decoded as nested arrays, in
// which case Width and Height may be left 0.
type GymEnv struct {
	Env    gym.Env
	Width  int
	Height int
}

// MakeGymEnv connects to a gym-socket-api server and
// creates the named environment.
func MakeGymEnv(host, name string, width, height int) (*GymEnv, error) {
	env, err := gym.Make(host, name)
	if err != nil {
		return nil, essentials.AddCtx("make gym env", err)
	}
	return &GymEnv{Env: env, Width: width, Height: height}, nil
}

// Reset resets the environment.
func (g *GymEnv) Reset() (obs *Image, err error) {
	defer essentials.AddCtxTo("reset gym env", &err)
	rawObs, err := g.Env.Reset()
	if err != nil {
		return
	}
	return g.image(rawObs)
}

// Step takes a step in the environment.
func (g *GymEnv) Step(action interface{}) (obs *Image, reward float64,
	done bool, info interface{}, err error) {
	defer essentials.AddCtxTo("step gym env", &err)
	rawObs, reward, done, info, err := g.Env.Step(action)
	if err != nil {
		return
	}
	obs, err = g.image(rawObs)
	return
}

// Render renders the environment on the server.
func (g *GymEnv) Render() error {
	return g.Env.Render()
}

// Close closes the connection to the environment.
func (g *GymEnv) Close() error {
	return g.Env.Close()
}

func (g *GymEnv) image(obs gym.Obs) (*Image, error) {
	if u, ok := obs.(gym.Uint8Obs); ok {
		buf := u.Uint8Obs()
		if g.Width <= 0 || g.Height <= 0 {
			return nil, fmt.Errorf("%w: byte observation needs a frame size",
				ErrShape)
		}
		return NewImageUint8(g.Width, g.Height, len(buf)/(g.Width*g.Height),
			buf)
	}
	var obj interface{}
	if err := obs.Unmarshal(&obj); err != nil {
		return nil, err
	}
	return imageFromJSON(obj)
}
