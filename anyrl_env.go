package skipenv

import (
	"fmt"

	"github.com/unixpickle/anyrl"
	"github.com/unixpickle/anyvec"
	"github.com/unixpickle/essentials"
)

// AnyrlEnv is an Env backed by an anyrl.Env whose
// observations are flattened frames of a known size, such
// as the environments made by anyrl.GymEnv.
//
// Actions must be anyvec.Vectors.
type AnyrlEnv struct {
	Env    anyrl.Env
	Width  int
	Height int
	Depth  int
}

// Reset resets the environment.
func (a *AnyrlEnv) Reset() (obs *Image, err error) {
	defer essentials.AddCtxTo("reset anyrl env", &err)
	vec, err := a.Env.Reset()
	if err != nil {
		return
	}
	return a.image(vec)
}

// Step takes a step in the environment.
//
// The info value is always nil.
func (a *AnyrlEnv) Step(action interface{}) (obs *Image, reward float64,
	done bool, info interface{}, err error) {
	defer essentials.AddCtxTo("step anyrl env", &err)
	vec, ok := action.(anyvec.Vector)
	if !ok {
		err = fmt.Errorf("%w: %T", ErrActionType, action)
		return
	}
	obsVec, reward, done, err := a.Env.Step(vec)
	if err != nil {
		return
	}
	obs, err = a.image(obsVec)
	return
}

// Render does nothing.
// Rendering for anyrl.GymEnv is chosen when it is created.
func (a *AnyrlEnv) Render() error {
	return nil
}

func (a *AnyrlEnv) image(vec anyvec.Vector) (*Image, error) {
	img := &Image{
		Width:  a.Width,
		Height: a.Height,
		Depth:  a.Depth,
		Data:   vecComponents(vec),
	}
	if err := img.check(1); err != nil {
		return nil, err
	}
	return img, nil
}

func vecComponents(vec anyvec.Vector) []float64 {
	switch data := vec.Data().(type) {
	case []float64:
		return data
	case []float32:
		res := make([]float64, len(data))
		for i, x := range data {
			res[i] = float64(x)
		}
		return res
	default:
		panic(fmt.Sprintf("unsupported numeric type: %T", data))
	}
}
