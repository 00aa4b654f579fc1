package skipenv

import (
	"github.com/unixpickle/anyvec"
	"github.com/unixpickle/essentials"
)

// VecEnv exposes a SkipEnv as an anyrl.Env.
//
// Action vectors are treated as one-hot (or logit)
// vectors, and the arg-max selects an entry of Actions.
// Observations are always preprocessed, including the one
// returned by Reset.
type VecEnv struct {
	Env     *SkipEnv
	Creator anyvec.Creator
	Actions []interface{}
}

// Reset resets the environment.
func (v *VecEnv) Reset() (obs anyvec.Vector, err error) {
	defer essentials.AddCtxTo("reset vec env", &err)
	raw, err := v.Env.Reset()
	if err != nil {
		return
	}
	img, err := ProcessImage(raw)
	if err != nil {
		return
	}
	return v.vector(img), nil
}

// Step takes a step in the environment.
func (v *VecEnv) Step(action anyvec.Vector) (obs anyvec.Vector, reward float64,
	done bool, err error) {
	img, reward, done, _, err := v.Env.Step(v.Actions[anyvec.MaxIndex(action)])
	if err != nil {
		return
	}
	obs = v.vector(img)
	return
}

func (v *VecEnv) vector(img *Image) anyvec.Vector {
	return v.Creator.MakeVectorData(v.Creator.MakeNumericList(img.Data))
}
