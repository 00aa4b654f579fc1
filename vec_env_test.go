package skipenv

import (
	"reflect"
	"testing"

	"github.com/unixpickle/anyrl"
	"github.com/unixpickle/anyvec"
	"github.com/unixpickle/anyvec/anyvec64"
)

func TestVecEnv(t *testing.T) {
	c := anyvec64.DefaultCreator{}
	raw := &scriptEnv{Rewards: []float64{1, -1}}
	env, err := NewSkipEnv(raw, nil)
	if err != nil {
		t.Fatal(err)
	}
	var vecEnv anyrl.Env = &VecEnv{
		Env:     env,
		Creator: c,
		Actions: []interface{}{"left", "right"},
	}

	obs, err := vecEnv.Reset()
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(obs.Data(), processedFrame(t, 0).Data) {
		t.Error("reset observation should be processed")
	}

	action := c.MakeVectorData(c.MakeNumericList([]float64{0, 1}))
	obs, rew, done, err := vecEnv.Step(action)
	if err != nil {
		t.Fatal(err)
	}
	if rew != 1 || done {
		t.Errorf("reward=%f done=%v", rew, done)
	}
	if !reflect.DeepEqual(obs.Data(), processedFrame(t, 5).Data) {
		t.Error("unexpected step observation")
	}
	for _, a := range raw.Actions {
		if a != "right" {
			t.Errorf("unexpected action %v", a)
		}
	}
}

func TestAnyrlEnv(t *testing.T) {
	c := anyvec64.DefaultCreator{}
	inner := &flatEnv{Creator: c}
	env := &AnyrlEnv{Env: inner, Width: 2, Height: 1, Depth: 3}

	obs, err := env.Reset()
	if err != nil {
		t.Fatal(err)
	}
	expected := &Image{Width: 2, Height: 1, Depth: 3,
		Data: []float64{0, 1, 2, 3, 4, 5}}
	if !reflect.DeepEqual(obs, expected) {
		t.Errorf("expected %v but got %v", expected, obs)
	}

	action := c.MakeVectorData(c.MakeNumericList([]float64{1}))
	obs, rew, done, info, err := env.Step(action)
	if err != nil {
		t.Fatal(err)
	}
	expected.Data = []float64{1, 2, 3, 4, 5, 6}
	if !reflect.DeepEqual(obs, expected) {
		t.Errorf("expected %v but got %v", expected, obs)
	}
	if rew != 0.5 || !done || info != nil {
		t.Errorf("reward=%f done=%v info=%v", rew, done, info)
	}

	if _, _, _, _, err := env.Step("left"); err == nil {
		t.Error("expected action type error")
	}

	bad := &AnyrlEnv{Env: inner, Width: 3, Height: 1, Depth: 3}
	if _, err := bad.Reset(); err == nil {
		t.Error("expected shape error")
	}
}

// flatEnv is an anyrl.Env with 2x1 RGB observations which
// count up from the number of steps taken.
type flatEnv struct {
	Creator anyvec.Creator

	steps float64
}

func (f *flatEnv) Reset() (anyvec.Vector, error) {
	f.steps = 0
	return f.obs(), nil
}

func (f *flatEnv) Step(action anyvec.Vector) (anyvec.Vector, float64, bool,
	error) {
	f.steps++
	return f.obs(), 0.5, true, nil
}

func (f *flatEnv) obs() anyvec.Vector {
	data := make([]float64, 6)
	for i := range data {
		data[i] = f.steps + float64(i)
	}
	return f.Creator.MakeVectorData(f.Creator.MakeNumericList(data))
}
