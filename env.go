package skipenv

import (
	"errors"
	"fmt"

	"github.com/unixpickle/essentials"
)

// EarlyStopPenalty is added to the reward of a Step which
// ends an episode because of too many bad steps.
const EarlyStopPenalty = -100

var (
	// ErrConfig is returned for unusable Config values.
	ErrConfig = errors.New("invalid configuration")

	// ErrNoSteps is returned when a call would take zero
	// primitive steps and therefore has no observation.
	ErrNoSteps = errors.New("no primitive steps requested")

	// ErrActionType is returned when an adapter is given an
	// action it cannot interpret.
	ErrActionType = errors.New("unsupported action type")
)

// Env is a step-based simulation which produces image
// observations.
//
// Extra values a backend returns from a step are dropped
// by the adapter implementing Env.
type Env interface {
	Reset() (obs *Image, err error)
	Step(action interface{}) (obs *Image, reward float64, done bool,
		info interface{}, err error)
	Render() error
}

// Config stores the settings for a SkipEnv.
type Config struct {
	// Render causes the environment to be rendered once
	// when the SkipEnv is created.
	Render bool

	// RepeatCount is the number of primitive steps taken
	// with the same action for every call to Step.
	RepeatCount int

	// InitialBadSteps seeds the counter of consecutive
	// negative rewards.
	InitialBadSteps int

	// BadStepLimit is the number of consecutive negative
	// rewards after which an episode is ended early.
	BadStepLimit int

	// EarlyStop enables the BadStepLimit policy.
	EarlyStop bool
}

// DefaultConfig returns the standard settings.
func DefaultConfig() *Config {
	return &Config{
		RepeatCount:  5,
		BadStepLimit: 17,
		EarlyStop:    true,
	}
}

func (c *Config) validate() error {
	if c.RepeatCount <= 0 {
		return fmt.Errorf("%w: repeat count %d", ErrConfig, c.RepeatCount)
	}
	if c.BadStepLimit <= 0 {
		return fmt.Errorf("%w: bad step limit %d", ErrConfig, c.BadStepLimit)
	}
	if c.InitialBadSteps < 0 {
		return fmt.Errorf("%w: initial bad steps %d", ErrConfig,
			c.InitialBadSteps)
	}
	return nil
}

// SkipEnv wraps an Env to repeat every action several
// times, keep track of episode statistics, and end
// episodes which collect too many negative rewards in a
// row.
//
// Observations returned by Step and SkipEpisodes are run
// through ProcessImage, but Reset returns the raw frame.
//
// A SkipEnv is not safe for concurrent use.
type SkipEnv struct {
	env Env

	repeatCount  int
	badStepLimit int
	earlyStop    bool

	badSteps   int
	episodeLen int
	totalRew   float64
}

// NewSkipEnv creates a SkipEnv and resets env.
//
// If cfg is nil, DefaultConfig is used.
func NewSkipEnv(env Env, cfg *Config) (s *SkipEnv, err error) {
	defer essentials.AddCtxTo("create skip env", &err)
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	s = &SkipEnv{
		env:          env,
		repeatCount:  cfg.RepeatCount,
		badStepLimit: cfg.BadStepLimit,
		earlyStop:    cfg.EarlyStop,
		badSteps:     cfg.InitialBadSteps,
	}
	if _, err := env.Reset(); err != nil {
		return nil, err
	}
	if cfg.Render {
		if err := env.Render(); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// EpisodeLength returns the number of primitive steps
// taken since the last Reset.
func (s *SkipEnv) EpisodeLength() int {
	return s.episodeLen
}

// CumulativeReward returns the sum of the raw rewards
// since the last Reset.
func (s *SkipEnv) CumulativeReward() float64 {
	return s.totalRew
}

// BadSteps returns the current number of consecutive
// primitive steps with negative reward.
func (s *SkipEnv) BadSteps() int {
	return s.badSteps
}

// Reset starts a new episode and returns the unprocessed
// initial observation.
//
// The bad step counter carries over between episodes.
func (s *SkipEnv) Reset() (obs *Image, err error) {
	s.episodeLen = 0
	s.totalRew = 0
	obs, err = s.env.Reset()
	if err != nil {
		return nil, essentials.AddCtx("reset", err)
	}
	return obs, nil
}

// SkipEpisodes takes the same action up to count times,
// stopping early if the episode ends.
//
// Unlike Step, the returned reward is that of the last
// primitive step alone; earlier rewards only show up in
// CumulativeReward.
// Bad steps are not tracked.
func (s *SkipEnv) SkipEpisodes(count int, action interface{}) (obs *Image,
	reward float64, done bool, info interface{}, err error) {
	defer essentials.AddCtxTo("skip episodes", &err)
	if count <= 0 {
		return nil, 0, false, nil, fmt.Errorf("%w: count %d", ErrNoSteps, count)
	}
	var raw *Image
	for i := 0; i < count; i++ {
		raw, reward, done, info, err = s.env.Step(action)
		if err != nil {
			return nil, 0, false, nil, err
		}
		s.totalRew += reward
		s.episodeLen++
		if done {
			break
		}
	}
	obs, err = ProcessImage(raw)
	if err != nil {
		return nil, 0, false, nil, err
	}
	return obs, reward, done, info, nil
}

// Step takes the same action for up to RepeatCount
// primitive steps and returns the summed reward.
//
// If the bad step limit is hit and early stopping is on,
// the episode is ended and EarlyStopPenalty is added to
// the reward.
func (s *SkipEnv) Step(action interface{}) (obs *Image, reward float64,
	done bool, info interface{}, err error) {
	defer essentials.AddCtxTo("step", &err)
	var raw *Image
	for i := 0; i < s.repeatCount; i++ {
		var rew float64
		raw, rew, done, info, err = s.env.Step(action)
		if err != nil {
			return nil, 0, false, nil, err
		}
		s.totalRew += rew
		s.episodeLen++
		reward += rew

		if rew < 0 {
			s.badSteps++
		} else {
			s.badSteps = 0
		}
		if s.badSteps >= s.badStepLimit && s.earlyStop {
			s.badSteps = 0
			done = true
			reward += EarlyStopPenalty
		}

		if done {
			break
		}
	}
	obs, err = ProcessImage(raw)
	if err != nil {
		return nil, 0, false, nil, err
	}
	return obs, reward, done, info, nil
}
