// Command skiprun plays random episodes through a SkipEnv
// and logs the episode statistics.
//
// It is mainly useful for checking that a backend, its
// action list, and the early stopping settings behave as
// expected before training on them.
package main

import (
	"encoding/json"
	"flag"
	"io"
	"log"
	"strings"
	"time"

	"github.com/unixpickle/anyrl"
	"github.com/unixpickle/anyvec"
	"github.com/unixpickle/anyvec/anyvec32"
	"github.com/unixpickle/essentials"
	"github.com/unixpickle/rip"
	"github.com/unixpickle/skipenv"
)

func main() {
	var backend string
	var host string
	var envName string
	var width, height int
	var actionList string
	var skipFrames int
	var numEpisodes int
	var render bool
	var noEarlyStop bool
	cfg := skipenv.DefaultConfig()

	flag.StringVar(&backend, "backend", "gym", "backend (gym, http, or muniverse)")
	flag.StringVar(&host, "host", "localhost:5001", "gym server address or URL")
	flag.StringVar(&envName, "env", "CarRacing-v0", "environment name")
	flag.IntVar(&width, "width", 96, "frame width for byte observations")
	flag.IntVar(&height, "height", 96, "frame height for byte observations")
	flag.StringVar(&actionList, "actions", "[0,0,0];[-1,0,0];[1,0,0];[0,1,0];[0,0,0.8]",
		"semicolon-separated actions (JSON values or key names)")
	flag.IntVar(&skipFrames, "skip", 50, "frames to skip at the start of each episode")
	flag.IntVar(&numEpisodes, "episodes", 10, "number of episodes to run")
	flag.BoolVar(&render, "render", false, "render the environment")
	flag.IntVar(&cfg.RepeatCount, "repeat", cfg.RepeatCount, "primitive steps per step")
	flag.IntVar(&cfg.InitialBadSteps, "badsteps", cfg.InitialBadSteps,
		"initial bad step count")
	flag.IntVar(&cfg.BadStepLimit, "limit", cfg.BadStepLimit, "bad steps before early stop")
	flag.BoolVar(&noEarlyStop, "noearlystop", false, "disable early stopping")
	flag.Parse()

	cfg.Render = render
	cfg.EarlyStop = !noEarlyStop

	actions := parseActions(actionList)
	if len(actions) == 0 {
		essentials.Die("no actions given")
	}

	log.Println("Creating environment...")
	rawEnv, closer := makeBackend(backend, host, envName, width, height)
	defer closer.Close()

	env, err := skipenv.NewSkipEnv(rawEnv, cfg)
	if err != nil {
		essentials.Die(err)
	}

	creator := anyvec32.CurrentCreator()
	vecEnv := &skipenv.VecEnv{
		Env:     env,
		Creator: creator,
		Actions: actions,
	}
	logits := creator.MakeVector(len(actions))

	r := rip.NewRIP()
	for i := 0; i < numEpisodes && !r.Done(); i++ {
		_, err := vecEnv.Reset()
		must(err)

		var done bool
		var stepReward float64
		if skipFrames > 0 {
			_, _, done, _, err = env.SkipEpisodes(skipFrames, actions[0])
			must(err)
		}
		for !done && !r.Done() {
			var rew float64
			_, rew, done, err = vecEnv.Step(sampleAction(logits))
			must(err)
			stepReward += rew
		}

		log.Printf("episode %d: length=%d reward=%f step_reward=%f bad_steps=%d",
			i, env.EpisodeLength(), env.CumulativeReward(), stepReward,
			env.BadSteps())
	}
}

func makeBackend(backend, host, name string, width, height int) (skipenv.Env,
	io.Closer) {
	switch backend {
	case "gym":
		env, err := skipenv.MakeGymEnv(host, name, width, height)
		must(err)
		return env, env
	case "http":
		env, err := skipenv.MakeHTTPEnv(host, name)
		must(err)
		return env, env
	case "muniverse":
		env, err := skipenv.MakeMuniverseEnv(name, time.Second/10)
		must(err)
		return env, env
	default:
		essentials.Die("unknown backend:", backend)
		panic("unreachable")
	}
}

// parseActions decodes each action as JSON, falling back
// to the raw string so that key names need no quotes.
func parseActions(list string) []interface{} {
	var res []interface{}
	for _, field := range strings.Split(list, ";") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		var action interface{}
		if err := json.Unmarshal([]byte(field), &action); err != nil {
			action = field
		}
		res = append(res, action)
	}
	return res
}

func sampleAction(logits anyvec.Vector) anyvec.Vector {
	return anyrl.Softmax{}.Sample(logits, 1)
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
