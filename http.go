package skipenv

import (
	gymhttp "github.com/openai/gym-http-api/binding-go"
	"github.com/unixpickle/essentials"
)

// HTTPEnv is an Env backed by an instance on a
// gym-http-api server.
type HTTPEnv struct {
	Client *gymhttp.Client
	ID     gymhttp.InstanceID

	render bool
}

// MakeHTTPEnv creates the named environment on the server
// at baseURL.
func MakeHTTPEnv(baseURL, name string) (*HTTPEnv, error) {
	client, err := gymhttp.NewClient(baseURL)
	if err != nil {
		return nil, essentials.AddCtx("make http env", err)
	}
	id, err := client.Create(name)
	if err != nil {
		return nil, essentials.AddCtx("make http env", err)
	}
	return &HTTPEnv{Client: client, ID: id}, nil
}

// Reset resets the environment.
func (h *HTTPEnv) Reset() (obs *Image, err error) {
	defer essentials.AddCtxTo("reset http env", &err)
	rawObs, err := h.Client.Reset(h.ID)
	if err != nil {
		return
	}
	return imageFromJSON(rawObs)
}

// Step takes a step in the environment.
//
// Once Render has been called, every step is rendered.
func (h *HTTPEnv) Step(action interface{}) (obs *Image, reward float64,
	done bool, info interface{}, err error) {
	defer essentials.AddCtxTo("step http env", &err)
	rawObs, reward, done, info, err := h.Client.Step(h.ID, action, h.render)
	if err != nil {
		return
	}
	obs, err = imageFromJSON(rawObs)
	return
}

// Render turns on rendering for subsequent steps.
//
// The HTTP API only renders as part of a step.
func (h *HTTPEnv) Render() error {
	h.render = true
	return nil
}

// Close closes the environment instance.
func (h *HTTPEnv) Close() error {
	return h.Client.Close(h.ID)
}
