package execute

import (
	"fmt"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Options configures execution and the async lifecycle.
//
// Layered loading via LoadOptions: defaults, then an optional YAML
// file, then ESQUEL_* environment variables. Addresses configures the
// convenience client constructor only; callers supplying their own
// client ignore it.
type Options struct {
	// Addresses lists engine endpoints for NewDefaultClient.
	Addresses []string

	// Async submits queries through the async endpoint.
	Async bool

	// WaitForCompletion is how long the engine holds the initial async
	// request open before returning a running query ID.
	WaitForCompletion time.Duration

	// KeepAlive is how long the engine retains async results.
	KeepAlive time.Duration

	// PollInterval is the fixed delay between async status checks.
	PollInterval time.Duration
}

// DefaultOptions returns the built-in configuration.
func DefaultOptions() Options {
	return Options{
		Addresses:         []string{"http://localhost:9200"},
		WaitForCompletion: time.Second,
		KeepAlive:         5 * time.Minute,
		PollInterval:      100 * time.Millisecond,
	}
}

// defaultsMap mirrors DefaultOptions for the koanf base layer.
func defaultsMap() map[string]any {
	d := DefaultOptions()
	return map[string]any{
		"addresses":           d.Addresses,
		"async":               d.Async,
		"wait_for_completion": d.WaitForCompletion.String(),
		"keep_alive":          d.KeepAlive.String(),
		"poll_interval":       d.PollInterval.String(),
	}
}

// LoadOptions loads Options from an optional YAML file overlaid with
// ESQUEL_* environment variables (ESQUEL_POLL_INTERVAL=250ms, ...).
// Pass "" to skip the file layer.
func LoadOptions(path string) (Options, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaultsMap(), "."), nil); err != nil {
		return Options{}, fmt.Errorf("load defaults: %w", err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Options{}, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("ESQUEL_", ".", envKey), nil); err != nil {
		return Options{}, fmt.Errorf("load environment: %w", err)
	}

	opts := Options{
		Addresses:         k.Strings("addresses"),
		Async:             k.Bool("async"),
		WaitForCompletion: k.Duration("wait_for_completion"),
		KeepAlive:         k.Duration("keep_alive"),
		PollInterval:      k.Duration("poll_interval"),
	}
	if opts.PollInterval <= 0 {
		return Options{}, fmt.Errorf("poll_interval must be positive, got %s", opts.PollInterval)
	}
	return opts, nil
}

// envKey maps ESQUEL_WAIT_FOR_COMPLETION to wait_for_completion.
func envKey(s string) string {
	s = s[len("ESQUEL_"):]
	out := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		out[i] = c
	}
	return string(out)
}
