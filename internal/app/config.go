// Package app holds the command-line configuration shared by the terragen
// binaries.
package app

import (
	"flag"
	"fmt"
	"strings"

	"terragen/internal/render"
	"terragen/internal/terrain"
)

// KVList collects repeatable key=value flags.
type KVList []string

func (l *KVList) String() string {
	return strings.Join(*l, ",")
}

func (l *KVList) Set(value string) error {
	if !strings.Contains(value, "=") {
		return fmt.Errorf("override %q is not in key=value form", value)
	}
	*l = append(*l, value)
	return nil
}

// Map returns the overrides keyed by name. Later entries win.
func (l KVList) Map() map[string]string {
	out := make(map[string]string, len(l))
	for _, kv := range l {
		parts := strings.SplitN(kv, "=", 2)
		if len(parts) != 2 {
			continue
		}
		out[strings.TrimSpace(parts[0])] = strings.TrimSpace(parts[1])
	}
	return out
}

// Config represents the command-line parameters for the application.
type Config struct {
	Seed      int64
	Dimension int
	Out       string
	Layers    string
	Addr      string
	Params    bool
	Overrides KVList
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	d := terrain.DefaultConfig()
	return &Config{
		Seed:      d.Seed,
		Dimension: d.Dimension,
		Out:       "out",
		Layers:    strings.Join(render.Layers(), ","),
		Addr:      ":8080",
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for the generation run")
	fs.IntVar(&c.Dimension, "dim", c.Dimension, "plate grid edge, a multiple of 32")
	fs.StringVar(&c.Out, "out", c.Out, "directory for rendered layers")
	fs.StringVar(&c.Layers, "layers", c.Layers, "comma separated layers to render")
	fs.StringVar(&c.Addr, "addr", c.Addr, "listen address")
	fs.BoolVar(&c.Params, "params", c.Params, "print the effective parameters and exit")
	fs.Var(&c.Overrides, "set", "parameter override in key=value form (repeatable)")
}

// Terrain builds the generator configuration. Explicit flags come first and
// -set overrides are applied on top.
func (c *Config) Terrain() terrain.Config {
	kv := map[string]string{
		"seed":      fmt.Sprint(c.Seed),
		"dimension": fmt.Sprint(c.Dimension),
	}
	for k, v := range c.Overrides.Map() {
		kv[k] = v
	}
	return terrain.FromMap(kv)
}

// LayerNames splits the -layers flag, dropping blanks.
func (c *Config) LayerNames() []string {
	var out []string
	for _, name := range strings.Split(c.Layers, ",") {
		if name = strings.TrimSpace(name); name != "" {
			out = append(out, name)
		}
	}
	return out
}
