package app

import (
	"flag"
	"fmt"
	"strings"
	"time"

	"clothsim/internal/core"

	"github.com/joho/godotenv"
)

// EnvPrefix is stripped from keys read from an env file, so CLOTH_SPRING_K
// and spring_k address the same parameter.
const EnvPrefix = "cloth_"

// KVList collects repeatable key=value flags.
type KVList []string

func (l *KVList) String() string {
	return strings.Join(*l, ",")
}

func (l *KVList) Set(value string) error {
	*l = append(*l, value)
	return nil
}

// Config represents the command-line parameters shared by the hosts.
type Config struct {
	Scenario string
	Width    int
	Height   int
	Panel    int
	TPS      int
	MaxDelta time.Duration
	Fixed    bool
	EnvFile  string
	Sets     KVList
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Scenario: "two-corners",
		Width:    960,
		Height:   720,
		Panel:    240,
		TPS:      60,
		MaxDelta: core.DefaultMaxDelta,
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Scenario, "scenario", c.Scenario, "scenario to run ("+strings.Join(core.ScenarioNames(), ", ")+")")
	fs.IntVar(&c.Width, "width", c.Width, "viewport width in pixels")
	fs.IntVar(&c.Height, "height", c.Height, "viewport height in pixels")
	fs.IntVar(&c.Panel, "panel", c.Panel, "parameter panel width in pixels (0 hides it)")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
	fs.DurationVar(&c.MaxDelta, "max-delta", c.MaxDelta, "cap on the dt handed to the simulation per frame")
	fs.BoolVar(&c.Fixed, "fixed", c.Fixed, "advance in fixed 1/tps steps instead of measured frame time")
	fs.StringVar(&c.EnvFile, "env", c.EnvFile, "dotenv file with cloth parameters")
	fs.Var(&c.Sets, "set", "cloth parameter override in key=value form (repeatable)")
}

// Overrides merges the env file (if any) with -set flags into the map
// accepted by scenario factories. -set wins over the file.
func (c *Config) Overrides() (map[string]string, error) {
	out := map[string]string{}
	if c.EnvFile != "" {
		env, err := godotenv.Read(c.EnvFile)
		if err != nil {
			return nil, fmt.Errorf("read env file %s: %w", c.EnvFile, err)
		}
		for k, v := range env {
			out[normalizeKey(k)] = v
		}
	}
	for _, kv := range c.Sets {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || strings.TrimSpace(key) == "" {
			return nil, fmt.Errorf("malformed -set %q, want key=value", kv)
		}
		out[normalizeKey(key)] = strings.TrimSpace(value)
	}
	return out, nil
}

// Factory resolves the configured scenario.
func (c *Config) Factory() (core.Factory, error) {
	f, ok := core.Scenarios()[c.Scenario]
	if !ok {
		return nil, fmt.Errorf("unknown scenario %q (have %s)", c.Scenario, strings.Join(core.ScenarioNames(), ", "))
	}
	return f, nil
}

func normalizeKey(k string) string {
	k = strings.ToLower(strings.TrimSpace(k))
	return strings.TrimPrefix(k, EnvPrefix)
}
