/*
Package config provides the application configuration for OPG.

Configuration is read from a YAML file. Nested keys are flattened with dots,
thus

    tracing:
      adapter: go
    tracelevel:
      opg.vt: Debug

yields keys "tracing.adapter" and "tracelevel.opg.vt". Config implements
schuko.Configuration. Setup installs a configuration globally (package gconf)
and configures tracing from it.

Keys

    tracing.adapter        tracing adapter, default "go" (Go standard logger)
    tracelevel.root        trace level of the root tracer, default "Error"
    tracelevel.<key>       trace level for tracer <key>, e.g. "opg.vt"
    panic-on-ambiguity     panic on the first conflict of a precedence table
    opg.order              default ordering of terminals, "grammar" or "lex"
    opg.output             default output file for precedence tables

If no configuration file is given, it is searched for with schuko.LocateConfig,
e.g. at $HOME/.config/opg/config.yaml.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package config

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/npillmayer/schuko"
	"github.com/npillmayer/schuko/gconf"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"gopkg.in/yaml.v3"
)

// Tracers lists the keys of all tracers of OPG.
var Tracers = []string{"opg.grammar", "opg.vt", "opg.op", "opg.scanner", "opg.cli"}

// AppTag is used to locate configuration files.
const AppTag = "opg"

var defaults = map[string]interface{}{
	"tracing.adapter":    "go",
	"tracelevel.root":    "Error",
	"panic-on-ambiguity": false,
	"opg.order":          "grammar",
	"opg.output":         "output.txt",
}

// Config is a configuration of flattened keys. It implements schuko.Configuration.
type Config struct {
	values      map[string]interface{}
	Interactive bool
}

var _ schuko.Configuration = (*Config)(nil)

// New creates a configuration holding the default values.
func New() *Config {
	c := &Config{values: make(map[string]interface{})}
	c.InitDefaults()
	return c
}

// Read creates a configuration from YAML input. Keys missing from the input
// are set to their default values.
func Read(r io.Reader) (*Config, error) {
	var doc map[string]interface{}
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil && err != io.EOF {
		return nil, fmt.Errorf("reading configuration: %w", err)
	}
	c := &Config{values: make(map[string]interface{})}
	flatten("", doc, c.values)
	c.InitDefaults()
	return c, nil
}

// Load reads a configuration from a YAML file. If path is empty, Load
// searches for a configuration file and falls back to the default values
// if none is found.
func Load(path string) (*Config, error) {
	if path == "" {
		if path = Locate(); path == "" {
			return New(), nil
		}
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f)
}

// Locate returns the path of the first configuration file found, or "".
func Locate() string {
	if paths := schuko.LocateConfig(AppTag, "", []string{"yaml", "yml"}); len(paths) > 0 {
		return paths[0]
	}
	return ""
}

func flatten(prefix string, m map[string]interface{}, into map[string]interface{}) {
	for k, v := range m {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if sub, ok := v.(map[string]interface{}); ok {
			flatten(key, sub, into)
			continue
		}
		into[key] = v
	}
}

// InitDefaults sets default values for all keys not yet set. Every tracer of
// OPG gets the trace level of the root tracer, unless configured otherwise.
func (c *Config) InitDefaults() {
	for k, v := range defaults {
		if !c.IsSet(k) {
			c.values[k] = v
		}
	}
	for _, key := range Tracers {
		if !c.IsSet("tracelevel." + key) {
			c.values["tracelevel."+key] = c.GetString("tracelevel.root")
		}
	}
}

// Set sets a configuration value.
func (c *Config) Set(key string, value interface{}) {
	c.values[key] = value
}

// SetTraceLevel sets the level of the root tracer and all tracers of OPG.
func (c *Config) SetTraceLevel(level string) {
	c.values["tracelevel.root"] = level
	for _, key := range Tracers {
		c.values["tracelevel."+key] = level
	}
}

// Keys returns all keys, sorted.
func (c *Config) Keys() []string {
	keys := maps.Keys(c.values)
	slices.Sort(keys)
	return keys
}

// IsSet is a predicate wether a configuration key is set.
func (c *Config) IsSet(key string) bool {
	_, found := c.values[key]
	return found
}

// GetString returns a configuration value as a string.
func (c *Config) GetString(key string) string {
	v, found := c.values[key]
	if !found || v == nil {
		return ""
	}
	return fmt.Sprintf("%v", v)
}

// GetInt returns a configuration value as an integer, or 0.
func (c *Config) GetInt(key string) int {
	switch x := c.values[key].(type) {
	case int:
		return x
	case float64:
		return int(x)
	case string:
		n, _ := strconv.Atoi(x)
		return n
	}
	return 0
}

// GetBool returns a configuration value as a boolean.
func (c *Config) GetBool(key string) bool {
	switch x := c.values[key].(type) {
	case bool:
		return x
	case string:
		return strings.EqualFold(x, "true")
	}
	return false
}

// IsInteractive is part of schuko.Configuration.
func (c *Config) IsInteractive() bool {
	return c.Interactive
}

// Setup installs conf as the global configuration and configures tracing
// from it. Tracing adapter "go" is the Go standard logger.
func Setup(conf *Config) error {
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	gconf.Initialize(conf)
	if err := trace2go.ConfigureRoot(conf, "tracelevel", trace2go.ReplaceTracers(true)); err != nil {
		return err
	}
	tracing.SetTraceSelector(trace2go.Selector())
	for _, key := range Tracers { // re-apply levels to tracers created earlier
		level := tracing.TraceLevelFromString(conf.GetString("tracelevel." + key))
		tracing.Select(key).SetTraceLevel(level)
	}
	return nil
}
