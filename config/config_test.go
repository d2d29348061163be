package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/gconf"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const yamlConf = `
tracing:
  adapter: go
tracelevel:
  root: Info
  opg.vt: Debug
panic-on-ambiguity: true
opg:
  order: lex
  width: 80
`

func TestReadFlattensKeys(t *testing.T) {
	c, err := Read(strings.NewReader(yamlConf))
	require.NoError(t, err)
	assert.Equal(t, "go", c.GetString("tracing.adapter"))
	assert.Equal(t, "Debug", c.GetString("tracelevel.opg.vt"))
	assert.Equal(t, "lex", c.GetString("opg.order"))
	assert.Equal(t, 80, c.GetInt("opg.width"))
	assert.True(t, c.GetBool("panic-on-ambiguity"))
	assert.Equal(t, "output.txt", c.GetString("opg.output"), "default expected")
	assert.Equal(t, "Info", c.GetString("tracelevel.opg.op"), "root level expected")
	assert.False(t, c.IsSet("no.such.key"))
	assert.Contains(t, c.Keys(), "opg.order")
}

func TestDefaults(t *testing.T) {
	c := New()
	assert.Equal(t, "Error", c.GetString("tracelevel.root"))
	assert.Equal(t, "grammar", c.GetString("opg.order"))
	assert.False(t, c.GetBool("panic-on-ambiguity"))
	for _, key := range Tracers {
		assert.Equal(t, "Error", c.GetString("tracelevel."+key))
	}
	c.SetTraceLevel("Debug")
	assert.Equal(t, "Debug", c.GetString("tracelevel.opg.cli"))
	empty, err := Read(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, "go", empty.GetString("tracing.adapter"))
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "opg.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yamlConf), 0644))
	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "lex", c.GetString("opg.order"))
	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
	_, err = Read(strings.NewReader("tracing: [unclosed"))
	assert.Error(t, err)
}

func TestSetup(t *testing.T) {
	defer trace2go.Teardown()
	defer gconf.Initialize(testconfig.Conf{})
	//
	c := New()
	c.Set("tracelevel.opg.vt", "Debug")
	c.Set("panic-on-ambiguity", "true")
	require.NoError(t, Setup(c))
	assert.True(t, gconf.GetBool("panic-on-ambiguity"))
	assert.Equal(t, tracing.LevelDebug, tracing.Select("opg.vt").GetTraceLevel())
	assert.Equal(t, tracing.LevelError, tracing.Select("opg.op").GetTraceLevel())
}
