package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCmd_Output(t *testing.T) {
	cmd := newVersionCmd()

	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{})

	err := cmd.Execute()
	require.NoError(t, err)

	output := out.String()
	assert.Contains(t, output, "seq2many")
	assert.Contains(t, output, "module")
	assert.Contains(t, output, "go")
}

func TestBuildVersion_NeverEmpty(t *testing.T) {
	version, module, goVersion := buildVersion()

	assert.NotEmpty(t, version)
	assert.NotEmpty(t, module)
	assert.NotEmpty(t, goVersion)
}
