package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommands(t *testing.T) {
	root := NewRootCmd("test")
	names := map[string]bool{}
	for _, c := range root.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["serve"])
	assert.True(t, names["migrate"])
	assert.True(t, names["factors"])
}

func TestFactorsCommand(t *testing.T) {
	root := NewRootCmd("test")
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"factors"})
	require.NoError(t, root.Execute())

	assert.Contains(t, out.String(), "primary")
	assert.Contains(t, out.String(), "insights")
	assert.Contains(t, out.String(), "0.298")
}
