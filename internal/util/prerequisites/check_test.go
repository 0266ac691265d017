package prerequisites

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookPathTable(present map[string]bool) LookPathFunc {
	return func(name string) (string, error) {
		if present[name] {
			return "/usr/bin/" + name, nil
		}
		return "", errors.New("not found")
	}
}

func TestCheck_AllPresent(t *testing.T) {
	present := map[string]bool{}
	for _, tool := range HostTools() {
		present[tool.Name] = true
	}

	results := Check(lookPathTable(present), HostTools())
	require.NoError(t, results.Error())
	assert.Empty(t, results.Missing)
	assert.Len(t, results.Results, len(HostTools()))
	for _, r := range results.Results {
		assert.True(t, r.Found, r.Tool.Name)
		assert.Equal(t, "/usr/bin/"+r.Tool.Name, r.Path)
	}
}

func TestCheck_MissingOptionalToolIsNotAnError(t *testing.T) {
	present := map[string]bool{"apt-get": true, "systemctl": true}

	results := Check(lookPathTable(present), HostTools())
	assert.NoError(t, results.Error())
	assert.NotEmpty(t, results.Missing)
}

func TestCheck_MissingRequiredTool(t *testing.T) {
	present := map[string]bool{"systemctl": true, "docker": true}

	results := Check(lookPathTable(present), HostTools())
	err := results.Error()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "apt-get")
}

func TestHostTools_RequiredSet(t *testing.T) {
	var required []string
	for _, tool := range HostTools() {
		if tool.Required {
			required = append(required, tool.Name)
		}
	}
	assert.ElementsMatch(t, []string{"apt-get", "systemctl"}, required)
}
