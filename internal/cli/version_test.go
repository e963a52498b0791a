package cli

import (
	"bytes"
	"encoding/json"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runRoot(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	require.NoError(t, root.Execute())
	return out.String()
}

func TestVersionCmd(t *testing.T) {
	oldVersion, oldCommit := Version, Commit
	t.Cleanup(func() { Version, Commit = oldVersion, oldCommit })
	Version, Commit = "v1.2.3", "0123456789abcdef"

	t.Run("text", func(t *testing.T) {
		out := runRoot(t, "version")
		assert.Contains(t, out, "treb-deployments v1.2.3 (0123456789ab)\n")
		assert.Contains(t, out, runtime.Version())
	})

	t.Run("json", func(t *testing.T) {
		var info buildInfo
		require.NoError(t, json.Unmarshal([]byte(runRoot(t, "version", "--json")), &info))
		assert.Equal(t, "v1.2.3", info.Version)
		assert.Equal(t, "0123456789ab", info.Commit)
		assert.Equal(t, runtime.Version(), info.GoVersion)
	})
}
