package dotenv

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newResolver(t *testing.T, path, input string) (*Resolver, *bytes.Buffer) {
	logger, err := zap.NewDevelopment()
	require.NoError(t, err)
	out := &bytes.Buffer{}
	return NewResolver(path, strings.NewReader(input), out, logger.Sugar()), out
}

func TestResolver_NodeAddress_configuredWins(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("MEMPOOL_NODE_ADDRESS=from-file:3006\n"), 0o644))
	resolver, out := newResolver(t, path, "from-prompt:3006\n")

	address, err := resolver.NodeAddress(" configured:3006 ")
	require.NoError(t, err)
	assert.Equal(t, "configured:3006", address)
	assert.Empty(t, out.String())
}

func TestResolver_NodeAddress_fromEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("MEMPOOL_NODE_ADDRESS=umbrel.local:3006\n"), 0o644))
	resolver, out := newResolver(t, path, "from-prompt:3006\n")

	address, err := resolver.NodeAddress("")
	require.NoError(t, err)
	assert.Equal(t, "umbrel.local:3006", address)
	assert.Empty(t, out.String())
}

func TestResolver_NodeAddress_promptsAndSaves(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	resolver, out := newResolver(t, path, "  192.168.1.20:3006  \n")

	address, err := resolver.NodeAddress("")
	require.NoError(t, err)
	assert.Equal(t, "192.168.1.20:3006", address)
	assert.Equal(t, prompt, out.String())

	saved, err := godotenv.Read(path)
	require.NoError(t, err)
	assert.Equal(t, "192.168.1.20:3006", saved[NodeAddressKey])
}

func TestResolver_NodeAddress_keepsOtherEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("OTHER=value\n"), 0o644))
	resolver, _ := newResolver(t, path, "node:3006\n")

	_, err := resolver.NodeAddress("")
	require.NoError(t, err)

	saved, err := godotenv.Read(path)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"OTHER": "value", NodeAddressKey: "node:3006"}, saved)
}

func TestResolver_NodeAddress_noAnswer(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")

	for _, input := range []string{"", "\n", "   \n"} {
		resolver, _ := newResolver(t, path, input)
		_, err := resolver.NodeAddress("")
		assert.ErrorIs(t, err, ErrNoNodeAddress)
	}

	_, err := os.Stat(path)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestResolver_NodeAddress_withoutInput(t *testing.T) {
	logger, err := zap.NewDevelopment()
	require.NoError(t, err)
	resolver := NewResolver(filepath.Join(t.TempDir(), ".env"), nil, nil, logger.Sugar())

	_, err = resolver.NodeAddress("")
	assert.ErrorIs(t, err, ErrNoNodeAddress)
}
