package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/lexview/internal/adapters/driven/config/file"
	"github.com/custodia-labs/lexview/internal/core/domain"
)

func TestConfigInit_WritesDefaults(t *testing.T) {
	dir := t.TempDir()

	out, _, err := execute(t, dir, "config", "init")

	require.NoError(t, err)
	assert.Contains(t, out, filepath.Join(dir, "config.toml"))
	assert.FileExists(t, filepath.Join(dir, "config.toml"))
	assert.FileExists(t, filepath.Join(dir, "prompts", "entities.txt"))
	assert.FileExists(t, filepath.Join(dir, "prompts", "summary.txt"))

	out, _, err = execute(t, dir, "config", "show")

	require.NoError(t, err)
	assert.Contains(t, out, "model.name = llama3.2")
	assert.Contains(t, out, "model.provider = ollama")
	assert.Contains(t, out, "render.palette.DATE = #f5b971")
	assert.Contains(t, out, "render.max_height_px = 400")
}

func TestConfigInit_KeepsExistingValues(t *testing.T) {
	dir := t.TempDir()
	store, err := file.NewConfigStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Set(file.KeyModelName, "mistral"))

	_, _, err = execute(t, dir, "config", "init")
	require.NoError(t, err)

	out, _, err := execute(t, dir, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "model.name = mistral")

	_, _, err = execute(t, dir, "config", "init", "--force")
	require.NoError(t, err)

	out, _, err = execute(t, dir, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "model.name = llama3.2")
}

func TestConfigShow_Empty(t *testing.T) {
	out, _, err := execute(t, t.TempDir(), "config", "show")

	require.NoError(t, err)
	assert.Contains(t, out, "defaults apply")
}

func TestConfigShow_JSON(t *testing.T) {
	dir := t.TempDir()
	_, _, err := execute(t, dir, "config", "init")
	require.NoError(t, err)

	out, _, err := execute(t, dir, "config", "show", "--json")
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "llama3.2", got["model.name"])
	assert.Equal(t, "#f5b971", got["render.palette.DATE"])
}

func TestConfig_InvalidRenderConfigFailsCommands(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"),
		[]byte("[render]\nmax_height_px = -5\n"), 0600))

	_, _, err := execute(t, dir, "render", "entities", "--text", exampleText)

	assert.Error(t, err)
}

func TestConfigCheck_ModelReachable(t *testing.T) {
	dir := t.TempDir()
	srv := newModelServer(t)
	configureModel(t, dir, srv.URL)

	out, _, err := execute(t, dir, "config", "check")

	require.NoError(t, err)
	assert.Contains(t, out, "Render configuration OK")
	assert.Contains(t, out, "Model test-model reachable at "+srv.URL)
}

func TestConfigCheck_NoModel(t *testing.T) {
	_, _, err := execute(t, t.TempDir(), "config", "check")

	assert.ErrorIs(t, err, domain.ErrModelUnavailable)
}

func TestConfigCheck_UnsupportedProvider(t *testing.T) {
	dir := t.TempDir()
	configureModel(t, dir, "http://127.0.0.1:1")
	store, err := file.NewConfigStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Set(file.KeyModelProvider, "openai"))

	_, _, err = execute(t, dir, "config", "check")

	assert.ErrorIs(t, err, domain.ErrInvalidConfig)
}
