package router

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dypbi/iflow-manager/internal/config"
	"github.com/dypbi/iflow-manager/internal/constants"
)

// newTestService wires a service over a router config file with the
// given content. An empty content string means no file at all.
func newTestService(t *testing.T, content string) (Service, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.json")
	if content != "" {
		require.NoError(t, os.WriteFile(path, []byte(content), constants.DefaultFilePermissions))
	}

	cfg := &config.Config{
		RouterConfigPath: path,
		RouterBinary:     "true",
		ProviderAPIURL:   "https://apis.iflow.cn/v1/chat/completions",
	}

	return NewService(cfg), path
}

// readConfig loads the synced config back for assertions.
func readConfig(t *testing.T, path string) map[string]any {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var parsed map[string]any
	require.NoError(t, json.Unmarshal(data, &parsed))

	return parsed
}

// TestService_Sync_UpdatesExistingProvider tests that an existing provider
// block gets its key list replaced and nothing else touched.
func TestService_Sync_UpdatesExistingProvider(t *testing.T) {
	t.Parallel()

	service, path := newTestService(t, `{
		"LOG": true,
		"Providers": [
			{
				"name": "other-provider",
				"api_key": "untouched"
			},
			{
				"name": "op-provider",
				"api_base_url": "https://apis.iflow.cn/v1/chat/completions",
				"api_key": "stale",
				"models": ["qwen3-vl-plus"],
				"custom_field": "kept"
			}
		],
		"Router": {"default": "op-provider,glm-5"}
	}`)

	require.NoError(t, service.Sync(t.Context(), "k1,k2"))

	parsed := readConfig(t, path)

	assert.Equal(t, true, parsed["LOG"])
	assert.Equal(t, map[string]any{"default": "op-provider,glm-5"}, parsed["Router"])

	providers := parsed["Providers"].([]any)
	require.Len(t, providers, 2)

	other := providers[0].(map[string]any)
	assert.Equal(t, "untouched", other["api_key"])

	managed := providers[1].(map[string]any)
	assert.Equal(t, "k1,k2", managed["api_key"])
	assert.Equal(t, "kept", managed["custom_field"])
	assert.Equal(t, []any{"qwen3-vl-plus"}, managed["models"])
}

// TestService_Sync_AppendsMissingProvider tests that a config without the
// managed provider gets the full default block appended.
func TestService_Sync_AppendsMissingProvider(t *testing.T) {
	t.Parallel()

	service, path := newTestService(t, `{
		"Providers": [
			{"name": "other-provider", "api_key": "untouched"}
		]
	}`)

	require.NoError(t, service.Sync(t.Context(), "k1"))

	parsed := readConfig(t, path)

	providers := parsed["Providers"].([]any)
	require.Len(t, providers, 2)

	added := providers[1].(map[string]any)
	assert.Equal(t, "op-provider", added["name"])
	assert.Equal(t, "https://apis.iflow.cn/v1/chat/completions", added["api_base_url"])
	assert.Equal(t, "k1", added["api_key"])
	assert.Equal(t,
		[]any{"qwen3-vl-plus", "minimax-m2.1", "kimi-k2.5", "glm-5", "minimax-m2.5"},
		added["models"])
	assert.Equal(t, map[string]any{"use": []any{"header"}}, added["transformer"])
}

// TestService_Sync_NoProvidersField tests syncing into a config that has
// no provider list at all.
func TestService_Sync_NoProvidersField(t *testing.T) {
	t.Parallel()

	service, path := newTestService(t, `{"LOG": false}`)

	require.NoError(t, service.Sync(t.Context(), "k1"))

	parsed := readConfig(t, path)
	assert.Equal(t, false, parsed["LOG"])

	providers := parsed["Providers"].([]any)
	require.Len(t, providers, 1)
}

// TestService_Sync_Errors tests that bad inputs leave the config untouched.
func TestService_Sync_Errors(t *testing.T) {
	t.Parallel()

	t.Run("missing config file", func(t *testing.T) {
		t.Parallel()

		service, _ := newTestService(t, "")

		err := service.Sync(t.Context(), "k1")
		require.ErrorIs(t, err, ErrConfigNotFound)
	})

	t.Run("empty key list", func(t *testing.T) {
		t.Parallel()

		service, path := newTestService(t, `{"Providers": []}`)

		err := service.Sync(t.Context(), "  ")
		require.ErrorIs(t, err, ErrNoAPIKeys)

		data, readErr := os.ReadFile(path)
		require.NoError(t, readErr)
		assert.JSONEq(t, `{"Providers": []}`, string(data))
	})

	t.Run("malformed config", func(t *testing.T) {
		t.Parallel()

		service, path := newTestService(t, `{not json`)

		err := service.Sync(t.Context(), "k1")
		require.Error(t, err)

		data, readErr := os.ReadFile(path)
		require.NoError(t, readErr)
		assert.Equal(t, `{not json`, string(data))
	})
}

// TestService_Restart tests the restart command wrapper.
func TestService_Restart(t *testing.T) {
	t.Parallel()

	t.Run("command succeeds", func(t *testing.T) {
		t.Parallel()

		service, _ := newTestService(t, `{}`)

		require.NoError(t, service.Restart(t.Context()))
	})

	t.Run("binary not found", func(t *testing.T) {
		t.Parallel()

		service, _ := newTestService(t, `{}`)
		service.(*ServiceImpl).cfg.RouterBinary = "definitely-not-a-binary-3f9c"

		err := service.Restart(t.Context())
		require.ErrorIs(t, err, ErrRestartFailed)
	})
}

// TestService_Status tests config presence reporting.
func TestService_Status(t *testing.T) {
	t.Parallel()

	present, path := newTestService(t, `{}`)

	status := present.Status(t.Context())
	assert.True(t, status.ConfigExists)
	assert.Equal(t, path, status.ConfigPath)

	absent, _ := newTestService(t, "")
	assert.False(t, absent.Status(t.Context()).ConfigExists)
}
