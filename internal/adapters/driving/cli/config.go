package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/lexview/internal/adapters/driven/ai"
	"github.com/custodia-labs/lexview/internal/adapters/driven/config/file"
	"github.com/custodia-labs/lexview/internal/adapters/driven/llm/ollama"
	"github.com/custodia-labs/lexview/internal/core/ports/driven"
)

var (
	configForce bool
	configJSON  bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage lexview configuration",
	Long: `Manage the configuration file (config.toml) and the prompt templates
stored in the configuration directory.`,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration and prompts",
	Long: `Write the default render palette, label precedence and model settings
to config.toml, and the default prompt templates to prompts/.

Existing values are kept unless --force is given.`,
	RunE: runConfigInit,
}

var configCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the configuration and reach the model",
	Long: `Validate the render configuration, then ping the configured model
server. Fails when no model is configured or it cannot be reached.`,
	RunE: runConfigCheck,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the current configuration",
	RunE:  runConfigShow,
}

func init() {
	configInitCmd.Flags().BoolVar(&configForce, "force", false, "overwrite existing values")
	configShowCmd.Flags().BoolVar(&configJSON, "json", false, "output as JSON")
	configCmd.AddCommand(configInitCmd, configCheckCmd, configShowCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	store, err := file.NewConfigStore(configDir)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	model := map[string]any{
		file.KeyModelProvider:          ai.ProviderOllama,
		file.KeyModelBaseURL:           ollama.DefaultBaseURL,
		file.KeyModelName:              ollama.DefaultModel,
		file.KeyModelTimeoutSeconds:    int(ollama.DefaultTimeout.Seconds()),
		file.KeyModelRequestsPerSecond: ollama.DefaultRequestsPerSecond,
		file.KeyServerAddr:             DefaultServeAddr,
	}
	if err := store.WriteDefaults(model, configForce); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	prompts, err := file.NewPromptStore(promptDir(store))
	if err != nil {
		return err
	}
	// Loading creates the prompt files on first use.
	if _, err := prompts.Load(driven.PromptEntities); err != nil {
		return fmt.Errorf("writing prompts: %w", err)
	}

	cmd.Printf("Wrote %s\n", store.Path())
	cmd.Printf("Prompts in %s\n", prompts.Dir())
	return nil
}

func runConfigCheck(cmd *cobra.Command, _ []string) error {
	store, err := file.NewConfigStore(configDir)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if _, err := store.RenderConfig(); err != nil {
		return err
	}
	cmd.Println("Render configuration OK")

	settings := modelSettings(store)
	if err := ai.ValidateModel(cmd.Context(), settings); err != nil {
		return fmt.Errorf("model check failed: %w", err)
	}
	cmd.Printf("Model %s reachable at %s\n", settings.Name, displayBaseURL(settings.BaseURL))
	return nil
}

// displayBaseURL shows the default server when none is configured.
func displayBaseURL(url string) string {
	if url == "" {
		return ollama.DefaultBaseURL
	}
	return url
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	store, err := file.NewConfigStore(configDir)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	keys := store.Keys()

	if configJSON {
		out := make(map[string]any, len(keys))
		for _, k := range keys {
			out[k], _ = store.Get(k)
		}
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal config: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(keys) == 0 {
		cmd.Printf("No configuration in %s (defaults apply).\n", store.Path())
		return nil
	}

	cmd.Printf("# %s\n", store.Path())
	for _, k := range keys {
		v, _ := store.Get(k)
		cmd.Printf("%s = %v\n", k, v)
	}
	return nil
}
