package file

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/lexview/internal/core/domain"
	"github.com/custodia-labs/lexview/internal/core/ports/driven"
	"github.com/custodia-labs/lexview/internal/logger"
)

// Configuration keys.
const (
	KeyPalette      = "render.palette"
	KeyDefaultColor = "render.default_color"
	KeyForeground   = "render.foreground"
	KeyBackground   = "render.background"
	KeyFont         = "render.font"
	KeyPrecedence   = "render.precedence"
	KeyMaxHeightPx  = "render.max_height_px"
	KeyShowLabels   = "render.show_labels"

	KeyModelProvider          = "model.provider"
	KeyModelBaseURL           = "model.base_url"
	KeyModelName              = "model.name"
	KeyModelTimeoutSeconds    = "model.timeout_seconds"
	KeyModelRequestsPerSecond = "model.requests_per_second"
	KeyModelChunkSize         = "model.chunk_size"
	KeyModelChunkOverlap      = "model.chunk_overlap"

	KeyServerAddr = "server.addr"
)

// Ensure ConfigStore implements the interface.
var _ driven.ConfigStore = (*ConfigStore)(nil)

// ConfigStore is a file-based implementation of driven.ConfigStore using TOML.
// Nested tables are flattened to dot keys on load and nested again on save.
type ConfigStore struct {
	mu       sync.RWMutex
	filePath string
	data     map[string]any
}

// NewConfigStore creates a new TOML-based config store.
// If configDir is empty, defaults to ~/.lexview/config.toml.
func NewConfigStore(configDir string) (*ConfigStore, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		configDir = filepath.Join(home, ".lexview")
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, err
	}

	s := &ConfigStore{
		filePath: filepath.Join(configDir, "config.toml"),
		data:     make(map[string]any),
	}

	if err := s.Load(); err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	return s, nil
}

// Get retrieves a configuration value by key.
func (s *ConfigStore) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	val, ok := s.data[key]
	return val, ok
}

// GetString retrieves a string configuration value.
func (s *ConfigStore) GetString(key string) string {
	val, ok := s.Get(key)
	if !ok {
		return ""
	}

	str, ok := val.(string)
	if !ok {
		return ""
	}
	return str
}

// GetInt retrieves an integer configuration value.
func (s *ConfigStore) GetInt(key string) int {
	val, ok := s.Get(key)
	if !ok {
		return 0
	}

	// TOML integers are parsed as int64
	switch v := val.(type) {
	case int64:
		return int(v)
	case int:
		return v
	default:
		return 0
	}
}

// GetFloat retrieves a numeric configuration value. Integers are widened.
func (s *ConfigStore) GetFloat(key string) float64 {
	val, ok := s.Get(key)
	if !ok {
		return 0
	}

	switch v := val.(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	case int:
		return float64(v)
	default:
		return 0
	}
}

// GetBool retrieves a boolean configuration value.
func (s *ConfigStore) GetBool(key string) bool {
	val, ok := s.Get(key)
	if !ok {
		return false
	}

	b, ok := val.(bool)
	if !ok {
		return false
	}
	return b
}

// GetStringSlice retrieves a string slice configuration value.
func (s *ConfigStore) GetStringSlice(key string) []string {
	val, ok := s.Get(key)
	if !ok {
		return nil
	}

	// TOML arrays are parsed as []any
	switch v := val.(type) {
	case []string:
		return v
	case []any:
		result := make([]string, 0, len(v))
		for _, item := range v {
			if str, ok := item.(string); ok {
				result = append(result, str)
			}
		}
		return result
	default:
		return nil
	}
}

// GetStringMap collects the string values stored directly below prefix.
func (s *ConfigStore) GetStringMap(prefix string) map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	prefix += "."
	out := make(map[string]string)
	for key, val := range s.data {
		name, ok := strings.CutPrefix(key, prefix)
		if !ok || name == "" || strings.Contains(name, ".") {
			continue
		}
		if str, ok := val.(string); ok {
			out[name] = str
		}
	}
	return out
}

// Values is the read side of a configuration store.
type Values interface {
	Get(key string) (any, bool)
	GetInt(key string) int
	GetStringSlice(key string) []string
	GetStringMap(prefix string) map[string]string
}

// RenderConfig overlays the render.* keys on domain.DefaultRenderConfig
// and validates the result.
func (s *ConfigStore) RenderConfig() (domain.RenderConfig, error) {
	return BuildRenderConfig(s)
}

// BuildRenderConfig reads the render.* keys from any store.
func BuildRenderConfig(s Values) (domain.RenderConfig, error) {
	cfg := domain.DefaultRenderConfig()

	for label, color := range s.GetStringMap(KeyPalette) {
		cfg.Palette[label] = color
	}

	strs := map[string]*string{
		KeyDefaultColor: &cfg.DefaultColor,
		KeyForeground:   &cfg.Foreground,
		KeyBackground:   &cfg.Background,
		KeyFont:         &cfg.Font,
	}
	for key, dst := range strs {
		if val, ok := s.Get(key); ok {
			str, ok := val.(string)
			if !ok {
				return cfg, fmt.Errorf("%w: %s must be a string", domain.ErrInvalidConfig, key)
			}
			*dst = str
		}
	}

	if _, ok := s.Get(KeyPrecedence); ok {
		cfg.Precedence = s.GetStringSlice(KeyPrecedence)
	}

	if val, ok := s.Get(KeyMaxHeightPx); ok {
		switch val.(type) {
		case int, int64:
			cfg.MaxHeightPx = s.GetInt(KeyMaxHeightPx)
		default:
			return cfg, fmt.Errorf("%w: %s must be an integer", domain.ErrInvalidConfig, KeyMaxHeightPx)
		}
	}

	if val, ok := s.Get(KeyShowLabels); ok {
		show, ok := val.(bool)
		if !ok {
			return cfg, fmt.Errorf("%w: %s must be a boolean", domain.ErrInvalidConfig, KeyShowLabels)
		}
		cfg.ShowLabels = show
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	logger.Debug("Render config: %d palette entries, max height %dpx", len(cfg.Palette), cfg.MaxHeightPx)
	return cfg, nil
}

// WriteDefaults stores the default render configuration plus the given
// extra keys and saves. Existing keys are kept unless overwrite is set.
func (s *ConfigStore) WriteDefaults(extra map[string]any, overwrite bool) error {
	cfg := domain.DefaultRenderConfig()
	defaults := map[string]any{
		KeyDefaultColor: cfg.DefaultColor,
		KeyForeground:   cfg.Foreground,
		KeyBackground:   cfg.Background,
		KeyFont:         cfg.Font,
		KeyPrecedence:   cfg.Precedence,
		KeyMaxHeightPx:  cfg.MaxHeightPx,
		KeyShowLabels:   cfg.ShowLabels,
	}
	for label, color := range cfg.Palette {
		defaults[KeyPalette+"."+label] = color
	}
	for key, val := range extra {
		defaults[key] = val
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for key, val := range defaults {
		if _, exists := s.data[key]; exists && !overwrite {
			continue
		}
		s.data[key] = val
	}
	return s.save()
}

// Keys returns every configuration key in lexical order.
func (s *ConfigStore) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.data))
	for key := range s.data {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Set stores a configuration value and persists immediately.
func (s *ConfigStore) Set(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[key] = value
	return s.save()
}

// Save persists the current configuration to disk.
func (s *ConfigStore) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save()
}

// save writes configuration to the TOML file (caller must hold lock).
func (s *ConfigStore) save() error {
	data, err := toml.Marshal(nestMap(s.data))
	if err != nil {
		return err
	}

	// Write with restricted permissions
	return os.WriteFile(s.filePath, data, 0600)
}

// Load reads configuration from the TOML file.
func (s *ConfigStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			s.data = make(map[string]any)
			return nil
		}
		return err
	}

	var loaded map[string]any
	if err := toml.Unmarshal(data, &loaded); err != nil {
		return err
	}

	if loaded == nil {
		loaded = make(map[string]any)
	}

	s.data = flattenMap(loaded, "")
	return nil
}

// flattenMap converts nested maps to dot-notation keys.
// E.g., {"a": {"b": 1}} becomes {"a.b": 1}.
func flattenMap(m map[string]any, prefix string) map[string]any {
	result := make(map[string]any)

	for key, value := range m {
		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}

		if nested, ok := value.(map[string]any); ok {
			for k, v := range flattenMap(nested, fullKey) {
				result[k] = v
			}
		} else {
			result[fullKey] = value
		}
	}

	return result
}

// nestMap is the inverse of flattenMap. A key that is both a value and a
// prefix of other keys stays flat at the level where the clash occurs.
func nestMap(flat map[string]any) map[string]any {
	keys := make([]string, 0, len(flat))
	for key := range flat {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	root := make(map[string]any)
	for _, key := range keys {
		node := root
		parts := strings.Split(key, ".")
		placed := false
		for i, part := range parts[:len(parts)-1] {
			child, exists := node[part]
			if !exists {
				next := make(map[string]any)
				node[part] = next
				node = next
				continue
			}
			next, ok := child.(map[string]any)
			if !ok {
				node[strings.Join(parts[i:], ".")] = flat[key]
				placed = true
				break
			}
			node = next
		}
		if !placed {
			node[parts[len(parts)-1]] = flat[key]
		}
	}
	return root
}

// Path returns the configuration file path.
func (s *ConfigStore) Path() string {
	return s.filePath
}
