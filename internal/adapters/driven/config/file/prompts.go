package file

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/custodia-labs/lexview/internal/core/domain"
	"github.com/custodia-labs/lexview/internal/core/ports/driven"
	"github.com/custodia-labs/lexview/internal/logger"
)

// Ensure PromptStore implements the interface.
var _ driven.PromptStore = (*PromptStore)(nil)

// PromptStore loads model prompts from user-editable files on disk, falling
// back to DefaultPrompts. Files are created on first Load, not in the
// constructor.
type PromptStore struct {
	mu        sync.RWMutex
	promptDir string
	cache     map[string]string
	initOnce  sync.Once
	initErr   error
}

// DefaultPrompts returns the built-in prompt templates. They are also the
// initial content of the files written to the prompt directory.
func DefaultPrompts() map[string]string {
	return map[string]string{
		driven.PromptEntities: `You are a legal named entity recogniser for court judgments.
Find every entity in the text below and label it with one of:
CASE_NUMBER, COURT, JUDGE, STATUTE, PROVISION, DATE, OTHER_PERSON, ORG, GPE,
PETITIONER, RESPONDENT, LAWYER, WITNESS, PRECEDENT.

Respond with JSON only, in this exact shape:
{"entities": [{"text": "<exact text as it appears>", "label": "<LABEL>"}]}
List entities in the order they appear. Copy each text exactly.

Text:
%s`,

		driven.PromptSummary: `Summarise the court judgment below for a legal reviewer.
Respond with a JSON object whose keys are section headings and whose values
are the section text, in this order: "Facts", "Issues", "Arguments",
"Reasoning", "Decision". Omit a section if the judgment says nothing about it.

Judgment:
%s`,
	}
}

// NewPromptStore creates a new file-based prompt store.
// If promptDir is empty, defaults to ~/.lexview/prompts/.
func NewPromptStore(promptDir string) (*PromptStore, error) {
	if promptDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home directory: %w", err)
		}
		promptDir = filepath.Join(home, ".lexview", "prompts")
	}

	return &PromptStore{
		promptDir: promptDir,
		cache:     make(map[string]string),
	}, nil
}

// Load returns the prompt template for the given name. A file that is
// missing, or that lost its %s placeholder, yields the built-in default.
func (s *PromptStore) Load(name string) (string, error) {
	// Ensure directory and defaults exist (lazy init)
	defaults := DefaultPrompts()

	s.initOnce.Do(s.initialise)
	if s.initErr != nil {
		if prompt, ok := defaults[name]; ok {
			logger.Debug("Prompt store unavailable, using built-in %q prompt: %v", name, s.initErr)
			return prompt, nil
		}
		return "", fmt.Errorf("prompt store init failed: %w", s.initErr)
	}

	s.mu.RLock()
	if prompt, ok := s.cache[name]; ok {
		s.mu.RUnlock()
		return prompt, nil
	}
	s.mu.RUnlock()

	prompt, err := s.loadFromFile(name)
	if err == nil && strings.Count(prompt, "%s") != 1 {
		err = fmt.Errorf("%w: prompt %q must contain exactly one %%s", domain.ErrInvalidConfig, name)
	}
	if err != nil {
		if prompt, ok := defaults[name]; ok {
			logger.Warn("Using built-in %q prompt: %v", name, err)
			return prompt, nil
		}
		return "", fmt.Errorf("load prompt %q: %w", name, err)
	}

	// Double-check so concurrent loads agree on one value.
	s.mu.Lock()
	if _, ok := s.cache[name]; !ok {
		s.cache[name] = prompt
	} else {
		prompt = s.cache[name]
	}
	s.mu.Unlock()

	return prompt, nil
}

// Reload clears the prompt cache, forcing fresh loads from disk.
func (s *PromptStore) Reload() {
	s.mu.Lock()
	s.cache = make(map[string]string)
	s.mu.Unlock()
}

// Dir returns the prompt directory path.
func (s *PromptStore) Dir() string {
	return s.promptDir
}

// initialise creates the prompt directory and default files.
func (s *PromptStore) initialise() {
	if err := os.MkdirAll(s.promptDir, 0700); err != nil {
		s.initErr = fmt.Errorf("create prompt directory: %w", err)
		return
	}

	for name, content := range DefaultPrompts() {
		path := filepath.Join(s.promptDir, name+".txt")
		if _, err := os.Stat(path); os.IsNotExist(err) {
			if err := os.WriteFile(path, []byte(content), 0600); err != nil {
				s.initErr = fmt.Errorf("create default prompt %q: %w", name, err)
				return
			}
		}
	}

	if err := s.createReadme(); err != nil {
		s.initErr = err
	}
}

// loadFromFile reads a prompt from disk.
func (s *PromptStore) loadFromFile(name string) (string, error) {
	path := filepath.Join(s.promptDir, name+".txt")
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// createReadme writes a README file explaining the prompts directory.
func (s *PromptStore) createReadme() error {
	path := filepath.Join(s.promptDir, "README.md")
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		return nil
	}

	content := `# lexview prompts

Prompts sent to the Ollama model by ` + "`lexview annotate`" + ` and the annotate
endpoints.

## Files

- ` + "`entities.txt`" + ` - Extracts labelled legal entities as JSON
- ` + "`summary.txt`" + ` - Produces a sectioned summary as a JSON object

## Customisation

Edit a file to change what the model is asked. Each prompt must keep exactly
one ` + "`%s`" + ` placeholder, which receives the document text. A prompt
without it is ignored and the built-in version is used instead.
`
	return os.WriteFile(path, []byte(content), 0600)
}
