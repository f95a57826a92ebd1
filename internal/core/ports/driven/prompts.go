package driven

// PromptStore provides access to model prompt templates.
// Implementations may load prompts from files or embed them in the binary.
type PromptStore interface {
	// Load returns the prompt template for the given name.
	// Implementations fall back to a built-in default for well-known names.
	Load(name string) (string, error)

	// Reload clears any cached prompts, forcing fresh loads on next access.
	Reload()
}

// Well-known prompt names. Each template has exactly one %s placeholder
// that receives the document text.
const (
	// PromptEntities asks the model for labelled legal entities as JSON.
	PromptEntities = "entities"

	// PromptSummary asks the model for a sectioned summary as a JSON object.
	PromptSummary = "summary"
)

// PromptStoreAware is implemented by adapters whose prompts can be
// customised after construction.
type PromptStoreAware interface {
	// SetPromptStore sets the prompt store. Without one the adapter uses
	// its built-in prompts.
	SetPromptStore(store PromptStore)
}
