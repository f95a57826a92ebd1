// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - Normaliser: Cleans raw summary text for display
//   - Renderer: Turns segments and sections into markup and wraps it in a view
//   - ConfigStore: Application configuration
//   - DocumentNormaliser, DocumentRegistry: Extract judgment text from input files
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - EntityExtractor: Finds labelled spans in text.
//   - Summariser: Produces summary sections.
//   - PromptStore: User-editable prompt templates for the model adapters.
//
// With only one of extractor and summariser, Annotate leaves the other view
// plain. With neither it fails with domain.ErrModelUnavailable; rendering
// caller-supplied spans still works.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, normaliser or renderer package
package driven
