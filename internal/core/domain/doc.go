// Package domain defines the core business entities for lexview.
//
// This package is part of the hexagonal architecture's innermost layer.
// It defines the fundamental types:
//
//   - TextSpan: A labelled character range produced by an entity extractor
//   - LabeledSegment: A non-overlapping run of text carrying zero or more labels
//   - SectionMap: Ordered summary sections produced by a summariser
//   - RenderConfig: The palette and precedence used to colour entities
//   - RenderedView: Presentation-ready markup with a scroll constraint
//   - RawDocument, Document: An input file before and after text extraction
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. All other packages depend on
// domain, never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library, github.com/google/uuid
//   - Cannot Import: Any internal/ package
package domain
