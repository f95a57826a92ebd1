// Package normalisers turns input files and noisy model output into
// display-ready text.
//
// Document normalisers implement driven.DocumentNormaliser and decode one
// kind of input file. The Registry picks one by MIME type and priority;
// LoadFile detects the type from the file extension. Only plain text is
// decoded: other text/* files are read verbatim, binary formats are
// rejected with domain.ErrUnsupportedType.
//
// # Available Normalisers
//
//   - plaintext: UTF-8 text, kept verbatim apart from BOM and CRLF
//   - section: Cleans summary section text (whitespace, stray line breaks,
//     space before periods)
package normalisers
