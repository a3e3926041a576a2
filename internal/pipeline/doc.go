// Package pipeline implements the string transformations applied to raw
// HTML before it is handed to a rendering engine.
//
// Two expansion policies are provided:
//   - Full: rewrites inline display:none declarations, injects an expand
//     style block into the document head, and checks every checkbox.
//   - Light: injects a single .content rule, and only when the document
//     both mentions .content and contains "display: none".
//
// The package also places a <base href> so that a document rendered from a
// temporary location still resolves its relative resources.
//
// Only the tags that need rewriting are touched. Everything else, including
// scripts, comments and whitespace, passes through byte for byte.
package pipeline
