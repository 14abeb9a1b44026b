// Package codec implements the binary-to-text container encodings that carry
// a payload inside an SVG document and recover it byte for byte.
//
// Key responsibilities:
//   - The length-framed ASCII85 codec, whose explicit byte-count prefix makes
//     the final padded group unambiguous on decode.
//   - The polyglot codec that hides base64 payload sections between random
//     boundary tokens inside SVG comments.
//   - The chunk envelope codec that splits a payload into indexed, checksummed
//     envelopes suitable for rendering as symbol tiles.
//   - Structured error markers plus the Wrap helper so callers classify
//     failures with errors.Is rather than string matching.
//
// The set of codecs is closed: dispatch happens over the Tag enum, never over
// runtime-registered names.
package codec
