// Package sniff identifies which container encoding produced a document by
// inspecting structural signatures in the text, without attempting a decode.
//
// Detection is pure and deterministic. Signatures are checked in a fixed
// precedence order and the first match wins, so a document that happens to
// carry several formats' markers always reports the same single tag.
package sniff
