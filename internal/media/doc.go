// Package media defines the external collaborator seams the container
// pipeline depends on: video metadata probing, frame decoding, and symbol
// rendering/scanning.
//
// The codecs themselves never touch video or imaging libraries. Encode paths
// consume a Metadata value and optional rendered symbols; decode paths accept
// an optional SymbolScanner. The ffprobe-backed Prober is the one concrete
// collaborator shipped here; the rest are satisfied by callers or left nil.
package media
