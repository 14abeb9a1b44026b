// Package container assembles codec output into standalone SVG documents and
// locates the payload region inside existing ones.
//
// Each encoding family has its own template: ascii85 documents store the
// frame literal base64-wrapped in a namespaced video:data metadata element,
// polyglot documents interleave boundary-delimited comment sections with a
// visible SVG body, and chunked documents tile rendered symbols across a
// grid of qr-frame groups next to a JSON metadata element. Every template
// yields a document that ordinary SVG readers render without noticing the
// payload.
package container
