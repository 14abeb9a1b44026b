package media

import "context"

// Metadata describes the video a container embeds. Zero values are legal;
// templates substitute display defaults for missing dimensions.
type Metadata struct {
	Width      int
	Height     int
	FPS        float64
	FrameCount int
	Duration   float64
}

// DisplaySize returns the metadata dimensions, falling back to a 640x480
// canvas when the probe produced nothing usable.
func (m Metadata) DisplaySize() (int, int) {
	if m.Width > 0 && m.Height > 0 {
		return m.Width, m.Height
	}
	return 640, 480
}

// Prober extracts Metadata from a video file.
type Prober interface {
	Probe(ctx context.Context, path string) (Metadata, error)
}

// SymbolRenderer rasterizes one chunk envelope's serialized bytes into an
// image (PNG) for tiling into a container.
type SymbolRenderer interface {
	RenderSymbol(payload []byte) ([]byte, error)
}

// SymbolScanner recovers the serialized bytes from one rendered symbol
// image. A nil scanner leaves chunked containers detectable but not
// extractable.
type SymbolScanner interface {
	ScanSymbol(image []byte) ([]byte, error)
}

// StaticProber returns fixed metadata for every path. Used by tests and by
// encode paths that run without ffprobe available.
type StaticProber struct {
	Metadata Metadata
}

func (p StaticProber) Probe(context.Context, string) (Metadata, error) {
	return p.Metadata, nil
}
