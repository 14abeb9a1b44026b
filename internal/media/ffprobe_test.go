package media

import (
	"context"
	"testing"
)

func TestStaticProberSatisfiesProber(t *testing.T) {
	var p Prober = StaticProber{Metadata: Metadata{Width: 320, Height: 240, FPS: 25}}
	meta, err := p.Probe(context.Background(), "anything.mp4")
	if err != nil {
		t.Fatalf("Probe returned error: %v", err)
	}
	if meta.Width != 320 || meta.Height != 240 || meta.FPS != 25 {
		t.Fatalf("unexpected metadata: %+v", meta)
	}
}

func TestParseFrameRate(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"30/1", 30},
		{"30000/1001", 30000.0 / 1001.0},
		{"0/0", 0},
		{"", 0},
		{"24", 24},
		{"bogus", 0},
		{"1/0", 0},
	}
	for _, tc := range cases {
		if got := parseFrameRate(tc.in); got != tc.want {
			t.Fatalf("parseFrameRate(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestMetadataDisplaySizeFallback(t *testing.T) {
	w, h := (Metadata{}).DisplaySize()
	if w != 640 || h != 480 {
		t.Fatalf("zero metadata display size = %dx%d, want 640x480", w, h)
	}
	w, h = (Metadata{Width: 1920, Height: 1080}).DisplaySize()
	if w != 1920 || h != 1080 {
		t.Fatalf("probed display size = %dx%d, want 1920x1080", w, h)
	}
}
