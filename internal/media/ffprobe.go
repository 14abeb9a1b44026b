package media

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// FFProbe probes video metadata by executing ffprobe with JSON output.
type FFProbe struct {
	// Binary overrides the executable name; empty means "ffprobe" on PATH.
	Binary string
}

type probeOutput struct {
	Streams []probeStream `json:"streams"`
	Format  probeFormat   `json:"format"`
}

type probeStream struct {
	CodecType    string `json:"codec_type"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	RFrameRate   string `json:"r_frame_rate"`
	AvgFrameRate string `json:"avg_frame_rate"`
	NBFrames     string `json:"nb_frames"`
}

type probeFormat struct {
	Duration string `json:"duration"`
}

// Probe executes ffprobe against path and maps the first video stream to
// Metadata.
func (f FFProbe) Probe(ctx context.Context, path string) (Metadata, error) {
	binary := strings.TrimSpace(f.Binary)
	if binary == "" {
		binary = "ffprobe"
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return Metadata{}, errors.New("ffprobe: empty path")
	}

	cmd := exec.CommandContext(ctx, binary,
		"-v", "error", "-hide_banner",
		"-show_format", "-show_streams",
		"-of", "json", "--", path)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return Metadata{}, fmt.Errorf("ffprobe %s: %w: %s", path, err, strings.TrimSpace(string(output)))
	}

	var parsed probeOutput
	if err := json.Unmarshal(output, &parsed); err != nil {
		return Metadata{}, fmt.Errorf("ffprobe parse: %w", err)
	}

	meta := Metadata{Duration: parseSeconds(parsed.Format.Duration)}
	for _, stream := range parsed.Streams {
		if !strings.EqualFold(stream.CodecType, "video") {
			continue
		}
		meta.Width = stream.Width
		meta.Height = stream.Height
		meta.FPS = parseFrameRate(stream.RFrameRate)
		if meta.FPS == 0 {
			meta.FPS = parseFrameRate(stream.AvgFrameRate)
		}
		if frames, convErr := strconv.Atoi(strings.TrimSpace(stream.NBFrames)); convErr == nil {
			meta.FrameCount = frames
		} else if meta.FPS > 0 && meta.Duration > 0 {
			meta.FrameCount = int(meta.FPS * meta.Duration)
		}
		break
	}
	return meta, nil
}

// parseFrameRate converts ffprobe's rational frame rates ("30000/1001") to a
// float, returning 0 for unusable values.
func parseFrameRate(value string) float64 {
	value = strings.TrimSpace(value)
	if value == "" || value == "0/0" {
		return 0
	}
	if num, den, found := strings.Cut(value, "/"); found {
		n, errN := strconv.ParseFloat(num, 64)
		d, errD := strconv.ParseFloat(den, 64)
		if errN != nil || errD != nil || d == 0 {
			return 0
		}
		return n / d
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0
	}
	return parsed
}

func parseSeconds(value string) float64 {
	parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || parsed < 0 {
		return 0
	}
	return parsed
}
