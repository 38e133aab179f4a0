package pipeline

import (
	"fmt"

	"github.com/matzehuels/roomgrow/pkg/render"
)

// Render generates output artifacts in the requested formats.
func Render(in render.Input, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		if _, done := artifacts[format]; done {
			continue
		}
		data, err := render.Render(in, format)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}
