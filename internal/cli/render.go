package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/roomgrow/pkg/dungeon"
	"github.com/matzehuels/roomgrow/pkg/pipeline"
	"github.com/matzehuels/roomgrow/pkg/render"
)

// renderCommand creates the render command for rendering saved layouts.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output      string
		formats     string
		catalogPath string
		noCache     bool
	)

	cmd := &cobra.Command{
		Use:   "render [layout.json]",
		Short: "Render a saved layout",
		Long: `Render a layout file written by 'generate' as a text map (txt), a Graphviz
graph (dot), an SVG drawing (svg) or the full JSON document (json).

The catalog given with -c resolves footprint assets for the spawn list in the
JSON output; the built-in catalog is used when it is omitted.`,
		Example: `  roomgrow render dungeon.layout.json
  roomgrow render dungeon.layout.json -f svg,dot -o out/dungeon`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := pipeline.Options{
				CatalogPath: catalogPath,
				Formats:     parseFormats(formats),
				Logger:      c.Logger,
			}
			return c.runRender(cmd.Context(), cmd.OutOrStdout(), args[0], output, opts, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output base path (default: input without .layout.json)")
	cmd.Flags().StringVarP(&formats, "format", "f", "", "output format(s): txt (default), json, dot, svg (comma-separated)")
	cmd.Flags().StringVarP(&catalogPath, "catalog", "c", "", "footprint catalog TOML file")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// runRender loads the layout and writes one file per format.
func (c *CLI) runRender(ctx context.Context, out io.Writer, input, output string, opts pipeline.Options, noCache bool) error {
	l, err := dungeon.ReadLayoutFile(input)
	if err != nil {
		return err
	}
	if err := opts.ValidateForGenerate(); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}
	if err := opts.ValidateForRender(); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spawns, spawnWarnings := pipeline.Spawns(l, opts)
	for _, w := range spawnWarnings {
		loggerFromContext(ctx).Debug("spawn skipped", "room", w.RoomID, "footprint", w.Footprint)
	}
	in := render.Input{Layout: l, Spawns: spawns}

	artifacts, cacheHit, err := runner.RenderWithCacheInfo(ctx, in, opts)
	if err != nil {
		return err
	}

	base := renderBasePath(output, input)
	if dir := filepath.Dir(base); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	formats := make([]string, 0, len(artifacts))
	for f := range artifacts {
		formats = append(formats, f)
	}
	sort.Strings(formats)

	printSuccess(out, "Rendered %d rooms", l.Len())
	for _, f := range formats {
		path := base + "." + formatExt(f)
		if err := os.WriteFile(path, artifacts[f], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(out, path)
	}
	printStats(out, l.Len(), l.Target, 0, cacheHit)
	return nil
}

// renderBasePath derives the base output path from the output and input file paths.
// If output is empty, it strips ".layout.json" (or the extension) from input.
// If output has a format extension, it strips that extension.
func renderBasePath(output, input string) string {
	if output == "" {
		if strings.HasSuffix(input, ".layout.json") {
			return strings.TrimSuffix(input, ".layout.json")
		}
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if render.ValidFormat(strings.TrimPrefix(ext, ".")) {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
