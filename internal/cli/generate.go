package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/matzehuels/roomgrow/pkg/dungeon"
	"github.com/matzehuels/roomgrow/pkg/pipeline"
	"github.com/matzehuels/roomgrow/pkg/spawn"
)

// generateFlags holds the command-line flags for the generate command.
type generateFlags struct {
	output  string // base path; files are named <output>.layout.json, <output>.<fmt>
	formats string // comma-separated render formats
	spawns  string // optional JSON-lines spawn command file
	noCache bool
	palette []string
}

// generateCommand creates the generate command.
func (c *CLI) generateCommand() *cobra.Command {
	var flags generateFlags
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Grow a dungeon layout",
		Long: `Grow a dungeon layout from a footprint palette.

Rooms are placed one at a time next to a randomly chosen existing room in one
of the four cardinal directions. A room whose every attempt lands on an
occupied cell is skipped, so the layout may contain fewer rooms than asked for.

The layout is written to <output>.layout.json, rendered artifacts to
<output>.<format>. Use --spawns to also write the world-space spawn commands
as JSON lines.

Results are cached locally for faster subsequent runs.`,
		Example: `  roomgrow generate -n 30 --seed 7
  roomgrow generate -c catalog.toml -p hall,hall,vault -f txt,svg -o crypt
  roomgrow generate --spawns crypt.spawns.jsonl`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("palette") {
				opts.Palette = flags.palette
				if opts.Palette == nil {
					opts.Palette = []string{}
				}
			}
			opts.Formats = parseFormats(flags.formats)
			return c.runGenerate(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), opts, flags)
		},
	}

	cmd.Flags().IntVarP(&opts.Rooms, "rooms", "n", 0, fmt.Sprintf("target room count (default %d)", pipeline.DefaultRooms))
	cmd.Flags().Uint64Var(&opts.Seed, "seed", 0, fmt.Sprintf("random seed (default %d)", pipeline.DefaultSeed))
	cmd.Flags().StringSliceVarP(&flags.palette, "palette", "p", nil, "footprint ids to pick from (default: every catalog footprint)")
	cmd.Flags().StringVarP(&opts.CatalogPath, "catalog", "c", "", "footprint catalog TOML file (default: built-in catalog)")
	cmd.Flags().IntVar(&opts.MaxRetries, "max-retries", 0, fmt.Sprintf("placement retries per room (default %d)", dungeon.DefaultMaxRetries))
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "regenerate even when cached")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "dungeon", "output base path")
	cmd.Flags().StringVarP(&flags.formats, "format", "f", "", "output format(s): txt (default), json, dot, svg (comma-separated)")
	cmd.Flags().StringVar(&flags.spawns, "spawns", "", "write spawn commands as JSON lines to this file")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "disable caching")

	return cmd
}

// runGenerate executes the pipeline and writes its outputs.
func (c *CLI) runGenerate(ctx context.Context, out, errOut io.Writer, opts pipeline.Options, flags generateFlags) error {
	runner, err := c.newRunner(ctx, flags.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	logger := loggerFromContext(ctx)
	opts.Logger = logger
	prog := newProgress(logger)

	spinner := newSpinnerWithContext(ctx, errOut, "Growing rooms...")
	spinner.Start()
	result, err := runner.Execute(ctx, opts)
	spinner.Stop()

	if err != nil {
		if result == nil {
			return err
		}
		// Partial layouts are still worth keeping.
		path := flags.output + ".layout.json"
		if werr := dungeon.WriteLayoutFile(result.Layout, path); werr != nil {
			return fmt.Errorf("write layout %s: %w", path, werr)
		}
		printWarning(out, "Generation stopped after %d rooms", result.Layout.Len())
		printFile(out, path)
		return err
	}
	prog.done(fmt.Sprintf("Generated %d rooms", result.Stats.Placed))

	files, err := writeGenerateOutputs(ctx, result, flags)
	if err != nil {
		return err
	}

	printSuccess(out, "Layout complete")
	for _, f := range files {
		printFile(out, f)
	}
	printStats(out, result.Stats.Placed, result.Layout.Target, len(result.Warnings), result.CacheInfo.LayoutHit)
	for _, w := range result.SpawnWarnings {
		printDetail(out, "%s", w)
	}
	fmt.Fprintln(out)
	printNextStep(out, "Render", "roomgrow render "+flags.output+".layout.json -f svg")

	return nil
}

// writeGenerateOutputs writes the layout, each artifact and, if requested,
// the spawn command stream. It returns the written paths in order.
func writeGenerateOutputs(ctx context.Context, result *pipeline.Result, flags generateFlags) ([]string, error) {
	if dir := filepath.Dir(flags.output); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create output dir: %w", err)
		}
	}

	layoutPath := flags.output + ".layout.json"
	if err := dungeon.WriteLayoutFile(result.Layout, layoutPath); err != nil {
		return nil, fmt.Errorf("write layout %s: %w", layoutPath, err)
	}
	files := []string{layoutPath}

	formats := make([]string, 0, len(result.Artifacts))
	for f := range result.Artifacts {
		formats = append(formats, f)
	}
	sort.Strings(formats)
	for _, f := range formats {
		path := flags.output + "." + formatExt(f)
		if err := os.WriteFile(path, result.Artifacts[f], 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", path, err)
		}
		files = append(files, path)
	}

	if flags.spawns != "" {
		if err := writeSpawnStream(ctx, flags.spawns, result.Spawns); err != nil {
			return nil, err
		}
		files = append(files, flags.spawns)
	}
	return files, nil
}

// writeSpawnStream replays spawn requests through a tracker into a JSON-lines file.
func writeSpawnStream(ctx context.Context, path string, reqs []spawn.Request) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	tracker := spawn.NewTracker(spawn.NewStreamSpawner(f), nil)
	if err := tracker.Spawn(ctx, reqs); err != nil {
		return fmt.Errorf("write spawns %s: %w", path, err)
	}
	return nil
}
