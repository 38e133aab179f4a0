package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/roomgrow/pkg/palette"
)

// paletteCommand creates the palette command for inspecting footprint catalogs.
func (c *CLI) paletteCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "palette",
		Short: "Inspect footprint catalogs",
		Long: `Inspect footprint catalogs.

A catalog is a TOML file with one [[footprint]] table per entry and an
optional [generate] preset:

  [generate]
  rooms = 30
  palette = ["hall", "hall", "vault"]

  [[footprint]]
  id = "hall"
  width = 2
  depth = 1
  asset = "prefabs/hall"

An entry without width and depth has no geometry and is placed as a single
cell.`,
	}

	cmd.AddCommand(c.paletteListCommand())
	cmd.AddCommand(c.paletteValidateCommand())
	cmd.AddCommand(c.paletteInitCommand())

	return cmd
}

// paletteListCommand creates the "palette list" subcommand.
func (c *CLI) paletteListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list [catalog.toml]",
		Short: "List the footprints of a catalog (default: built-in)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, preset, err := loadCatalogArg(args)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, footprintTable(cat))
			if preset.Rooms > 0 || preset.Seed > 0 {
				printKeyValue(out, "rooms", strconv.Itoa(preset.Rooms))
				printKeyValue(out, "seed", strconv.FormatUint(preset.Seed, 10))
			}
			printKeyValue(out, "palette", fmt.Sprint(preset.Palette))
			return nil
		},
	}
}

// paletteValidateCommand creates the "palette validate" subcommand.
func (c *CLI) paletteValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [catalog.toml]",
		Short: "Check a catalog file for errors",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, preset, err := palette.LoadFile(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			printSuccess(out, "%s: %d footprints", args[0], cat.Len())
			for _, f := range cat.Footprints() {
				if !f.HasGeometry() {
					printWarning(out, "footprint %q has no geometry", f.ID)
				}
			}
			for _, id := range preset.Palette {
				if id == "" {
					continue
				}
				if _, ok := cat.Lookup(palette.FootprintID(id)); !ok {
					printWarning(out, "palette entry %q is not in the catalog", id)
				}
			}
			return nil
		},
	}
}

// paletteInitCommand creates the "palette init" subcommand.
func (c *CLI) paletteInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [catalog.toml]",
		Short: "Write the built-in catalog as a starting point",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
			cat := palette.Builtin()
			preset := palette.Preset{Rooms: 20}
			for _, id := range cat.IDs() {
				preset.Palette = append(preset.Palette, string(id))
			}
			data, err := palette.Encode(cat, preset)
			if err != nil {
				return err
			}
			if err := os.WriteFile(path, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}
			printSuccess(cmd.OutOrStdout(), "Wrote catalog")
			printFile(cmd.OutOrStdout(), path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}

// loadCatalogArg loads the catalog named by args or the built-in one.
func loadCatalogArg(args []string) (*palette.Catalog, palette.Preset, error) {
	if len(args) == 1 {
		return palette.LoadFile(args[0])
	}
	cat := palette.Builtin()
	var preset palette.Preset
	for _, id := range cat.IDs() {
		preset.Palette = append(preset.Palette, string(id))
	}
	return cat, preset, nil
}

// footprintTable renders the catalog entries as a table.
func footprintTable(cat *palette.Catalog) string {
	footprints := cat.Footprints()
	rows := make([][]string, 0, len(footprints))
	for _, f := range footprints {
		w, d := "—", "—"
		if f.HasGeometry() {
			s := f.Size()
			w = strconv.FormatFloat(s.Width, 'g', -1, 64)
			d = strconv.FormatFloat(s.Depth, 'g', -1, 64)
		}
		asset := f.Asset
		if asset == "" {
			asset = string(f.ID)
		}
		rows = append(rows, []string{string(f.ID), w, d, asset})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Footprint", "Width", "Depth", "Asset").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if row >= 0 && row < len(footprints) && !footprints[row].HasGeometry() {
				return lipgloss.NewStyle().Foreground(colorDim)
			}
			if col == 0 {
				return lipgloss.NewStyle().Foreground(colorCyan)
			}
			return lipgloss.NewStyle()
		}).
		Render()
}
