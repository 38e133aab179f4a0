package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/roomgrow/pkg/dungeon"
	"github.com/matzehuels/roomgrow/pkg/palette"
	"github.com/matzehuels/roomgrow/pkg/pipeline"
	"github.com/matzehuels/roomgrow/pkg/render"
	"github.com/matzehuels/roomgrow/pkg/spawn"
)

// Editor styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	mapStyle          = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorDim).
				Padding(0, 1)
)

// emptySlotLabel is shown for palette slots without a footprint.
const emptySlotLabel = "(empty)"

// editCommand creates the interactive editor command.
func (c *CLI) editCommand() *cobra.Command {
	var (
		catalogPath string
		noCache     bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit the palette and regenerate interactively",
		Long: `Open an interactive editor for the room count and the footprint palette.

Every generation first tears down the rooms spawned by the previous one, so
the map always shows exactly one layout.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			opts.CatalogPath = catalogPath
			if err := opts.ValidateForGenerate(); err != nil {
				return fmt.Errorf("invalid options: %w", err)
			}

			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()
			// Log lines would corrupt the alternate screen.
			runner.Logger = log.New(io.Discard)

			m := newEditModel(ctx, runner, opts)
			final, err := tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen()).Run()
			if err != nil {
				return err
			}
			if em, ok := final.(editModel); ok && em.layout != nil {
				printSuccess(cmd.OutOrStdout(), "Last layout: %d rooms (seed %d)", em.layout.Len(), em.seed)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&opts.Rooms, "rooms", "n", 0, fmt.Sprintf("initial room count (default %d)", pipeline.DefaultRooms))
	cmd.Flags().Uint64Var(&opts.Seed, "seed", 0, fmt.Sprintf("initial random seed (default %d)", pipeline.DefaultSeed))
	cmd.Flags().StringVarP(&catalogPath, "catalog", "c", "", "footprint catalog TOML file (default: built-in catalog)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// =============================================================================
// editModel - Interactive palette editor
// =============================================================================

// generatedMsg reports a finished generation.
type generatedMsg struct {
	gen     *pipeline.Generation
	spawned int
	err     error
}

// clearedMsg reports a finished teardown.
type clearedMsg struct {
	err error
}

// editModel is the bubbletea model for the palette editor. The tracker and
// spawner are only touched from commands, and at most one command runs at a
// time (busy).
type editModel struct {
	ctx     context.Context
	runner  *pipeline.Runner
	catalog *palette.Catalog
	choices []palette.FootprintID // cycle order; "" first

	rooms   int
	seed    uint64
	palette *palette.Palette
	cursor  int

	tracker *spawn.Tracker
	spawner *spawn.MemorySpawner

	layout   *dungeon.Layout
	warnings []dungeon.Warning
	busy     bool
	status   string
	err      error
}

// newEditModel creates an editor seeded from validated options.
func newEditModel(ctx context.Context, runner *pipeline.Runner, opts pipeline.Options) editModel {
	spawner := spawn.NewMemorySpawner()
	return editModel{
		ctx:     ctx,
		runner:  runner,
		catalog: opts.Catalog,
		choices: append([]palette.FootprintID{""}, opts.Catalog.IDs()...),
		rooms:   opts.Rooms,
		seed:    opts.Seed,
		palette: palette.FromStrings(opts.Palette),
		tracker: spawn.NewTracker(spawner, runner.Logger),
		spawner: spawner,
	}
}

func (m editModel) Init() tea.Cmd {
	return nil
}

func (m editModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case generatedMsg:
		m.busy = false
		m.err = msg.err
		if msg.gen != nil {
			l := msg.gen.Layout
			m.layout = &l
			m.warnings = msg.gen.Warnings
			m.status = fmt.Sprintf("grew %d/%d rooms, %d spawned", l.Len(), m.rooms, msg.spawned)
		}
		return m, nil
	case clearedMsg:
		m.busy = false
		m.err = msg.err
		m.layout = nil
		m.warnings = nil
		m.status = "cleared"
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m editModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < m.palette.Len()-1 {
			m.cursor++
		}
	case "+", "=":
		m.rooms++
	case "-", "_":
		if m.rooms > 1 {
			m.rooms--
		}
	case "a":
		m.palette.Add(m.defaultChoice())
		m.cursor = m.palette.Len() - 1
	case "d":
		m.palette.RemoveLast()
		if m.cursor >= m.palette.Len() && m.cursor > 0 {
			m.cursor--
		}
	case "enter", "e", "right", "l":
		m.cycle(1)
	case "left", "h":
		m.cycle(-1)
	case "s":
		m.seed++
	case "g":
		if m.busy {
			return m, nil
		}
		m.busy = true
		m.status = "generating..."
		return m, m.generate()
	case "c":
		if m.busy {
			return m, nil
		}
		m.busy = true
		return m, m.clear()
	}
	return m, nil
}

// defaultChoice is the footprint given to a newly added slot.
func (m editModel) defaultChoice() palette.FootprintID {
	if len(m.choices) > 1 {
		return m.choices[1]
	}
	return ""
}

// cycle moves the selected slot through the empty slot and every catalog entry.
func (m *editModel) cycle(step int) {
	if m.palette.IsEmpty() {
		return
	}
	cur := m.palette.At(m.cursor)
	idx := 0
	for i, id := range m.choices {
		if id == cur {
			idx = i
			break
		}
	}
	n := len(m.choices)
	m.palette.Set(m.cursor, m.choices[((idx+step)%n+n)%n])
}

// generate snapshots the current settings and returns a command that grows a
// layout and respawns it.
func (m editModel) generate() tea.Cmd {
	opts := pipeline.Options{
		Rooms:   m.rooms,
		Seed:    m.seed,
		Palette: m.palette.Clone().Strings(),
		Catalog: m.catalog,
	}
	ctx, runner, tracker := m.ctx, m.runner, m.tracker
	return func() tea.Msg {
		gen, err := runner.GenerateLayout(ctx, opts)
		if gen == nil {
			return generatedMsg{err: err}
		}
		reqs, _ := pipeline.Spawns(gen.Layout, opts)
		if rerr := tracker.Regenerate(ctx, reqs); rerr != nil && err == nil {
			err = rerr
		}
		return generatedMsg{gen: gen, spawned: tracker.Len(), err: err}
	}
}

// clear returns a command that tears down every spawned room.
func (m editModel) clear() tea.Cmd {
	ctx, tracker := m.ctx, m.tracker
	return func() tea.Msg {
		return clearedMsg{err: tracker.Teardown(ctx)}
	}
}

func (m editModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Roomgrow Editor"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ slot  ←/→ footprint  a add  d remove last  +/- rooms  s seed  g generate  c clear  q quit"))
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf("Rooms %s   Seed %s\n\n",
		StyleNumber.Render(fmt.Sprint(m.rooms)),
		StyleNumber.Render(fmt.Sprint(m.seed))))

	b.WriteString(StyleTitle.Render("Palette"))
	b.WriteString("\n")
	if m.palette.IsEmpty() {
		b.WriteString(listDimStyle.Render("  no slots, press a to add one"))
		b.WriteString("\n")
	}
	for i, id := range m.palette.IDs() {
		label := string(id)
		if id == "" {
			label = emptySlotLabel
		}
		line := fmt.Sprintf("%2d. %s", i, label)
		switch {
		case i == m.cursor:
			b.WriteString(listSelectedStyle.Render("▸ " + line))
		case id == "":
			b.WriteString(listDimStyle.Render("  " + line))
		default:
			b.WriteString(listNormalStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if m.layout != nil {
		b.WriteString(mapStyle.Render(strings.TrimRight(render.RenderText(*m.layout), "\n")))
		b.WriteString("\n")
		for _, w := range m.warnings {
			b.WriteString(StyleWarning.Render("! " + w.String()))
			b.WriteString("\n")
		}
	}

	if m.err != nil {
		b.WriteString(styleIconError.Render(iconError) + " " + m.err.Error())
		b.WriteString("\n")
	} else if m.status != "" {
		b.WriteString(listDimStyle.Render(m.status))
		b.WriteString("\n")
	}

	return b.String()
}
