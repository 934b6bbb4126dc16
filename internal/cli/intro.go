package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
	"github.com/omamori-labs/omamori/internal/typewriter"
	"github.com/spf13/cobra"
)

const introText = `Welcome to OMAMORI 🧧

Set a savings goal, pass a quick identity check and connect your wallet.
Every deposit brings your charm closer to life. Keep your promise to yourself.`

// NewIntroCmd creates the intro command
func NewIntroCmd() *cobra.Command {
	var (
		plain    bool
		interval time.Duration
		text     string
	)

	cmd := &cobra.Command{
		Use:   "intro",
		Short: "Play the welcome message",
		Long: `Reveal the welcome message one character at a time.
Press any key to show it all at once, and again to exit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if plain {
				return playPlain(cmd.Context(), cmd.OutOrStdout(), text, interval)
			}

			model := newIntroModel(text, interval)
			defer model.tw.Close()

			_, err := tea.NewProgram(model,
				tea.WithContext(cmd.Context()),
				tea.WithOutput(cmd.OutOrStdout()),
			).Run()
			return err
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "Write the reveal without a terminal UI")
	cmd.Flags().DurationVar(&interval, "interval", typewriter.DefaultInterval, "Delay between characters")
	cmd.Flags().StringVar(&text, "text", introText, "Text to reveal")

	return cmd
}

// playPlain streams the reveal to out and returns once it is complete
func playPlain(ctx context.Context, out io.Writer, text string, interval time.Duration) error {
	var (
		mu      sync.Mutex
		printed int
	)

	tw := typewriter.New(
		typewriter.WithInterval(interval),
		typewriter.WithOnChange(func(shown string) {
			mu.Lock()
			defer mu.Unlock()
			if len(shown) > printed {
				fmt.Fprint(out, shown[printed:])
				printed = len(shown)
			}
		}),
	)
	defer tw.Close()

	tw.SetText(text)
	if err := tw.Wait(ctx); err != nil {
		return err
	}

	// done closes before the last callback runs
	mu.Lock()
	defer mu.Unlock()
	shown := tw.Text()
	fmt.Fprintln(out, shown[printed:])
	printed = len(shown)
	return nil
}

// revealMsg tells the program the typewriter moved on
type revealMsg struct{}

// introModel is the bubbletea model driving the typewriter
type introModel struct {
	tw       *typewriter.Typewriter
	updates  chan struct{}
	quitting bool
}

func newIntroModel(text string, interval time.Duration) *introModel {
	m := &introModel{updates: make(chan struct{}, 1)}
	m.tw = typewriter.New(
		typewriter.WithInterval(interval),
		typewriter.WithOnChange(func(string) {
			// coalesce; the view reads the current text
			select {
			case m.updates <- struct{}{}:
			default:
			}
		}),
	)
	m.tw.SetText(text)
	return m
}

func (m *introModel) waitForReveal() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-m.updates:
			return revealMsg{}
		case <-m.tw.Done():
			return revealMsg{}
		}
	}
}

// Init is the initial command for bubbletea
func (m *introModel) Init() tea.Cmd {
	return m.waitForReveal()
}

// Update handles messages and updates the model
func (m *introModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case revealMsg:
		if m.tw.Complete() {
			return m, nil
		}
		return m, m.waitForReveal()
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyEsc || m.tw.Complete() {
			m.quitting = true
			m.tw.Close()
			return m, tea.Quit
		}
		m.tw.Skip()
	}
	return m, nil
}

// View renders the UI
func (m *introModel) View() string {
	var b strings.Builder
	b.WriteString(m.tw.Text())
	if m.quitting {
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString("\n\n")
	if m.tw.Complete() {
		b.WriteString(color.New(color.Faint).Sprint("press any key to exit"))
	} else {
		b.WriteString(color.New(color.Faint).Sprint("press any key to skip"))
	}
	b.WriteString("\n")
	return b.String()
}
