package interactive

import (
	"context"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/manifoldco/promptui"
	"github.com/omamori-labs/omamori/internal/domain/config"
	"github.com/omamori-labs/omamori/internal/usecase"
	"github.com/sahilm/fuzzy"
)

// SelectorAdapter handles interactive selection
type SelectorAdapter struct {
	config *config.RuntimeConfig
}

// NewSelectorAdapter creates a new selector adapter
func NewSelectorAdapter(cfg *config.RuntimeConfig) *SelectorAdapter {
	return &SelectorAdapter{config: cfg}
}

// SelectProfile asks which deployment profile to run
func (s *SelectorAdapter) SelectProfile(ctx context.Context, profiles []string) (string, error) {
	if len(profiles) == 0 {
		return "", fmt.Errorf("no deployment profiles configured")
	}
	if len(profiles) == 1 {
		return profiles[0], nil
	}
	if s.config.NonInteractive {
		return "", fmt.Errorf("interactive selection not available in non-interactive mode")
	}

	options := formatProfileOptions(s.config.OmamoriConfig, profiles)

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}",
		Active:   "▸ {{ . | cyan }}",
		Inactive: "  {{ . | faint }}",
		Selected: "✓ {{ . | green }}",
		Help:     color.New(color.FgYellow).Sprint("Use arrow keys to navigate, Enter to select"),
	}

	prompt := promptui.Select{
		Label:     "Deployment profile",
		Items:     options,
		Templates: templates,
		Size:      10,
		Searcher:  fuzzySearcher(profiles),
	}

	index, _, err := prompt.Run()
	if err != nil {
		return "", fmt.Errorf("selection cancelled: %w", err)
	}

	return profiles[index], nil
}

// formatProfileOptions renders "name → output [steps]" for each profile
func formatProfileOptions(cfg *config.OmamoriConfig, profiles []string) []string {
	options := make([]string, len(profiles))
	for i, name := range profiles {
		profile := cfg.Profiles[name]

		var steps []string
		if profile.TransferOwnership {
			steps = append(steps, "transfer ownership")
		}
		if profile.Verify {
			steps = append(steps, "verify")
		}

		option := fmt.Sprintf("%s → %s",
			color.New(color.FgWhite, color.Bold).Sprint(name),
			color.New(color.FgBlue).Sprint(profile.Output))
		if len(steps) > 0 {
			option += " " + color.New(color.FgYellow).Sprintf("[%s]", strings.Join(steps, ", "))
		}
		options[i] = option
	}
	return options
}

// fuzzySearcher matches the typed input against profile names
func fuzzySearcher(items []string) func(input string, index int) bool {
	return func(input string, index int) bool {
		if input == "" {
			return true
		}

		input = strings.ToLower(input)
		item := strings.ToLower(items[index])
		if strings.Contains(item, input) {
			return true
		}

		return len(fuzzy.Find(input, []string{item})) > 0
	}
}

var _ usecase.ProfileSelector = (*SelectorAdapter)(nil)
