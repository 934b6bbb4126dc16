package config

import (
	"sort"

	"github.com/omamori-labs/omamori/internal/domain"
	"github.com/omamori-labs/omamori/internal/domain/config"
	"github.com/sahilm/fuzzy"
)

// ResolveProfile looks up a deployment profile by name. An empty name selects "default".
func ResolveProfile(cfg *config.OmamoriConfig, name string) (config.Profile, error) {
	if name == "" {
		name = "default"
	}

	if profile, ok := cfg.Profiles[name]; ok {
		return profile, nil
	}

	names := ProfileNames(cfg)
	var suggestions []string
	for _, match := range fuzzy.Find(name, names) {
		suggestions = append(suggestions, match.Str)
	}

	return config.Profile{}, domain.UnknownProfileErr{Name: name, Suggestions: suggestions}
}

// ProfileNames returns the configured profile names, sorted
func ProfileNames(cfg *config.OmamoriConfig) []string {
	names := make([]string, 0, len(cfg.Profiles))
	for name := range cfg.Profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
