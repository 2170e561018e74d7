// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package profile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/danielhkuo/chamber-stats/stats"
)

var ErrInvalidChamberSize = errors.New("seats must not be negative")

// DefaultName labels the built-in profile
const DefaultName = "Default chamber"

// OutcomeKeywords lists the status substrings for each outcome. An empty
// list keeps the built-in keywords for that outcome.
type OutcomeKeywords struct {
	Success []string `yaml:"success,omitempty"`
	Failure []string `yaml:"failure,omitempty"`
	Neutral []string `yaml:"neutral,omitempty"`
}

// Windows overrides ranking sizes; zero keeps the default.
type Windows struct {
	Consensus int `yaml:"consensus,omitempty"`
	Anomalies int `yaml:"anomalies,omitempty"`
	Parties   int `yaml:"parties,omitempty"`
	Deputies  int `yaml:"deputies,omitempty"`
}

// Profile describes one legislature. It models a chamber YAML file:
//
//	name: Congreso de los Diputados
//	seats: 350
//	mixed_group_label: Mixed Group
//	outcomes:
//	  success: [Approved, Ratified]
type Profile struct {
	Name              string          `yaml:"name"`
	Seats             int             `yaml:"seats,omitempty"`
	GovernmentKeyword string          `yaml:"government_keyword,omitempty"`
	MixedGroupKeyword string          `yaml:"mixed_group_keyword,omitempty"`
	MixedGroupLabel   string          `yaml:"mixed_group_label,omitempty"`
	Outcomes          OutcomeKeywords `yaml:"outcomes,omitempty"`
	Windows           Windows         `yaml:"windows,omitempty"`
}

// Default returns the profile used when no file is configured
func Default() Profile {
	return Profile{Name: DefaultName, Seats: stats.DefaultChamberSize}
}

// Load reads a profile from a YAML file
func Load(path string) (Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, fmt.Errorf("failed to read profile: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML profile. Unknown keys are rejected so typos in a
// chamber file do not silently fall back to defaults.
func Parse(data []byte) (Profile, error) {
	var p Profile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil && !errors.Is(err, io.EOF) {
		return Profile{}, fmt.Errorf("failed to parse profile: %w", err)
	}

	if p.Seats < 0 {
		return Profile{}, fmt.Errorf("%w: %d", ErrInvalidChamberSize, p.Seats)
	}
	if p.Seats == 0 {
		p.Seats = stats.DefaultChamberSize
	}
	if p.Name == "" {
		p.Name = DefaultName
	}
	return p, nil
}

// Options converts the profile into analyzer options
func (p Profile) Options() stats.Options {
	return stats.Options{
		ChamberSize:       p.Seats,
		GovernmentKeyword: p.GovernmentKeyword,
		MixedGroupKeyword: p.MixedGroupKeyword,
		MixedGroupLabel:   p.MixedGroupLabel,
		OutcomeRules:      p.outcomeRules(),
		ConsensusWindow:   p.Windows.Consensus,
		AnomalyWindow:     p.Windows.Anomalies,
		PartyWindow:       p.Windows.Parties,
		DeputyWindow:      p.Windows.Deputies,
	}
}

// outcomeRules keeps the success, failure, neutral evaluation order
func (p Profile) outcomeRules() []stats.OutcomeRule {
	rules := stats.DefaultOutcomeRules()
	for i := range rules {
		var custom []string
		switch rules[i].Category {
		case stats.OutcomeSuccess:
			custom = p.Outcomes.Success
		case stats.OutcomeFailure:
			custom = p.Outcomes.Failure
		case stats.OutcomeNeutral:
			custom = p.Outcomes.Neutral
		}
		if len(custom) > 0 {
			rules[i].Keywords = custom
		}
	}
	return rules
}
