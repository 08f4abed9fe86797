package config

import "sort"

var Presets = map[string]map[string]*Config{
	"ambient": {
		"coffee": {
			Mode: "ambient", Dt: 1, Duration: 1800,
			Ambient: AmbientConfig{Temperature: 22, Convection: 10},
			Bodies: []BodyConfig{
				{Name: "coffee", Material: "Water", Mass: 0.25, Area: 0.015, Temperature: 85},
			},
		},
		"heatsink": {
			Mode: "ambient", Dt: 0.5, Duration: 600,
			Ambient: AmbientConfig{Temperature: 25, Convection: 50},
			Bodies: []BodyConfig{
				{Name: "heatsink", Material: "Aluminium", Mass: 0.2, Area: 0.05, Temperature: 75},
			},
		},
		"quench": {
			Mode: "ambient", Dt: 0.1, Duration: 120,
			Ambient: AmbientConfig{Temperature: 20, Convection: 500},
			Bodies: []BodyConfig{
				{Name: "bar", Material: "Iron", Mass: 2, Area: 0.04, Temperature: 800},
			},
		},
	},
	"pair": {
		"contact": {
			Mode: "pair", Dt: 0.1, Duration: 300,
			Ambient: AmbientConfig{Temperature: 25, Convection: 10},
			Bodies: []BodyConfig{
				{Name: "copper", Material: "Copper", Mass: 1, Area: 0.06, Temperature: 90},
				{Name: "aluminium", Material: "Aluminium", Mass: 1, Area: 0.06, Temperature: 20},
			},
			Pair: PairConfig{A: 0, B: 1, K: 200, Area: 0.01, Thickness: 0.002},
		},
	},
	"coupled": {
		"chain": {
			Mode: "coupled", Dt: 1, Duration: 600,
			Ambient: AmbientConfig{Temperature: 25, Convection: 10},
			Bodies: []BodyConfig{
				{Name: "body_1", Mass: 2, SpecificHeat: 900, Area: 0.1, Temperature: 80},
				{Name: "body_2", Mass: 1, SpecificHeat: 900, Area: 0.1, Temperature: 30},
				{Name: "body_3", Mass: 0.5, SpecificHeat: 900, Area: 0.1, Temperature: 10},
			},
			Conductance: [][]float64{{0, 5, 0}, {5, 0, 3}, {0, 3, 0}},
		},
		"kitchen": {
			Mode: "coupled", Dt: 0.5, Duration: 900,
			Ambient: AmbientConfig{Temperature: 22, Convection: 10, Coefficients: []float64{10, 10, 25}},
			Bodies: []BodyConfig{
				{Name: "pan", Material: "Iron", Mass: 1.5, Area: 0.08, Temperature: 180},
				{Name: "oil", Material: "Olive oil", Mass: 0.2, Area: 0.03, Temperature: 25},
				{Name: "handle", Material: "Wood", Mass: 0.1, Area: 0.01, Temperature: 22},
			},
			Conductance: [][]float64{{0, 8, 0.5}, {8, 0, 0}, {0.5, 0, 0}},
		},
	},
}

// GetPreset returns a copy of the named preset for mode, or nil.
func GetPreset(mode, preset string) *Config {
	modePresets, ok := Presets[mode]
	if !ok {
		return nil
	}
	cfg, ok := modePresets[preset]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

// FindPreset searches every mode for a preset name.
func FindPreset(preset string) *Config {
	for _, mode := range ListModes() {
		if cfg := GetPreset(mode, preset); cfg != nil {
			return cfg
		}
	}
	return nil
}

func ListPresets(mode string) []string {
	modePresets, ok := Presets[mode]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(modePresets))
	for name := range modePresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func ListModes() []string {
	modes := make([]string, 0, len(Presets))
	for mode := range Presets {
		modes = append(modes, mode)
	}
	sort.Strings(modes)
	return modes
}
