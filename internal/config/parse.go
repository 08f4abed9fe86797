package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/san-kum/heatsim/internal/sim"
	"github.com/san-kum/heatsim/internal/thermal"
)

// ParseMatrix reads rows separated by ';' and columns by ',', e.g. "0,5;5,0".
// Empty cells and rows are skipped.
func ParseMatrix(s string) ([][]float64, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}

	var matrix [][]float64
	for _, row := range strings.Split(s, ";") {
		row = strings.TrimSpace(row)
		if row == "" {
			continue
		}
		var values []float64
		for _, cell := range strings.Split(row, ",") {
			cell = strings.TrimSpace(cell)
			if cell == "" {
				continue
			}
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid matrix %q: use the format '1,2;3,4'", s)
			}
			values = append(values, v)
		}
		matrix = append(matrix, values)
	}
	return matrix, nil
}

// BodiesFromLists builds bodies from parallel per-body lists. A nil areas list
// gives every body sim.DefaultArea. Bodies are named body_1, body_2, ...
func BodiesFromLists(temperatures, masses, specificHeats, areas []float64) ([]BodyConfig, error) {
	n := len(temperatures)
	if n == 0 {
		return nil, fmt.Errorf("%w: no initial temperatures given", thermal.ErrInvalidParameter)
	}
	if len(masses) != n || len(specificHeats) != n {
		return nil, fmt.Errorf("%w: %d temperatures, %d masses, %d specific heats",
			thermal.ErrConfigMismatch, n, len(masses), len(specificHeats))
	}
	if areas != nil && len(areas) != n {
		return nil, fmt.Errorf("%w: %d areas for %d bodies", thermal.ErrConfigMismatch, len(areas), n)
	}

	bodies := make([]BodyConfig, n)
	for i := range bodies {
		area := sim.DefaultArea
		if areas != nil {
			area = areas[i]
		}
		bodies[i] = BodyConfig{
			Name:         fmt.Sprintf("body_%d", i+1),
			Mass:         masses[i],
			SpecificHeat: specificHeats[i],
			Area:         area,
			Temperature:  temperatures[i],
		}
	}
	return bodies, nil
}
