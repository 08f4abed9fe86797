package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/san-kum/heatsim/internal/sim"
)

const temperatureSuffix = "_T"

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// WriteCSV writes one row per recorded time with a column per body. Every series
// must share the first series' time axis.
func WriteCSV(w io.Writer, series []sim.Series) error {
	cw := csv.NewWriter(w)

	header := []string{"time"}
	for _, s := range series {
		header = append(header, s.Name+temperatureSuffix)
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	if len(series) == 0 {
		cw.Flush()
		return cw.Error()
	}

	times := series[0].Times
	for _, s := range series {
		if len(s.Times) != len(times) || len(s.Temperatures) != len(times) {
			return fmt.Errorf("series %q has %d samples, expected %d", s.Name, len(s.Temperatures), len(times))
		}
	}

	row := make([]string, len(series)+1)
	for i, t := range times {
		row[0] = formatFloat(t)
		for j, s := range series {
			row[j+1] = formatFloat(s.Temperatures[i])
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// ReadCSV is the inverse of WriteCSV.
func ReadCSV(r io.Reader) ([]sim.Series, error) {
	cr := csv.NewReader(r)

	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 || len(records[0]) == 0 || records[0][0] != "time" {
		return nil, fmt.Errorf("missing time header")
	}

	header := records[0]
	series := make([]sim.Series, len(header)-1)
	for i := range series {
		series[i].Name = strings.TrimSuffix(header[i+1], temperatureSuffix)
	}

	for line, record := range records[1:] {
		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line+2, err)
		}
		for i := range series {
			v, err := strconv.ParseFloat(record[i+1], 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line+2, err)
			}
			series[i].Times = append(series[i].Times, t)
			series[i].Temperatures = append(series[i].Temperatures, v)
		}
	}

	return series, nil
}

type ExportSeries struct {
	Name         string    `json:"name"`
	Times        []float64 `json:"times"`
	Temperatures []float64 `json:"temperatures"`
}

type ExportData struct {
	Run    *RunMetadata   `json:"run,omitempty"`
	Series []ExportSeries `json:"series"`
}

func WriteJSON(w io.Writer, meta *RunMetadata, series []sim.Series) error {
	data := ExportData{
		Run:    meta,
		Series: make([]ExportSeries, len(series)),
	}
	for i, s := range series {
		data.Series[i] = ExportSeries{Name: s.Name, Times: s.Times, Temperatures: s.Temperatures}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
