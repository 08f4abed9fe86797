package sim

import "math"

// Geometry used for every conducting pair in coupled mode. The conductance matrix
// only carries the per-pair coefficient; contact area and thickness are fixed.
const (
	CoupledContactArea = 0.01
	CoupledThickness   = 0.001
)

const (
	DefaultAmbientTemperature = 25.0
	DefaultConvection         = 10.0
	DefaultDt                 = 1.0
)

type Mode int

const (
	ModeAmbient Mode = iota
	ModePair
	ModeCoupled
)

func (m Mode) String() string {
	switch m {
	case ModePair:
		return "pair"
	case ModeCoupled:
		return "coupled"
	default:
		return "ambient"
	}
}

// Config describes the environment an engine steps its bodies in.
type Config struct {
	Dt                  float64
	AmbientTemperature  float64
	Convection          float64
	AmbientCoefficients []float64
	Conductance         [][]float64
}

func DefaultConfig() Config {
	return Config{
		Dt:                 DefaultDt,
		AmbientTemperature: DefaultAmbientTemperature,
		Convection:         DefaultConvection,
	}
}

// Pair designates two bodies in conductive contact for pair mode.
type Pair struct {
	A, B      int
	K         float64
	Area      float64
	Thickness float64
}

// DefaultPair returns the contact parameters used when none are given.
func DefaultPair() Pair {
	return Pair{A: 0, B: 1, K: 50.0, Area: 0.01, Thickness: 0.001}
}

// StepReport describes one completed step. Heat values are joules received by each body.
// The slices are reused between steps; observers must copy anything they keep.
type StepReport struct {
	Step        int
	Time        float64
	Before      []float64
	After       []float64
	Capacities  []float64
	Convective  []float64
	Conduction  []float64
	// PairBalance is Σ Conduction: the net heat conduction added to the system this step.
	PairBalance float64
}

// SystemEnergy returns Σ C_i·T_i for the given temperatures.
func (r StepReport) SystemEnergy(temps []float64) float64 {
	sum := 0.0
	for i, c := range r.Capacities {
		sum += c * temps[i]
	}
	return sum
}

type Metric interface {
	Name() string
	Observe(r StepReport)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(r StepReport)
}

// Series is one body's recorded temperature curve.
type Series struct {
	Name         string
	Times        []float64
	Temperatures []float64
}

func (s Series) Final() float64 {
	if len(s.Temperatures) == 0 {
		return math.NaN()
	}
	return s.Temperatures[len(s.Temperatures)-1]
}

type Result struct {
	Mode        Mode
	Series      []Series
	HeatGained  []float64 // J per body since construction, C·(T − T₀)
	StepsTaken  int
	Elapsed     float64
	Unsimulated float64
	Metrics     map[string]float64
}
