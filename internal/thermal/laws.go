package thermal

// ConvectionRate returns h·A·(tBody − tAmbient) in watts.
// A positive rate means the body is losing heat to the ambient.
func ConvectionRate(h, area, tBody, tAmbient float64) float64 {
	return h * area * (tBody - tAmbient)
}

// ConductionRate returns k·A·(t1 − t2)/thickness in watts, positive from 1 to 2.
func ConductionRate(k, area, thickness, t1, t2 float64) (float64, error) {
	if !(thickness > 0) {
		return 0, invalid("conduction thickness must be positive, got %g", thickness)
	}
	return k * area * (t1 - t2) / thickness, nil
}

// HeatOverStep integrates a constant rate over dt seconds.
func HeatOverStep(rate, dt float64) float64 {
	return rate * dt
}
