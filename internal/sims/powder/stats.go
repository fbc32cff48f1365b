package powder

// Stats summarizes the world after the most recent tick.
type Stats struct {
	Tick            uint64
	Elements        int
	TotalMass       float64
	FieldMass       float64
	MeanTemperature float64
	PeakPressure    float64

	// Counters below cover the most recent tick only.
	Spawned     int
	Destroyed   int
	Transitions int
}

func (s *Stats) beginTick(tick uint64) {
	s.Tick = tick
	s.Spawned = 0
	s.Destroyed = 0
	s.Transitions = 0
}

// Stats returns a copy of the current statistics.
func (w *World) Stats() Stats { return w.stats }
