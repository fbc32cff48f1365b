package powder

// exchangeHeat pushes heat from e into every cooler neighbor.
func (w *World) exchangeHeat(e *Element) {
	coef := w.cfg.Params.HeatCoef
	w.neighbors(e.X, e.Y, func(_, _ int, n *Element) {
		if n == nil || n.Temperature >= e.Temperature {
			return
		}
		heat := e.ThermalCond * (e.Temperature - n.Temperature) * coef
		n.AddHeat(heat)
		e.AddHeat(-heat)
	})
}

// exchangeAirHeat moves heat between e and the air cell it sits in. The
// hotter side's conductivity governs the flow.
func (w *World) exchangeAirHeat(e *Element) {
	cfg := w.air.Config()
	if !cfg.AmbientHeat {
		return
	}
	at := w.air.Temperature(e.X, e.Y)
	switch {
	case e.Temperature > at:
		heat := e.ThermalCond * (e.Temperature - at) * w.cfg.Params.HeatCoef
		e.AddHeat(-heat)
		w.air.AddHeat(e.X, e.Y, heat)
	case e.Temperature < at:
		heat := cfg.Conductivity * (at - e.Temperature) * w.cfg.Params.HeatCoef
		e.AddHeat(heat)
		w.air.AddHeat(e.X, e.Y, -heat)
	}
}
