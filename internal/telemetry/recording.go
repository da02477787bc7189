package telemetry

// Recording accumulates samples and feeds every attached observer.
type Recording struct {
	Samples   []Sample
	observers []Observer
}

func NewRecording(observers ...Observer) *Recording {
	return &Recording{observers: observers}
}

func (r *Recording) Add(s Sample) {
	r.Samples = append(r.Samples, s)
	for _, o := range r.observers {
		o.Observe(s)
	}
}

// Metrics returns the current value of every observer by name.
func (r *Recording) Metrics() map[string]float64 {
	m := make(map[string]float64, len(r.observers))
	for _, o := range r.observers {
		m[o.Name()] = o.Value()
	}
	return m
}

func (r *Recording) Reset() {
	r.Samples = r.Samples[:0]
	for _, o := range r.observers {
		o.Reset()
	}
}

// Series extracts one column across all samples for plotting.
func (r *Recording) Series(name string) []float64 {
	out := make([]float64, 0, len(r.Samples))
	for _, s := range r.Samples {
		switch name {
		case "x":
			out = append(out, s.Pos.X)
		case "y":
			out = append(out, s.Pos.Y)
		case "speed":
			out = append(out, s.Vel.Length())
		case "vy":
			out = append(out, s.Vel.Y)
		}
	}
	return out
}

// SeriesNames lists the columns Series understands.
func SeriesNames() []string {
	return []string{"x", "y", "speed", "vy"}
}
