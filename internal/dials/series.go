package dials

// Last returns the most recent observation, if any.
func (s Series) Last() (Observation, bool) {
	if len(s) == 0 {
		return Observation{}, false
	}
	return s[len(s)-1], true
}

// Values extracts the raw values in series order.
func (s Series) Values() []float64 {
	if len(s) == 0 {
		return nil
	}
	out := make([]float64, len(s))
	for i, obs := range s {
		out[i] = obs.Value
	}
	return out
}

// TailYears keeps only observations on or after the last date minus the
// given number of calendar years. An empty series is returned unchanged.
func (s Series) TailYears(years int) Series {
	if len(s) == 0 || years <= 0 {
		return s
	}
	cutoff := s[len(s)-1].Date.AddDate(-years, 0, 0)
	for i, obs := range s {
		if !obs.Date.Before(cutoff) {
			return s[i:]
		}
	}
	return Series{}
}

// Deltas returns the point-to-point changes over the given observation
// offset: out[i] = s[i+offset] - s[i]. Nil when the series is too short.
func (s Series) Deltas(offset int) []float64 {
	if offset <= 0 || len(s) <= offset {
		return nil
	}
	out := make([]float64, 0, len(s)-offset)
	for i := offset; i < len(s); i++ {
		out = append(out, s[i].Value-s[i-offset].Value)
	}
	return out
}

// DiffByDate inner-joins two series on date and returns a series of a-b
// differentials, ordered by a's dates.
func DiffByDate(a, b Series) Series {
	if len(a) == 0 || len(b) == 0 {
		return nil
	}
	lookup := make(map[int64]float64, len(b))
	for _, obs := range b {
		lookup[obs.Date.Unix()] = obs.Value
	}
	var out Series
	for _, obs := range a {
		vb, ok := lookup[obs.Date.Unix()]
		if !ok {
			continue
		}
		out = append(out, Observation{Date: obs.Date, Value: obs.Value - vb})
	}
	return out
}
