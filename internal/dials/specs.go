package dials

// Tuning carries the tuned constants of the composite dials. They are stated
// heuristics, not derived invariants, so callers may override them from
// configuration.
type Tuning struct {
	Alpha            float64
	CurveCap         float64
	SahmFloor        float64
	CoinFloor        float64
	KickerOffset     int
	KickerPercentile float64
	KickerBonus      float64
}

// DefaultTuning returns the stock tuning.
func DefaultTuning() Tuning {
	return Tuning{
		Alpha:            0.20,
		CurveCap:         35,
		SahmFloor:        20,
		CoinFloor:        15,
		KickerOffset:     31,
		KickerPercentile: 90,
		KickerBonus:      5,
	}
}

// DefaultDialSet declares the published dial set in display order.
func DefaultDialSet(t Tuning) []DialSpec {
	return []DialSpec{
		LevelDialSpec{
			ID:       "vix",
			Title:    "VOLATILITY (VIX)",
			SeriesID: "VIXCLS",
			Round:    1,
			Bands:    Bands{GoodMax: 18, WarnMax: 28, HigherIsWorse: true},
			Min:      10, Max: 40,
			MinLabel: "10", MidLabel: "20", MaxLabel: "40",
			Tooltip: "CBOE VIX close from FRED (VIXCLS). Higher = riskier.",
		},
		LevelDialSpec{
			ID:       "hy_oas",
			Title:    "HIGH YIELD SPREAD (OAS)",
			SeriesID: "BAMLH0A0HYM2",
			Scale:    100, // percent to basis points
			Bands:    Bands{GoodMax: 350, WarnMax: 500, HigherIsWorse: true},
			Unit:     " bp",
			Min:      250, Max: 800,
			MinLabel: "250", MidLabel: "500", MaxLabel: "800",
			Tooltip: "HY OAS from FRED (ICE BofA). Higher = tighter financial conditions / more stress.",
		},
		LevelDialSpec{
			ID:       "ig_oas",
			Title:    "INVESTMENT GRADE SPREAD (OAS)",
			SeriesID: "BAMLC0A0CM",
			Scale:    100,
			Bands:    Bands{GoodMax: 130, WarnMax: 200, HigherIsWorse: true},
			Unit:     " bp",
			Min:      80, Max: 300,
			MinLabel: "80", MidLabel: "180", MaxLabel: "300",
			Tooltip: "IG OAS from FRED (ICE BofA). Higher = tighter conditions / credit stress.",
		},
		LevelDialSpec{
			ID:       "curve_10y2y",
			Title:    "YIELD CURVE (10Y-2Y)",
			SeriesID: "T10Y2Y",
			Scale:    100,
			Bands:    Bands{GoodMax: 0, WarnMax: -50, HigherIsWorse: false},
			Unit:     " bp",
			Min:      -200, Max: 200,
			MinLabel: "-200", MidLabel: "0", MaxLabel: "200",
			Tooltip: "10Y-2Y spread from FRED. More negative (inversion) = growth risk signal.",
		},
		DrawdownDialSpec{
			ID:       "spy_dd_1m",
			Title:    "EQUITY DRAWDOWN (SPY, 1M)",
			Symbol:   "spy.us",
			Lookback: 21,
			Bands:    Bands{GoodMax: -6, WarnMax: -10, HigherIsWorse: false},
			Min:      -20, Max: 0,
			MinLabel: "-20%", MidLabel: "-10%", MaxLabel: "0%",
			Tooltip: "SPY drawdown from 1M peak (21 trading days). More negative = risk-off.",
		},
		DrawdownDialSpec{
			ID:       "kre_dd_3m",
			Title:    "REGIONAL BANKS DRAWDOWN (KRE, 3M)",
			Symbol:   "kre.us",
			Lookback: 63,
			Bands:    Bands{GoodMax: -8, WarnMax: -15, HigherIsWorse: false},
			Min:      -30, Max: 0,
			MinLabel: "-30%", MidLabel: "-15%", MaxLabel: "0%",
			Tooltip: "KRE drawdown from 3M peak (63 trading days). More negative = bank stress proxy.",
		},
		CompositeSpec{
			ID:    "recession_risk",
			Title: "RECESSION RISK",
			Components: []ComponentSpec{
				{Name: "curve", SeriesID: "T10Y3M", Years: 15, Weight: 0.50, Method: MethodPercentileInverted},
				{Name: "sahm", SeriesID: "SAHMREALTIME", Years: 20, Weight: 0.30, Method: MethodScaled, Scale: 100},
				{Name: "coin", SeriesID: "RECPROUSM156N", Years: 20, Weight: 0.20, Method: MethodScaled, Scale: 1},
			},
			Cap: &ConfirmationCap{
				Leading: "curve",
				Cap:     t.CurveCap,
				Confirmers: []Confirmer{
					{Name: "sahm", Floor: t.SahmFloor},
					{Name: "coin", Floor: t.CoinFloor},
				},
			},
			Alpha:    t.Alpha,
			Bands:    Bands{GoodMax: 35, WarnMax: 60, HigherIsWorse: true},
			MinLabel: "Low", MidLabel: "Elevated", MaxLabel: "High",
			Tooltip: "Composite recession risk dial (0-100). " +
				"Blend: inverted curve stress (T10Y3M), Sahm Rule realtime, and smoothed recession probability. " +
				"Curve is capped when labour/coincident confirmation is low.",
		},
		CompositeSpec{
			ID:    "credit_stress",
			Title: "CREDIT STRESS",
			Components: []ComponentSpec{
				{Name: "HY OAS", SeriesID: "BAMLH0A0HYM2", Years: 15, Weight: 0.30, Method: MethodPercentile},
				{Name: "BBB OAS", SeriesID: "BAMLC0A4CBBB", Years: 15, Weight: 0.10, Method: MethodPercentile},
				{Name: "HY-IG", SeriesID: "BAMLH0A0HYM2", MinusSeriesID: "BAMLC0A0CM", Years: 15, Weight: 0.10, Method: MethodPercentile},
				{Name: "CPFF", SeriesID: "CPFF", Years: 15, Weight: 0.20, Method: MethodPercentile},
				{Name: "STLFSI4", SeriesID: "STLFSI4", Years: 15, Weight: 0.15, Method: MethodPercentile},
				{Name: "NFCIRISK", SeriesID: "NFCIRISK", Years: 15, Weight: 0.15, Method: MethodPercentile},
			},
			Kicker: &MomentumKicker{
				SeriesID:   "BAMLH0A0HYM2",
				Years:      15,
				Offset:     t.KickerOffset,
				Percentile: t.KickerPercentile,
				Bonus:      t.KickerBonus,
				MinObs:     40,
			},
			Alpha:    t.Alpha,
			Bands:    Bands{GoodMax: 40, WarnMax: 65, HigherIsWorse: true},
			MinLabel: "Easy", MidLabel: "Tightening", MaxLabel: "Crisis",
			Tooltip: "Composite credit stress dial (0-100, percentile-based). " +
				"Blend of HY/BBB spreads, HY-IG repricing, CPFF funding stress, STLFSI4 and NFCIRISK. " +
				"Adds a small kicker when HY spreads widen rapidly.",
		},
	}
}
