package metrics

import "github.com/san-kum/squishy/internal/softbody"

// TornLinks counts links torn during the run.
type TornLinks struct {
	name  string
	count int
}

func NewTornLinks() *TornLinks {
	return &TornLinks{name: "torn_links"}
}

func (t *TornLinks) Name() string { return t.name }

func (t *TornLinks) Observe(_ *softbody.World, st softbody.StepStats) {
	t.count += st.Torn
}

func (t *TornLinks) Value() float64 { return float64(t.count) }

func (t *TornLinks) Reset() { t.count = 0 }
