package experiment

import (
	"context"
	"fmt"
	"sort"

	"github.com/san-kum/squishy/internal/config"
	"github.com/san-kum/squishy/internal/metrics"
	"github.com/san-kum/squishy/internal/softbody"
)

// Sample is the per-frame summary written to samples.csv.
type Sample struct {
	Frame      int
	Bodies     int
	MeanRadius float64
	AreaRatio  float64
	Kinetic    float64
	CentroidX  float64
	CentroidY  float64
	Links      int
	Contacts   int
}

type Result struct {
	Samples []Sample
	Metrics map[string]float64
	Frames  int
	Torn    int
	Errors  []error
	// World is the state after the last frame.
	World *softbody.World
}

// Observer is called after every frame.
type Observer interface {
	OnStep(frame int, w *softbody.World, st softbody.StepStats)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(frame int, w *softbody.World, st softbody.StepStats)

func (f ObserverFunc) OnStep(frame int, w *softbody.World, st softbody.StepStats) {
	f(frame, w, st)
}

type Experiment struct {
	cfg       *config.Config
	metrics   []metrics.Metric
	observers []Observer
}

func New(cfg *config.Config) *Experiment {
	return &Experiment{cfg: cfg}
}

func (e *Experiment) Setup(ms []metrics.Metric) error {
	if err := e.cfg.Validate(); err != nil {
		return err
	}
	e.metrics = ms
	return nil
}

func (e *Experiment) AddObserver(o Observer) { e.observers = append(e.observers, o) }

// Config returns the config the experiment runs.
func (e *Experiment) Config() *config.Config { return e.cfg }

// Run builds the world and steps it for the configured number of frames,
// firing scripted events before the frame they are scheduled for. An event
// that fails is recorded and the run continues. Run stops early when ctx is
// cancelled or the world produces non-finite positions.
func (e *Experiment) Run(ctx context.Context) (*Result, error) {
	w, err := e.cfg.Build()
	if err != nil {
		return nil, err
	}

	events := append([]config.Event(nil), e.cfg.Events...)
	sort.SliceStable(events, func(i, j int) bool { return events[i].Frame < events[j].Frame })

	for _, m := range e.metrics {
		m.Reset()
	}

	result := &Result{
		Samples: make([]Sample, 0, e.cfg.Frames+1),
		Metrics: make(map[string]float64),
		World:   w,
	}
	result.Samples = append(result.Samples, Summarize(w, softbody.StepStats{}))

	next := 0
	for frame := 0; frame < e.cfg.Frames; frame++ {
		select {
		case <-ctx.Done():
			e.collect(result)
			return result, ctx.Err()
		default:
		}

		for next < len(events) && events[next].Frame <= frame {
			if err := events[next].Apply(w); err != nil {
				result.Errors = append(result.Errors, fmt.Errorf("frame %d %s: %w", frame, events[next].Action, err))
			}
			next++
		}

		st := w.Step()
		result.Frames++
		result.Torn += st.Torn
		for _, m := range e.metrics {
			m.Observe(w, st)
		}
		for _, o := range e.observers {
			o.OnStep(st.Frame, w, st)
		}
		result.Samples = append(result.Samples, Summarize(w, st))

		if !w.Valid() {
			result.Errors = append(result.Errors, fmt.Errorf("frame %d: non-finite particle positions", st.Frame))
			break
		}
	}

	e.collect(result)
	return result, nil
}

func (e *Experiment) collect(result *Result) {
	for _, m := range e.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}

// Summarize reduces the world to one sample.
func Summarize(w *softbody.World, st softbody.StepStats) Sample {
	s := Sample{Frame: st.Frame, Contacts: st.Contacts, Kinetic: metrics.Kinetic(w)}
	bodies := w.Bodies()
	s.Bodies = len(bodies)
	if len(bodies) == 0 {
		return s
	}

	closed := 0
	var cx, cy float64
	for _, b := range bodies {
		c := b.Centroid()
		cx += c.X
		cy += c.Y
		s.Links += len(b.Links)
		if base := b.BaseArea(); base > 0 {
			s.MeanRadius += b.MeanRadius()
			s.AreaRatio += b.Area() / base
			closed++
		}
	}
	s.CentroidX = cx / float64(len(bodies))
	s.CentroidY = cy / float64(len(bodies))
	if closed > 0 {
		s.MeanRadius /= float64(closed)
		s.AreaRatio /= float64(closed)
	}
	return s
}
