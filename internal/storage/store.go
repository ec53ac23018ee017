package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/squishy/internal/config"
	"github.com/san-kum/squishy/internal/experiment"
	"github.com/san-kum/squishy/internal/softbody"
)

const (
	metadataFile = "metadata.json"
	samplesFile  = "samples.csv"
	finalFile    = "final.json"
	configFile   = "config.yaml"
)

var sampleHeader = []string{
	"frame", "bodies", "mean_radius", "area_ratio", "kinetic",
	"centroid_x", "centroid_y", "links", "contacts",
}

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Toy       string             `json:"toy"`
	Timestamp time.Time          `json:"timestamp"`
	Seed      int64              `json:"seed"`
	Frames    int                `json:"frames"`
	Bodies    int                `json:"bodies"`
	Params    softbody.UIParams  `json:"params"`
	Material  softbody.Material  `json:"material"`
	Metrics   map[string]float64 `json:"metrics"`
	Torn      int                `json:"torn"`
	Errors    []string           `json:"errors,omitempty"`
}

// Save writes a run as metadata.json, samples.csv, the final body
// snapshots and the config it ran with.
func (s *Store) Save(cfg *config.Config, result *experiment.Result) (string, error) {
	runID, runDir, err := s.newRunDir(cfg.Toy)
	if err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Toy:       cfg.Toy,
		Timestamp: time.Now(),
		Seed:      cfg.Seed,
		Frames:    result.Frames,
		Params:    cfg.Params,
		Material:  cfg.EngineMaterial(),
		Metrics:   make(map[string]float64, len(result.Metrics)),
		Torn:      result.Torn,
	}
	// JSON has no NaN; a blown-up run keeps only its finite metrics.
	for k, v := range result.Metrics {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			meta.Metrics[k] = v
		}
	}
	if result.World != nil {
		meta.Bodies = result.World.Len()
	}
	for _, e := range result.Errors {
		meta.Errors = append(meta.Errors, e.Error())
	}

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := config.Save(filepath.Join(runDir, configFile), cfg); err != nil {
		return "", err
	}
	if result.World != nil {
		if err := writeJSON(filepath.Join(runDir, finalFile), result.World.Snapshot()); err != nil {
			return "", err
		}
	}

	f, err := os.Create(filepath.Join(runDir, samplesFile))
	if err != nil {
		return "", err
	}
	defer f.Close()
	if err := WriteSamples(f, result.Samples); err != nil {
		return "", err
	}
	return runID, nil
}

func (s *Store) newRunDir(toy string) (string, string, error) {
	if err := s.Init(); err != nil {
		return "", "", err
	}
	base := fmt.Sprintf("%s_%d", toy, time.Now().Unix())
	for i := 0; ; i++ {
		runID := base
		if i > 0 {
			runID = fmt.Sprintf("%s_%d", base, i)
		}
		runDir := filepath.Join(s.baseDir, runID)
		err := os.Mkdir(runDir, 0755)
		if err == nil {
			return runID, runDir, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return "", "", err
		}
	}
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// WriteSamples writes samples as CSV with a header row.
func WriteSamples(out io.Writer, samples []experiment.Sample) error {
	w := csv.NewWriter(out)
	if err := w.Write(sampleHeader); err != nil {
		return err
	}
	ff := func(v float64) string { return strconv.FormatFloat(v, 'f', 6, 64) }
	for _, s := range samples {
		row := []string{
			strconv.Itoa(s.Frame),
			strconv.Itoa(s.Bodies),
			ff(s.MeanRadius),
			ff(s.AreaRatio),
			ff(s.Kinetic),
			ff(s.CentroidX),
			ff(s.CentroidY),
			strconv.Itoa(s.Links),
			strconv.Itoa(s.Contacts),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// List returns every stored run, newest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}
	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.After(runs[j].Timestamp) })

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadConfig returns the config a run was made with.
func (s *Store) LoadConfig(runID string) (*config.Config, error) {
	return config.Load(filepath.Join(s.baseDir, runID, configFile))
}

// LoadFinal returns the body snapshots taken after the last frame.
func (s *Store) LoadFinal(runID string) ([]softbody.BodySnapshot, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, finalFile))
	if err != nil {
		return nil, err
	}
	var snaps []softbody.BodySnapshot
	if err := json.Unmarshal(data, &snaps); err != nil {
		return nil, err
	}
	return snaps, nil
}

func (s *Store) LoadSamples(runID string) ([]experiment.Sample, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, samplesFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return ReadSamples(file)
}

// ReadSamples parses CSV written by WriteSamples. Rows that fail to parse
// are skipped.
func ReadSamples(in io.Reader) ([]experiment.Sample, error) {
	r := csv.NewReader(in)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []experiment.Sample{}, nil
	}

	samples := make([]experiment.Sample, 0, len(records)-1)
	for _, rec := range records[1:] {
		if len(rec) < len(sampleHeader) {
			continue
		}
		var s experiment.Sample
		var ints [4]int
		var floats [5]float64
		ok := true
		for i, idx := range []int{0, 1, 7, 8} {
			if ints[i], err = strconv.Atoi(rec[idx]); err != nil {
				ok = false
			}
		}
		for i, idx := range []int{2, 3, 4, 5, 6} {
			if floats[i], err = strconv.ParseFloat(rec[idx], 64); err != nil {
				ok = false
			}
		}
		if !ok {
			continue
		}
		s.Frame, s.Bodies, s.Links, s.Contacts = ints[0], ints[1], ints[2], ints[3]
		s.MeanRadius, s.AreaRatio, s.Kinetic, s.CentroidX, s.CentroidY = floats[0], floats[1], floats[2], floats[3], floats[4]
		samples = append(samples, s)
	}
	return samples, nil
}

// ExportData is the JSON form of a whole run.
type ExportData struct {
	Meta    RunMetadata             `json:"meta"`
	Samples []experiment.Sample     `json:"samples"`
	Final   []softbody.BodySnapshot `json:"final,omitempty"`
}

// ExportJSON writes a stored run as a single JSON document.
func (s *Store) ExportJSON(runID string, out io.Writer) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	samples, err := s.LoadSamples(runID)
	if err != nil {
		return err
	}
	final, err := s.LoadFinal(runID)
	if err != nil && !os.IsNotExist(err) {
		return err
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(ExportData{Meta: *meta, Samples: samples, Final: final})
}

// ExportCSV copies a run's samples to out.
func (s *Store) ExportCSV(runID string, out io.Writer) error {
	samples, err := s.LoadSamples(runID)
	if err != nil {
		return err
	}
	return WriteSamples(out, samples)
}
