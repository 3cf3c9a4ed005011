package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/san-kum/springsim/internal/pendulum"
	"github.com/san-kum/springsim/internal/sim"
)

type ExportData struct {
	Engine         string             `json:"engine"`
	LegacyRK4      bool               `json:"legacy_rk4"`
	SpringConstant float64            `json:"spring_constant"`
	RestLength     float64            `json:"rest_length"`
	Dt             float64            `json:"dt"`
	Steps          int                `json:"steps"`
	Evaluations    int                `json:"evaluations"`
	EnergyDrift    float64            `json:"energy_drift"`
	Times          []float64          `json:"times"`
	States         [][4]float64       `json:"states"`
	Engines        []string           `json:"engines"`
	Metrics        map[string]float64 `json:"metrics"`
}

func NewExportData(dt float64, r *sim.Result) ExportData {
	data := ExportData{
		Engine:         r.Final.Engine.String(),
		LegacyRK4:      r.Final.LegacyRK4,
		SpringConstant: r.Final.K,
		RestLength:     r.Final.L,
		Dt:             dt,
		Steps:          r.StepsTaken,
		Evaluations:    r.Evaluations,
		EnergyDrift:    r.EnergyDrift,
		Times:          make([]float64, len(r.Samples)),
		States:         make([][4]float64, len(r.Samples)),
		Engines:        make([]string, len(r.Samples)),
		Metrics:        r.Metrics,
	}

	for i, s := range r.Samples {
		data.Times[i] = s.Time
		data.States[i] = [4]float64{s.Pos.X, s.Pos.Y, s.Vel.X, s.Vel.Y}
		data.Engines[i] = s.Engine.String()
	}

	return data
}

// WriteJSON encodes the run as indented JSON. Each state row is
// [x, y, vx, vy].
func WriteJSON(w io.Writer, dt float64, r *sim.Result) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(NewExportData(dt, r))
}

// ReadJSON decodes a run written by WriteJSON. Final is rebuilt from the
// first and last samples, with the first as its initial snapshot.
func ReadJSON(r io.Reader) (*sim.Result, float64, error) {
	var data ExportData
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, 0, fmt.Errorf("report: decode: %w", err)
	}
	samples, err := data.Samples()
	if err != nil {
		return nil, 0, err
	}
	if len(samples) == 0 {
		return nil, 0, fmt.Errorf("report: export has no states")
	}

	first, last := samples[0], samples[len(samples)-1]
	final := pendulum.New(data.SpringConstant, data.RestLength,
		first.Pos.X, first.Pos.Y, first.Vel.X, first.Vel.Y, last.Engine)
	final.Pos, final.Vel = last.Pos, last.Vel
	final.LegacyRK4 = data.LegacyRK4

	metrics := data.Metrics
	if metrics == nil {
		metrics = make(map[string]float64)
	}
	return &sim.Result{
		Samples:     samples,
		Metrics:     metrics,
		Final:       final,
		EnergyDrift: data.EnergyDrift,
		StepsTaken:  data.Steps,
		Evaluations: data.Evaluations,
	}, data.Dt, nil
}

// Samples decodes exported state rows back into samples.
func (d ExportData) Samples() ([]sim.Sample, error) {
	if len(d.Times) != len(d.States) || len(d.Engines) != len(d.States) {
		return nil, fmt.Errorf("report: %d states, %d times, %d engines", len(d.States), len(d.Times), len(d.Engines))
	}
	out := make([]sim.Sample, len(d.States))
	for i, row := range d.States {
		engine, err := pendulum.ParseEngine(d.Engines[i])
		if err != nil {
			return nil, err
		}
		out[i] = sim.Sample{
			Time:   d.Times[i],
			Pos:    pendulum.Vec{X: row[0], Y: row[1]},
			Vel:    pendulum.Vec{X: row[2], Y: row[3]},
			Engine: engine,
		}
	}
	return out, nil
}
