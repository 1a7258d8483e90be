package emit

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/cannon/pkg/order"
	"github.com/matzehuels/cannon/pkg/plan"
)

// Plan is the JSON document describing a finished run.
type Plan struct {
	RunID       string       `json:"run_id,omitempty"`
	Metrics     plan.Summary `json:"metrics"`
	Orientation Orientation  `json:"orientation"`
	Slots       []string     `json:"slots"`
	Priority    []int        `json:"priority"`
	Shots       []Shot       `json:"shots"`
}

// Orientation is the decoded launch orientation.
type Orientation struct {
	Index    int    `json:"index"`
	Label    string `json:"label"`
	West     bool   `json:"west"`
	North    bool   `json:"north"`
	Mirrored bool   `json:"mirrored"`
}

// Shot is one entry of the firing sequence.
type Shot struct {
	Row    int       `json:"row"`
	Col    int       `json:"col"`
	Cost   plan.Pair `json:"cost"`
	Vector string    `json:"vector"`
}

// NewPlan describes res fired in the order of seq.
func NewPlan(runID string, res *plan.Result, seq *order.Sequence) Plan {
	o := seq.Orientation
	p := Plan{
		RunID:   runID,
		Metrics: res.Summary(),
		Orientation: Orientation{
			Index:    int(o),
			Label:    o.String(),
			West:     o.West(),
			North:    o.North(),
			Mirrored: o.Mirrored(),
		},
		Slots:    make([]string, order.Slots()),
		Priority: seq.Priority,
		Shots:    make([]Shot, len(seq.Steps)),
	}
	for i := range p.Slots {
		p.Slots[i] = order.SlotName(i)
	}
	for i, st := range seq.Steps {
		p.Shots[i] = Shot{Row: st.Shot.Row, Col: st.Shot.Col, Cost: st.Cost, Vector: st.Vector.String()}
	}
	return p
}

// WriteJSON encodes p as indented JSON.
func WriteJSON(w io.Writer, p Plan) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(p); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ReadJSON decodes a document written by WriteJSON.
func ReadJSON(r io.Reader) (*Plan, error) {
	var p Plan
	if err := json.NewDecoder(r).Decode(&p); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return &p, nil
}

// ExportJSON writes p to a file at path.
func ExportJSON(p Plan, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(f, p)
}
