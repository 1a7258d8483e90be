package pipeline

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/cannon/pkg/coverage"
	"github.com/matzehuels/cannon/pkg/emit"
	"github.com/matzehuels/cannon/pkg/errors"
	"github.com/matzehuels/cannon/pkg/order"
	"github.com/matzehuels/cannon/pkg/plan"
	"github.com/matzehuels/cannon/pkg/render"
)

// RenderFormat renders one artifact.
func RenderFormat(format, runID string, m *coverage.Map, res *plan.Result, seq *order.Sequence, opts Options) ([]byte, error) {
	var buf bytes.Buffer
	switch format {
	case FormatJSON:
		if err := emit.WriteJSON(&buf, emit.NewPlan(runID, res, seq)); err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
	case FormatMCFunction:
		if err := emit.WriteFunction(&buf, emit.Pack(seq.Vectors())); err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
	case FormatPNG:
		return render.EncodePNG(render.Diagnostic(m, res, opts.renderOptions()...))
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "unsupported format: %s", format)
	}
	return buf.Bytes(), nil
}

// cacheable reports whether an artifact depends only on the plan. JSON
// carries the run id and is rendered every time.
func cacheable(format string) bool {
	return format != FormatJSON
}
