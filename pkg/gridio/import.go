package gridio

import (
	"encoding/json"
	"io"
	"os"

	"github.com/rectfree/rectfree/pkg/errors"
	"github.com/rectfree/rectfree/pkg/grid"
)

// ReadGrid decodes a grid from r, validating dimensions, row lengths,
// and color range.
func ReadGrid(r io.Reader) (*grid.Grid, error) {
	var in gridJSON
	if err := json.NewDecoder(r).Decode(&in); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidGrid, err, "decode grid JSON")
	}
	return fromGridJSON(in)
}

// ImportGrid reads a grid from a file path.
func ImportGrid(path string) (*grid.Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidGrid, err, "open %s", path)
	}
	defer f.Close()

	g, err := ReadGrid(f)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidGrid, err, "import %s", path)
	}
	return g, nil
}

// UnmarshalGrid decodes a grid from canonical JSON bytes, as produced
// by [MarshalGrid]. Used when loading cache entries.
func UnmarshalGrid(data []byte) (*grid.Grid, error) {
	var in gridJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidGrid, err, "decode grid JSON")
	}
	return fromGridJSON(in)
}

// fromGridJSON validates the decoded form and builds the grid.
func fromGridJSON(in gridJSON) (*grid.Grid, error) {
	if in.Rows <= 0 || in.Cols <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidGrid, "grid dimensions must be positive, got %dx%d", in.Rows, in.Cols)
	}
	if err := errors.ValidateColors(in.Colors); err != nil {
		return nil, err
	}
	if len(in.Cells) != in.Rows {
		return nil, errors.New(errors.ErrCodeInvalidGrid, "expected %d rows of cells, got %d", in.Rows, len(in.Cells))
	}

	g := grid.New(in.Rows, in.Cols, in.Colors)
	for r, row := range in.Cells {
		if len(row) != in.Cols {
			return nil, errors.New(errors.ErrCodeInvalidGrid, "row %d has %d cells, expected %d", r, len(row), in.Cols)
		}
		for c, color := range row {
			if color < 0 || color >= in.Colors {
				return nil, errors.New(errors.ErrCodeInvalidGrid, "cell (%d,%d) has color %d outside [0,%d)", r, c, color, in.Colors)
			}
			g.Set(r, c, color)
		}
	}
	return g, nil
}
