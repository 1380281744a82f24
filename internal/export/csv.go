package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/YannickKae/Interest-Rate-Simulation/internal/model"
	"github.com/YannickKae/Interest-Rate-Simulation/internal/stats"
)

// ErrMalformed is returned when a table cannot be read back.
var ErrMalformed = errors.New("export: malformed table")

// SummaryHeader is the column layout of WriteSummary.
var SummaryHeader = []string{"time", "median", "p_lower", "p_upper"}

// FormatFloat renders v as the shortest decimal that parses back to v.
func FormatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// WritePaths writes one row per grid point: the time followed by every
// path's rate at that time.
func WritePaths(w io.Writer, ens *model.Ensemble) error {
	cw := csv.NewWriter(w)

	header := make([]string, 0, ens.NumPaths()+1)
	header = append(header, "time")
	for p := 0; p < ens.NumPaths(); p++ {
		header = append(header, "path_"+strconv.Itoa(p+1))
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	row := make([]string, len(header))
	for i := 0; i < ens.Grid.Len(); i++ {
		row[0] = FormatFloat(ens.Grid.At(i))
		for p := 0; p < ens.NumPaths(); p++ {
			row[p+1] = FormatFloat(ens.At(i, p))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// ReadPaths parses a table written by WritePaths. The time column must be
// the uniform grid the writer emitted.
func ReadPaths(r io.Reader) (*model.Ensemble, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if len(records) < 3 {
		return nil, fmt.Errorf("%w: need a header and at least two rows", ErrMalformed)
	}

	header := records[0]
	if header[0] != "time" || len(header) < 2 {
		return nil, fmt.Errorf("%w: unexpected header %v", ErrMalformed, header)
	}
	nPaths := len(header) - 1
	rows := records[1:]

	times := make([]float64, len(rows))
	paths := make([]model.Path, nPaths)
	for p := range paths {
		paths[p] = make(model.Path, len(rows))
	}

	for i, rec := range rows {
		for j, field := range rec {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: row %d column %d: %v", ErrMalformed, i+2, j+1, err)
			}
			if j == 0 {
				times[i] = v
			} else {
				paths[j-1][i] = v
			}
		}
	}

	grid := model.NewTimeGrid(times[len(times)-1], len(times)-1)
	for i, t := range times {
		if grid.At(i) != t {
			return nil, fmt.Errorf("%w: time %v at row %d is off the uniform grid", ErrMalformed, t, i+2)
		}
	}

	return model.NewEnsemble(grid, paths), nil
}

// WriteSummary writes the per-time median and band.
func WriteSummary(w io.Writer, s stats.Summary) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(SummaryHeader); err != nil {
		return err
	}
	for _, p := range s {
		row := []string{FormatFloat(p.Time), FormatFloat(p.Median), FormatFloat(p.Lower), FormatFloat(p.Upper)}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
