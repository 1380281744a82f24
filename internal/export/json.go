package export

import (
	"encoding/json"
	"io"

	"github.com/YannickKae/Interest-Rate-Simulation/internal/config"
	"github.com/YannickKae/Interest-Rate-Simulation/internal/stats"
)

// Report is the self-describing result of one run.
type Report struct {
	RunID    string            `json:"run_id,omitempty"`
	Params   config.Params     `json:"params"`
	Terminal stats.Description `json:"terminal"`
	Summary  stats.Summary     `json:"summary"`
}

func WriteJSON(w io.Writer, report Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
