// Package export writes plans in file formats for other tools.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/kilianp07/studyplan/core/model"
)

// Formats lists the supported output formats.
var Formats = []string{"json", "csv"}

// Write encodes res in the named format.
func Write(w io.Writer, format string, res model.PlanResult) error {
	switch format {
	case "json":
		return WriteJSON(w, res)
	case "csv":
		return WriteCSV(w, res)
	default:
		return fmt.Errorf("unknown export format %q", format)
	}
}

// WriteJSON writes the plan in the API response format.
func WriteJSON(w io.Writer, res model.PlanResult) error {
	if res.Blocks == nil {
		res.Blocks = []model.ScheduleBlock{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

// WriteCSV writes one row per block with a header row.
func WriteCSV(w io.Writer, res model.PlanResult) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"start", "end", "subject", "minutes", "mode"}); err != nil {
		return err
	}
	mode := res.Mode.String()
	for _, b := range res.Blocks {
		rec := []string{
			b.Start.String(),
			b.End.String(),
			b.Subject,
			strconv.Itoa(b.Minutes),
			mode,
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
