package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/odelab/odelab/internal/experiment"
	"github.com/odelab/odelab/ode"
)

// ExportData is the JSON document an exported run serializes to.
type ExportData struct {
	Problem string             `json:"problem"`
	Method  string             `json:"method"`
	X0      float64            `json:"x0"`
	Xf      float64            `json:"xf"`
	Points  int                `json:"points"`
	Xs      []float64          `json:"xs"`
	States  [][]float64        `json:"states"`
	Stats   ode.Stats          `json:"stats"`
	Metrics map[string]float64 `json:"metrics"`
}

func WriteJSON(w io.Writer, res *experiment.Result) error {
	data := ExportData{
		Problem: res.Problem,
		Method:  res.Method,
		X0:      res.X0,
		Xf:      res.Xf,
		Points:  len(res.Xs),
		Xs:      res.Xs,
		States:  res.Ys,
		Stats:   res.Stats,
		Metrics: res.Metrics,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

func ExportJSON(path string, res *experiment.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteJSON(file, res)
}

// WriteCSV writes the trajectory with an x column followed by one column per
// state component. Values keep full float64 precision.
func WriteCSV(w io.Writer, res *experiment.Result) error {
	cw := csv.NewWriter(w)

	ndim := 0
	if len(res.Ys) > 0 {
		ndim = len(res.Ys[0])
	}
	header := []string{"x"}
	for i := 0; i < ndim; i++ {
		header = append(header, fmt.Sprintf("y%d", i))
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for i := range res.Ys {
		row := make([]string, 0, ndim+1)
		row = append(row, strconv.FormatFloat(res.Xs[i], 'g', -1, 64))
		for _, v := range res.Ys[i] {
			row = append(row, strconv.FormatFloat(v, 'g', -1, 64))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func ExportCSV(path string, res *experiment.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteCSV(file, res)
}
