package report_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/odelab/odelab/internal/experiment"
	"github.com/odelab/odelab/internal/report"
	"github.com/odelab/odelab/ode"
)

func sampleResult() *experiment.Result {
	return &experiment.Result{
		Problem: "harmonic",
		Method:  "dopri5",
		X0:      0,
		Xf:      1,
		Y:       []float64{0.5403023058681398, -0.8414709848078965},
		Xs:      []float64{0, 0.5, 1},
		Ys: [][]float64{
			{1, 0},
			{0.8775825618903728, -0.479425538604203},
			{0.5403023058681398, -0.8414709848078965},
		},
		Stats:   ode.Stats{NSteps: 12, NAccepted: 11, NRejected: 1, NFcnEval: 73},
		Metrics: map[string]float64{"exact_error": 1.5e-7},
	}
}

var _ = Describe("Store", func() {
	var (
		dir   string
		store *report.Store
		res   *experiment.Result
	)

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
		store = report.New(dir)
		Expect(store.Init()).To(Succeed())
		res = sampleResult()
	})

	It("saves a run and reloads its metadata", func() {
		id, err := store.Save("demo", res)
		Expect(err).NotTo(HaveOccurred())
		Expect(id).To(Equal("demo"))

		meta, err := store.Load(id)
		Expect(err).NotTo(HaveOccurred())
		Expect(meta.Problem).To(Equal("harmonic"))
		Expect(meta.Method).To(Equal("dopri5"))
		Expect(meta.Stats.NAccepted).To(Equal(11))
		Expect(meta.Metrics).To(HaveKeyWithValue("exact_error", 1.5e-7))
		Expect(meta.Timestamp).NotTo(BeZero())
	})

	It("generates an id when none is given", func() {
		id, err := store.Save("", res)
		Expect(err).NotTo(HaveOccurred())
		Expect(id).To(HavePrefix("harmonic_"))
	})

	It("round-trips the trajectory at full precision", func() {
		id, err := store.Save("demo", res)
		Expect(err).NotTo(HaveOccurred())

		states, xs, err := store.LoadStates(id)
		Expect(err).NotTo(HaveOccurred())
		Expect(xs).To(Equal(res.Xs))
		Expect(states).To(Equal(res.Ys))
	})

	It("lists saved runs and skips stray files", func() {
		_, err := store.Save("one", res)
		Expect(err).NotTo(HaveOccurred())
		_, err = store.Save("two", res)
		Expect(err).NotTo(HaveOccurred())

		stray := filepath.Join(dir, "notes.txt")
		Expect(os.WriteFile(stray, []byte("not a run"), 0644)).To(Succeed())

		runs, err := store.List()
		Expect(err).NotTo(HaveOccurred())
		Expect(runs).To(HaveLen(2))
	})

	It("fails to load a missing run", func() {
		_, err := store.Load("absent")
		Expect(err).To(HaveOccurred())

		_, _, err = store.LoadStates("absent")
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("Export", func() {
	var res *experiment.Result

	BeforeEach(func() {
		res = sampleResult()
	})

	It("writes indented JSON that parses back", func() {
		var buf bytes.Buffer
		Expect(report.WriteJSON(&buf, res)).To(Succeed())
		Expect(buf.String()).To(HavePrefix("{\n  \"problem\""))

		var data report.ExportData
		Expect(json.Unmarshal(buf.Bytes(), &data)).To(Succeed())
		Expect(data.Points).To(Equal(3))
		Expect(data.States).To(Equal(res.Ys))
		Expect(data.Stats.NFcnEval).To(Equal(73))
	})

	It("writes CSV with a header and one row per point", func() {
		var buf bytes.Buffer
		Expect(report.WriteCSV(&buf, res)).To(Succeed())

		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		Expect(lines).To(HaveLen(4))
		Expect(lines[0]).To(Equal("x,y0,y1"))
		Expect(lines[1]).To(Equal("0,1,0"))
	})

	It("exports to files", func() {
		dir := GinkgoT().TempDir()

		jsonPath := filepath.Join(dir, "run.json")
		Expect(report.ExportJSON(jsonPath, res)).To(Succeed())
		info, err := os.Stat(jsonPath)
		Expect(err).NotTo(HaveOccurred())
		Expect(info.Size()).To(BeNumerically(">", 0))

		csvPath := filepath.Join(dir, "run.csv")
		Expect(report.ExportCSV(csvPath, res)).To(Succeed())
		info, err = os.Stat(csvPath)
		Expect(err).NotTo(HaveOccurred())
		Expect(info.Size()).To(BeNumerically(">", 0))
	})
})
