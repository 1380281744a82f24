package export_test

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/YannickKae/Interest-Rate-Simulation/internal/config"
	"github.com/YannickKae/Interest-Rate-Simulation/internal/export"
	"github.com/YannickKae/Interest-Rate-Simulation/internal/integrators"
	"github.com/YannickKae/Interest-Rate-Simulation/internal/model"
	"github.com/YannickKae/Interest-Rate-Simulation/internal/models"
	"github.com/YannickKae/Interest-Rate-Simulation/internal/sim"
	"github.com/YannickKae/Interest-Rate-Simulation/internal/stats"
)

func ensemble() *model.Ensemble {
	grid := model.NewTimeGrid(0.3, 3)
	theta := []float64{0.05, 0.05, 0.05, 0.05}
	dyn := models.NewMeanReverting(0.4, theta, models.NewCEV(0.03, 0.5))
	ens, err := sim.New(dyn, integrators.NewEulerMaruyama()).
		Run(context.Background(), grid, sim.Config{R0: 0.03, NPaths: 5, Seed: 11})
	Expect(err).NotTo(HaveOccurred())
	return ens
}

var _ = Describe("Paths table", func() {
	It("writes a time column and one column per path", func() {
		var buf bytes.Buffer
		Expect(export.WritePaths(&buf, ensemble())).To(Succeed())

		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		Expect(lines).To(HaveLen(5))
		Expect(lines[0]).To(Equal("time,path_1,path_2,path_3,path_4,path_5"))
		Expect(lines[1]).To(HavePrefix("0,0.03,0.03,"))
		Expect(lines[4]).To(HavePrefix("0.3,"))
	})

	It("reads back exactly what it wrote", func() {
		ens := ensemble()
		var buf bytes.Buffer
		Expect(export.WritePaths(&buf, ens)).To(Succeed())

		back, err := export.ReadPaths(&buf)
		Expect(err).NotTo(HaveOccurred())
		Expect(back.Grid.Points()).To(Equal(ens.Grid.Points()))
		Expect(back.Paths).To(Equal(ens.Paths))
	})

	It("keeps tiny and negative values exact", func() {
		grid := model.NewTimeGrid(1, 1)
		ens := model.NewEnsemble(grid, []model.Path{{model.Floor, -1.25e-7}, {0.1, 1e300}})
		var buf bytes.Buffer
		Expect(export.WritePaths(&buf, ens)).To(Succeed())

		back, err := export.ReadPaths(&buf)
		Expect(err).NotTo(HaveOccurred())
		Expect(back.Paths).To(Equal(ens.Paths))
	})

	DescribeTable("rejects malformed input",
		func(input string) {
			_, err := export.ReadPaths(strings.NewReader(input))
			Expect(err).To(MatchError(export.ErrMalformed))
		},
		Entry("empty", ""),
		Entry("header only", "time,path_1\n"),
		Entry("wrong first column", "t,path_1\n0,1\n1,2\n"),
		Entry("not a number", "time,path_1\n0,1\n1,abc\n"),
		Entry("ragged row", "time,path_1\n0,1\n1\n"),
		Entry("non-uniform times", "time,path_1\n0,1\n0.7,1\n1,1\n"),
	)
})

var _ = Describe("Summary table", func() {
	It("writes the documented header and one row per time", func() {
		s := stats.Summary{
			{Time: 0, Median: 0.03, Lower: 0.03, Upper: 0.03},
			{Time: 0.5, Median: 0.031, Lower: 0.02, Upper: 0.045},
		}
		var buf bytes.Buffer
		Expect(export.WriteSummary(&buf, s)).To(Succeed())
		Expect(buf.String()).To(Equal("time,median,p_lower,p_upper\n0,0.03,0.03,0.03\n0.5,0.031,0.02,0.045\n"))
	})
})

var _ = Describe("JSON report", func() {
	It("carries params, summary and terminal description", func() {
		ens := ensemble()
		report := export.Report{
			RunID:   "run_1",
			Params:  *config.Default(),
			Summary: stats.Aggregate(ens, 0.9),
		}
		var err error
		report.Terminal, err = stats.Describe(ens.Terminal())
		Expect(err).NotTo(HaveOccurred())

		var buf bytes.Buffer
		Expect(export.WriteJSON(&buf, report)).To(Succeed())

		var decoded map[string]any
		Expect(json.Unmarshal(buf.Bytes(), &decoded)).To(Succeed())
		Expect(decoded).To(HaveKeyWithValue("run_id", "run_1"))
		Expect(decoded["params"]).To(HaveKeyWithValue("confInterval", 0.95))
		Expect(decoded["summary"]).To(HaveLen(4))
		Expect(decoded["terminal"]).To(HaveKeyWithValue("count", 5.0))
	})
})

var _ = Describe("Fan chart", func() {
	It("renders the band and the median", func() {
		s := stats.Aggregate(ensemble(), 0.9)
		var buf bytes.Buffer
		Expect(export.FanChartSVG(&buf, s, 400, 200)).To(Succeed())
		Expect(buf.String()).To(ContainSubstring("<polygon"))
		Expect(buf.String()).To(ContainSubstring(`<path fill="none"`))
		Expect(buf.String()).To(HaveSuffix("</svg>\n"))
	})

	It("refuses a single point", func() {
		var buf bytes.Buffer
		Expect(export.FanChartSVG(&buf, stats.Summary{{}}, 10, 10)).NotTo(Succeed())
	})
})
