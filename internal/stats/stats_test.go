package stats_test

import (
	"context"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/YannickKae/Interest-Rate-Simulation/internal/integrators"
	"github.com/YannickKae/Interest-Rate-Simulation/internal/model"
	"github.com/YannickKae/Interest-Rate-Simulation/internal/models"
	"github.com/YannickKae/Interest-Rate-Simulation/internal/sim"
	"github.com/YannickKae/Interest-Rate-Simulation/internal/stats"
)

func simulate(nPaths int, seed uint64) *model.Ensemble {
	grid := model.NewTimeGrid(2, 20)
	theta := make([]float64, grid.Len())
	for i := range theta {
		theta[i] = 0.05
	}
	dyn := models.NewMeanReverting(0.5, theta, models.NewCEV(0.02, 0))
	ens, err := sim.New(dyn, integrators.NewEulerMaruyama()).
		Run(context.Background(), grid, sim.Config{R0: 0.03, NPaths: nPaths, Seed: seed})
	Expect(err).NotTo(HaveOccurred())
	return ens
}

var _ = Describe("Quantile", func() {
	sample := []float64{1, 2, 3, 4}

	DescribeTable("interpolates between order statistics",
		func(p, want float64) {
			Expect(stats.Quantile(sample, p)).To(BeNumerically("~", want, 1e-12))
		},
		Entry("minimum", 0.0, 1.0),
		Entry("median of even sample", 0.5, 2.5),
		Entry("first quartile", 0.25, 1.75),
		Entry("third quartile", 0.75, 3.25),
		Entry("5th percentile", 0.05, 1.15),
		Entry("maximum", 1.0, 4.0),
	)

	It("returns the single value of a one-element sample", func() {
		Expect(stats.Quantile([]float64{0.07}, 0.9)).To(Equal(0.07))
	})

	It("returns NaN for an empty sample", func() {
		Expect(math.IsNaN(stats.Quantile(nil, 0.5))).To(BeTrue())
	})

	It("picks the middle element of an odd sample", func() {
		Expect(stats.Quantile([]float64{-1, 0, 5}, 0.5)).To(Equal(0.0))
	})
})

var _ = Describe("BandProbabilities", func() {
	It("splits the tail mass evenly", func() {
		lo, hi := stats.BandProbabilities(0.9)
		Expect(lo).To(BeNumerically("~", 0.05, 1e-15))
		Expect(hi).To(BeNumerically("~", 0.95, 1e-15))
	})
})

var _ = Describe("Aggregate", func() {
	It("produces one record per grid point with ordered band", func() {
		ens := simulate(200, 11)

		for _, confidence := range []float64{0.01, 0.5, 0.9, 0.99, 0.999999} {
			summary := stats.Aggregate(ens, confidence)
			Expect(summary).To(HaveLen(ens.Grid.Len()))
			for i, p := range summary {
				Expect(p.Time).To(Equal(ens.Grid.At(i)))
				Expect(p.Lower).To(BeNumerically("<=", p.Median))
				Expect(p.Median).To(BeNumerically("<=", p.Upper))
			}
		}
	})

	It("collapses to the initial rate at t=0", func() {
		summary := stats.Aggregate(simulate(50, 3), 0.9)
		Expect(summary[0]).To(Equal(stats.Point{Time: 0, Median: 0.03, Lower: 0.03, Upper: 0.03}))
	})

	It("does not modify the ensemble", func() {
		ens := model.NewEnsemble(model.NewTimeGrid(1, 1), []model.Path{{0.03, 0.09}, {0.03, 0.01}, {0.03, 0.05}})
		stats.Aggregate(ens, 0.5)
		Expect(ens.CrossSection(1)).To(Equal([]float64{0.09, 0.01, 0.05}))
	})

	It("approaches the cross-sectional extremes as the confidence nears one", func() {
		ens := simulate(500, 5)
		summary := stats.Aggregate(ens, 1-1e-9)

		for i, p := range summary {
			cs := ens.CrossSection(i)
			lo, hi := cs[0], cs[0]
			for _, v := range cs {
				lo = math.Min(lo, v)
				hi = math.Max(hi, v)
			}
			Expect(p.Lower).To(BeNumerically("~", lo, 1e-9))
			Expect(p.Upper).To(BeNumerically("~", hi, 1e-9))
		}
	})

	It("exposes the series for plotting", func() {
		summary := stats.Summary{{Time: 0, Median: 1, Lower: 0, Upper: 2}, {Time: 1, Median: 3, Lower: 2, Upper: 4}}
		Expect(summary.Medians()).To(Equal([]float64{1, 3}))
		Expect(summary.Lowers()).To(Equal([]float64{0, 2}))
		Expect(summary.Uppers()).To(Equal([]float64{2, 4}))
	})
})

var _ = Describe("Describe", func() {
	It("computes moments, extremes and the negative share", func() {
		d, err := stats.Describe([]float64{-0.01, 0.01, 0.03, 0.05})
		Expect(err).NotTo(HaveOccurred())
		Expect(d.Count).To(Equal(4))
		Expect(d.Mean).To(BeNumerically("~", 0.02, 1e-15))
		Expect(d.Min).To(Equal(-0.01))
		Expect(d.Max).To(Equal(0.05))
		Expect(d.StdDev).To(BeNumerically("~", math.Sqrt(0.002/3), 1e-12))
		Expect(d.NegativeShare).To(Equal(0.25))
	})

	It("reports zero spread for a single value", func() {
		d, err := stats.Describe([]float64{0.04})
		Expect(err).NotTo(HaveOccurred())
		Expect(d.StdDev).To(BeZero())
	})

	It("rejects empty input", func() {
		_, err := stats.Describe(nil)
		Expect(err).To(HaveOccurred())
	})
})
