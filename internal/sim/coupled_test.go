package sim_test

import (
	"context"
	"errors"
	"math"
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/heatsim/internal/sim"
	"github.com/san-kum/heatsim/internal/thermal"
)

type balanceRecorder struct {
	balances  []float64
	nets      []float64
	residuals []float64
}

// OnStep compares the system energy change with the convective exchange of the step.
func (r *balanceRecorder) OnStep(rep sim.StepReport) {
	r.balances = append(r.balances, rep.PairBalance)

	conduction := 0.0
	convective := 0.0
	for i := range rep.Conduction {
		conduction += rep.Conduction[i]
		convective += rep.Convective[i]
	}
	r.nets = append(r.nets, conduction)
	delta := rep.SystemEnergy(rep.After) - rep.SystemEnergy(rep.Before)
	r.residuals = append(r.residuals, delta-convective, conduction)
}

func threeBodies() sim.Vectors {
	return sim.Vectors{
		Names:         []string{"hot", "warm", "cold"},
		Temperatures:  []float64{80, 30, 10},
		Masses:        []float64{2, 1, 0.5},
		SpecificHeats: []float64{900, 900, 900},
	}
}

func chainConductance() [][]float64 {
	return [][]float64{
		{0, 5, 0},
		{5, 0, 3},
		{0, 3, 0},
	}
}

var _ = Describe("Engine", func() {
	var ctx context.Context

	BeforeEach(func() {
		ctx = context.Background()
	})

	Describe("coupled mode", func() {
		var (
			eng *sim.Engine
			rec *balanceRecorder
		)

		BeforeEach(func() {
			var err error
			cfg := sim.Config{Dt: 0.125, AmbientTemperature: 25, Convection: 10, Conductance: chainConductance()}
			eng, err = sim.FromVectors(threeBodies(), cfg)
			Expect(err).NotTo(HaveOccurred())
			rec = &balanceRecorder{}
			eng.AddObserver(rec)
		})

		It("selects the coupled algorithm when a matrix is configured", func() {
			Expect(eng.Mode()).To(Equal(sim.ModeCoupled))
			Expect(eng.Conductance(0, 1)).To(Equal(5.0))
			Expect(eng.Conductance(0, 2)).To(BeZero())
		})

		It("reports the net conduction heat it applied, which stays at rounding level", func() {
			_, err := eng.Run(ctx, 25)
			Expect(err).NotTo(HaveOccurred())
			Expect(rec.balances).To(HaveLen(200))
			for i, b := range rec.balances {
				Expect(b).To(Equal(rec.nets[i]))
				Expect(b).To(BeNumerically("~", 0, 1e-9))
			}
		})

		It("changes system energy only by the convective exchange", func() {
			_, err := eng.Run(ctx, 20)
			Expect(err).NotTo(HaveOccurred())
			for _, r := range rec.residuals {
				Expect(r).To(BeNumerically("~", 0, 1e-9))
			}
		})

		It("moves every body toward the shared equilibrium", func() {
			res, err := eng.Run(ctx, 20)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Series[0].Final()).To(BeNumerically("<", 80))
			Expect(res.Series[2].Final()).To(BeNumerically(">", 10))
		})
	})

	Describe("coupled step snapshot", func() {
		It("gives the same temperatures regardless of body order", func() {
			v := threeBodies()
			g := chainConductance()
			cfg := sim.Config{Dt: 0.01, AmbientTemperature: 25, Convection: 10, Conductance: g}

			forward, err := sim.FromVectors(v, cfg)
			Expect(err).NotTo(HaveOccurred())

			perm := []int{2, 0, 1}
			pv := sim.Vectors{}
			pg := make([][]float64, 3)
			for i, p := range perm {
				pv.Names = append(pv.Names, v.Names[p])
				pv.Temperatures = append(pv.Temperatures, v.Temperatures[p])
				pv.Masses = append(pv.Masses, v.Masses[p])
				pv.SpecificHeats = append(pv.SpecificHeats, v.SpecificHeats[p])
				pg[i] = make([]float64, 3)
				for j, q := range perm {
					pg[i][j] = g[p][q]
				}
			}
			pcfg := cfg
			pcfg.Conductance = pg
			permuted, err := sim.FromVectors(pv, pcfg)
			Expect(err).NotTo(HaveOccurred())

			a, err := forward.Run(ctx, 5)
			Expect(err).NotTo(HaveOccurred())
			b, err := permuted.Run(ctx, 5)
			Expect(err).NotTo(HaveOccurred())

			byName := map[string]float64{}
			for _, s := range b.Series {
				byName[s.Name] = s.Final()
			}
			for _, s := range a.Series {
				Expect(s.Final()).To(BeNumerically("~", byName[s.Name], 1e-9))
			}
		})

		It("uses start-of-step temperatures for every pair", func() {
			// With identical capacities and no ambient difference a single step from
			// (100, 0, 100) must leave the outer bodies identical.
			cfg := sim.Config{
				Dt: 0.1, AmbientTemperature: 0, Convection: 1e-9,
				Conductance: [][]float64{{0, 1, 0}, {1, 0, 1}, {0, 1, 0}},
			}
			eng, err := sim.FromVectors(sim.Vectors{
				Temperatures:  []float64{100, 0, 100},
				Masses:        []float64{1, 1, 1},
				SpecificHeats: []float64{1000, 1000, 1000},
			}, cfg)
			Expect(err).NotTo(HaveOccurred())

			Expect(eng.Step()).To(Succeed())
			bodies := eng.Bodies()
			Expect(bodies[0].Temperature()).To(Equal(bodies[2].Temperature()))
		})
	})

	Describe("pair mode", func() {
		It("transfers exactly opposite heat for random parameters", func() {
			rng := rand.New(rand.NewSource(7))
			for trial := 0; trial < 200; trial++ {
				t1 := rng.Float64()*200 - 50
				t2 := rng.Float64()*200 - 50
				a, err := thermal.NewBody("a", 0.5+rng.Float64()*5, 100+rng.Float64()*4000, 0.1, t1)
				Expect(err).NotTo(HaveOccurred())
				b, err := thermal.NewBody("b", 0.5+rng.Float64()*5, 100+rng.Float64()*4000, 0.1, t2)
				Expect(err).NotTo(HaveOccurred())

				eng, err := sim.New(sim.DefaultConfig(), []*thermal.Body{a, b})
				Expect(err).NotTo(HaveOccurred())

				var got []float64
				eng.AddObserver(observerFunc(func(rep sim.StepReport) {
					got = append([]float64(nil), rep.Conduction...)
				}))

				p := sim.Pair{A: 0, B: 1, K: 0.1 + rng.Float64()*100, Area: 0.001 + rng.Float64()*0.01, Thickness: 0.01 + rng.Float64()}
				Expect(eng.StepPair(p)).To(Succeed())
				Expect(got[0] + got[1]).To(Equal(0.0))
				Expect(got[0]).To(Equal(-got[1]))
			}
		})
	})

	Describe("configuration", func() {
		It("rejects mismatched vectors before stepping", func() {
			_, err := sim.FromVectors(sim.Vectors{
				Temperatures:  []float64{80, 30, 10},
				Masses:        []float64{2, 1},
				SpecificHeats: []float64{900, 900, 900},
			}, sim.DefaultConfig())
			Expect(errors.Is(err, thermal.ErrConfigMismatch)).To(BeTrue())
		})

		It("rejects a 2x2 conductance matrix for three bodies", func() {
			cfg := sim.DefaultConfig()
			cfg.Conductance = [][]float64{{0, 5}, {5, 0}}
			_, err := sim.FromVectors(threeBodies(), cfg)
			Expect(err).To(MatchError(thermal.ErrConfigMismatch))
		})
	})
})

type observerFunc func(sim.StepReport)

func (f observerFunc) OnStep(r sim.StepReport) { f(r) }

var _ = Describe("Ambient mode", func() {
	It("stays at ambient temperature forever", func() {
		b, _ := thermal.NewBody("b", 1, 1000, 0.1, 20)
		eng, err := sim.New(sim.Config{Dt: 1, AmbientTemperature: 20, Convection: 10}, []*thermal.Body{b})
		Expect(err).NotTo(HaveOccurred())

		res, err := eng.Run(context.Background(), 1000)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Series[0].Temperatures).To(HaveEach(Equal(20.0)))
	})

	It("tracks the analytical cooling curve for small steps", func() {
		b, _ := thermal.NewBody("b", 1, 1000, 0.1, 100)
		eng, err := sim.New(sim.Config{Dt: 0.1, AmbientTemperature: 20, Convection: 10}, []*thermal.Body{b})
		Expect(err).NotTo(HaveOccurred())

		_, err = eng.Run(context.Background(), 600)
		Expect(err).NotTo(HaveOccurred())

		exact := 20 + 80*math.Exp(-10*0.1*600/1000)
		Expect(b.Temperature()).To(BeNumerically("~", exact, 0.01))
	})
})
