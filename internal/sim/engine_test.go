package sim_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/ecosim/internal/ecosys"
	"github.com/san-kum/ecosim/internal/sim"
)

// settlingParams damps into a stable focus well inside the default
// horizon; used for the equilibrium latch and horizon shrink behaviors.
func settlingParams() *ecosys.Parameters {
	return &ecosys.Parameters{
		Prey:        &ecosys.PreyParams{InitialPopulation: 50, BirthRate: 1.0, CarryingCapacity: 100},
		Predator:    &ecosys.PredatorParams{InitialPopulation: 8, HuntingEfficiency: 0.1, DeathRate: 2.0},
		Environment: &ecosys.EnvironmentParams{ResourceAvailability: 1.0},
	}
}

// crashParams drives the prey population below one individual within
// the first time unit.
func crashParams() *ecosys.Parameters {
	return &ecosys.Parameters{
		Prey:        &ecosys.PreyParams{InitialPopulation: 500, BirthRate: 0.8, CarryingCapacity: 3000},
		Predator:    &ecosys.PredatorParams{InitialPopulation: 200, HuntingEfficiency: 0.02, DeathRate: 0.3},
		Environment: &ecosys.EnvironmentParams{ResourceAvailability: 0.5},
	}
}

// overshootParams starts far from the fixed point; the initial predator
// boom crushes the prey population against the extinction threshold.
func overshootParams() *ecosys.Parameters {
	return &ecosys.Parameters{
		Prey:        &ecosys.PreyParams{InitialPopulation: 1000, BirthRate: 1.0, CarryingCapacity: 5000},
		Predator:    &ecosys.PredatorParams{InitialPopulation: 100, HuntingEfficiency: 0.01, DeathRate: 0.5},
		Environment: &ecosys.EnvironmentParams{ResourceAvailability: 0.7},
	}
}

func mustRun(params *ecosys.Parameters) *ecosys.Result {
	eng, err := sim.New(params)
	Expect(err).NotTo(HaveOccurred())
	result, err := eng.Run(context.Background())
	Expect(err).NotTo(HaveOccurred())
	return result
}

var _ = Describe("Engine", func() {
	Describe("construction", func() {
		It("rejects a missing parameter block", func() {
			_, err := sim.New(&ecosys.Parameters{Prey: settlingParams().Prey})
			Expect(err).To(MatchError(ecosys.ErrInvalidParameters))
		})

		It("rejects zero carrying capacity before building state", func() {
			p := settlingParams()
			p.Prey.CarryingCapacity = 0
			_, err := sim.New(p)
			Expect(err).To(MatchError(ecosys.ErrNumericDegeneracy))
		})

		It("does not share parameter blocks with the caller", func() {
			p := settlingParams()
			eng, err := sim.New(p)
			Expect(err).NotTo(HaveOccurred())

			p.Prey.BirthRate = 1e6
			Expect(eng.State().Prey).To(Equal(50.0))
			_, err = eng.Run(context.Background())
			Expect(err).NotTo(HaveOccurred())
			Expect(eng.Extinct()).To(BeFalse())
		})
	})

	Describe("run to completion", func() {
		It("is deterministic across repeated runs", func() {
			a := mustRun(overshootParams())
			b := mustRun(overshootParams())
			Expect(a.Records).To(Equal(b.Records))
			Expect(a.Summary).To(Equal(b.Summary))
		})

		It("never records a negative population", func() {
			for _, params := range []*ecosys.Parameters{settlingParams(), crashParams(), overshootParams()} {
				result := mustRun(params)
				for _, r := range result.Records {
					Expect(r.Prey).To(BeNumerically(">=", 0))
					Expect(r.Predator).To(BeNumerically(">=", 0))
				}
			}
		})

		It("always represents the final state in the records", func() {
			eng, err := sim.New(crashParams())
			Expect(err).NotTo(HaveOccurred())
			result, err := eng.Run(context.Background())
			Expect(err).NotTo(HaveOccurred())

			last := result.Records[len(result.Records)-1]
			Expect(last.Time).To(Equal(ecosys.Round(eng.State().Time, 2)))
			Expect(last.Prey).To(Equal(ecosys.Round(eng.State().Prey, 1)))
		})

		It("does not grow the record sequence on repeated Result calls", func() {
			eng, err := sim.New(crashParams())
			Expect(err).NotTo(HaveOccurred())
			_, err = eng.Run(context.Background())
			Expect(err).NotTo(HaveOccurred())

			first := eng.Result()
			second := eng.Result()
			Expect(second.Records).To(HaveLen(len(first.Records)))
		})

		It("stops early when the context is canceled", func() {
			eng, err := sim.New(settlingParams())
			Expect(err).NotTo(HaveOccurred())

			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			_, err = eng.Run(ctx)
			Expect(err).To(MatchError(context.Canceled))
			Expect(eng.Done()).To(BeFalse())
		})
	})

	Describe("extinction", func() {
		It("latches and terminates the crash scenario within the first time unit", func() {
			eng, err := sim.New(crashParams())
			Expect(err).NotTo(HaveOccurred())
			result, err := eng.Run(context.Background())
			Expect(err).NotTo(HaveOccurred())

			Expect(result.ExtinctionOccurred).To(BeTrue())
			Expect(result.EquilibriumReached).To(BeFalse())
			Expect(eng.State().Prey).To(BeNumerically("<", 1))
			Expect(eng.State().Time).To(BeNumerically("<", 2))
		})

		It("terminates the overshoot scenario when prey grazes the threshold", func() {
			eng, err := sim.New(overshootParams())
			Expect(err).NotTo(HaveOccurred())
			result, err := eng.Run(context.Background())
			Expect(err).NotTo(HaveOccurred())

			Expect(result.ExtinctionOccurred).To(BeTrue())
			Expect(eng.State().Prey).To(BeNumerically("<", 1))
			Expect(eng.State().Time).To(BeNumerically("~", 2.5, 0.5))
		})

		It("appends no records beyond the triggering one", func() {
			eng, err := sim.New(crashParams())
			Expect(err).NotTo(HaveOccurred())
			result, err := eng.Run(context.Background())
			Expect(err).NotTo(HaveOccurred())

			n := len(result.Records)
			eng.Advance(100)
			Expect(eng.Result().Records).To(HaveLen(n))
		})
	})

	Describe("equilibrium", func() {
		It("latches once and records the window means", func() {
			result := mustRun(settlingParams())

			Expect(result.ExtinctionOccurred).To(BeFalse())
			Expect(result.EquilibriumReached).To(BeTrue())
			Expect(result.Equilibrium).NotTo(BeNil())
			Expect(result.Equilibrium.PreyMean).To(BeNumerically("~", 40.0, 0.5))
			Expect(result.Equilibrium.PredatorMean).To(BeNumerically("~", 6.0, 0.5))
			Expect(result.Equilibrium.TimeReached).To(BeNumerically("~", 21.2, 0.5))
		})

		It("shrinks the horizon to the latch time plus the grace period", func() {
			eng, err := sim.New(settlingParams())
			Expect(err).NotTo(HaveOccurred())
			result, err := eng.Run(context.Background())
			Expect(err).NotTo(HaveOccurred())

			latch := result.Equilibrium.TimeReached
			Expect(eng.Horizon()).To(BeNumerically("~", latch+ecosys.PostEquilibriumGrace, 1e-9))

			last := result.Records[len(result.Records)-1]
			Expect(last.Time).To(BeNumerically("<=", latch+ecosys.PostEquilibriumGrace+ecosys.Dt))
		})

		It("never overwrites the equilibrium point after the latch", func() {
			eng, err := sim.New(settlingParams())
			Expect(err).NotTo(HaveOccurred())

			for !eng.EquilibriumReached() && !eng.Done() {
				eng.Advance(sim.DefaultBatch)
			}
			Expect(eng.EquilibriumReached()).To(BeTrue())
			latched := *eng.Result().Equilibrium

			for !eng.Done() {
				eng.Advance(sim.DefaultBatch)
			}
			Expect(*eng.Result().Equilibrium).To(Equal(latched))
		})
	})

	Describe("streaming batches", func() {
		It("advances the default batch when no count is given", func() {
			eng, err := sim.New(settlingParams())
			Expect(err).NotTo(HaveOccurred())

			s := eng.Advance(0)
			Expect(s.Time).To(BeNumerically("~", float64(sim.DefaultBatch)*ecosys.Dt, 1e-9))
		})

		It("matches a run-to-completion trajectory batch for batch", func() {
			full := mustRun(settlingParams())

			eng, err := sim.New(settlingParams())
			Expect(err).NotTo(HaveOccurred())
			for !eng.Done() {
				eng.Advance(25)
			}

			Expect(eng.Result().Records).To(Equal(full.Records))
		})

		It("halts a batch early on extinction", func() {
			eng, err := sim.New(crashParams())
			Expect(err).NotTo(HaveOccurred())

			s := eng.Advance(1000000)
			Expect(eng.Done()).To(BeTrue())
			Expect(eng.Extinct()).To(BeTrue())
			Expect(s.Time).To(BeNumerically("<", 2))
		})

		It("is inert once the run has terminated", func() {
			eng, err := sim.New(crashParams())
			Expect(err).NotTo(HaveOccurred())
			for !eng.Done() {
				eng.Advance(sim.DefaultBatch)
			}

			before := eng.State()
			Expect(eng.Advance(10)).To(Equal(before))
		})
	})
})
