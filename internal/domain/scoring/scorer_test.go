package scoring_test

import (
	"context"
	"math"
	"testing"
	"time"

	model "github.com/eventure/rankd/internal/domain/model"
	scoring "github.com/eventure/rankd/internal/domain/scoring"
	. "github.com/smartystreets/goconvey/convey"
)

func newScorer() *scoring.Scorer {
	s, err := scoring.New(scoring.DefaultConfig())
	if err != nil {
		panic(err)
	}
	return s
}

func mustProfile(preferred, disliked, priceTier, distanceTier string) model.UserProfile {
	p, err := model.NewUserProfile(preferred, disliked, priceTier, distanceTier)
	if err != nil {
		panic(err)
	}
	return p
}

func TestNew_Validation(t *testing.T) {
	Convey("Given a configuration with weights that do not sum to 100", t, func() {
		cfg := scoring.DefaultConfig()
		cfg.Weights.Type = 50

		Convey("Then construction fails", func() {
			_, err := scoring.New(cfg)
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "weights")
		})
	})
}

func TestScorer_TypeScore(t *testing.T) {
	Convey("Given a profile preferring music and disliking gaming", t, func() {
		s := newScorer()
		p := mustProfile("Music", "Gaming", "", "Local")

		Convey("Then a preferred category is maximal", func() {
			So(s.TypeScore(p, "music"), ShouldEqual, 100)
		})

		Convey("Then a disliked category is minimal", func() {
			So(s.TypeScore(p, "gaming"), ShouldEqual, 0)
		})

		Convey("Then an unknown category is neutral", func() {
			So(s.TypeScore(p, "theater"), ShouldEqual, 50)
		})

		Convey("Then a missing category scores below neutral", func() {
			So(s.TypeScore(p, ""), ShouldEqual, 0)
		})
	})
}

func TestScorer_DistanceScore(t *testing.T) {
	Convey("Given a 15 km maximum distance", t, func() {
		s := newScorer()
		const maxDistance = 15.0

		Convey("Then anything inside 30% of the cap is perfect", func() {
			So(s.DistanceScore(0, maxDistance), ShouldEqual, 100)
			So(s.DistanceScore(4, maxDistance), ShouldEqual, 100)
			So(s.DistanceScore(4.5, maxDistance), ShouldEqual, 100)
		})

		Convey("Then the decay up to the cap is shallow", func() {
			// At exactly the cap the score bottoms out at 90.
			So(s.DistanceScore(15, maxDistance), ShouldAlmostEqual, 90, 0.0001)
			So(s.DistanceScore(10, maxDistance), ShouldBeBetween, 90, 98)
		})

		Convey("Then the buffer zone past the cap decays steeply", func() {
			So(s.DistanceScore(22.5, maxDistance), ShouldAlmostEqual, 65, 0.0001)
			So(s.DistanceScore(30, maxDistance), ShouldAlmostEqual, 40, 0.0001)
		})

		Convey("Then beyond twice the cap the score is zero", func() {
			So(s.DistanceScore(30.1, maxDistance), ShouldEqual, 0)
			So(s.DistanceScore(500, maxDistance), ShouldEqual, 0)
		})

		Convey("Then the curve never increases with distance", func() {
			prev := 101.0
			for d := 0.0; d <= 35; d += 0.5 {
				score := s.DistanceScore(d, maxDistance)
				So(score, ShouldBeLessThanOrEqualTo, prev)
				prev = score
			}
		})
	})
}

func TestScorer_TimeScore(t *testing.T) {
	Convey("Given the production time curve", t, func() {
		s := newScorer()

		Convey("Then the immediate ramp runs 80 to 100 over six hours", func() {
			So(s.TimeScore(0), ShouldEqual, 80)
			So(s.TimeScore(3), ShouldEqual, 90)
			So(s.TimeScore(6), ShouldEqual, 100)
		})

		Convey("Then the sweet spot at 36 hours is perfect", func() {
			So(s.TimeScore(36), ShouldEqual, 100)
		})

		Convey("Then deviation from the sweet spot decays as a Gaussian", func() {
			// One tolerance width (24h) away on either side: 100*e^-1.
			So(s.TimeScore(12), ShouldAlmostEqual, 36.7879441171, 0.0001)
			So(s.TimeScore(60), ShouldAlmostEqual, 36.7879441171, 0.0001)
		})

		Convey("Then the long decay shaves the tail after 72 hours", func() {
			// 100*e^-4 minus 0.05 per hour past the decay start.
			So(s.TimeScore(84), ShouldAlmostEqual, 1.2315638889, 0.0001)
		})

		Convey("Then past events score zero", func() {
			So(s.TimeScore(-1), ShouldEqual, 0)
		})

		Convey("Then the score is clamped to [0, 100]", func() {
			for h := 0.0; h < 400; h += 7 {
				score := s.TimeScore(h)
				So(score, ShouldBeGreaterThanOrEqualTo, 0)
				So(score, ShouldBeLessThanOrEqualTo, 100)
			}
		})
	})
}

func TestScorer_PriceScore(t *testing.T) {
	Convey("Given the budget tier table", t, func() {
		s := newScorer()

		Convey("When the profile uses the lowest tier", func() {
			Convey("Then a free event earns the free-event score", func() {
				score, err := s.PriceScore(0, "$")
				So(err, ShouldBeNil)
				So(score, ShouldEqual, 75)
			})

			Convey("Then an in-range price is perfect", func() {
				score, err := s.PriceScore(20, "$")
				So(err, ShouldBeNil)
				So(score, ShouldEqual, 100)

				score, err = s.PriceScore(30, "$")
				So(err, ShouldBeNil)
				So(score, ShouldEqual, 100)
			})

			Convey("Then slightly over budget is tolerated", func() {
				score, err := s.PriceScore(35, "$")
				So(err, ShouldBeNil)
				So(score, ShouldEqual, 50)
			})

			Convey("Then far over budget scores zero", func() {
				score, err := s.PriceScore(150, "$")
				So(err, ShouldBeNil)
				So(score, ShouldEqual, 0)
			})
		})

		Convey("When the profile uses the middle tier", func() {
			Convey("Then slightly under budget is near-good", func() {
				// 25 is ~19% below the 31 floor, inside tolerance.
				score, err := s.PriceScore(25, "$$")
				So(err, ShouldBeNil)
				So(score, ShouldEqual, 75)
			})

			Convey("Then far under budget is middling", func() {
				score, err := s.PriceScore(10, "$$")
				So(err, ShouldBeNil)
				So(score, ShouldEqual, 50)
			})
		})

		Convey("When the profile has no price preference", func() {
			Convey("Then any nonzero price is neutral", func() {
				score, err := s.PriceScore(9999, "irrelevant")
				So(err, ShouldBeNil)
				So(score, ShouldEqual, 50)
			})

			Convey("And an empty tier maps to irrelevant", func() {
				score, err := s.PriceScore(9999, "")
				So(err, ShouldBeNil)
				So(score, ShouldEqual, 50)
			})
		})

		Convey("When the tier is unknown", func() {
			_, err := s.PriceScore(20, "$$$$$")
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "price tier")
		})
	})
}

func TestScorer_ResolveMaxDistance(t *testing.T) {
	Convey("Given distance tier resolution", t, func() {
		s := newScorer()

		Convey("Then a numeric override wins over the tier", func() {
			p := mustProfile("Music", "", "", "Local")
			p.MaxDistanceKm = 42
			maxDistance, err := s.ResolveMaxDistance(p)
			So(err, ShouldBeNil)
			So(maxDistance, ShouldEqual, 42)
		})

		Convey("Then a named tier resolves from the table", func() {
			p := mustProfile("Music", "", "", "Very Local")
			maxDistance, err := s.ResolveMaxDistance(p)
			So(err, ShouldBeNil)
			So(maxDistance, ShouldEqual, 5)
		})

		Convey("Then an empty tier defaults to the widest", func() {
			p := mustProfile("Music", "", "", "")
			maxDistance, err := s.ResolveMaxDistance(p)
			So(err, ShouldBeNil)
			So(maxDistance, ShouldEqual, 500)
		})

		Convey("Then an unknown tier is a fatal error", func() {
			p := mustProfile("Music", "", "", "Intergalactic")
			_, err := s.ResolveMaxDistance(p)
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "distance tier")
		})
	})
}

func TestScorer_Score(t *testing.T) {
	Convey("Given a scorer and a reference time", t, func() {
		s := newScorer()
		now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
		ctx := context.Background()

		fullEvent := func() model.Event {
			return model.Event{
				ContentID:    1,
				Title:        "Jazz Night",
				Description:  "live jazz",
				Location:     "40.0, -74.0",
				Start:        now.Add(36 * time.Hour),
				Source:       "src",
				Type:         "Music",
				CurrencyCode: "USD",
				Amount:       20,
				URL:          "https://example.com",
				Distance:     4,
			}
		}

		Convey("When every dimension is ideal", func() {
			p := mustProfile("Music", "", "$", "Local")
			b, err := s.Score(ctx, p, fullEvent(), now, scoring.ComputeStats(nil))
			So(err, ShouldBeNil)

			Convey("Then each dimension is maximal and the final score is 100", func() {
				So(b.TypeScore, ShouldEqual, 100)
				So(b.DistanceScore, ShouldEqual, 100)
				So(b.TimeScore, ShouldEqual, 100)
				So(b.PriceScore, ShouldEqual, 100)
				So(b.Raw, ShouldEqual, 100)
				So(b.Penalty, ShouldEqual, 1)
				So(b.Final, ShouldEqual, 100)
			})

			Convey("And each weighted contribution is capped by its weight", func() {
				So(b.WeightedType, ShouldBeLessThanOrEqualTo, 45)
				So(b.WeightedDistance, ShouldBeLessThanOrEqualTo, 25)
				So(b.WeightedTime, ShouldBeLessThanOrEqualTo, 15)
				So(b.WeightedPrice, ShouldBeLessThanOrEqualTo, 15)
			})
		})

		Convey("When the category is disliked", func() {
			p := mustProfile("Theater", "Music", "$", "Local")
			b, err := s.Score(ctx, p, fullEvent(), now, scoring.ComputeStats(nil))
			So(err, ShouldBeNil)

			Convey("Then the penalty halves the final score", func() {
				So(b.TypeScore, ShouldEqual, 0)
				So(b.Penalty, ShouldEqual, 0.5)
				So(b.Final, ShouldEqual, b.Raw*0.5)
			})
		})

		Convey("When the price grossly exceeds the budget", func() {
			p := mustProfile("Music", "", "$", "Local")
			e := fullEvent()
			e.Amount = 50 // more than 1.5x the $30 ceiling
			b, err := s.Score(ctx, p, e, now, scoring.ComputeStats(nil))
			So(err, ShouldBeNil)
			So(b.Penalty, ShouldEqual, 0.7)
		})

		Convey("When the distance grossly exceeds the cap", func() {
			p := mustProfile("Music", "", "$", "Local")
			e := fullEvent()
			e.Distance = 30 // more than 1.2x the 15 km cap
			b, err := s.Score(ctx, p, e, now, scoring.ComputeStats(nil))
			So(err, ShouldBeNil)
			So(b.Penalty, ShouldEqual, 0.8)
		})

		Convey("When the event is far in the future", func() {
			p := mustProfile("Music", "", "$", "Local")
			e := fullEvent()
			e.Start = now.Add(240 * time.Hour) // 3 days past the 168h threshold
			b, err := s.Score(ctx, p, e, now, scoring.ComputeStats(nil))
			So(err, ShouldBeNil)
			So(b.Penalty, ShouldAlmostEqual, 0.75, 0.0001)
		})

		Convey("When the event is extremely far in the future", func() {
			p := mustProfile("Music", "", "$", "Local")
			e := fullEvent()
			e.Start = now.Add(2000 * time.Hour)
			b, err := s.Score(ctx, p, e, now, scoring.ComputeStats(nil))
			So(err, ShouldBeNil)

			Convey("Then the far-future penalty bottoms out at its floor", func() {
				So(b.Penalty, ShouldEqual, 0.5)
			})
		})

		Convey("When the price is missing and batch statistics exist", func() {
			p := mustProfile("Music", "", "$", "Local")
			peer := fullEvent()
			peer.ContentID = 2
			peer.Amount = 20
			stats := scoring.ComputeStats([]model.Event{peer})

			e := fullEvent()
			e.Amount = math.NaN()
			b, err := s.Score(ctx, p, e, now, stats)
			So(err, ShouldBeNil)

			Convey("Then the category mean is substituted and recorded", func() {
				So(b.Substituted, ShouldContain, "amount")
				So(b.PriceScore, ShouldEqual, 100) // mean of 20 is in range
			})
		})

		Convey("When the price is missing and no statistics exist", func() {
			p := mustProfile("Music", "", "$", "Local")
			e := fullEvent()
			e.Amount = math.NaN()
			b, err := s.Score(ctx, p, e, now, scoring.ComputeStats(nil))
			So(err, ShouldBeNil)

			Convey("Then the dimension scores zero without substitution", func() {
				So(b.Substituted, ShouldBeEmpty)
				So(b.PriceScore, ShouldEqual, 0)
			})
		})

		Convey("When the distance is missing and batch statistics exist", func() {
			p := mustProfile("Music", "", "$", "Local")
			peer := fullEvent()
			peer.ContentID = 2
			peer.Distance = 4
			stats := scoring.ComputeStats([]model.Event{peer})

			e := fullEvent()
			e.Distance = math.NaN()
			b, err := s.Score(ctx, p, e, now, stats)
			So(err, ShouldBeNil)
			So(b.Substituted, ShouldContain, "distance")
			So(b.DistanceScore, ShouldEqual, 100)
		})

		Convey("When the profile names an unknown price tier", func() {
			p := mustProfile("Music", "", "platinum", "Local")
			_, err := s.Score(ctx, p, fullEvent(), now, scoring.ComputeStats(nil))
			So(err, ShouldNotBeNil)
		})
	})
}
