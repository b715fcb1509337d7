package aggregate

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/okian/mindlab/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func sample() []model.Record {
	return []model.Record{
		{Timestamp: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Venue: "Club A", Score: 74,
			Acceptance: 4, Routine: 3, Decision: 3, Focus: 4, Energy: 3, Tension: 2},
		{Timestamp: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), Venue: "Club B", Score: 70,
			Acceptance: 5, Routine: 4, Decision: 4, Focus: 5, Energy: 4, Tension: 1},
	}
}

func TestAggregate(t *testing.T) {
	Convey("Given two journal entries", t, func() {
		profile, err := Aggregate(sample(), model.AllSkills())

		Convey("Then each skill is the column mean", func() {
			So(err, ShouldBeNil)
			So(profile.Count, ShouldEqual, 2)
			want := map[model.Skill]float64{
				model.SkillAcceptance: 4.5,
				model.SkillRoutine:    3.5,
				model.SkillDecision:   3.5,
				model.SkillFocus:      4.5,
				model.SkillEnergy:     3.5,
				model.SkillTension:    1.5,
			}
			for s, v := range want {
				got, ok := profile.Mean(s)
				So(ok, ShouldBeTrue)
				So(got, ShouldAlmostEqual, v, 1e-9)
			}
			So(profile.Skills, ShouldResemble, model.AllSkills())
		})
	})

	Convey("Given three entries with a repeating mean", t, func() {
		recs := sample()
		third := model.NewRecord("Club C", 0)
		third.Acceptance = 1
		recs = append(recs, third)

		profile, err := Aggregate(recs, []model.Skill{model.SkillAcceptance})

		Convey("Then full precision is kept and rounding is presentation only", func() {
			So(err, ShouldBeNil)
			got, _ := profile.Mean(model.SkillAcceptance)
			So(got, ShouldAlmostEqual, 10.0/3.0, 1e-12)
			So(profile.Rounded(1)[model.SkillAcceptance], ShouldEqual, 3.3)
		})

		Convey("Then every mean stays within the rating bounds", func() {
			all, err := Aggregate(recs, model.AllSkills())
			So(err, ShouldBeNil)
			for _, s := range model.AllSkills() {
				v, _ := all.Mean(s)
				So(v, ShouldBeBetweenOrEqual, 1.0, 5.0)
				So(math.IsNaN(v), ShouldBeFalse)
			}
		})
	})

	Convey("Given an empty subset", t, func() {
		_, err := Aggregate(nil, model.AllSkills())

		Convey("Then it signals empty input", func() {
			So(errors.Is(err, ErrEmptyInput), ShouldBeTrue)
		})
	})

	Convey("Given no skills", t, func() {
		_, err := Aggregate(sample(), nil)
		So(errors.Is(err, ErrNoSkills), ShouldBeTrue)
	})

	Convey("Given an unknown skill", t, func() {
		_, err := Aggregate(sample(), []model.Skill{"Luck"})
		So(errors.Is(err, ErrUnknownSkill), ShouldBeTrue)
	})
}

func TestRound(t *testing.T) {
	Convey("Given values to round", t, func() {
		So(Round(3.25, 1), ShouldEqual, 3.3)
		So(Round(4.0, 1), ShouldEqual, 4.0)
		So(Round(2.333333, 2), ShouldEqual, 2.33)
	})
}
