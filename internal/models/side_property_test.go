package models

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestProperty_Crossovers(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 500

	properties := gopter.NewProperties(parameters)

	quad := gopter.CombineGens(
		gen.Float64Range(1, 200),
		gen.Float64Range(1, 200),
		gen.Float64Range(1, 200),
		gen.Float64Range(1, 200),
	)

	properties.Property("a day never signals entry and exit for the same side", prop.ForAll(
		func(vs []interface{}) bool {
			p1, p0 := vs[0].(float64), vs[1].(float64)
			m1, m0 := vs[2].(float64), vs[3].(float64)
			for _, side := range []Side{SideCall, SidePut} {
				if side.EntryCross(p1, p0, m1, m0) && side.ExitCross(p1, p0, m1, m0) {
					return false
				}
			}
			return true
		},
		quad,
	))

	properties.Property("call entry is put exit and vice versa", prop.ForAll(
		func(vs []interface{}) bool {
			p1, p0 := vs[0].(float64), vs[1].(float64)
			m1, m0 := vs[2].(float64), vs[3].(float64)
			return SideCall.EntryCross(p1, p0, m1, m0) == SidePut.ExitCross(p1, p0, m1, m0) &&
				SidePut.EntryCross(p1, p0, m1, m0) == SideCall.ExitCross(p1, p0, m1, m0)
		},
		quad,
	))

	properties.Property("a cross implies being in the market for that side", prop.ForAll(
		func(vs []interface{}) bool {
			p1, p0 := vs[0].(float64), vs[1].(float64)
			m1, m0 := vs[2].(float64), vs[3].(float64)
			for _, side := range []Side{SideCall, SidePut} {
				if side.EntryCross(p1, p0, m1, m0) && !side.InMarket(p1, m1) {
					return false
				}
			}
			return true
		},
		quad,
	))

	properties.TestingRun(t)
}
