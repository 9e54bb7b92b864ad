package custdiff

import (
	"slices"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/samber/mo"
)

func genOptionString() gopter.Gen {
	return gopter.CombineGens(gen.Bool(), gen.AlphaString()).Map(func(values []interface{}) mo.Option[string] {
		if values[0].(bool) {
			return mo.Some(values[1].(string))
		}
		return mo.None[string]()
	})
}

func genAddress() gopter.Gen {
	return gopter.CombineGens(
		genOptionString(),
		genOptionString(),
		genOptionString(),
		genOptionString(),
		genOptionString(),
	).Map(func(values []interface{}) Address {
		return Address{
			Line1:   values[0].(mo.Option[string]),
			Line2:   values[1].(mo.Option[string]),
			ZipCode: values[2].(mo.Option[string]),
			City:    values[3].(mo.Option[string]),
			Country: values[4].(mo.Option[string]),
		}
	})
}

func genCustomer() gopter.Gen {
	return gopter.CombineGens(
		gen.AlphaString(),
		genAddress(),
		gen.Int64Range(-2208988800, 1893456000), // 1900..2030
		gen.Bool(),
	).Map(func(values []interface{}) Customer {
		return Customer{
			Name:    values[0].(string),
			Address: values[1].(Address),
			BornOn:  time.Unix(values[2].(int64), 0).UTC(),
			Active:  values[3].(bool),
		}
	})
}

func genHistory() gopter.Gen {
	return gen.SliceOf(genCustomer())
}

func TestProperties(t *testing.T) {
	properties := gopter.NewProperties(gopter.DefaultTestParameters())

	properties.Property("diffing a snapshot against itself yields nothing", prop.ForAll(
		func(c Customer) bool {
			return Diff(c, c) == ""
		},
		genCustomer(),
	))

	properties.Property("pairwise diff has length max(0, n-1)", prop.ForAll(
		func(history []Customer) bool {
			want := 0
			if len(history) > 1 {
				want = len(history) - 1
			}
			return len(PairwiseDiff(history)) == want
		},
		genHistory(),
	))

	properties.Property("updates never disturb the original snapshot", prop.ForAll(
		func(c Customer, name string, active bool) bool {
			snapshot := c
			_ = c.WithName(name).WithActive(active).WithAddress(c.Address.WithCity(mo.Some(name)))
			return c.Equal(snapshot)
		},
		genCustomer(),
		gen.AlphaString(),
		gen.Bool(),
	))

	properties.Property("cursor, zip and fold pairing strategies agree", prop.ForAll(
		func(history []Customer) bool {
			cursor := PairwiseDiff(history)
			return slices.Equal(cursor, pairwiseDiffByZip(history)) &&
				slices.Equal(cursor, pairwiseDiffByFold(history))
		},
		genHistory(),
	))

	properties.Property("changes are exactly the non-empty pairwise diffs", prop.ForAll(
		func(history []Customer) bool {
			var nonEmpty []string
			for _, d := range PairwiseDiff(history) {
				if d != "" {
					nonEmpty = append(nonEmpty, d)
				}
			}
			return slices.Equal(nonEmpty, Changes(history))
		},
		genHistory(),
	))

	properties.TestingRun(t)
}
