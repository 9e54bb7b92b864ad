// Package custdiff models customer snapshots as immutable values and
// provides pure functions for diffing them, pairing adjacent snapshots in
// an audit trail, and aggregating over fallible lookups without throwing.
//
// See doc.go for the full package documentation.
package custdiff

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/samber/mo"
)

// ============================================================================
// Customer Model
// ============================================================================

// Address is a value type: five independently optional fields, compared
// structurally. Updates return a new Address and never touch the receiver.
type Address struct {
	Line1   mo.Option[string]
	Line2   mo.Option[string]
	ZipCode mo.Option[string]
	City    mo.Option[string]
	Country mo.Option[string]
}

// String joins the present fields with ", ". Absent fields contribute
// nothing, so two addresses render equal exactly when they are equal.
func (a Address) String() string {
	parts := lo.FilterMap([]mo.Option[string]{a.Line1, a.Line2, a.ZipCode, a.City, a.Country},
		func(field mo.Option[string], _ int) (string, bool) {
			return field.Get()
		})
	return strings.Join(parts, ", ")
}

// Equal reports structural equality.
func (a Address) Equal(other Address) bool {
	return a == other
}

// WithLine1 returns a copy of the address with line1 replaced.
func (a Address) WithLine1(line1 mo.Option[string]) Address {
	a.Line1 = line1
	return a
}

// WithLine2 returns a copy of the address with line2 replaced.
func (a Address) WithLine2(line2 mo.Option[string]) Address {
	a.Line2 = line2
	return a
}

// WithZipCode returns a copy of the address with the zip code replaced.
func (a Address) WithZipCode(zipCode mo.Option[string]) Address {
	a.ZipCode = zipCode
	return a
}

// WithCity returns a copy of the address with the city replaced.
func (a Address) WithCity(city mo.Option[string]) Address {
	a.City = city
	return a
}

// WithCountry returns a copy of the address with the country replaced.
func (a Address) WithCountry(country mo.Option[string]) Address {
	a.Country = country
	return a
}

// MapCountry returns a copy of the address with the country, if present,
// passed through normalize. An absent country stays absent.
//
// Example:
//
//	renamed := addr.MapCountry(func(c string) string {
//	    if c == "Polska" {
//	        return "Poland"
//	    }
//	    return c
//	})
func (a Address) MapCountry(normalize func(string) string) Address {
	a.Country = a.Country.Map(func(c string) (string, bool) {
		return normalize(c), true
	})
	return a
}

// Customer is a value type describing one snapshot of a customer. All four
// fields are required. Equality is structural; any update produces a new
// Customer, so a snapshot held anywhere stays exactly as it was recorded.
type Customer struct {
	Name    string
	Address Address
	BornOn  time.Time
	Active  bool
}

// Equal reports structural equality. The born-on instants are compared with
// time.Time.Equal so equal instants in different locations match.
func (c Customer) Equal(other Customer) bool {
	return c.Name == other.Name &&
		c.Address == other.Address &&
		c.BornOn.Equal(other.BornOn) &&
		c.Active == other.Active
}

// WithName returns a copy of the customer with the name replaced.
func (c Customer) WithName(name string) Customer {
	c.Name = name
	return c
}

// WithAddress returns a copy of the customer with the address replaced.
func (c Customer) WithAddress(address Address) Customer {
	c.Address = address
	return c
}

// WithBornOn returns a copy of the customer with the birth instant replaced.
func (c Customer) WithBornOn(bornOn time.Time) Customer {
	c.BornOn = bornOn
	return c
}

// WithActive returns a copy of the customer with the active flag replaced.
func (c Customer) WithActive(active bool) Customer {
	c.Active = active
	return c
}

// Deactivate returns an inactive copy of the customer.
func (c Customer) Deactivate() Customer {
	return c.WithActive(false)
}

// ============================================================================
// Diffing
// ============================================================================

// bornOnLayout renders an instant with an explicit UTC designator and
// minute precision, e.g. 2014-03-18T12:00Z. The exact form is part of the
// Diff contract because it appears in change descriptions.
const bornOnLayout = "2006-01-02T15:04Z07:00"

// ComparableAttribute is a named projection of a Customer to the string
// form used when diffing. The attribute list drives both which fields a
// diff considers and the order they appear in.
type ComparableAttribute struct {
	Name    string
	Extract func(Customer) string
}

// CustomerAttributes is the fixed, ordered attribute list used by Diff.
var CustomerAttributes = []ComparableAttribute{
	{Name: "name", Extract: func(c Customer) string { return c.Name }},
	{Name: "address", Extract: func(c Customer) string { return c.Address.String() }},
	{Name: "born on", Extract: func(c Customer) string { return c.BornOn.UTC().Format(bornOnLayout) }},
	{Name: "is active", Extract: func(c Customer) string { return strconv.FormatBool(c.Active) }},
}

// Diff describes the attribute-level differences between two snapshots.
// Each attribute whose projections differ contributes
// "<name>: <old> -> <new>"; fragments are joined with " | " in attribute
// order. Identical snapshots produce the empty string.
func Diff(before, after Customer) string {
	fragments := lo.FilterMap(CustomerAttributes, func(attr ComparableAttribute, _ int) (string, bool) {
		was, is := attr.Extract(before), attr.Extract(after)
		if was == is {
			return "", false
		}
		return fmt.Sprintf("%s: %s -> %s", attr.Name, was, is), true
	})
	return strings.Join(fragments, " | ")
}

// ============================================================================
// Pairwise
// ============================================================================

// ZipWithNext pairs every element of seq with its successor. A sequence of
// length n yields n-1 pairs; shorter sequences yield none.
func ZipWithNext[T any](seq []T) []lo.Tuple2[T, T] {
	if len(seq) < 2 {
		return nil
	}
	return lo.Zip2(seq[:len(seq)-1], seq[1:])
}

// PairwiseDiff diffs each snapshot in history against its successor.
// The result has length max(0, len(history)-1); a pair of identical
// snapshots keeps its position as an empty string. The input is never
// modified.
func PairwiseDiff(history []Customer) []string {
	if len(history) < 2 {
		return nil
	}
	diffs := make([]string, 0, len(history)-1)
	for i := 0; i < len(history)-1; i++ {
		diffs = append(diffs, Diff(history[i], history[i+1]))
	}
	return diffs
}

// Changes reports the non-empty diffs between adjacent snapshots, in
// order. This is the change-reporting variant of PairwiseDiff: positions
// where nothing changed are dropped rather than kept empty.
func Changes(history []Customer) []string {
	diffs := lo.Map(ZipWithNext(history), func(pair lo.Tuple2[Customer, Customer], _ int) string {
		return Diff(pair.A, pair.B)
	})
	return lo.Filter(diffs, func(diff string, _ int) bool {
		return diff != ""
	})
}

// ============================================================================
// Folds
// ============================================================================

// FoldLeft reduces seq left to right, combining the accumulator with each
// element in turn, starting from zero.
//
// Example:
//
//	FoldLeft([]int{1, 2, 3, 4}, 0, func(a, b int) int { return a + b }) // 10
//	FoldLeft([]int{1, 2, 3, 4}, 1, func(a, b int) int { return a * b }) // 24
func FoldLeft[T, A any](seq []T, zero A, combine func(A, T) A) A {
	return lo.Reduce(seq, func(acc A, item T, _ int) A {
		return combine(acc, item)
	}, zero)
}

// ============================================================================
// Fallible Lookup
// ============================================================================

// ErrNoCustomers is returned by AverageAge when no key resolves to a
// present customer: an average over nothing is an error, not a number.
var ErrNoCustomers = errors.New("no customers resolved, average age undefined")

// LookupFunc resolves a key to a customer that may be absent, or fails.
// It is the one external collaborator of the aggregation functions; any
// function with this shape will do, which also makes tests trivial:
//
//	lookup := custdiff.LookupFunc[string](func(key string) mo.Result[mo.Option[custdiff.Customer]] {
//	    return mo.Ok(mo.Some(fixtureCustomer))
//	})
type LookupFunc[K comparable] func(key K) mo.Result[mo.Option[Customer]]

// FromMap builds a lookup backed by an in-memory map. Missing keys resolve
// to an absent customer; the lookup never fails.
func FromMap[K comparable](customers map[K]Customer) LookupFunc[K] {
	return func(key K) mo.Result[mo.Option[Customer]] {
		c, ok := customers[key]
		if !ok {
			return mo.Ok(mo.None[Customer]())
		}
		return mo.Ok(mo.Some(c))
	}
}

// Fallback consults next for keys this lookup resolves as absent.
// Failures are returned as-is and never trigger the fallback.
func (f LookupFunc[K]) Fallback(next LookupFunc[K]) LookupFunc[K] {
	return func(key K) mo.Result[mo.Option[Customer]] {
		res := f(key)
		if res.IsError() {
			return res
		}
		if _, present := res.MustGet().Get(); present {
			return res
		}
		return next(key)
	}
}

// Tap invokes observe with every key before resolving it, leaving the
// result untouched.
func (f LookupFunc[K]) Tap(observe func(K)) LookupFunc[K] {
	return func(key K) mo.Result[mo.Option[Customer]] {
		observe(key)
		return f(key)
	}
}

// ResolveAll resolves every key in order, invoking lookup exactly once per
// key. The first failure is returned immediately as-is, without attempting
// the remaining keys. On success the absent customers are dropped and the
// present ones returned in key order.
func ResolveAll[K comparable](keys []K, lookup LookupFunc[K]) mo.Result[[]Customer] {
	resolved := make([]Customer, 0, len(keys))
	for _, key := range keys {
		res := lookup(key)
		if res.IsError() {
			return mo.Err[[]Customer](res.Error())
		}
		if c, present := res.MustGet().Get(); present {
			resolved = append(resolved, c)
		}
	}
	return mo.Ok(resolved)
}

// ageTally accumulates lifetimes during an average-age fold. Elapsed time
// is carried as whole seconds so that summing many long lifetimes cannot
// overflow the way summing nanosecond durations would.
type ageTally struct {
	elapsed int64 // whole seconds lived, summed over tallied customers
	count   int64
}

func (t ageTally) add(other ageTally) ageTally {
	return ageTally{elapsed: t.elapsed + other.elapsed, count: t.count + other.count}
}

// yearSeconds is one 365-day reporting year.
const yearSeconds = 365 * 24 * 60 * 60

// AverageAge resolves every key and averages the ages, in whole years
// relative to ref, of the customers that were present. The fold starts
// from a zero tally, adds elapsed time and counts pairwise, and divides
// only at the end.
//
// A lookup failure is returned immediately, carrying that lookup's own
// error. Resolving zero present customers fails with ErrNoCustomers.
func AverageAge[K comparable](keys []K, lookup LookupFunc[K], ref time.Time) mo.Result[int] {
	res := ResolveAll(keys, lookup)
	if res.IsError() {
		return mo.Err[int](res.Error())
	}
	customers := res.MustGet()
	if len(customers) == 0 {
		return mo.Err[int](ErrNoCustomers)
	}
	total := FoldLeft(customers, ageTally{}, func(acc ageTally, c Customer) ageTally {
		return acc.add(ageTally{elapsed: int64(ref.Sub(c.BornOn) / time.Second), count: 1})
	})
	return mo.Ok(int(total.elapsed / total.count / yearSeconds))
}
