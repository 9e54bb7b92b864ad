/*
Package custdiff provides immutable customer snapshots and pure functions
for diffing, pairing, and aggregating them.

# Overview

Custdiff demonstrates how far plain values and a handful of pure functions
go when modeling change over time. A Customer is a value type: updating it
produces a new snapshot and leaves every existing snapshot, and every
structure holding one, untouched. On top of that sit three small
transformations: a field-by-field diff of two snapshots, a pairwise diff
over an audit trail, and a fail-fast aggregation over a sequence of
fallible lookups.

# Key Benefits

  - No aliasing surprises: snapshots are values, updates are copies
  - No throwing: failures are tagged values (mo.Result), inspected by the caller
  - No shared accumulators: sequences reduce through explicit folds
  - No mock generation: the lookup collaborator is a function you swap inline

# Quick Example

Build a snapshot, update it, and describe what changed:

	addr := custdiff.Address{
	    Line1:   mo.Some("Warszawska 1"),
	    ZipCode: mo.Some("00-000"),
	    City:    mo.Some("Warsaw"),
	    Country: mo.Some("Poland"),
	}

	before := custdiff.Customer{
	    Name:    "Johny Kovalsky",
	    Address: addr,
	    BornOn:  time.Date(2014, 3, 18, 12, 0, 0, 0, time.UTC),
	    Active:  true,
	}

	after := before.WithName("Jan Kowalski").Deactivate()

	fmt.Println(custdiff.Diff(before, after))
	// name: Johny Kovalsky -> Jan Kowalski | is active: true -> false

before is exactly what it was; after is a new value.

# Core Concepts

Value semantics: Address and Customer compare structurally and update by
copy. With* methods take a value receiver, modify the copy, and return it:

	c2 := c.WithActive(false)     // c unchanged
	c.Equal(c2)                   // false, unless it was already inactive

Tagged results: fallible operations return mo.Result instead of panicking
or hiding errors in out-of-band state. A lookup error travels through
AverageAge untouched, so callers can still match on the original error:

	res := custdiff.AverageAge(keys, lookup, time.Now())
	if res.IsError() {
	    // res.Error() is the lookup's own error, or ErrNoCustomers
	}

Folds: reducing a sequence means combining an accumulator with each
element left to right, starting from a neutral zero:

	sum := custdiff.FoldLeft([]int{1, 2, 3, 4}, 0, func(a, b int) int { return a + b })

AverageAge is itself a fold: it accumulates (elapsed time, count) and
divides once at the end, so there is no running average and no mutable
cell shared across iterations.

# Available Pieces

Model:
  - Address, Customer: immutable value types with With* structural updates
  - ComparableAttribute, CustomerAttributes: the ordered diff projections

Transformations:
  - Diff: field-level description of what changed between two snapshots
  - PairwiseDiff, Changes, ZipWithNext: adjacent-snapshot comparison
  - FoldLeft: generic left fold

Aggregation:
  - LookupFunc: the pluggable key-to-customer collaborator, with
    FromMap, Fallback, and Tap combinators
  - ResolveAll: in-order, fail-fast resolution of a key list
  - AverageAge: average age of the resolved customers, ErrNoCustomers
    when there are none

# Testing Philosophy

The lookup collaborator is a function type, not an interface, so tests
need no mock framework:

	failing := errors.New("storage offline")

	lookup := custdiff.LookupFunc[string](func(key string) mo.Result[mo.Option[custdiff.Customer]] {
	    if key == "bad" {
	        return mo.Err[mo.Option[custdiff.Customer]](failing)
	    }
	    return mo.Ok(mo.Some(fixture))
	})

	res := custdiff.AverageAge([]string{"ok", "bad", "never-reached"}, lookup, ref)
	errors.Is(res.Error(), failing) // true

# Package Import

	import "github.com/Left-Fold/custdiff"
*/
package custdiff
