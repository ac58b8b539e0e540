// Package pricing holds the laundry price rules shared by the calculator,
// pickup registration and the financial backfill.
package pricing

import (
	"laundrydesk/internal/core/types"
)

// Method tags how a price was derived. Stored on the service record.
type Method string

const (
	MethodWeight   Method = "WEIGHT"
	MethodBagCount Method = "BAG_COUNT"
)

// Rule identifies which decision rule produced a Result.
type Rule int

const (
	RuleExisting Rule = iota + 1
	RuleHotelRate
	RuleDefaultRate
	RuleBagCount
	RuleMinimum
)

func (r Rule) String() string {
	switch r {
	case RuleExisting:
		return "existing"
	case RuleHotelRate:
		return "hotel_rate"
	case RuleDefaultRate:
		return "default_rate"
	case RuleBagCount:
		return "bag_count"
	case RuleMinimum:
		return "minimum"
	}
	return "unknown"
}

var (
	// DefaultRatePerKg applies when the hotel has no configured rate.
	DefaultRatePerKg = types.NewMoneyFromInt(10)
	// AveragePricePerBag estimates a bag when no weight was recorded.
	AveragePricePerBag = types.NewMoneyFromInt(25)
	// MinimumServicePrice is the floor for any computed price.
	MinimumServicePrice = types.NewMoneyFromInt(20)
)

// Price multiplies weight by rate with two-decimal monetary rounding.
func Price(weightKg, ratePerKg types.Money) types.Money {
	return types.RoundMoney(weightKg.Mul(ratePerKg))
}

// Input carries the service facts the rules look at.
// Nil pointers mean "not recorded".
type Input struct {
	ExistingPrice   *types.Money
	Weight          *types.Money
	BagCount        *int
	HotelPricePerKg *types.Money
}

// Result is a computed price and how it was obtained.
type Result struct {
	Price  types.Money
	Method Method
	Rule   Rule
}

// Calculated reports whether the price was newly computed (not pre-existing).
func (r Result) Calculated() bool {
	return r.Rule != RuleExisting
}

// Compute applies the rules in order; the first that applies wins:
//  1. a positive existing price is returned unchanged
//  2. weight × hotel rate
//  3. weight × default rate
//  4. max(bags × average bag price, minimum)
//  5. minimum
//
// Computed prices never go below MinimumServicePrice.
func Compute(in Input) Result {
	if types.IsPositive(in.ExistingPrice) {
		return Result{Price: *in.ExistingPrice, Rule: RuleExisting}
	}

	if types.IsPositive(in.Weight) {
		if types.IsPositive(in.HotelPricePerKg) {
			return Result{
				Price:  floor(Price(*in.Weight, *in.HotelPricePerKg)),
				Method: MethodWeight,
				Rule:   RuleHotelRate,
			}
		}
		return Result{
			Price:  floor(Price(*in.Weight, DefaultRatePerKg)),
			Method: MethodWeight,
			Rule:   RuleDefaultRate,
		}
	}

	if in.BagCount != nil && *in.BagCount > 0 {
		byBags := AveragePricePerBag.Mul(types.NewMoneyFromInt(int64(*in.BagCount)))
		return Result{
			Price:  floor(types.RoundMoney(byBags)),
			Method: MethodBagCount,
			Rule:   RuleBagCount,
		}
	}

	return Result{
		Price:  MinimumServicePrice,
		Method: MethodBagCount,
		Rule:   RuleMinimum,
	}
}

func floor(p types.Money) types.Money {
	return types.Max(p, MinimumServicePrice)
}

// Quote prices a prospective service that has no recorded price yet.
func Quote(weight *types.Money, bagCount *int, hotelPricePerKg *types.Money) Result {
	return Compute(Input{Weight: weight, BagCount: bagCount, HotelPricePerKg: hotelPricePerKg})
}
