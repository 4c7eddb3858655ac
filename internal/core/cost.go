package core

import "fmt"

// PerSessionPrice is a price divided by a session count. OK is false when
// the division is not meaningful (no price or no sessions).
type PerSessionPrice struct {
	Euros float64
	OK    bool
}

func (p PerSessionPrice) String() string {
	if !p.OK {
		return "--"
	}
	return fmt.Sprintf("%.2f €", p.Euros)
}

// PricePerSession divides price by count, gating on both being positive.
func PricePerSession(price Money, count int) PerSessionPrice {
	if !price.IsSet() || count <= 0 {
		return PerSessionPrice{}
	}
	return PerSessionPrice{Euros: price.Euros() / float64(count), OK: true}
}

// CategoryCost is the cost view of a single category.
type CategoryCost struct {
	Category   Category
	Count      int
	Price      Money
	PerSession PerSessionPrice
}

// CostBreakdown aggregates subscription cost over every priced category.
type CostBreakdown struct {
	Categories       []CategoryCost
	TotalPrice       Money
	PaidSessionCount int
	GlobalPerSession PerSessionPrice
}

// ComputeCosts derives per-category and global per-session prices.
//
// A price of zero means the category is not subscribed: it is left out of
// the total and its sessions are left out of the paid session count. Free
// categories never take part, whatever their price.
func ComputeCosts(categories []Category, prices map[string]Money, counts map[string]int) CostBreakdown {
	var out CostBreakdown
	for _, c := range categories {
		if c.Free {
			continue
		}
		price := prices[c.ID]
		count := counts[c.ID]
		out.Categories = append(out.Categories, CategoryCost{
			Category:   c,
			Count:      count,
			Price:      price,
			PerSession: PricePerSession(price, count),
		})
		if price.IsSet() {
			out.TotalPrice.Cents += price.Cents
			out.PaidSessionCount += count
		}
	}
	out.GlobalPerSession = PricePerSession(out.TotalPrice, out.PaidSessionCount)
	return out
}
