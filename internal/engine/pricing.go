package engine

// MinBidUnit returns the minimum increment a new bid must exceed the
// current price by. The unit grows by 5 for every full hundred of price.
func MinBidUnit(price int) int {
	switch {
	case price <= 99:
		return 5
	case price <= 199:
		return 10
	case price <= 299:
		return 15
	case price <= 399:
		return 20
	default:
		return 20 + 5*((price-300)/100)
	}
}

// NextMinBid returns the smallest amount that is a legal bid at the
// given price.
func NextMinBid(price int) int {
	return price + MinBidUnit(price)
}

// CanBid reports whether amount is a legal bid against price for a team
// with the given available points. Both conditions are hard requirements:
// an illegal amount is rejected outright, never clamped.
func CanBid(price, amount, available int) bool {
	return amount >= NextMinBid(price) && amount <= available
}
