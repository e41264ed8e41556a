package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yuta/auction-draft-backend/internal/engine"
)

func TestMinBidUnit_Boundaries(t *testing.T) {
	tests := []struct {
		price int
		want  int
	}{
		{0, 5},
		{50, 5},
		{99, 5},
		{100, 10},
		{150, 10},
		{199, 10},
		{200, 15},
		{299, 15},
		{300, 20},
		{399, 20},
		{400, 25},
		{450, 25},
		{499, 25},
		{500, 30},
		{599, 30},
		{600, 35},
		{1000, 55},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, engine.MinBidUnit(tt.price), "price=%d", tt.price)
	}
}

func TestMinBidUnit_NonDecreasing(t *testing.T) {
	prev := 0
	for price := 0; price <= 2000; price++ {
		unit := engine.MinBidUnit(price)
		assert.GreaterOrEqual(t, unit, 5, "price=%d", price)
		assert.GreaterOrEqual(t, unit, prev, "price=%d", price)
		prev = unit
	}
}

func TestNextMinBid(t *testing.T) {
	assert.Equal(t, 5, engine.NextMinBid(0))
	assert.Equal(t, 55, engine.NextMinBid(50))
	assert.Equal(t, 160, engine.NextMinBid(150))
	assert.Equal(t, 475, engine.NextMinBid(450))
}

func TestCanBid(t *testing.T) {
	tests := []struct {
		name      string
		price     int
		amount    int
		available int
		want      bool
	}{
		{"exact next minimum", 50, 55, 100, true},
		{"above minimum", 50, 70, 100, true},
		{"below minimum", 50, 54, 100, false},
		{"equal to current price", 50, 50, 100, false},
		{"exceeds balance", 50, 101, 100, false},
		{"whole balance", 50, 100, 100, true},
		{"zero balance", 0, 5, 0, false},
		{"opening bid", 0, 5, 800, true},
		{"opening below unit", 0, 4, 800, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, engine.CanBid(tt.price, tt.amount, tt.available))
		})
	}
}
