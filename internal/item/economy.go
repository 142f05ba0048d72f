package item

import "math"

// Offer records one item the game presented to the player, with the coin
// balance at the moment of the offer.
type Offer struct {
	Level        int
	Source       string // "shop", "floor", "boss", "mystery"
	Price        int
	CoinsAtOffer int
	Power        float64
	Purchased    bool
}

// Assists are the soft-balancing multipliers derived from the economy ratio.
// All are 1.0 when no assist is active.
type Assists struct {
	CoinBoost      float64 // multiplies coin rewards
	PriceCut       float64 // multiplies shop prices
	EliteWeightCut float64 // multiplies elite spawn weight
}

// NoAssists is the neutral assist set.
func NoAssists() Assists {
	return Assists{CoinBoost: 1, PriceCut: 1, EliteWeightCut: 1}
}

const (
	offerEMAAlpha   = 0.25
	assistThreshold = 0.9
)

// Economy tracks every offered item and smooths an "expected offer power"
// curve. Comparing the player's actual equipped power against that curve
// yields a ratio that prefers economic nudges over direct difficulty
// reduction. Reset at run boundaries.
type Economy struct {
	offers []Offer
	ema    float64
	primed bool
}

// NewEconomy returns an empty tracker.
func NewEconomy() *Economy {
	return &Economy{}
}

// Reset drops all offer history.
func (e *Economy) Reset() {
	e.offers = nil
	e.ema = 0
	e.primed = false
}

// RecordOffer logs an offer and folds its affordability-weighted power into
// the expected-power curve. Returns the offer index for later purchase marks.
func (e *Economy) RecordOffer(o Offer) int {
	e.offers = append(e.offers, o)

	// Unaffordable offers count at half weight: they were shown but not
	// realistically attainable.
	weighted := o.Power
	if o.Price > o.CoinsAtOffer {
		weighted *= 0.5
	}
	if !e.primed {
		e.ema = weighted
		e.primed = true
	} else {
		e.ema = offerEMAAlpha*weighted + (1-offerEMAAlpha)*e.ema
	}
	return len(e.offers) - 1
}

// MarkPurchased flags a recorded offer as bought.
func (e *Economy) MarkPurchased(index int) {
	if index >= 0 && index < len(e.offers) {
		e.offers[index].Purchased = true
	}
}

// Offers returns the recorded offer log.
func (e *Economy) Offers() []Offer {
	return e.offers
}

// ExpectedOfferPower returns the smoothed offered-power curve, or 0 when no
// offers have been recorded.
func (e *Economy) ExpectedOfferPower() float64 {
	if !e.primed {
		return 0
	}
	return e.ema
}

// Ratio compares equipped power against the expected offer power, clamped
// to [0.8, 1.25]. With no history the ratio is neutral.
func (e *Economy) Ratio(equippedPower float64) float64 {
	expected := e.ExpectedOfferPower()
	if expected <= 0 {
		return 1.0
	}
	return math.Min(1.25, math.Max(0.8, equippedPower/expected))
}

// AssistsFor derives the soft-assist multipliers for the given equipped
// power. Below the threshold the game nudges the economy instead of
// weakening mobs: richer coin rewards, cheaper shops, fewer elites.
func (e *Economy) AssistsFor(equippedPower float64) Assists {
	if e.Ratio(equippedPower) < assistThreshold {
		return Assists{CoinBoost: 1.25, PriceCut: 0.85, EliteWeightCut: 0.7}
	}
	return NoAssists()
}
