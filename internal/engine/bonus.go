package engine

import (
	"fmt"

	"mazecrawl/internal/item"
)

// BonusKind is one level-clear reward option.
type BonusKind string

const (
	BonusRestoreHealth BonusKind = "restore_health"
	BonusDoubleCoins   BonusKind = "double_coins"
	BonusSkipShop      BonusKind = "skip_shop"
	BonusSkipBoss      BonusKind = "skip_boss"
	BonusMysteryBox    BonusKind = "mystery_box"

	// BonusForgo declines the offer; the level still completes.
	BonusForgo BonusKind = "forgo"
)

var bonusPool = [...]BonusKind{
	BonusRestoreHealth,
	BonusDoubleCoins,
	BonusSkipShop,
	BonusSkipBoss,
	BonusMysteryBox,
}

// BonusOffer is the two-option choice shown when a normal level is
// cleared of enemies. Resolving it completes the level exactly once.
type BonusOffer struct {
	Options  [2]BonusKind
	resolved bool
}

// PendingBonus returns the open offer, or nil.
func (g *Engine) PendingBonus() *BonusOffer { return g.bonus }

// maybeOfferBonus presents two distinct random options the first time a
// normal sector has no living enemies.
func (g *Engine) maybeOfferBonus() {
	if g.bonusOffered || g.levelDone || g.level.IsBoss || g.level.IsShop {
		return
	}
	if g.level.AliveEnemies() > 0 {
		return
	}
	g.bonusOffered = true
	i := g.rng.Intn(len(bonusPool))
	j := g.rng.Intn(len(bonusPool) - 1)
	if j >= i {
		j++
	}
	g.bonus = &BonusOffer{Options: [2]BonusKind{bonusPool[i], bonusPool[j]}}
	g.emit(Event{Kind: EventBonusOffered})
}

// ChooseBonus resolves the open offer with one of its options or
// BonusForgo. Either way the level completes; a second call is rejected,
// so awards can never double.
func (g *Engine) ChooseBonus(kind BonusKind) error {
	if g.bonus == nil {
		return fmt.Errorf("choose bonus: no offer pending")
	}
	if g.bonus.resolved {
		return fmt.Errorf("choose bonus: offer already resolved")
	}
	if kind != BonusForgo && kind != g.bonus.Options[0] && kind != g.bonus.Options[1] {
		return fmt.Errorf("choose bonus: %q is not offered", kind)
	}
	g.bonus.resolved = true
	g.applyBonus(kind)
	g.emit(Event{Kind: EventBonusResolved, Item: string(kind)})
	g.completeLevel()
	return nil
}

func (g *Engine) applyBonus(kind BonusKind) {
	switch kind {
	case BonusRestoreHealth:
		g.player.HP = g.player.MaxHP
	case BonusDoubleCoins:
		g.player.Coins *= 2
	case BonusSkipShop:
		g.skipShop = true
	case BonusSkipBoss:
		g.skipBoss = true
	case BonusMysteryBox:
		boxed := g.items.Roll(g.levelNum + 2)
		g.economy.RecordOffer(item.Offer{
			Level:        g.levelNum,
			Source:       "mystery",
			CoinsAtOffer: g.player.Coins,
			Power:        boxed.Power(),
			Purchased:    true,
		})
		g.acquire(boxed)
		g.emit(Event{Kind: EventPickup, Item: boxed.Name})
	case BonusForgo:
	}
}
