// Package economy implements merchant trading: scarcity pricing, buy and
// sell transactions, and gradual restocking.
package economy

import (
	"log/slog"

	"github.com/oakhaven/emberquest/internal/config"
	"github.com/oakhaven/emberquest/internal/entities"
	"github.com/oakhaven/emberquest/internal/errors"
)

// Config holds the shop dependencies.
type Config struct {
	Economy config.EconomyConfig
	Log     *slog.Logger
}

// Validate ensures the pricing knobs are usable.
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config is required")
	}
	vb := errors.NewValidationBuilder()
	if c.Economy.ScarcityStep < 0 {
		vb.InvalidField("economy.scarcity_step", "must not be negative")
	}
	if c.Economy.SellRatio < 0 || c.Economy.SellRatio > 1 {
		vb.InvalidField("economy.sell_ratio", "must be in [0,1]")
	}
	return vb.Build()
}

// Shop executes trades between the player and merchant NPCs.
type Shop struct {
	cfg config.EconomyConfig
	log *slog.Logger
}

// NewShop creates a shop.
func NewShop(cfg *Config) (*Shop, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log := cfg.Log
	if log == nil {
		log = slog.Default()
	}
	return &Shop{cfg: cfg.Economy, log: log}, nil
}

// BuyPrice quotes what the merchant charges for one unit right now.
// Depleted stock raises the price by ScarcityStep of the base value per
// missing unit, so the quote recovers as the merchant restocks.
func (s *Shop) BuyPrice(item *entities.Item, entry *entities.StockEntry) int {
	price := float64(item.Value)
	if entry != nil && entry.BaseCount > entry.Count {
		price *= 1 + s.cfg.ScarcityStep*float64(entry.BaseCount-entry.Count)
	}
	if price < float64(item.Value) {
		price = float64(item.Value)
	}
	return int(price)
}

// SellPrice quotes what the merchant pays for one unit.
func (s *Shop) SellPrice(item *entities.Item) int {
	return int(float64(item.Value) * s.cfg.SellRatio)
}

// Buy moves one unit from the merchant to the player. It fails with
// OutOfStock when the merchant has none left and InsufficientGold when the
// player cannot cover the current quote.
func (s *Shop) Buy(player *entities.Player, merchant *entities.MerchantState, item *entities.Item) (int, error) {
	entry := merchant.Entry(item.ID)
	if entry == nil || entry.Count <= 0 {
		return 0, errors.OutOfStockf("%s is out of stock", item.Name)
	}
	price := s.BuyPrice(item, entry)
	if player.Gold < price {
		return 0, errors.InsufficientGoldf("%s costs %d gold, have %d", item.Name, price, player.Gold)
	}

	player.Gold -= price
	merchant.Gold += price
	entry.Count--
	player.AddItem(item.ID, 1)

	s.log.Debug("item bought",
		slog.String("item_id", item.ID),
		slog.Int("price", price),
		slog.Int("stock_left", entry.Count))
	return price, nil
}

// Sell moves one unit from the player to the merchant. Equipped items must
// be unequipped first. The merchant only pays what it can afford.
func (s *Shop) Sell(player *entities.Player, merchant *entities.MerchantState, item *entities.Item) (int, error) {
	if player.ItemCount(item.ID) == 0 {
		return 0, errors.NotFoundf("not carrying %s", item.Name)
	}
	if player.IsEquipped(item.ID) {
		return 0, errors.NotUsablef("%s is equipped", item.Name)
	}
	price := s.SellPrice(item)
	if merchant.Gold < price {
		return 0, errors.InsufficientGoldf("merchant cannot afford %s", item.Name)
	}

	player.RemoveItem(item.ID, 1)
	player.Gold += price
	merchant.Gold -= price

	entry := merchant.Entry(item.ID)
	if entry != nil {
		entry.Count++
	} else {
		merchant.Stock = append(merchant.Stock, entities.StockEntry{
			ItemID: item.ID, Count: 1, BaseCount: 0,
		})
	}

	s.log.Debug("item sold",
		slog.String("item_id", item.ID),
		slog.Int("price", price))
	return price, nil
}

// Restock recovers one unit of every depleted stock line, never past its
// base count. Bought-back items with no base count are left alone.
func (s *Shop) Restock(merchant *entities.MerchantState) {
	for i := range merchant.Stock {
		entry := &merchant.Stock[i]
		if entry.Count < entry.BaseCount {
			entry.Count++
		}
	}
}
