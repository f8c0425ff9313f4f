package session

import (
	"fmt"

	"github.com/oakhaven/emberquest/internal/entities"
	"github.com/oakhaven/emberquest/internal/errors"
)

// WareLine is one row of a merchant's price list. The price already
// reflects current scarcity.
type WareLine struct {
	Item  *entities.Item
	Price int
	Count int
}

// merchantHere finds a merchant NPC in the current room.
func (s *GameSession) merchantHere(npcID string) (*entities.Npc, error) {
	room, err := s.world.Room(s.player.LocationID)
	if err != nil {
		return nil, err
	}
	npc := room.Npc(npcID)
	if npc == nil {
		return nil, errors.NotFoundf("there is nobody called %q here", npcID)
	}
	if npc.Kind != entities.NpcMerchant || npc.Merchant == nil {
		return nil, errors.NotUsablef("%s is not a merchant", npc.Name)
	}
	return npc, nil
}

// Wares lists what a merchant sells at today's prices.
func (s *GameSession) Wares(npcID string) ([]WareLine, error) {
	if err := s.checkPlayable(); err != nil {
		return nil, err
	}
	npc, err := s.merchantHere(npcID)
	if err != nil {
		return nil, err
	}
	lines := make([]WareLine, 0, len(npc.Merchant.Stock))
	for i := range npc.Merchant.Stock {
		entry := &npc.Merchant.Stock[i]
		item, err := s.content.GetItem(entry.ItemID)
		if err != nil {
			return nil, err
		}
		lines = append(lines, WareLine{
			Item:  item,
			Price: s.shop.BuyPrice(item, entry),
			Count: entry.Count,
		})
	}
	return lines, nil
}

// Buy purchases one item from a merchant in the current room.
func (s *GameSession) Buy(npcID, itemID string) (string, error) {
	if err := s.checkPlayable(); err != nil {
		return "", err
	}
	npc, err := s.merchantHere(npcID)
	if err != nil {
		return "", err
	}
	item, err := s.content.GetItem(itemID)
	if err != nil {
		return "", err
	}
	price, err := s.shop.Buy(s.player, npc.Merchant, item)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("You buy the %s for %d gold.", item.Name, price), nil
}

// Sell sells one carried item to a merchant in the current room.
func (s *GameSession) Sell(npcID, itemID string) (string, error) {
	if err := s.checkPlayable(); err != nil {
		return "", err
	}
	npc, err := s.merchantHere(npcID)
	if err != nil {
		return "", err
	}
	item, err := s.content.GetItem(itemID)
	if err != nil {
		return "", err
	}
	price, err := s.shop.Sell(s.player, npc.Merchant, item)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("You sell the %s for %d gold.", item.Name, price), nil
}
