package economy_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/oakhaven/emberquest/internal/config"
	"github.com/oakhaven/emberquest/internal/entities"
	"github.com/oakhaven/emberquest/internal/errors"
	"github.com/oakhaven/emberquest/internal/rules/economy"
)

type ShopTestSuite struct {
	suite.Suite

	shop     *economy.Shop
	player   *entities.Player
	merchant *entities.MerchantState
	potion   *entities.Item
}

func (s *ShopTestSuite) SetupTest() {
	shop, err := economy.NewShop(&economy.Config{
		Economy: config.Default().Economy, // step 0.25, sell ratio 0.5
	})
	s.Require().NoError(err)
	s.shop = shop

	s.potion = &entities.Item{
		ID:         "healing_potion",
		Name:       "Healing Potion",
		Kind:       entities.ItemPotion,
		Value:      20,
		HealAmount: 25,
	}
	s.player = &entities.Player{
		Character: entities.Character{ID: "hero"},
		Gold:      100,
	}
	s.merchant = &entities.MerchantState{
		Gold: 50,
		Stock: []entities.StockEntry{
			{ItemID: "healing_potion", Count: 3, BaseCount: 3},
		},
	}
}

func (s *ShopTestSuite) TestBuyAtFullStock() {
	price, err := s.shop.Buy(s.player, s.merchant, s.potion)
	s.Require().NoError(err)
	s.Equal(20, price)
	s.Equal(80, s.player.Gold)
	s.Equal(70, s.merchant.Gold)
	s.Equal(1, s.player.ItemCount("healing_potion"))
	s.Equal(2, s.merchant.Entry("healing_potion").Count)
}

func (s *ShopTestSuite) TestScarcityRaisesPrice() {
	quotes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		entry := s.merchant.Entry("healing_potion")
		quotes = append(quotes, s.shop.BuyPrice(s.potion, entry))
		_, err := s.shop.Buy(s.player, s.merchant, s.potion)
		s.Require().NoError(err)
	}
	// 20, then 20*1.25, then 20*1.5
	s.Equal([]int{20, 25, 30}, quotes)
}

func (s *ShopTestSuite) TestBuyOutOfStock() {
	s.merchant.Entry("healing_potion").Count = 0
	_, err := s.shop.Buy(s.player, s.merchant, s.potion)
	s.True(errors.IsOutOfStock(err))
	s.Equal(100, s.player.Gold)
}

func (s *ShopTestSuite) TestBuyWithoutGold() {
	s.player.Gold = 5
	_, err := s.shop.Buy(s.player, s.merchant, s.potion)
	s.True(errors.IsInsufficientGold(err))
	s.Equal(3, s.merchant.Entry("healing_potion").Count)
}

func (s *ShopTestSuite) TestSell() {
	s.player.AddItem("healing_potion", 2)
	price, err := s.shop.Sell(s.player, s.merchant, s.potion)
	s.Require().NoError(err)
	s.Equal(10, price)
	s.Equal(110, s.player.Gold)
	s.Equal(40, s.merchant.Gold)
	s.Equal(1, s.player.ItemCount("healing_potion"))
	s.Equal(4, s.merchant.Entry("healing_potion").Count)
}

func (s *ShopTestSuite) TestSellItemNotCarried() {
	_, err := s.shop.Sell(s.player, s.merchant, s.potion)
	s.True(errors.IsNotFound(err))
}

func (s *ShopTestSuite) TestSellEquippedItem() {
	armor := &entities.Item{ID: "iron_armor", Name: "Iron Armor", Kind: entities.ItemEquipment, Value: 40}
	s.player.AddItem("iron_armor", 1)
	s.player.Equipped = []string{"iron_armor"}

	_, err := s.shop.Sell(s.player, s.merchant, armor)
	s.True(errors.IsNotUsable(err))
}

func (s *ShopTestSuite) TestSellToBrokeMerchant() {
	s.merchant.Gold = 3
	s.player.AddItem("healing_potion", 1)
	_, err := s.shop.Sell(s.player, s.merchant, s.potion)
	s.True(errors.IsInsufficientGold(err))
	s.Equal(1, s.player.ItemCount("healing_potion"))
}

func (s *ShopTestSuite) TestRestockRecoversPriceMonotonically() {
	for i := 0; i < 3; i++ {
		_, err := s.shop.Buy(s.player, s.merchant, s.potion)
		s.Require().NoError(err)
	}
	entry := s.merchant.Entry("healing_potion")
	s.Equal(0, entry.Count)

	prev := s.shop.BuyPrice(s.potion, entry)
	for i := 0; i < 3; i++ {
		s.shop.Restock(s.merchant)
		quote := s.shop.BuyPrice(s.potion, entry)
		s.LessOrEqual(quote, prev)
		prev = quote
	}
	s.Equal(3, entry.Count)
	s.Equal(20, prev)

	// Never restocks past the base count.
	s.shop.Restock(s.merchant)
	s.Equal(3, entry.Count)
}

func TestShopTestSuite(t *testing.T) {
	suite.Run(t, new(ShopTestSuite))
}
