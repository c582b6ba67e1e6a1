package mappers

import (
	"github.com/LavaJover/shvark-otc-service/internal/domain"
	"github.com/LavaJover/shvark-otc-service/internal/infrastructure/postgres/models"
)

func ToDomainOrder(model *models.OrderModel) *domain.Order {
	return &domain.Order{
		ID:                model.ID,
		Side:              model.Side,
		Owner:             model.Owner,
		MerchantName:      model.MerchantName,
		Quantity:          domain.Asset{Amount: model.QuantityAmount, Symbol: model.QuantitySymbol},
		Price:             domain.Asset{Amount: model.PriceAmount, Symbol: model.PriceSymbol},
		MinTakeQuantity:   domain.Asset{Amount: model.MinTakeAmount, Symbol: model.QuantitySymbol},
		MaxTakeQuantity:   domain.Asset{Amount: model.MaxTakeAmount, Symbol: model.QuantitySymbol},
		FrozenQuantity:    domain.Asset{Amount: model.FrozenAmount, Symbol: model.QuantitySymbol},
		FulfilledQuantity: domain.Asset{Amount: model.FulfilledAmount, Symbol: model.QuantitySymbol},
		StakeFrozen:       domain.Asset{Amount: model.StakeFrozenAmount, Symbol: model.StakeSymbol},
		PayMethods:        model.PayMethods,
		Memo:              model.Memo,
		Status:            model.Status,
		CreatedAt:         model.CreatedAt,
		UpdatedAt:         model.UpdatedAt,
		ClosedAt:          model.ClosedAt,
	}
}

func ToGORMOrder(order *domain.Order) *models.OrderModel {
	return &models.OrderModel{
		Side:              order.Side,
		ID:                order.ID,
		Owner:             order.Owner,
		MerchantName:      order.MerchantName,
		QuantityAmount:    order.Quantity.Amount,
		QuantitySymbol:    order.Quantity.Symbol,
		PriceAmount:       order.Price.Amount,
		PriceSymbol:       order.Price.Symbol,
		MinTakeAmount:     order.MinTakeQuantity.Amount,
		MaxTakeAmount:     order.MaxTakeQuantity.Amount,
		FrozenAmount:      order.FrozenQuantity.Amount,
		FulfilledAmount:   order.FulfilledQuantity.Amount,
		StakeFrozenAmount: order.StakeFrozen.Amount,
		StakeSymbol:       order.StakeFrozen.Symbol,
		PayMethods:        order.PayMethods,
		Memo:              order.Memo,
		Status:            order.Status,
		CreatedAt:         order.CreatedAt,
		UpdatedAt:         order.UpdatedAt,
		ClosedAt:          order.ClosedAt,
	}
}
