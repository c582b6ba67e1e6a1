package mappers

import (
	"github.com/LavaJover/shvark-otc-service/internal/domain"
	"github.com/LavaJover/shvark-otc-service/internal/infrastructure/postgres/models"
)

func ToDomainDeal(model *models.DealModel) *domain.Deal {
	return &domain.Deal{
		ID:           model.ID,
		OrderID:      model.OrderID,
		Side:         model.Side,
		Maker:        model.Maker,
		Taker:        model.Taker,
		MerchantName: model.MerchantName,
		Quantity:     domain.Asset{Amount: model.QuantityAmount, Symbol: model.QuantitySymbol},
		Price:        domain.Asset{Amount: model.PriceAmount, Symbol: model.PriceSymbol},
		Fee:          domain.Asset{Amount: model.FeeAmount, Symbol: model.FeeSymbol},
		PayMethod:    model.PayMethod,
		Status:       model.Status,
		ArbitStatus:  model.ArbitStatus,
		Arbiter:      model.Arbiter,
		OrderSN:      model.OrderSN,
		CloseMsg:     model.CloseMsg,
		CreatedAt:    model.CreatedAt,
		AcceptedAt:   model.AcceptedAt,
		PaidAt:       model.PaidAt,
		ClosedAt:     model.ClosedAt,
		UpdatedAt:    model.UpdatedAt,
	}
}

func ToGORMDeal(deal *domain.Deal) *models.DealModel {
	return &models.DealModel{
		ID:             deal.ID,
		OrderID:        deal.OrderID,
		Side:           deal.Side,
		Maker:          deal.Maker,
		Taker:          deal.Taker,
		MerchantName:   deal.MerchantName,
		QuantityAmount: deal.Quantity.Amount,
		QuantitySymbol: deal.Quantity.Symbol,
		PriceAmount:    deal.Price.Amount,
		PriceSymbol:    deal.Price.Symbol,
		FeeAmount:      deal.Fee.Amount,
		FeeSymbol:      deal.Fee.Symbol,
		PayMethod:      deal.PayMethod,
		Status:         deal.Status,
		ArbitStatus:    deal.ArbitStatus,
		Arbiter:        deal.Arbiter,
		OrderSN:        deal.OrderSN,
		CloseMsg:       deal.CloseMsg,
		CreatedAt:      deal.CreatedAt,
		AcceptedAt:     deal.AcceptedAt,
		PaidAt:         deal.PaidAt,
		ClosedAt:       deal.ClosedAt,
		UpdatedAt:      deal.UpdatedAt,
	}
}
