package mappers

import (
	"github.com/LavaJover/shvark-otc-service/internal/domain"
	"github.com/LavaJover/shvark-otc-service/internal/infrastructure/postgres/models"
)

func ToDomainMerchant(model *models.MerchantModel) *domain.Merchant {
	balances := model.Balances
	if balances == nil {
		balances = make(map[string]domain.Balance)
	}
	return &domain.Merchant{
		Account:   model.Account,
		Name:      model.Name,
		Detail:    model.Detail,
		Email:     model.Email,
		Memo:      model.Memo,
		Status:    model.Status,
		Balances:  balances,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}

func ToGORMMerchant(merchant *domain.Merchant) *models.MerchantModel {
	return &models.MerchantModel{
		Account:   merchant.Account,
		Name:      merchant.Name,
		Detail:    merchant.Detail,
		Email:     merchant.Email,
		Memo:      merchant.Memo,
		Status:    merchant.Status,
		Balances:  merchant.Balances,
		CreatedAt: merchant.CreatedAt,
		UpdatedAt: merchant.UpdatedAt,
	}
}
