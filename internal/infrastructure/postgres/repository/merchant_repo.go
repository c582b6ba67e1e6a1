package repository

import (
	"fmt"

	"github.com/LavaJover/shvark-otc-service/internal/domain"
	"github.com/LavaJover/shvark-otc-service/internal/infrastructure/postgres/mappers"
	"github.com/LavaJover/shvark-otc-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultMerchantRepository struct {
	DB *gorm.DB
}

func NewDefaultMerchantRepository(db *gorm.DB) *DefaultMerchantRepository {
	return &DefaultMerchantRepository{DB: db}
}

func (r *DefaultMerchantRepository) CreateMerchant(merchant *domain.Merchant) error {
	model := mappers.ToGORMMerchant(merchant)
	return translate(r.DB.Create(model).Error, fmt.Sprintf("merchant %s", merchant.Account))
}

func (r *DefaultMerchantRepository) GetMerchant(account string) (*domain.Merchant, error) {
	var model models.MerchantModel
	if err := r.DB.First(&model, "account = ?", account).Error; err != nil {
		return nil, translate(err, fmt.Sprintf("merchant %s", account))
	}
	return mappers.ToDomainMerchant(&model), nil
}

func (r *DefaultMerchantRepository) UpdateMerchant(merchant *domain.Merchant) error {
	model := mappers.ToGORMMerchant(merchant)
	res := r.DB.Model(&models.MerchantModel{}).Where("account = ?", merchant.Account).
		Select("*").Omit("account", "created_at").Updates(model)
	if res.Error != nil {
		return translate(res.Error, fmt.Sprintf("merchant %s", merchant.Account))
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: merchant %s", domain.ErrNotFound, merchant.Account)
	}
	return nil
}

func (r *DefaultMerchantRepository) DeleteMerchant(account string) error {
	res := r.DB.Delete(&models.MerchantModel{}, "account = ?", account)
	if res.Error != nil {
		return translate(res.Error, fmt.Sprintf("merchant %s", account))
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: merchant %s", domain.ErrNotFound, account)
	}
	return nil
}
