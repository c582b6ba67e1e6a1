package mappers

import (
	"github.com/LavaJover/shvark-otc-service/internal/domain"
	"github.com/LavaJover/shvark-otc-service/internal/infrastructure/postgres/models"
)

func ToDomainArbiter(model *models.ArbiterModel) *domain.Arbiter {
	return &domain.Arbiter{
		Account:       model.Account,
		Email:         model.Email,
		Seq:           model.Seq,
		ClosedCaseNum: model.ClosedCaseNum,
		FailedCaseNum: model.FailedCaseNum,
		TotalQuantity: model.TotalQuantity,
		CreatedAt:     model.CreatedAt,
		UpdatedAt:     model.UpdatedAt,
	}
}

func ToGORMArbiter(arbiter *domain.Arbiter) *models.ArbiterModel {
	return &models.ArbiterModel{
		Account:       arbiter.Account,
		Email:         arbiter.Email,
		Seq:           arbiter.Seq,
		ClosedCaseNum: arbiter.ClosedCaseNum,
		FailedCaseNum: arbiter.FailedCaseNum,
		TotalQuantity: arbiter.TotalQuantity,
		CreatedAt:     arbiter.CreatedAt,
		UpdatedAt:     arbiter.UpdatedAt,
	}
}

func ToDomainBlacklistEntry(model *models.BlacklistModel) *domain.BlacklistEntry {
	return &domain.BlacklistEntry{
		Account:   model.Account,
		ExpiredAt: model.ExpiredAt,
		CreatedAt: model.CreatedAt,
	}
}

func ToGORMBlacklistEntry(entry *domain.BlacklistEntry) *models.BlacklistModel {
	return &models.BlacklistModel{
		Account:   entry.Account,
		ExpiredAt: entry.ExpiredAt,
		CreatedAt: entry.CreatedAt,
	}
}
