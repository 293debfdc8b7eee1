package repository

import (
	"github.com/Trident-Energy/TridentEnergy-GlobalRiskManager-sub000/internal/model"
	"gorm.io/gorm"
)

// ContractRepository 合同仓储接口
type ContractRepository interface {
	Save(contract *model.ContractModel) error
	FindByID(id string) (*model.ContractModel, error)
	FindByFilter(filter *ContractFilter) ([]*model.ContractModel, int64, error)
	CountByStatus() (map[string]int64, error)
}

// ContractFilter 合同查询过滤器
type ContractFilter struct {
	Status      *string
	Entity      *string
	Department  *string
	SubmitterID *string
	IsHighRisk  *bool
	Page        int
	PageSize    int
}

// contractRepository 合同仓储实现
type contractRepository struct {
	db *gorm.DB
}

// NewContractRepository 创建合同仓储
func NewContractRepository(db *gorm.DB) ContractRepository {
	return &contractRepository{db: db}
}

// Save 保存合同
func (r *contractRepository) Save(contract *model.ContractModel) error {
	return r.db.Save(contract).Error
}

// FindByID 根据 ID 查找合同
func (r *contractRepository) FindByID(id string) (*model.ContractModel, error) {
	var contract model.ContractModel
	if err := r.db.Where("id = ?", id).First(&contract).Error; err != nil {
		return nil, err
	}
	return &contract, nil
}

// FindByFilter 根据过滤器分页查找合同
func (r *contractRepository) FindByFilter(filter *ContractFilter) ([]*model.ContractModel, int64, error) {
	query := r.db.Model(&model.ContractModel{})

	if filter != nil {
		if filter.Status != nil {
			query = query.Where("status = ?", *filter.Status)
		}
		if filter.Entity != nil {
			query = query.Where("entity = ?", *filter.Entity)
		}
		if filter.Department != nil {
			query = query.Where("department = ?", *filter.Department)
		}
		if filter.SubmitterID != nil {
			query = query.Where("submitter_id = ?", *filter.SubmitterID)
		}
		if filter.IsHighRisk != nil {
			query = query.Where("is_high_risk = ?", *filter.IsHighRisk)
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter != nil && filter.PageSize > 0 {
		page := filter.Page
		if page < 1 {
			page = 1
		}
		query = query.Offset((page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	var contracts []*model.ContractModel
	err := query.Order("created_at DESC").Find(&contracts).Error
	return contracts, total, err
}

// CountByStatus 按状态统计合同数量
func (r *contractRepository) CountByStatus() (map[string]int64, error) {
	type row struct {
		Status string
		Count  int64
	}
	var rows []row
	err := r.db.Model(&model.ContractModel{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.Status] = r.Count
	}
	return counts, nil
}
