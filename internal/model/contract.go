package model

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/Trident-Energy/TridentEnergy-GlobalRiskManager-sub000/internal/risk"
)

// 法律实体
var legalEntities = []string{
	"Trident Energy UK",
	"Trident Energy Brazil",
	"Trident Energy Congo",
	"Trident Energy Equatorial Guinea",
}

// LegalEntities 返回法律实体列表的副本
func LegalEntities() []string {
	out := make([]string, len(legalEntities))
	copy(out, legalEntities)
	return out
}

// IsValidEntity 判断法律实体是否合法
func IsValidEntity(entity string) bool {
	for _, e := range legalEntities {
		if e == entity {
			return true
		}
	}
	return false
}

// ContractModel 合同数据模型
// 聚合根: 金额为美元口径,Amount = OriginalAmount × ExchangeRate;
// Triggers 与 IsHighRisk 为派生字段,只能经由风险引擎重算写入
type ContractModel struct {
	ID                    string    `gorm:"primaryKey;type:varchar(64)"`
	Title                 string    `gorm:"type:varchar(255);not null"`
	SubmitterID           string    `gorm:"type:varchar(64);not null;index"`
	ContractType          string    `gorm:"type:varchar(16);not null"` // OPEX/CAPEX/MIXED
	Entity                string    `gorm:"type:varchar(64);not null;index"`
	Department            string    `gorm:"type:varchar(64);index"`
	Scope                 string    `gorm:"type:text"`
	Background            string    `gorm:"type:text"`
	Amount                float64   `gorm:"not null"` // 美元金额,风险规则的权威口径
	OriginalAmount        float64   `gorm:"not null"`
	OriginalCurrency      string    `gorm:"type:varchar(8);not null"`
	ExchangeRate          float64   `gorm:"not null"`
	StartDate             time.Time `gorm:"not null"`
	EndDate               time.Time `gorm:"not null"`
	IsStandardTerms       bool      `gorm:"not null"`
	LiabilityCapPercent   float64   `gorm:"not null"`
	IsSubcontracting      bool      `gorm:"not null"`
	SubcontractingPercent float64   `gorm:"not null"`
	Triggers              []byte    `gorm:"type:jsonb"` // 序列化的触发器列表
	IsHighRisk            bool      `gorm:"not null;index"`
	Status                string    `gorm:"type:varchar(32);not null;index"`
	LegalApproved         bool      `gorm:"not null"` // 法务批准标记
	HasUnreadComments     bool      `gorm:"not null"`
	CreatedAt             time.Time `gorm:"not null;index"`
	UpdatedAt             time.Time `gorm:"not null;index"`
}

// TableName 指定表名
func (ContractModel) TableName() string {
	return "contracts"
}

// Validate 验证合同模型
func (cm *ContractModel) Validate() error {
	if cm.ID == "" {
		return errors.New("contract ID is required")
	}
	if cm.Title == "" {
		return errors.New("contract title is required")
	}
	if cm.SubmitterID == "" {
		return errors.New("submitter ID is required")
	}
	if !risk.IsValidContractType(cm.ContractType) {
		return errors.New("invalid contract type: " + cm.ContractType)
	}
	if !IsValidEntity(cm.Entity) {
		return errors.New("invalid legal entity: " + cm.Entity)
	}
	if cm.Status == "" {
		return errors.New("contract status is required")
	}
	if cm.LiabilityCapPercent < 0 || cm.LiabilityCapPercent > 100 {
		return errors.New("liability cap percent must be within [0,100]")
	}
	if cm.SubcontractingPercent < 0 || cm.SubcontractingPercent > 100 {
		return errors.New("subcontracting percent must be within [0,100]")
	}
	if cm.EndDate.Before(cm.StartDate) {
		return errors.New("end date must not precede start date")
	}
	return nil
}

// SetTriggers 序列化并写入触发器列表
func (cm *ContractModel) SetTriggers(triggers []risk.Trigger) error {
	data, err := json.Marshal(triggers)
	if err != nil {
		return err
	}
	cm.Triggers = data
	return nil
}

// GetTriggers 反序列化触发器列表
func (cm *ContractModel) GetTriggers() ([]risk.Trigger, error) {
	if len(cm.Triggers) == 0 {
		return nil, nil
	}
	var triggers []risk.Trigger
	if err := json.Unmarshal(cm.Triggers, &triggers); err != nil {
		return nil, err
	}
	return triggers, nil
}

// ManualTriggers 返回触发器列表中的手动部分 (t6+)
func (cm *ContractModel) ManualTriggers() ([]risk.Trigger, error) {
	triggers, err := cm.GetTriggers()
	if err != nil {
		return nil, err
	}
	var manual []risk.Trigger
	for _, t := range triggers {
		if !risk.IsSystemTriggerID(t.ID) {
			manual = append(manual, t)
		}
	}
	return manual, nil
}
