package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Trident-Energy/TridentEnergy-GlobalRiskManager-sub000/internal/currency"
	"github.com/Trident-Energy/TridentEnergy-GlobalRiskManager-sub000/internal/metrics"
	"github.com/Trident-Energy/TridentEnergy-GlobalRiskManager-sub000/internal/model"
	"github.com/Trident-Energy/TridentEnergy-GlobalRiskManager-sub000/internal/repository"
	"github.com/Trident-Energy/TridentEnergy-GlobalRiskManager-sub000/internal/risk"
	"github.com/Trident-Energy/TridentEnergy-GlobalRiskManager-sub000/internal/utils"
	"github.com/Trident-Energy/TridentEnergy-GlobalRiskManager-sub000/internal/workflow"
	"gorm.io/gorm"
)

// dateLayout 请求中的日期格式(仅日期,不含时间)
const dateLayout = "2006-01-02"

// ManualTriggerInput 手动风险触发器输入
// 提交人自行申报的风险项,ID 不得与系统触发器 t1-t5 冲突
type ManualTriggerInput struct {
	ID          string `json:"id" binding:"required" example:"t6"`
	Category    string `json:"category" example:"Third Party"`
	Description string `json:"description" example:"Counterparty under sanctions screening"`
	Triggered   bool   `json:"triggered"`
}

// CreateContractRequest 创建合同请求
// @Description 创建合同草稿的请求参数,submit_now 为真时直接进入审批流
type CreateContractRequest struct {
	Title                 string               `json:"title" binding:"required" example:"Drilling services frame agreement"`
	ContractType          string               `json:"contract_type" binding:"required" example:"OPEX"` // OPEX/CAPEX/MIXED
	Entity                string               `json:"entity" binding:"required" example:"Trident Energy Brazil"`
	Department            string               `json:"department" example:"Operations"`
	Scope                 string               `json:"scope"`
	Background            string               `json:"background"`
	OriginalAmount        float64              `json:"original_amount" example:"1500000"`
	OriginalCurrency      string               `json:"original_currency" example:"USD"`
	ExchangeRate          float64              `json:"exchange_rate" example:"1"` // 0 表示按静态汇率表取值
	StartDate             string               `json:"start_date" binding:"required" example:"2026-01-01"`
	EndDate               string               `json:"end_date" binding:"required" example:"2026-12-31"`
	IsStandardTerms       bool                 `json:"is_standard_terms"`
	LiabilityCapPercent   float64              `json:"liability_cap_percent" example:"100"`
	IsSubcontracting      bool                 `json:"is_subcontracting"`
	SubcontractingPercent float64              `json:"subcontracting_percent"`
	ManualTriggers        []ManualTriggerInput `json:"manual_triggers"`
	SubmitNow             bool                 `json:"submit_now"`
}

// UpdateContractRequest 更新合同草稿请求
// @Description 更新合同草稿的请求参数,仅提交人在草稿或待修改状态下可用
type UpdateContractRequest struct {
	Title                 string               `json:"title" binding:"required"`
	ContractType          string               `json:"contract_type" binding:"required"`
	Entity                string               `json:"entity" binding:"required"`
	Department            string               `json:"department"`
	Scope                 string               `json:"scope"`
	Background            string               `json:"background"`
	OriginalAmount        float64              `json:"original_amount"`
	OriginalCurrency      string               `json:"original_currency"`
	ExchangeRate          float64              `json:"exchange_rate"`
	StartDate             string               `json:"start_date" binding:"required"`
	EndDate               string               `json:"end_date" binding:"required"`
	IsStandardTerms       bool                 `json:"is_standard_terms"`
	LiabilityCapPercent   float64              `json:"liability_cap_percent"`
	IsSubcontracting      bool                 `json:"is_subcontracting"`
	SubcontractingPercent float64              `json:"subcontracting_percent"`
	ManualTriggers        []ManualTriggerInput `json:"manual_triggers"`
}

// ContractService 合同服务接口
// 草稿生命周期的唯一变更路径: 任何金额/法务/周期字段的修改都会在持久化前
// 重算美元金额与风险触发器,派生字段不可独立写入
type ContractService interface {
	Create(ctx context.Context, actor workflow.Actor, req *CreateContractRequest) (*model.ContractModel, error)
	Update(ctx context.Context, actor workflow.Actor, id string, req *UpdateContractRequest) (*model.ContractModel, error)
	Get(id string) (*model.ContractModel, error)
	List(filter *repository.ContractFilter) ([]*model.ContractModel, int64, error)
}

// contractService 合同服务实现
type contractService struct {
	db        *gorm.DB
	contracts repository.ContractRepository
	auditSvc  AuditService
	locker    *ContractLocker
	idgen     utils.IDGenerator
}

// NewContractService 创建合同服务
func NewContractService(db *gorm.DB, contracts repository.ContractRepository, auditSvc AuditService, locker *ContractLocker, idgen utils.IDGenerator) ContractService {
	return &contractService{
		db:        db,
		contracts: contracts,
		auditSvc:  auditSvc,
		locker:    locker,
		idgen:     idgen,
	}
}

// Create 创建合同草稿
func (s *contractService) Create(ctx context.Context, actor workflow.Actor, req *CreateContractRequest) (*model.ContractModel, error) {
	now := time.Now()
	c := &model.ContractModel{
		ID:          s.idgen.NewID(),
		SubmitterID: actor.ID,
		Status:      string(workflow.StatusDraft),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.apply(c, req); err != nil {
		return nil, err
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(c).Error; err != nil {
			return err
		}
		details, _ := json.Marshal(map[string]interface{}{
			"title":        c.Title,
			"amount_usd":   c.Amount,
			"is_high_risk": c.IsHighRisk,
		})
		_, err := s.auditSvc.Record(tx, c.ID, actor, model.ActionCreatedContract, string(details), now)
		return err
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordContractCreated()
	if c.IsHighRisk {
		metrics.RecordHighRiskFlagged()
	}

	return c, nil
}

// Update 更新合同草稿
// 仅提交人在 draft / changes_requested 状态下可编辑;编辑后重算派生字段
func (s *contractService) Update(ctx context.Context, actor workflow.Actor, id string, req *UpdateContractRequest) (*model.ContractModel, error) {
	unlock := s.locker.Lock(id)
	defer unlock()

	c, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if c.SubmitterID != actor.ID {
		return nil, workflow.NewAuthorizationError("update", "only the submitter can edit a contract")
	}
	if !workflow.CanSubmit(workflow.Status(c.Status)) {
		return nil, workflow.NewAuthorizationError("update", "contract can only be edited while draft or changes requested")
	}

	fields := &CreateContractRequest{
		Title:                 req.Title,
		ContractType:          req.ContractType,
		Entity:                req.Entity,
		Department:            req.Department,
		Scope:                 req.Scope,
		Background:            req.Background,
		OriginalAmount:        req.OriginalAmount,
		OriginalCurrency:      req.OriginalCurrency,
		ExchangeRate:          req.ExchangeRate,
		StartDate:             req.StartDate,
		EndDate:               req.EndDate,
		IsStandardTerms:       req.IsStandardTerms,
		LiabilityCapPercent:   req.LiabilityCapPercent,
		IsSubcontracting:      req.IsSubcontracting,
		SubcontractingPercent: req.SubcontractingPercent,
		ManualTriggers:        req.ManualTriggers,
	}
	if err := s.apply(c, fields); err != nil {
		return nil, err
	}

	now := time.Now()
	c.UpdatedAt = now

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(c).Error; err != nil {
			return err
		}
		details, _ := json.Marshal(map[string]interface{}{
			"title":        c.Title,
			"amount_usd":   c.Amount,
			"is_high_risk": c.IsHighRisk,
		})
		_, err := s.auditSvc.Record(tx, c.ID, actor, model.ActionUpdatedContract, string(details), now)
		return err
	})
	if err != nil {
		return nil, err
	}

	return c, nil
}

// Get 获取合同
func (s *contractService) Get(id string) (*model.ContractModel, error) {
	c, err := s.contracts.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, workflow.NewNotFoundError("contract", id)
		}
		return nil, err
	}
	return c, nil
}

// List 按过滤器分页查询合同
func (s *contractService) List(filter *repository.ContractFilter) ([]*model.ContractModel, int64, error) {
	return s.contracts.FindByFilter(filter)
}

// apply 将请求字段写入合同并重算全部派生字段
// 这是派生字段 (Amount, Triggers, IsHighRisk) 的唯一写入路径
func (s *contractService) apply(c *model.ContractModel, req *CreateContractRequest) error {
	if utils.IsBlank(req.Title) {
		return workflow.NewValidationError("title", "title is required")
	}
	if !risk.IsValidContractType(req.ContractType) {
		return workflow.NewValidationError("contract_type", "must be one of OPEX, CAPEX, MIXED")
	}
	if !model.IsValidEntity(req.Entity) {
		return workflow.NewValidationError("entity", "unknown legal entity "+req.Entity)
	}
	if err := utils.ValidatePercent(req.LiabilityCapPercent); err != nil {
		return workflow.NewValidationError("liability_cap_percent", err.Error())
	}
	if err := utils.ValidatePercent(req.SubcontractingPercent); err != nil {
		return workflow.NewValidationError("subcontracting_percent", err.Error())
	}
	if req.OriginalAmount < 0 {
		return workflow.NewValidationError("original_amount", "amount must not be negative")
	}

	startDate, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		return workflow.NewValidationError("start_date", "expected format "+dateLayout)
	}
	endDate, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		return workflow.NewValidationError("end_date", "expected format "+dateLayout)
	}
	if endDate.Before(startDate) {
		return workflow.NewValidationError("end_date", "end date must not precede start date")
	}

	// 汇率: 未提供时从静态汇率表取
	code := req.OriginalCurrency
	if code == "" {
		code = "USD"
	}
	rate := req.ExchangeRate
	if rate == 0 {
		r, ok := currency.Rate(code)
		if !ok {
			return workflow.NewValidationError("original_currency", "unsupported currency "+code)
		}
		rate = r
	}
	if rate <= 0 {
		return workflow.NewValidationError("exchange_rate", "exchange rate must be positive")
	}

	// 手动触发器不得冒用系统触发器 ID
	manual := make([]risk.Trigger, 0, len(req.ManualTriggers))
	for _, m := range req.ManualTriggers {
		if risk.IsSystemTriggerID(m.ID) {
			return workflow.NewInvariantViolation(fmt.Sprintf("trigger %s is computed by the rule engine and cannot be set directly", m.ID))
		}
		manual = append(manual, risk.Trigger{
			ID:          m.ID,
			Category:    m.Category,
			Description: m.Description,
			Triggered:   m.Triggered,
		})
	}

	c.Title = req.Title
	c.ContractType = req.ContractType
	c.Entity = req.Entity
	c.Department = req.Department
	c.Scope = req.Scope
	c.Background = req.Background
	c.OriginalAmount = req.OriginalAmount
	c.OriginalCurrency = code
	c.ExchangeRate = rate
	c.StartDate = startDate
	c.EndDate = endDate
	c.IsStandardTerms = req.IsStandardTerms
	c.LiabilityCapPercent = req.LiabilityCapPercent
	c.IsSubcontracting = req.IsSubcontracting
	c.SubcontractingPercent = req.SubcontractingPercent

	// 派生字段重算,必须是写入前的最后一步
	c.Amount = c.OriginalAmount * c.ExchangeRate
	eval := risk.Evaluate(risk.Input{
		ContractType:          c.ContractType,
		Amount:                c.Amount,
		LiabilityCapPercent:   c.LiabilityCapPercent,
		StartDate:             c.StartDate,
		EndDate:               c.EndDate,
		IsSubcontracting:      c.IsSubcontracting,
		SubcontractingPercent: c.SubcontractingPercent,
	}, manual)
	if err := c.SetTriggers(eval.Triggers); err != nil {
		return err
	}
	c.IsHighRisk = eval.IsHighRisk

	return c.Validate()
}
