package model_test

import (
	"testing"
	"time"

	"github.com/Trident-Energy/TridentEnergy-GlobalRiskManager-sub000/internal/model"
	"github.com/Trident-Energy/TridentEnergy-GlobalRiskManager-sub000/internal/risk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validContract 构造合法的合同模型
func validContract() *model.ContractModel {
	return &model.ContractModel{
		ID:                  "c-001",
		Title:               "Drilling services",
		SubmitterID:         "u-ops-01",
		ContractType:        "OPEX",
		Entity:              "Trident Energy Brazil",
		OriginalAmount:      100,
		OriginalCurrency:    "USD",
		ExchangeRate:        1,
		Amount:              100,
		StartDate:           time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:             time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC),
		LiabilityCapPercent: 100,
		Status:              "draft",
	}
}

// TestContractModelTableName 测试表名
func TestContractModelTableName(t *testing.T) {
	assert.Equal(t, "contracts", model.ContractModel{}.TableName())
}

// TestContractModelValidate 测试模型验证
func TestContractModelValidate(t *testing.T) {
	assert.NoError(t, validContract().Validate())

	// ID 为空
	c := validContract()
	c.ID = ""
	assert.Error(t, c.Validate())

	// 非法合同类型
	c = validContract()
	c.ContractType = "LEASE"
	assert.Error(t, c.Validate())

	// 非法法律实体
	c = validContract()
	c.Entity = "Trident Energy Mars"
	assert.Error(t, c.Validate())

	// 百分比越界
	c = validContract()
	c.LiabilityCapPercent = 120
	assert.Error(t, c.Validate())

	c = validContract()
	c.SubcontractingPercent = -1
	assert.Error(t, c.Validate())

	// 结束日期早于开始日期
	c = validContract()
	c.EndDate = c.StartDate.AddDate(0, 0, -1)
	assert.Error(t, c.Validate())
}

// TestLegalEntities 测试法律实体列表
func TestLegalEntities(t *testing.T) {
	entities := model.LegalEntities()
	require.Len(t, entities, 4)
	for _, e := range entities {
		assert.True(t, model.IsValidEntity(e))
	}

	// 返回的是副本,修改不影响后续调用
	entities[0] = "tampered"
	assert.True(t, model.IsValidEntity(model.LegalEntities()[0]))
}

// TestContractTriggersRoundTrip 测试触发器序列化与手动部分提取
func TestContractTriggersRoundTrip(t *testing.T) {
	c := validContract()
	in := []risk.Trigger{
		{ID: "t1", Category: risk.CategoryFinancial, Triggered: true},
		{ID: "t6", Category: risk.CategoryThirdParty, Description: "Sanctions exposure", Triggered: true},
	}
	require.NoError(t, c.SetTriggers(in))

	out, err := c.GetTriggers()
	require.NoError(t, err)
	assert.Equal(t, in, out)

	manual, err := c.ManualTriggers()
	require.NoError(t, err)
	require.Len(t, manual, 1)
	assert.Equal(t, "t6", manual[0].ID)
}

// TestContractTriggersEmpty 测试空触发器字段
func TestContractTriggersEmpty(t *testing.T) {
	c := validContract()
	out, err := c.GetTriggers()
	require.NoError(t, err)
	assert.Nil(t, out)
}
