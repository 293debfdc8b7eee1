package api

import (
	"github.com/Trident-Energy/TridentEnergy-GlobalRiskManager-sub000/internal/currency"
	"github.com/Trident-Energy/TridentEnergy-GlobalRiskManager-sub000/internal/model"
	"github.com/gin-gonic/gin"
)

// RatesController 汇率与基础数据控制器
type RatesController struct{}

// NewRatesController 创建汇率控制器
func NewRatesController() *RatesController {
	return &RatesController{}
}

// Rates 获取静态汇率表
// @Summary      获取静态汇率表
// @Description  返回各币种到美元的固定汇率,创建合同时未提供汇率则按此表取值
// @Tags         基础数据
// @Accept       json
// @Produce      json
// @Success      200  {object}  Response
// @Router       /rates [get]
func (c *RatesController) Rates(ctx *gin.Context) {
	Success(ctx, gin.H{
		"base":  "USD",
		"rates": currency.Rates(),
	})
}

// Entities 获取法律实体列表
// @Summary      获取法律实体列表
// @Tags         基础数据
// @Accept       json
// @Produce      json
// @Success      200  {object}  Response
// @Router       /entities [get]
func (c *RatesController) Entities(ctx *gin.Context) {
	Success(ctx, model.LegalEntities())
}
