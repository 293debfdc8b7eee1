package api

import (
	"net/http"
	"strconv"

	"github.com/Trident-Energy/TridentEnergy-GlobalRiskManager-sub000/internal/repository"
	"github.com/Trident-Energy/TridentEnergy-GlobalRiskManager-sub000/internal/service"
	"github.com/Trident-Energy/TridentEnergy-GlobalRiskManager-sub000/internal/utils"
	"github.com/gin-gonic/gin"
)

// ContractController 合同控制器
type ContractController struct {
	contractSvc service.ContractService
	workflowSvc service.WorkflowService
	auditSvc    service.AuditService
}

// NewContractController 创建合同控制器
func NewContractController(contractSvc service.ContractService, workflowSvc service.WorkflowService, auditSvc service.AuditService) *ContractController {
	return &ContractController{
		contractSvc: contractSvc,
		workflowSvc: workflowSvc,
		auditSvc:    auditSvc,
	}
}

// validateContractID 验证合同 ID 并返回错误响应（如果无效）
func (c *ContractController) validateContractID(ctx *gin.Context, id string) bool {
	if err := utils.ValidateID(id); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid contract ID", err.Error())
		return false
	}
	return true
}

// Create 创建合同
// @Summary      创建合同
// @Description  创建合同草稿并计算风险评估,submit_now 为真时直接提交审批
// @Tags         合同管理
// @Accept       json
// @Produce      json
// @Param        request body service.CreateContractRequest true "合同信息"
// @Success      200  {object}  Response
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /contracts [post]
func (c *ContractController) Create(ctx *gin.Context) {
	var req service.CreateContractRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	actor := CurrentActor(ctx)
	contract, err := c.contractSvc.Create(ctx.Request.Context(), actor, &req)
	if err != nil {
		HandleServiceError(ctx, err, "create contract")
		return
	}

	if req.SubmitNow {
		submitted, err := c.workflowSvc.Submit(ctx.Request.Context(), actor, contract.ID)
		if err != nil {
			// 草稿此时已落库,失败响应携带草稿,调用方可修复后重新提交
			if view, verr := NewContractView(contract); verr == nil {
				HandleServiceErrorWithData(ctx, err, "submit contract", view)
			} else {
				HandleServiceError(ctx, err, "submit contract")
			}
			return
		}
		contract = submitted
	}

	view, err := NewContractView(contract)
	if err != nil {
		Error(ctx, http.StatusInternalServerError, "failed to render contract", err.Error())
		return
	}
	Success(ctx, view)
}

// Get 获取合同
// @Summary      获取合同详情
// @Description  根据 ID 获取合同详情,含风险触发器列表
// @Tags         合同管理
// @Accept       json
// @Produce      json
// @Param        id path string true "合同 ID"
// @Success      200  {object}  Response
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /contracts/{id} [get]
func (c *ContractController) Get(ctx *gin.Context) {
	id := ctx.Param("id")
	if !c.validateContractID(ctx, id) {
		return
	}

	contract, err := c.contractSvc.Get(id)
	if err != nil {
		HandleServiceError(ctx, err, "get contract")
		return
	}

	view, err := NewContractView(contract)
	if err != nil {
		Error(ctx, http.StatusInternalServerError, "failed to render contract", err.Error())
		return
	}
	Success(ctx, view)
}

// List 查询合同列表
// @Summary      查询合同列表
// @Description  按状态、实体、部门、提交人、风险标记过滤,分页返回
// @Tags         合同管理
// @Accept       json
// @Produce      json
// @Param        status query string false "合同状态"
// @Param        entity query string false "法律实体"
// @Param        department query string false "部门"
// @Param        submitter_id query string false "提交人 ID"
// @Param        is_high_risk query bool false "是否高风险"
// @Param        page query int false "页码" default(1)
// @Param        page_size query int false "每页数量" default(20)
// @Success      200  {object}  PaginatedResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /contracts [get]
func (c *ContractController) List(ctx *gin.Context) {
	filter := &repository.ContractFilter{
		Page:     1,
		PageSize: 20,
	}

	if v := ctx.Query("status"); v != "" {
		filter.Status = &v
	}
	if v := ctx.Query("entity"); v != "" {
		filter.Entity = &v
	}
	if v := ctx.Query("department"); v != "" {
		filter.Department = &v
	}
	if v := ctx.Query("submitter_id"); v != "" {
		filter.SubmitterID = &v
	}
	if v := ctx.Query("is_high_risk"); v != "" {
		highRisk, err := strconv.ParseBool(v)
		if err != nil {
			Error(ctx, http.StatusBadRequest, "invalid request", "is_high_risk must be a boolean")
			return
		}
		filter.IsHighRisk = &highRisk
	}
	if v := ctx.Query("page"); v != "" {
		page, err := strconv.Atoi(v)
		if err != nil || page < 1 {
			Error(ctx, http.StatusBadRequest, "invalid request", "page must be a positive integer")
			return
		}
		filter.Page = page
	}
	if v := ctx.Query("page_size"); v != "" {
		size, err := strconv.Atoi(v)
		if err != nil || size < 1 || size > 100 {
			Error(ctx, http.StatusBadRequest, "invalid request", "page_size must be within [1,100]")
			return
		}
		filter.PageSize = size
	}

	contracts, total, err := c.contractSvc.List(filter)
	if err != nil {
		HandleServiceError(ctx, err, "list contracts")
		return
	}

	views, err := NewContractViews(contracts)
	if err != nil {
		Error(ctx, http.StatusInternalServerError, "failed to render contracts", err.Error())
		return
	}
	Paginated(ctx, views, NewPagination(filter.Page, filter.PageSize, total))
}

// Update 更新合同
// @Summary      更新合同草稿
// @Description  仅提交人在草稿或待修改状态下可编辑,保存时重算风险评估
// @Tags         合同管理
// @Accept       json
// @Produce      json
// @Param        id path string true "合同 ID"
// @Param        request body service.UpdateContractRequest true "合同信息"
// @Success      200  {object}  Response
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /contracts/{id} [put]
func (c *ContractController) Update(ctx *gin.Context) {
	id := ctx.Param("id")
	if !c.validateContractID(ctx, id) {
		return
	}

	var req service.UpdateContractRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	contract, err := c.contractSvc.Update(ctx.Request.Context(), CurrentActor(ctx), id, &req)
	if err != nil {
		HandleServiceError(ctx, err, "update contract")
		return
	}

	view, err := NewContractView(contract)
	if err != nil {
		Error(ctx, http.StatusInternalServerError, "failed to render contract", err.Error())
		return
	}
	Success(ctx, view)
}

// Audit 获取审计轨迹
// @Summary      获取合同审计轨迹
// @Description  按时间升序返回合同的全部审计条目
// @Tags         合同管理
// @Accept       json
// @Produce      json
// @Param        id path string true "合同 ID"
// @Success      200  {object}  Response
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /contracts/{id}/audit [get]
func (c *ContractController) Audit(ctx *gin.Context) {
	id := ctx.Param("id")
	if !c.validateContractID(ctx, id) {
		return
	}

	if _, err := c.contractSvc.Get(id); err != nil {
		HandleServiceError(ctx, err, "get contract")
		return
	}

	entries, err := c.auditSvc.Trail(id)
	if err != nil {
		HandleServiceError(ctx, err, "get audit trail")
		return
	}
	Success(ctx, NewAuditEntryViews(entries))
}
