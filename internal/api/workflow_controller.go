package api

import (
	"net/http"

	"github.com/Trident-Energy/TridentEnergy-GlobalRiskManager-sub000/internal/service"
	"github.com/Trident-Energy/TridentEnergy-GlobalRiskManager-sub000/internal/utils"
	"github.com/gin-gonic/gin"
)

// DecisionRequest 审批决定请求
// @Description 审批决定请求,决定与意见均为必填
type DecisionRequest struct {
	Decision string `json:"decision" binding:"required" example:"Approved"` // Approved/Rejected/Changes Requested
	Comment  string `json:"comment" binding:"required" example:"Terms reviewed, no objections"`
}

// AddReviewerRequest 添加临时评审人请求
type AddReviewerRequest struct {
	UserID string `json:"user_id" binding:"required" example:"u-finance-01"`
}

// WorkflowController 审批工作流控制器
type WorkflowController struct {
	workflowSvc service.WorkflowService
}

// NewWorkflowController 创建审批工作流控制器
func NewWorkflowController(workflowSvc service.WorkflowService) *WorkflowController {
	return &WorkflowController{workflowSvc: workflowSvc}
}

// validateContractID 验证合同 ID 并返回错误响应（如果无效）
func (c *WorkflowController) validateContractID(ctx *gin.Context, id string) bool {
	if err := utils.ValidateID(id); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid contract ID", err.Error())
		return false
	}
	return true
}

// Submit 提交合同
// @Summary      提交合同进入审批流
// @Description  提交人将草稿或待修改状态的合同提交给公司评审组
// @Tags         审批工作流
// @Accept       json
// @Produce      json
// @Param        id path string true "合同 ID"
// @Success      200  {object}  Response
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /contracts/{id}/submit [post]
func (c *WorkflowController) Submit(ctx *gin.Context) {
	id := ctx.Param("id")
	if !c.validateContractID(ctx, id) {
		return
	}

	contract, err := c.workflowSvc.Submit(ctx.Request.Context(), CurrentActor(ctx), id)
	if err != nil {
		HandleServiceError(ctx, err, "submit contract")
		return
	}

	view, err := NewContractView(contract)
	if err != nil {
		Error(ctx, http.StatusInternalServerError, "failed to render contract", err.Error())
		return
	}
	Success(ctx, view)
}

// Decide 记录审批决定
// @Summary      记录审批决定
// @Description  法务与 CEO 的决定驱动状态迁移;临时评审人的决定仅入评审历史
// @Tags         审批工作流
// @Accept       json
// @Produce      json
// @Param        id path string true "合同 ID"
// @Param        request body DecisionRequest true "审批决定"
// @Success      200  {object}  Response
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /contracts/{id}/decision [post]
func (c *WorkflowController) Decide(ctx *gin.Context) {
	id := ctx.Param("id")
	if !c.validateContractID(ctx, id) {
		return
	}

	var req DecisionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	contract, err := c.workflowSvc.Decide(ctx.Request.Context(), CurrentActor(ctx), id, req.Decision, req.Comment)
	if err != nil {
		HandleServiceError(ctx, err, "record decision")
		return
	}

	view, err := NewContractView(contract)
	if err != nil {
		Error(ctx, http.StatusInternalServerError, "failed to render contract", err.Error())
		return
	}
	Success(ctx, view)
}

// AddReviewer 添加临时评审人
// @Summary      添加临时评审人
// @Description  将目录中的用户加入合同评审人列表,重复添加为幂等空操作
// @Tags         审批工作流
// @Accept       json
// @Produce      json
// @Param        id path string true "合同 ID"
// @Param        request body AddReviewerRequest true "评审人信息"
// @Success      200  {object}  Response
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /contracts/{id}/reviewers [post]
func (c *WorkflowController) AddReviewer(ctx *gin.Context) {
	id := ctx.Param("id")
	if !c.validateContractID(ctx, id) {
		return
	}

	var req AddReviewerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid request", err.Error())
		return
	}
	if err := utils.ValidateID(req.UserID); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid user ID", err.Error())
		return
	}

	if err := c.workflowSvc.AddReviewer(ctx.Request.Context(), CurrentActor(ctx), id, req.UserID); err != nil {
		HandleServiceError(ctx, err, "add reviewer")
		return
	}
	Success(ctx, nil)
}

// Reviews 获取评审历史
// @Summary      获取评审历史
// @Description  按时间升序返回合同的全部评审记录
// @Tags         审批工作流
// @Accept       json
// @Produce      json
// @Param        id path string true "合同 ID"
// @Success      200  {object}  Response
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /contracts/{id}/reviews [get]
func (c *WorkflowController) Reviews(ctx *gin.Context) {
	id := ctx.Param("id")
	if !c.validateContractID(ctx, id) {
		return
	}

	reviews, err := c.workflowSvc.Reviews(id)
	if err != nil {
		HandleServiceError(ctx, err, "get reviews")
		return
	}
	Success(ctx, NewReviewViews(reviews))
}

// Reviewers 获取临时评审人列表
// @Summary      获取临时评审人列表
// @Tags         审批工作流
// @Accept       json
// @Produce      json
// @Param        id path string true "合同 ID"
// @Success      200  {object}  Response
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /contracts/{id}/reviewers [get]
func (c *WorkflowController) Reviewers(ctx *gin.Context) {
	id := ctx.Param("id")
	if !c.validateContractID(ctx, id) {
		return
	}

	reviewers, err := c.workflowSvc.Reviewers(id)
	if err != nil {
		HandleServiceError(ctx, err, "get reviewers")
		return
	}
	Success(ctx, NewReviewerViews(reviewers))
}
