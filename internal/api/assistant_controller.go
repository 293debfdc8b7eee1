package api

import (
	"net/http"

	"github.com/Trident-Energy/TridentEnergy-GlobalRiskManager-sub000/internal/assistant"
	"github.com/gin-gonic/gin"
)

// RefineRequest 文本润色请求
type RefineRequest struct {
	Draft string `json:"draft" binding:"required"`
	Kind  string `json:"kind" binding:"required" example:"scope"` // scope/background
}

// AssistantController 文本润色控制器
// 润色结果只作为建议返回,不写入任何合同字段,也不产生审计条目
type AssistantController struct {
	refiner assistant.TextRefiner
}

// NewAssistantController 创建文本润色控制器
func NewAssistantController(refiner assistant.TextRefiner) *AssistantController {
	return &AssistantController{refiner: refiner}
}

// Refine 润色文本
// @Summary      润色合同描述文本
// @Description  对范围或背景草稿给出润色建议,结果由用户显式接受后才进入合同
// @Tags         助手
// @Accept       json
// @Produce      json
// @Param        request body RefineRequest true "草稿文本"
// @Success      200  {object}  Response
// @Failure      400  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /assistant/refine [post]
func (c *AssistantController) Refine(ctx *gin.Context) {
	var req RefineRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	kind := assistant.Kind(req.Kind)
	if !assistant.IsValidKind(kind) {
		Error(ctx, http.StatusBadRequest, "invalid request", "kind must be scope or background")
		return
	}

	text, err := c.refiner.Refine(ctx.Request.Context(), req.Draft, kind)
	if err != nil {
		Error(ctx, http.StatusInternalServerError, "failed to refine text", err.Error())
		return
	}
	Success(ctx, gin.H{"text": text})
}
