package api

import (
	"net/http"

	"github.com/Trident-Energy/TridentEnergy-GlobalRiskManager-sub000/internal/service"
	"github.com/Trident-Energy/TridentEnergy-GlobalRiskManager-sub000/internal/utils"
	"github.com/gin-gonic/gin"
)

// AddCommentRequest 发表评论请求
type AddCommentRequest struct {
	Text string `json:"text" binding:"required" example:"Please double-check the liability clause"`
}

// CommentController 评论控制器
type CommentController struct {
	commentSvc service.CommentService
}

// NewCommentController 创建评论控制器
func NewCommentController(commentSvc service.CommentService) *CommentController {
	return &CommentController{commentSvc: commentSvc}
}

// validateIDs 验证路径中的 ID 并返回错误响应（如果无效）
func (c *CommentController) validateIDs(ctx *gin.Context, ids ...string) bool {
	for _, id := range ids {
		if err := utils.ValidateID(id); err != nil {
			Error(ctx, http.StatusBadRequest, "invalid ID", err.Error())
			return false
		}
	}
	return true
}

// Add 发表评论
// @Summary      发表评论
// @Description  在合同下发表评论并置未读标记,不影响审批状态
// @Tags         评论
// @Accept       json
// @Produce      json
// @Param        id path string true "合同 ID"
// @Param        request body AddCommentRequest true "评论内容"
// @Success      200  {object}  Response
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /contracts/{id}/comments [post]
func (c *CommentController) Add(ctx *gin.Context) {
	id := ctx.Param("id")
	if !c.validateIDs(ctx, id) {
		return
	}

	var req AddCommentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	comment, err := c.commentSvc.Add(ctx.Request.Context(), CurrentActor(ctx), id, req.Text)
	if err != nil {
		HandleServiceError(ctx, err, "add comment")
		return
	}

	view, err := NewCommentView(comment)
	if err != nil {
		Error(ctx, http.StatusInternalServerError, "failed to render comment", err.Error())
		return
	}
	Success(ctx, view)
}

// List 获取评论列表
// @Summary      获取评论列表
// @Description  按时间升序返回合同的全部评论
// @Tags         评论
// @Accept       json
// @Produce      json
// @Param        id path string true "合同 ID"
// @Success      200  {object}  Response
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /contracts/{id}/comments [get]
func (c *CommentController) List(ctx *gin.Context) {
	id := ctx.Param("id")
	if !c.validateIDs(ctx, id) {
		return
	}

	comments, err := c.commentSvc.List(id)
	if err != nil {
		HandleServiceError(ctx, err, "list comments")
		return
	}

	views, err := NewCommentViews(comments)
	if err != nil {
		Error(ctx, http.StatusInternalServerError, "failed to render comments", err.Error())
		return
	}
	Success(ctx, views)
}

// ToggleLike 切换点赞
// @Summary      切换评论点赞
// @Description  按用户幂等切换点赞状态;评论不存在时静默成功
// @Tags         评论
// @Accept       json
// @Produce      json
// @Param        id path string true "合同 ID"
// @Param        comment_id path string true "评论 ID"
// @Success      200  {object}  Response
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /contracts/{id}/comments/{comment_id}/like [post]
func (c *CommentController) ToggleLike(ctx *gin.Context) {
	id := ctx.Param("id")
	commentID := ctx.Param("comment_id")
	if !c.validateIDs(ctx, id, commentID) {
		return
	}

	liked, err := c.commentSvc.ToggleLike(ctx.Request.Context(), CurrentActor(ctx), id, commentID)
	if err != nil {
		HandleServiceError(ctx, err, "toggle like")
		return
	}
	Success(ctx, gin.H{"liked": liked})
}

// MarkRead 清除未读标记
// @Summary      清除合同的未读评论标记
// @Tags         评论
// @Accept       json
// @Produce      json
// @Param        id path string true "合同 ID"
// @Success      200  {object}  Response
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /contracts/{id}/comments/read [post]
func (c *CommentController) MarkRead(ctx *gin.Context) {
	id := ctx.Param("id")
	if !c.validateIDs(ctx, id) {
		return
	}

	if err := c.commentSvc.MarkRead(ctx.Request.Context(), CurrentActor(ctx), id); err != nil {
		HandleServiceError(ctx, err, "mark comments read")
		return
	}
	Success(ctx, nil)
}
