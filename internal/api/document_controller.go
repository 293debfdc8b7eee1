package api

import (
	"net/http"

	"github.com/Trident-Energy/TridentEnergy-GlobalRiskManager-sub000/internal/service"
	"github.com/Trident-Energy/TridentEnergy-GlobalRiskManager-sub000/internal/utils"
	"github.com/gin-gonic/gin"
)

// DocumentController 附件控制器
// 仅登记元数据,文件本体由外部存储负责
type DocumentController struct {
	documentSvc service.DocumentService
}

// NewDocumentController 创建附件控制器
func NewDocumentController(documentSvc service.DocumentService) *DocumentController {
	return &DocumentController{documentSvc: documentSvc}
}

// validateContractID 验证合同 ID 并返回错误响应（如果无效）
func (c *DocumentController) validateContractID(ctx *gin.Context, id string) bool {
	if err := utils.ValidateID(id); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid contract ID", err.Error())
		return false
	}
	return true
}

// Upload 上传附件
// @Summary      上传合同附件
// @Description  登记附件元数据并记录审计条目
// @Tags         附件
// @Accept       multipart/form-data
// @Produce      json
// @Param        id path string true "合同 ID"
// @Param        file formData file true "附件文件"
// @Success      200  {object}  Response
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /contracts/{id}/documents [post]
func (c *DocumentController) Upload(ctx *gin.Context) {
	id := ctx.Param("id")
	if !c.validateContractID(ctx, id) {
		return
	}

	file, err := ctx.FormFile("file")
	if err != nil {
		Error(ctx, http.StatusBadRequest, "invalid request", "file field is required")
		return
	}

	doc, err := c.documentSvc.Upload(ctx.Request.Context(), CurrentActor(ctx), id, file.Filename, file.Size)
	if err != nil {
		HandleServiceError(ctx, err, "upload document")
		return
	}
	Success(ctx, &DocumentView{
		ID:         doc.ID,
		ContractID: doc.ContractID,
		Name:       doc.Name,
		Size:       doc.Size,
		UploadedBy: doc.UploadedBy,
		UploadedAt: doc.UploadedAt,
	})
}

// List 获取附件列表
// @Summary      获取合同附件列表
// @Tags         附件
// @Accept       json
// @Produce      json
// @Param        id path string true "合同 ID"
// @Success      200  {object}  Response
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /contracts/{id}/documents [get]
func (c *DocumentController) List(ctx *gin.Context) {
	id := ctx.Param("id")
	if !c.validateContractID(ctx, id) {
		return
	}

	docs, err := c.documentSvc.List(id)
	if err != nil {
		HandleServiceError(ctx, err, "list documents")
		return
	}
	Success(ctx, NewDocumentViews(docs))
}
