package api

import (
	"github.com/Trident-Energy/TridentEnergy-GlobalRiskManager-sub000/internal/directory"
	"github.com/gin-gonic/gin"
)

// DirectoryController 用户目录控制器
type DirectoryController struct {
	dir directory.UserDirectory
}

// NewDirectoryController 创建用户目录控制器
func NewDirectoryController(dir directory.UserDirectory) *DirectoryController {
	return &DirectoryController{dir: dir}
}

// List 获取用户目录
// @Summary      获取用户目录
// @Description  返回目录中的全部用户,用于选择评审人
// @Tags         用户目录
// @Accept       json
// @Produce      json
// @Success      200  {object}  Response
// @Failure      500  {object}  ErrorResponse
// @Router       /users [get]
func (c *DirectoryController) List(ctx *gin.Context) {
	users, err := c.dir.List()
	if err != nil {
		Error(ctx, 500, "failed to list users", err.Error())
		return
	}
	Success(ctx, users)
}
