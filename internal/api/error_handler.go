package api

import (
	"net/http"

	"github.com/Trident-Energy/TridentEnergy-GlobalRiskManager-sub000/internal/workflow"
	"github.com/gin-gonic/gin"
)

// HandleServiceError 将服务层错误映射为 HTTP 响应
// 授权错误 403,校验错误 400,资源不存在 404;
// 不变量违反属于编程错误,记日志并返回 500
func HandleServiceError(ctx *gin.Context, err error, operation string) {
	HandleServiceErrorWithData(ctx, err, operation, nil)
}

// HandleServiceErrorWithData 同 HandleServiceError,响应附带已产生的数据
// 用于操作部分完成的场景,如合同已创建但直接提交失败
func HandleServiceErrorWithData(ctx *gin.Context, err error, operation string, data interface{}) {
	switch {
	case workflow.IsAuthorization(err):
		ErrorWithData(ctx, http.StatusForbidden, "not authorized to "+operation, err.Error(), data)
	case workflow.IsValidation(err):
		ErrorWithData(ctx, http.StatusBadRequest, "invalid request", err.Error(), data)
	case workflow.IsNotFound(err):
		ErrorWithData(ctx, http.StatusNotFound, "resource not found", err.Error(), data)
	case workflow.IsInvariantViolation(err):
		GetLogger().WithError(err).WithField("operation", operation).Error("invariant violation")
		ErrorWithData(ctx, http.StatusInternalServerError, "internal server error", err.Error(), data)
	default:
		ErrorWithData(ctx, http.StatusInternalServerError, "failed to "+operation, err.Error(), data)
	}
}
