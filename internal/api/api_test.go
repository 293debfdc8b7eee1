package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Trident-Energy/TridentEnergy-GlobalRiskManager-sub000/internal/api"
	"github.com/Trident-Energy/TridentEnergy-GlobalRiskManager-sub000/internal/assistant"
	"github.com/Trident-Energy/TridentEnergy-GlobalRiskManager-sub000/internal/config"
	"github.com/Trident-Energy/TridentEnergy-GlobalRiskManager-sub000/internal/database"
	"github.com/Trident-Energy/TridentEnergy-GlobalRiskManager-sub000/internal/directory"
	"github.com/Trident-Energy/TridentEnergy-GlobalRiskManager-sub000/internal/model"
	"github.com/Trident-Energy/TridentEnergy-GlobalRiskManager-sub000/internal/notify"
	"github.com/Trident-Energy/TridentEnergy-GlobalRiskManager-sub000/internal/repository"
	"github.com/Trident-Energy/TridentEnergy-GlobalRiskManager-sub000/internal/service"
	"github.com/Trident-Energy/TridentEnergy-GlobalRiskManager-sub000/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// 测试用的固定用户,与种子目录保持一致
const (
	submitterID = "u-ops-01"
	legalID     = "u-legal-01"
	ceoID       = "u-ceo"
)

// apiEnv HTTP 层测试环境
type apiEnv struct {
	router *gin.Engine
}

// newAPIEnv 组装带内存数据库的完整路由
func newAPIEnv(t *testing.T) *apiEnv {
	return newAPIEnvWorkflow(t, nil)
}

// newAPIEnvWorkflow 同 newAPIEnv,可通过 wrap 替换工作流服务实现
func newAPIEnvWorkflow(t *testing.T, wrap func(service.WorkflowService) service.WorkflowService) *apiEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:api_%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	users := []*model.UserModel{
		{ID: submitterID, Name: "Daniel Hughes", Role: "requestor"},
		{ID: legalID, Name: "Amara Okafor", Role: "corporate_legal"},
		{ID: ceoID, Name: "Jean Moreau", Role: "ceo"},
	}
	require.NoError(t, directory.Seed(db, users))
	dir := directory.NewDirectory(repository.NewUserRepository(db))

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	contracts := repository.NewContractRepository(db)
	reviews := repository.NewReviewRepository(db)
	reviewers := repository.NewReviewerRepository(db)
	comments := repository.NewCommentRepository(db)
	documents := repository.NewDocumentRepository(db)
	entries := repository.NewAuditEntryRepository(db)

	idgen := &utils.SequenceGenerator{Prefix: "api"}
	locker := service.NewContractLocker()
	auditSvc := service.NewAuditService(entries, idgen)
	notifySvc := service.NewNotificationService(&notify.Recorder{}, dir, auditSvc, logger)

	workflowSvc := service.NewWorkflowService(db, contracts, reviews, reviewers, dir, auditSvc, notifySvc, locker, idgen)
	if wrap != nil {
		workflowSvc = wrap(workflowSvc)
	}

	ctrl := api.NewControllers(
		service.NewContractService(db, contracts, auditSvc, locker, idgen),
		workflowSvc,
		service.NewCommentService(db, contracts, comments, auditSvc, locker, idgen),
		service.NewDocumentService(db, contracts, documents, auditSvc, idgen),
		auditSvc,
		assistant.EchoRefiner{},
		dir,
	)

	return &apiEnv{router: api.SetupRoutes(config.Default(), db, nil, dir, ctrl)}
}

// do 以指定用户身份发起 JSON 请求
func (e *apiEnv) do(t *testing.T, method, path, userID string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// decodeResponse 解析统一响应并返回 data 字段
func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var resp struct {
		Code    int                    `json:"code"`
		Message string                 `json:"message"`
		Data    map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 0, resp.Code, "body: %s", w.Body.String())
	return resp.Data
}

// createBody 合法的创建合同请求体
func createBody() map[string]interface{} {
	return map[string]interface{}{
		"title":                 "Subsea inspection services",
		"contract_type":         "OPEX",
		"entity":                "Trident Energy Brazil",
		"department":            "Operations",
		"original_amount":       250_000,
		"original_currency":     "USD",
		"start_date":            "2026-01-01",
		"end_date":              "2026-12-31",
		"is_standard_terms":     true,
		"liability_cap_percent": 100,
	}
}

// mustCreateContract 通过 HTTP 创建合同并返回其 ID
func (e *apiEnv) mustCreateContract(t *testing.T) string {
	t.Helper()
	w := e.do(t, http.MethodPost, "/api/v1/contracts", submitterID, createBody())
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	data := decodeResponse(t, w)
	id, _ := data["id"].(string)
	require.NotEmpty(t, id)
	return id
}
