package service_test

import (
	"context"
	"fmt"
	"io"
	"testing"

	"github.com/Trident-Energy/TridentEnergy-GlobalRiskManager-sub000/internal/database"
	"github.com/Trident-Energy/TridentEnergy-GlobalRiskManager-sub000/internal/directory"
	"github.com/Trident-Energy/TridentEnergy-GlobalRiskManager-sub000/internal/model"
	"github.com/Trident-Energy/TridentEnergy-GlobalRiskManager-sub000/internal/notify"
	"github.com/Trident-Energy/TridentEnergy-GlobalRiskManager-sub000/internal/repository"
	"github.com/Trident-Energy/TridentEnergy-GlobalRiskManager-sub000/internal/service"
	"github.com/Trident-Energy/TridentEnergy-GlobalRiskManager-sub000/internal/utils"
	"github.com/Trident-Energy/TridentEnergy-GlobalRiskManager-sub000/internal/workflow"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// 测试用的固定操作者
var (
	submitter = workflow.Actor{ID: "u-ops-01", Name: "Daniel Hughes", Role: workflow.RoleRequestor}
	legal     = workflow.Actor{ID: "u-legal-01", Name: "Amara Okafor", Role: workflow.RoleCorporateLegal}
	ceo       = workflow.Actor{ID: "u-ceo", Name: "Jean Moreau", Role: workflow.RoleCEO}
	finance   = workflow.Actor{ID: "u-finance-01", Name: "Samuel Nguema", Role: workflow.RoleRequestor}
)

// testEnv 服务层测试环境
type testEnv struct {
	db        *gorm.DB
	recorder  *notify.Recorder
	contracts repository.ContractRepository
	reviews   repository.ReviewRepository
	reviewers repository.ReviewerRepository
	entries   repository.AuditEntryRepository

	auditSvc    service.AuditService
	notifySvc   service.NotificationService
	contractSvc service.ContractService
	workflowSvc service.WorkflowService
	commentSvc  service.CommentService
	documentSvc service.DocumentService
}

// newTestEnv 组装完整的服务层测试环境
// 独立的内存 SQLite 库 + 确定性 ID + 记录型通知出口
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	contracts := repository.NewContractRepository(db)
	reviews := repository.NewReviewRepository(db)
	reviewers := repository.NewReviewerRepository(db)
	comments := repository.NewCommentRepository(db)
	documents := repository.NewDocumentRepository(db)
	entries := repository.NewAuditEntryRepository(db)

	users := []*model.UserModel{
		{ID: submitter.ID, Name: submitter.Name, Role: string(submitter.Role)},
		{ID: legal.ID, Name: legal.Name, Role: string(legal.Role)},
		{ID: ceo.ID, Name: ceo.Name, Role: string(ceo.Role)},
		{ID: finance.ID, Name: finance.Name, Role: string(finance.Role)},
	}
	require.NoError(t, directory.Seed(db, users))
	dir := directory.NewDirectory(repository.NewUserRepository(db))

	recorder := &notify.Recorder{}
	idgen := &utils.SequenceGenerator{Prefix: "id"}
	locker := service.NewContractLocker()

	auditSvc := service.NewAuditService(entries, idgen)
	notifySvc := service.NewNotificationService(recorder, dir, auditSvc, logger)

	return &testEnv{
		db:          db,
		recorder:    recorder,
		contracts:   contracts,
		reviews:     reviews,
		reviewers:   reviewers,
		entries:     entries,
		auditSvc:    auditSvc,
		notifySvc:   notifySvc,
		contractSvc: service.NewContractService(db, contracts, auditSvc, locker, idgen),
		workflowSvc: service.NewWorkflowService(db, contracts, reviews, reviewers, dir, auditSvc, notifySvc, locker, idgen),
		commentSvc:  service.NewCommentService(db, contracts, comments, auditSvc, locker, idgen),
		documentSvc: service.NewDocumentService(db, contracts, documents, auditSvc, idgen),
	}
}

// createRequest 构造合法的创建合同请求
func createRequest() *service.CreateContractRequest {
	return &service.CreateContractRequest{
		Title:               "Drilling services frame agreement",
		ContractType:        "OPEX",
		Entity:              "Trident Energy Brazil",
		Department:          "Operations",
		OriginalAmount:      500_000,
		OriginalCurrency:    "USD",
		StartDate:           "2026-01-01",
		EndDate:             "2026-12-31",
		IsStandardTerms:     true,
		LiabilityCapPercent: 100,
	}
}

// mustCreate 创建合同草稿
func (e *testEnv) mustCreate(t *testing.T, req *service.CreateContractRequest) *model.ContractModel {
	t.Helper()
	c, err := e.contractSvc.Create(context.Background(), submitter, req)
	require.NoError(t, err)
	return c
}

// mustSubmit 创建并提交合同
func (e *testEnv) mustSubmit(t *testing.T) *model.ContractModel {
	t.Helper()
	c := e.mustCreate(t, createRequest())
	c, err := e.workflowSvc.Submit(context.Background(), submitter, c.ID)
	require.NoError(t, err)
	return c
}

// auditActions 返回合同审计轨迹的动作序列
func (e *testEnv) auditActions(t *testing.T, contractID string) []string {
	t.Helper()
	entries, err := e.auditSvc.Trail(contractID)
	require.NoError(t, err)
	actions := make([]string, 0, len(entries))
	for _, entry := range entries {
		actions = append(actions, entry.Action)
	}
	return actions
}
