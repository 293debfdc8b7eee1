package service_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/Trident-Energy/TridentEnergy-GlobalRiskManager-sub000/internal/model"
	"github.com/Trident-Energy/TridentEnergy-GlobalRiskManager-sub000/internal/workflow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSubmit 测试提交合同进入审批流
func TestSubmit(t *testing.T) {
	env := newTestEnv(t)
	c := env.mustSubmit(t)

	assert.Equal(t, string(workflow.StatusSubmitted), c.Status)

	// 审计: 创建、提交、通知派发各一条
	assert.Equal(t, []string{
		model.ActionCreatedContract,
		model.ActionSubmittedContract,
		model.ActionSentNotification,
	}, env.auditActions(t, c.ID))

	// 通知发给公司评审组
	last, ok := env.recorder.Last()
	require.True(t, ok)
	assert.Equal(t, "Corporate Review Team", last.Recipient)
	assert.Contains(t, last.Subject, c.Title)
}

// TestSubmit_NotificationAuditOffset 测试通知审计条目晚于触发条目 1ms
func TestSubmit_NotificationAuditOffset(t *testing.T) {
	env := newTestEnv(t)
	c := env.mustSubmit(t)

	entries, err := env.auditSvc.Trail(c.ID)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	submitted := entries[1]
	notified := entries[2]
	assert.Equal(t, model.ActionSubmittedContract, submitted.Action)
	assert.Equal(t, model.ActionSentNotification, notified.Action)
	assert.Equal(t, time.Millisecond, notified.CreatedAt.Sub(submitted.CreatedAt))
}

// TestSubmit_OnlySubmitter 测试非提交人不能提交
func TestSubmit_OnlySubmitter(t *testing.T) {
	env := newTestEnv(t)
	c := env.mustCreate(t, createRequest())

	_, err := env.workflowSvc.Submit(context.Background(), legal, c.ID)
	require.Error(t, err)
	assert.True(t, workflow.IsAuthorization(err))

	// 状态未变
	got, err := env.contractSvc.Get(c.ID)
	require.NoError(t, err)
	assert.Equal(t, string(workflow.StatusDraft), got.Status)
}

// TestSubmit_NotWhileActive 测试已提交的合同不能重复提交
func TestSubmit_NotWhileActive(t *testing.T) {
	env := newTestEnv(t)
	c := env.mustSubmit(t)

	_, err := env.workflowSvc.Submit(context.Background(), submitter, c.ID)
	require.Error(t, err)
	assert.True(t, workflow.IsAuthorization(err))
}

// TestDecide_LegalApprove 测试法务批准进入待 CEO 审批
func TestDecide_LegalApprove(t *testing.T) {
	env := newTestEnv(t)
	c := env.mustSubmit(t)

	c, err := env.workflowSvc.Decide(context.Background(), legal, c.ID, "Approved", "Terms reviewed, no objections")
	require.NoError(t, err)

	assert.Equal(t, string(workflow.StatusPendingCEO), c.Status)
	assert.True(t, c.LegalApproved)

	// 评审记录落库且为主链记录
	reviews, err := env.workflowSvc.Reviews(c.ID)
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, legal.ID, reviews[0].ReviewerID)
	assert.Equal(t, "Approved", reviews[0].Decision)
	assert.False(t, reviews[0].IsAdHoc)

	// 通知发给 CEO
	last, ok := env.recorder.Last()
	require.True(t, ok)
	assert.Equal(t, ceo.Name, last.Recipient)
}

// TestDecide_FullApprovalChain 测试完整批准链到终态
func TestDecide_FullApprovalChain(t *testing.T) {
	env := newTestEnv(t)
	c := env.mustSubmit(t)

	_, err := env.workflowSvc.Decide(context.Background(), legal, c.ID, "Approved", "ok")
	require.NoError(t, err)

	c, err = env.workflowSvc.Decide(context.Background(), ceo, c.ID, "Approved", "final sign-off")
	require.NoError(t, err)

	assert.Equal(t, string(workflow.StatusApproved), c.Status)
	assert.True(t, c.LegalApproved)

	// 终态通知回到提交人
	last, ok := env.recorder.Last()
	require.True(t, ok)
	assert.Equal(t, submitter.Name, last.Recipient)

	// 终态后不再接受决定
	_, err = env.workflowSvc.Decide(context.Background(), ceo, c.ID, "Rejected", "too late")
	require.Error(t, err)
	assert.True(t, workflow.IsAuthorization(err))
}

// TestDecide_CEOReject 测试 CEO 拒绝
func TestDecide_CEOReject(t *testing.T) {
	env := newTestEnv(t)
	c := env.mustSubmit(t)

	_, err := env.workflowSvc.Decide(context.Background(), legal, c.ID, "Approved", "ok")
	require.NoError(t, err)

	c, err = env.workflowSvc.Decide(context.Background(), ceo, c.ID, "Rejected", "commercial terms unacceptable")
	require.NoError(t, err)

	assert.Equal(t, string(workflow.StatusRejected), c.Status)
	// 法务批准标记保留,拒绝不清除历史事实
	assert.True(t, c.LegalApproved)
}

// TestDecide_ChangesRequestedRoundTrip 测试要求修改后编辑并重新提交
func TestDecide_ChangesRequestedRoundTrip(t *testing.T) {
	env := newTestEnv(t)
	c := env.mustSubmit(t)

	c, err := env.workflowSvc.Decide(context.Background(), legal, c.ID, "Changes Requested", "please clarify scope")
	require.NoError(t, err)
	assert.Equal(t, string(workflow.StatusChangesRequested), c.Status)

	// 要求修改状态下提交人可重新提交
	c, err = env.workflowSvc.Submit(context.Background(), submitter, c.ID)
	require.NoError(t, err)
	assert.Equal(t, string(workflow.StatusSubmitted), c.Status)

	// 已有评审记录保留
	reviews, err := env.workflowSvc.Reviews(c.ID)
	require.NoError(t, err)
	assert.Len(t, reviews, 1)
}

// TestDecide_GuardFailureHasNoSideEffects 测试守卫失败不产生任何副作用
func TestDecide_GuardFailureHasNoSideEffects(t *testing.T) {
	env := newTestEnv(t)
	c := env.mustSubmit(t)
	before := len(env.auditActions(t, c.ID))
	sentBefore := len(env.recorder.Sent())

	// CEO 在 submitted 阶段越权
	_, err := env.workflowSvc.Decide(context.Background(), ceo, c.ID, "Approved", "premature")
	require.Error(t, err)
	assert.True(t, workflow.IsAuthorization(err))

	// 提交人永远不能决定
	_, err = env.workflowSvc.Decide(context.Background(), submitter, c.ID, "Approved", "self approval")
	require.Error(t, err)
	assert.True(t, workflow.IsAuthorization(err))

	got, err := env.contractSvc.Get(c.ID)
	require.NoError(t, err)
	assert.Equal(t, string(workflow.StatusSubmitted), got.Status)
	assert.False(t, got.LegalApproved)

	reviews, err := env.workflowSvc.Reviews(c.ID)
	require.NoError(t, err)
	assert.Empty(t, reviews)
	assert.Len(t, env.auditActions(t, c.ID), before)
	assert.Len(t, env.recorder.Sent(), sentBefore)
}

// TestDecide_RequiresComment 测试决定必须附意见
func TestDecide_RequiresComment(t *testing.T) {
	env := newTestEnv(t)
	c := env.mustSubmit(t)

	_, err := env.workflowSvc.Decide(context.Background(), legal, c.ID, "Approved", "   ")
	require.Error(t, err)
	assert.True(t, workflow.IsValidation(err))

	_, err = env.workflowSvc.Decide(context.Background(), legal, c.ID, "Maybe", "comment")
	require.Error(t, err)
	assert.True(t, workflow.IsValidation(err))
}

// TestAddReviewer 测试添加临时评审人
func TestAddReviewer(t *testing.T) {
	env := newTestEnv(t)
	c := env.mustSubmit(t)

	require.NoError(t, env.workflowSvc.AddReviewer(context.Background(), legal, c.ID, finance.ID))

	reviewers, err := env.workflowSvc.Reviewers(c.ID)
	require.NoError(t, err)
	require.Len(t, reviewers, 1)
	assert.Equal(t, finance.ID, reviewers[0].UserID)
	assert.Equal(t, legal.ID, reviewers[0].AddedBy)

	// 被添加的评审人收到通知
	last, ok := env.recorder.Last()
	require.True(t, ok)
	assert.Equal(t, finance.Name, last.Recipient)
	assert.Contains(t, env.auditActions(t, c.ID), model.ActionAddedReviewer)
}

// TestAddReviewer_DuplicateIsNoOp 测试重复添加为纯幂等空操作
func TestAddReviewer_DuplicateIsNoOp(t *testing.T) {
	env := newTestEnv(t)
	c := env.mustSubmit(t)

	require.NoError(t, env.workflowSvc.AddReviewer(context.Background(), legal, c.ID, finance.ID))
	actionsAfterFirst := env.auditActions(t, c.ID)
	sentAfterFirst := len(env.recorder.Sent())

	// 第二次添加: 无错误、无新行、无新审计、无新通知
	require.NoError(t, env.workflowSvc.AddReviewer(context.Background(), legal, c.ID, finance.ID))

	reviewers, err := env.workflowSvc.Reviewers(c.ID)
	require.NoError(t, err)
	assert.Len(t, reviewers, 1)
	assert.Equal(t, actionsAfterFirst, env.auditActions(t, c.ID))
	assert.Len(t, env.recorder.Sent(), sentAfterFirst)
}

// TestAddReviewer_UnknownUser 测试添加目录外用户被拒绝
func TestAddReviewer_UnknownUser(t *testing.T) {
	env := newTestEnv(t)
	c := env.mustSubmit(t)

	err := env.workflowSvc.AddReviewer(context.Background(), legal, c.ID, "u-ghost")
	require.Error(t, err)
	assert.True(t, workflow.IsNotFound(err))
}

// TestDecide_AdHocReviewer 测试临时评审人决定仅入历史
func TestDecide_AdHocReviewer(t *testing.T) {
	env := newTestEnv(t)
	c := env.mustSubmit(t)
	require.NoError(t, env.workflowSvc.AddReviewer(context.Background(), legal, c.ID, finance.ID))
	sentBefore := len(env.recorder.Sent())

	c, err := env.workflowSvc.Decide(context.Background(), finance, c.ID, "Rejected", "pricing looks off")
	require.NoError(t, err)

	// 状态不变,无状态通知
	assert.Equal(t, string(workflow.StatusSubmitted), c.Status)
	assert.False(t, c.LegalApproved)
	assert.Len(t, env.recorder.Sent(), sentBefore)

	reviews, err := env.workflowSvc.Reviews(c.ID)
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.True(t, reviews[0].IsAdHoc)
	assert.Equal(t, "Rejected", reviews[0].Decision)
}

// TestDecide_AdHocAtMostOnce 测试临时评审人至多评审一次
func TestDecide_AdHocAtMostOnce(t *testing.T) {
	env := newTestEnv(t)
	c := env.mustSubmit(t)
	require.NoError(t, env.workflowSvc.AddReviewer(context.Background(), legal, c.ID, finance.ID))

	_, err := env.workflowSvc.Decide(context.Background(), finance, c.ID, "Approved", "fine by me")
	require.NoError(t, err)

	_, err = env.workflowSvc.Decide(context.Background(), finance, c.ID, "Rejected", "changed my mind")
	require.Error(t, err)
	assert.True(t, workflow.IsAuthorization(err))

	reviews, err := env.workflowSvc.Reviews(c.ID)
	require.NoError(t, err)
	assert.Len(t, reviews, 1)
}

// TestDecide_ConcurrentAdHocSingleReview 测试并发决定在合同锁下串行执行
// "已评审" 守卫在持锁后复查,同一评审人的并发尝试至多落一条评审记录
func TestDecide_ConcurrentAdHocSingleReview(t *testing.T) {
	env := newTestEnv(t)
	c := env.mustSubmit(t)
	require.NoError(t, env.workflowSvc.AddReviewer(context.Background(), legal, c.ID, finance.ID))
	sentBefore := len(env.recorder.Sent())

	const attempts = 8
	errs := make(chan error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := env.workflowSvc.Decide(context.Background(), finance, c.ID, "Approved", "concurrent attempt")
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	succeeded, denied := 0, 0
	for err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		require.True(t, workflow.IsAuthorization(err), "unexpected error: %v", err)
		denied++
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, attempts-1, denied)

	// 评审历史恰好一条,状态与通知均未被重复触发
	reviews, err := env.workflowSvc.Reviews(c.ID)
	require.NoError(t, err)
	assert.Len(t, reviews, 1)

	got, err := env.contractSvc.Get(c.ID)
	require.NoError(t, err)
	assert.Equal(t, string(workflow.StatusSubmitted), got.Status)
	assert.Len(t, env.recorder.Sent(), sentBefore)
}

// TestDecide_AdHocDoesNotBlockMainChain 测试临时评审不影响主链推进
func TestDecide_AdHocDoesNotBlockMainChain(t *testing.T) {
	env := newTestEnv(t)
	c := env.mustSubmit(t)
	require.NoError(t, env.workflowSvc.AddReviewer(context.Background(), legal, c.ID, finance.ID))

	_, err := env.workflowSvc.Decide(context.Background(), finance, c.ID, "Rejected", "advisory objection")
	require.NoError(t, err)

	// 主链不受咨询意见约束
	c, err = env.workflowSvc.Decide(context.Background(), legal, c.ID, "Approved", "objection noted, proceeding")
	require.NoError(t, err)
	assert.Equal(t, string(workflow.StatusPendingCEO), c.Status)
}

// TestNotificationFailureDoesNotRollBack 测试投递失败不回滚状态变更
func TestNotificationFailureDoesNotRollBack(t *testing.T) {
	env := newTestEnv(t)
	c := env.mustCreate(t, createRequest())

	env.recorder.FailNext = true
	c, err := env.workflowSvc.Submit(context.Background(), submitter, c.ID)
	require.NoError(t, err)
	assert.Equal(t, string(workflow.StatusSubmitted), c.Status)

	// 审计仍然记录派发尝试
	assert.Contains(t, env.auditActions(t, c.ID), model.ActionSentNotification)
}

// TestWorkflow_NotFound 测试工作流操作对不存在合同的处理
func TestWorkflow_NotFound(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.workflowSvc.Submit(context.Background(), submitter, "c-missing")
	assert.True(t, workflow.IsNotFound(err))

	_, err = env.workflowSvc.Decide(context.Background(), legal, "c-missing", "Approved", "x")
	assert.True(t, workflow.IsNotFound(err))

	err = env.workflowSvc.AddReviewer(context.Background(), legal, "c-missing", finance.ID)
	assert.True(t, workflow.IsNotFound(err))
}
