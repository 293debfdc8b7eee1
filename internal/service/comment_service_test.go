package service_test

import (
	"context"
	"testing"

	"github.com/Trident-Energy/TridentEnergy-GlobalRiskManager-sub000/internal/model"
	"github.com/Trident-Energy/TridentEnergy-GlobalRiskManager-sub000/internal/workflow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCommentAdd 测试发表评论并置未读标记
func TestCommentAdd(t *testing.T) {
	env := newTestEnv(t)
	c := env.mustSubmit(t)

	comment, err := env.commentSvc.Add(context.Background(), legal, c.ID, "Please attach the signed NDA")
	require.NoError(t, err)
	assert.Equal(t, legal.ID, comment.UserID)
	assert.Equal(t, legal.Name, comment.UserName)

	got, err := env.contractSvc.Get(c.ID)
	require.NoError(t, err)
	assert.True(t, got.HasUnreadComments)
	assert.Contains(t, env.auditActions(t, c.ID), model.ActionAddedComment)
}

// TestCommentAdd_RequiresText 测试空白评论被拒绝
func TestCommentAdd_RequiresText(t *testing.T) {
	env := newTestEnv(t)
	c := env.mustSubmit(t)

	_, err := env.commentSvc.Add(context.Background(), legal, c.ID, "  \t ")
	require.Error(t, err)
	assert.True(t, workflow.IsValidation(err))
}

// TestCommentToggleLike 测试点赞开关幂等往返
func TestCommentToggleLike(t *testing.T) {
	env := newTestEnv(t)
	c := env.mustSubmit(t)
	comment, err := env.commentSvc.Add(context.Background(), legal, c.ID, "Looks fine overall")
	require.NoError(t, err)

	liked, err := env.commentSvc.ToggleLike(context.Background(), submitter, c.ID, comment.ID)
	require.NoError(t, err)
	assert.True(t, liked)

	// 点赞落库
	comments, err := env.commentSvc.List(c.ID)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	likes, err := comments[0].GetLikes()
	require.NoError(t, err)
	assert.Equal(t, []string{submitter.ID}, likes)

	// 再点一次取消
	liked, err = env.commentSvc.ToggleLike(context.Background(), submitter, c.ID, comment.ID)
	require.NoError(t, err)
	assert.False(t, liked)

	comments, err = env.commentSvc.List(c.ID)
	require.NoError(t, err)
	likes, err = comments[0].GetLikes()
	require.NoError(t, err)
	assert.Empty(t, likes)
}

// TestCommentToggleLike_UnknownComment 测试未知评论静默忽略
func TestCommentToggleLike_UnknownComment(t *testing.T) {
	env := newTestEnv(t)
	c := env.mustSubmit(t)

	liked, err := env.commentSvc.ToggleLike(context.Background(), submitter, c.ID, "cm-missing")
	require.NoError(t, err)
	assert.False(t, liked)
}

// TestCommentMarkRead 测试清除未读标记
func TestCommentMarkRead(t *testing.T) {
	env := newTestEnv(t)
	c := env.mustSubmit(t)
	_, err := env.commentSvc.Add(context.Background(), legal, c.ID, "flagging a question")
	require.NoError(t, err)

	require.NoError(t, env.commentSvc.MarkRead(context.Background(), submitter, c.ID))
	got, err := env.contractSvc.Get(c.ID)
	require.NoError(t, err)
	assert.False(t, got.HasUnreadComments)

	// 已读状态下再次标记为空操作
	require.NoError(t, env.commentSvc.MarkRead(context.Background(), submitter, c.ID))
}

// TestCommentList_Order 测试评论按时间升序返回
func TestCommentList_Order(t *testing.T) {
	env := newTestEnv(t)
	c := env.mustSubmit(t)

	_, err := env.commentSvc.Add(context.Background(), legal, c.ID, "first")
	require.NoError(t, err)
	_, err = env.commentSvc.Add(context.Background(), submitter, c.ID, "second")
	require.NoError(t, err)

	comments, err := env.commentSvc.List(c.ID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "first", comments[0].Text)
	assert.Equal(t, "second", comments[1].Text)
}

// TestComment_UnknownContract 测试未知合同
func TestComment_UnknownContract(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.commentSvc.Add(context.Background(), legal, "c-missing", "hello")
	assert.True(t, workflow.IsNotFound(err))

	_, err = env.commentSvc.List("c-missing")
	assert.True(t, workflow.IsNotFound(err))
}
