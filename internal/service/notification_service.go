package service

import (
	"time"

	"github.com/Trident-Energy/TridentEnergy-GlobalRiskManager-sub000/internal/directory"
	"github.com/Trident-Energy/TridentEnergy-GlobalRiskManager-sub000/internal/metrics"
	"github.com/Trident-Energy/TridentEnergy-GlobalRiskManager-sub000/internal/model"
	"github.com/Trident-Energy/TridentEnergy-GlobalRiskManager-sub000/internal/notify"
	"github.com/Trident-Energy/TridentEnergy-GlobalRiskManager-sub000/internal/workflow"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// 公司评审组的固定显示名
const reviewTeamName = "Corporate Review Team"

// NotificationService 通知派发服务
// 解析接收人、调用通知出口并记录派发审计条目。
// 投递失败只记日志与指标,不回滚触发它的状态变更
type NotificationService interface {
	Dispatch(db *gorm.DB, contract *model.ContractModel, actor workflow.Actor, target workflow.Recipient, subject string, body string, after time.Time) error
	DispatchTo(db *gorm.DB, contract *model.ContractModel, actor workflow.Actor, recipient string, subject string, body string, after time.Time) error
	ResolveRecipient(contract *model.ContractModel, target workflow.Recipient) string
}

// notificationService 通知派发服务实现
type notificationService struct {
	sink     notify.Sink
	dir      directory.UserDirectory
	auditSvc AuditService
	logger   *logrus.Logger
}

// NewNotificationService 创建通知派发服务
func NewNotificationService(sink notify.Sink, dir directory.UserDirectory, auditSvc AuditService, logger *logrus.Logger) NotificationService {
	return &notificationService{
		sink:     sink,
		dir:      dir,
		auditSvc: auditSvc,
		logger:   logger,
	}
}

// ResolveRecipient 解析通知接收人显示名
func (s *notificationService) ResolveRecipient(contract *model.ContractModel, target workflow.Recipient) string {
	switch target {
	case workflow.NotifyReviewTeam:
		return reviewTeamName
	case workflow.NotifyCEO:
		if users, err := s.dir.FindByRole(string(workflow.RoleCEO)); err == nil && len(users) > 0 {
			return users[0].Name
		}
		return "CEO"
	case workflow.NotifySubmitter:
		if u, err := s.dir.Resolve(contract.SubmitterID); err == nil {
			return u.Name
		}
		return contract.SubmitterID
	}
	return ""
}

// Dispatch 派发一次通知并记录审计条目
// 返回错误仅当审计写入失败;出口失败不向上传播
func (s *notificationService) Dispatch(db *gorm.DB, contract *model.ContractModel, actor workflow.Actor, target workflow.Recipient, subject string, body string, after time.Time) error {
	if target == workflow.NotifyNone {
		return nil
	}

	return s.DispatchTo(db, contract, actor, s.ResolveRecipient(contract, target), subject, body, after)
}

// DispatchTo 向具名接收人派发一次通知
// 用于接收人不在固定类别中的场景,如新加入的临时评审人
func (s *notificationService) DispatchTo(db *gorm.DB, contract *model.ContractModel, actor workflow.Actor, recipient string, subject string, body string, after time.Time) error {
	n := notify.Notification{
		ContractID: contract.ID,
		Recipient:  recipient,
		Subject:    subject,
		Body:       body,
		SentAt:     after,
	}
	if err := s.sink.Notify(n); err != nil {
		// 投递是尽力而为: 工作流的职责到派发为止
		s.logger.WithError(err).WithFields(logrus.Fields{
			"contract_id": contract.ID,
			"recipient":   recipient,
			"subject":     subject,
		}).Warn("notification delivery failed")
		metrics.RecordNotification("failed")
	} else {
		metrics.RecordNotification("delivered")
	}

	_, err := s.auditSvc.RecordNotification(db, contract.ID, actor, recipient, subject, after)
	return err
}
