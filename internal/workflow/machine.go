package workflow

// Status 合同审批状态
type Status string

const (
	StatusDraft            Status = "draft"
	StatusSubmitted        Status = "submitted"
	StatusPendingCEO       Status = "pending_ceo"
	StatusApproved         Status = "approved"
	StatusRejected         Status = "rejected"
	StatusChangesRequested Status = "changes_requested"
)

// Decision 审批决定
type Decision string

const (
	DecisionApproved         Decision = "Approved"
	DecisionRejected         Decision = "Rejected"
	DecisionChangesRequested Decision = "Changes Requested"
)

// Role 用户角色
type Role string

const (
	RoleRequestor      Role = "requestor"
	RoleCorporateLegal Role = "corporate_legal"
	RoleCEO            Role = "ceo"
)

// Actor 当前操作用户
// 由调用方提供并被信任,认证机制不在本服务范围内
type Actor struct {
	ID   string
	Name string
	Role Role
}

// Recipient 通知接收方类别
type Recipient int

const (
	NotifyNone Recipient = iota
	NotifyReviewTeam
	NotifyCEO
	NotifySubmitter
)

// Transition 一次合法状态迁移的结果
type Transition struct {
	To               Status
	SetLegalApproval bool
	Notify           Recipient
}

// transitionKey 迁移表键: 当前状态 × 操作者角色 × 决定
type transitionKey struct {
	status   Status
	role     Role
	decision Decision
}

// transitions 主审批链迁移表
// 表中不存在的 (状态, 角色, 决定) 组合一律视为越权
var transitions = map[transitionKey]Transition{
	{StatusSubmitted, RoleCorporateLegal, DecisionApproved}:         {To: StatusPendingCEO, SetLegalApproval: true, Notify: NotifyCEO},
	{StatusSubmitted, RoleCorporateLegal, DecisionRejected}:         {To: StatusRejected, Notify: NotifySubmitter},
	{StatusSubmitted, RoleCorporateLegal, DecisionChangesRequested}: {To: StatusChangesRequested, Notify: NotifySubmitter},
	{StatusPendingCEO, RoleCEO, DecisionApproved}:                   {To: StatusApproved, Notify: NotifySubmitter},
	{StatusPendingCEO, RoleCEO, DecisionRejected}:                   {To: StatusRejected, Notify: NotifySubmitter},
	{StatusPendingCEO, RoleCEO, DecisionChangesRequested}:           {To: StatusChangesRequested, Notify: NotifySubmitter},
}

// Next 查询主审批链的迁移
// 组合不在迁移表中时返回 AuthorizationError
func Next(status Status, role Role, decision Decision) (Transition, error) {
	t, ok := transitions[transitionKey{status, role, decision}]
	if !ok {
		return Transition{}, NewAuthorizationError("decide",
			"role "+string(role)+" cannot record "+string(decision)+" while contract is "+string(status))
	}
	return t, nil
}

// ParseDecision 解析决定字符串
func ParseDecision(s string) (Decision, error) {
	switch Decision(s) {
	case DecisionApproved, DecisionRejected, DecisionChangesRequested:
		return Decision(s), nil
	}
	return "", NewValidationError("decision", "unknown decision "+s)
}

// ParseStatus 解析状态字符串
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusDraft, StatusSubmitted, StatusPendingCEO, StatusApproved, StatusRejected, StatusChangesRequested:
		return Status(s), nil
	}
	return "", NewValidationError("status", "unknown status "+s)
}

// IsActive 合同是否处于活跃状态
// 活跃状态下临时评审人可以记录意见
func IsActive(status Status) bool {
	return status == StatusSubmitted || status == StatusPendingCEO || status == StatusChangesRequested
}

// IsTerminal 合同是否已到终态
func IsTerminal(status Status) bool {
	return status == StatusApproved || status == StatusRejected
}

// CanSubmit 当前状态下提交人能否提交/重新提交
func CanSubmit(status Status) bool {
	return status == StatusDraft || status == StatusChangesRequested
}

// AdHocContext 临时评审授权判断所需的合同侧事实
type AdHocContext struct {
	Status      Status
	IsReviewer  bool // 用户在临时评审人列表中
	HasReviewed bool // 用户已对该合同留有评审记录
}

// CanActAdHoc 临时评审人能否记录意见
// 要求合同活跃、用户在评审人列表中且尚未评审过;意见只入历史,不驱动状态
func CanActAdHoc(ctx AdHocContext) bool {
	return IsActive(ctx.Status) && ctx.IsReviewer && !ctx.HasReviewed
}

// CanApprove 授权守卫
// 主链: Submitted 状态下的法务、PendingCEO 状态下的 CEO;
// 或满足临时评审条件的用户。守卫为假时任何决定操作必须失败且不产生副作用。
func CanApprove(status Status, role Role, adHoc AdHocContext) bool {
	if status == StatusSubmitted && role == RoleCorporateLegal {
		return true
	}
	if status == StatusPendingCEO && role == RoleCEO {
		return true
	}
	return CanActAdHoc(adHoc)
}
