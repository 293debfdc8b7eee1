package risk

import (
	"time"
)

// 合同类型
const (
	ContractTypeOPEX  = "OPEX"
	ContractTypeCAPEX = "CAPEX"
	ContractTypeMixed = "MIXED"
)

// 风险类别
const (
	CategoryFinancial   = "Financial"
	CategoryLegal       = "Legal"
	CategoryOperational = "Operational"
	CategoryThirdParty  = "Third Party"
)

// 系统触发器阈值
const (
	opexThresholdUSD        = 1_000_000
	capexThresholdUSD       = 5_000_000
	fullLiabilityCapPercent = 100
	maxDurationYears        = 3
	subcontractingThreshold = 30
)

// Trigger 风险触发器
// 系统触发器 (t1-t5) 由引擎根据合同字段计算,手动触发器 (t6+) 由提交人自行申报
type Trigger struct {
	ID          string `json:"id"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Triggered   bool   `json:"triggered"`
}

// Input 风险评估输入
// 仅包含规则所需的合同字段,金额为美元口径
type Input struct {
	ContractType          string
	Amount                float64
	LiabilityCapPercent   float64
	StartDate             time.Time
	EndDate               time.Time
	IsSubcontracting      bool
	SubcontractingPercent float64
}

// Evaluation 风险评估结果
type Evaluation struct {
	IsHighRisk bool      `json:"is_high_risk"`
	Triggers   []Trigger `json:"triggers"`
}

// systemTriggerIDs 系统触发器 ID 集合
var systemTriggerIDs = map[string]bool{
	"t1": true,
	"t2": true,
	"t3": true,
	"t4": true,
	"t5": true,
}

// SystemTriggers 返回系统触发器模板的全新副本,全部未触发
func SystemTriggers() []Trigger {
	return []Trigger{
		{ID: "t1", Category: CategoryFinancial, Description: "OPEX spend above USD 1,000,000"},
		{ID: "t2", Category: CategoryFinancial, Description: "CAPEX spend above USD 5,000,000"},
		{ID: "t3", Category: CategoryLegal, Description: "Liability cap below 100% of contract value"},
		{ID: "t4", Category: CategoryOperational, Description: "Contract duration above 3 years"},
		{ID: "t5", Category: CategoryThirdParty, Description: "Subcontracted share above 30%"},
	}
}

// IsSystemTriggerID 判断是否为系统触发器 ID
// 系统触发器不允许调用方直接设置
func IsSystemTriggerID(id string) bool {
	return systemTriggerIDs[id]
}

// IsValidContractType 判断合同类型是否合法
func IsValidContractType(t string) bool {
	return t == ContractTypeOPEX || t == ContractTypeCAPEX || t == ContractTypeMixed
}

// Evaluate 评估合同风险
// 纯函数: 相同输入总是产生相同输出,不读写任何外部状态,永不失败。
// 系统触发器 t1-t5 根据输入字段重新计算;手动触发器原样保留(系统 ID 除外)。
// isHighRisk 为所有触发器的逻辑或。
func Evaluate(in Input, manual []Trigger) Evaluation {
	triggers := SystemTriggers()

	// t1: OPEX/MIXED 且金额超过 1M USD
	if (in.ContractType == ContractTypeOPEX || in.ContractType == ContractTypeMixed) && in.Amount > opexThresholdUSD {
		triggers[0].Triggered = true
	}

	// t2: CAPEX/MIXED 且金额超过 5M USD
	if (in.ContractType == ContractTypeCAPEX || in.ContractType == ContractTypeMixed) && in.Amount > capexThresholdUSD {
		triggers[1].Triggered = true
	}

	// t3: 责任上限低于合同金额的 100%
	if in.LiabilityCapPercent < fullLiabilityCapPercent {
		triggers[2].Triggered = true
	}

	// t4: 合同周期超过 3 年
	// 按自然日差值除以固定的 365.0 计算,不处理闰年。
	// 这是既有口径: 改为日历年语义会改变哪些合同被标记为高风险。
	days := in.EndDate.Sub(in.StartDate).Hours() / 24
	if days/365.0 > maxDurationYears {
		triggers[3].Triggered = true
	}

	// t5: 分包比例超过 30%
	if in.IsSubcontracting && in.SubcontractingPercent > subcontractingThreshold {
		triggers[4].Triggered = true
	}

	// 合并手动触发器,保留调用方提供的布尔值
	for _, m := range manual {
		if IsSystemTriggerID(m.ID) {
			continue
		}
		triggers = append(triggers, m)
	}

	high := false
	for _, t := range triggers {
		if t.Triggered {
			high = true
			break
		}
	}

	return Evaluation{IsHighRisk: high, Triggers: triggers}
}
