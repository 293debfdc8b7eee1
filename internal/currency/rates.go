// Package currency 提供静态美元汇率表
// 汇率仅用于展示口径换算,不是设计关注点;风险规则始终以美元金额为准
package currency

import "sort"

// usdRates 各币种兑美元的静态汇率
var usdRates = map[string]float64{
	"USD": 1.0,
	"EUR": 1.08,
	"GBP": 1.27,
	"BRL": 0.20,
	"XAF": 0.0016,
}

// Rate 查询币种兑美元汇率
func Rate(code string) (float64, bool) {
	rate, ok := usdRates[code]
	return rate, ok
}

// IsSupported 判断币种是否受支持
func IsSupported(code string) bool {
	_, ok := usdRates[code]
	return ok
}

// Codes 返回受支持的币种代码,按字典序
func Codes() []string {
	codes := make([]string, 0, len(usdRates))
	for code := range usdRates {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Rates 返回汇率表副本
func Rates() map[string]float64 {
	out := make(map[string]float64, len(usdRates))
	for code, rate := range usdRates {
		out[code] = rate
	}
	return out
}
