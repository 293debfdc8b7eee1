package utils

import (
	"errors"
	"html"
	"regexp"
	"strings"
	"unicode"
)

var (
	// ErrEmptyID ID 为空
	ErrEmptyID = errors.New("ID is empty")
	// ErrInvalidIDFormat ID 格式非法
	ErrInvalidIDFormat = errors.New("ID contains invalid characters")
	// ErrIDTooLong ID 超长
	ErrIDTooLong = errors.New("ID exceeds 64 characters")
	// ErrPercentOutOfRange 百分比超出 [0,100]
	ErrPercentOutOfRange = errors.New("percent value must be within [0,100]")
)

var idPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// ValidateID 验证资源 ID 格式
// 只允许字母、数字、连字符、下划线,最长 64 字符
func ValidateID(id string) error {
	if id == "" {
		return ErrEmptyID
	}
	if !idPattern.MatchString(id) {
		return ErrInvalidIDFormat
	}
	if len(id) > 64 {
		return ErrIDTooLong
	}
	return nil
}

// ValidatePercent 验证百分比字段
func ValidatePercent(v float64) error {
	if v < 0 || v > 100 {
		return ErrPercentOutOfRange
	}
	return nil
}

// SanitizeString 清理字符串,转义 HTML 并移除控制字符
func SanitizeString(input string) string {
	sanitized := html.EscapeString(input)

	var result strings.Builder
	for _, r := range sanitized {
		if unicode.IsControl(r) && r != '\n' && r != '\t' {
			continue
		}
		result.WriteRune(r)
	}

	return result.String()
}

// IsBlank 判断文本是否为空或仅含空白
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
