package lattice

import (
	"fmt"
	"strings"
	"time"
)

const isoLayout = "2006-01-02"

// dateLayouts 支持的日期格式: 美式 M/D/YYYY 和 ISO
var dateLayouts = []string{"1/2/2006", isoLayout}

// DateParseError 日期字符串无法解析
type DateParseError struct {
	Field string
	Value string
	Err   error
}

func (e *DateParseError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("parse date %q: %v", e.Value, e.Err)
	}
	return fmt.Sprintf("parse %s %q: %v", e.Field, e.Value, e.Err)
}

func (e *DateParseError) Unwrap() error { return e.Err }

// ParseDate 解析日历日期，结果为当天 UTC 零点
func ParseDate(s string) (time.Time, error) {
	value := strings.TrimSpace(s)
	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, &DateParseError{Value: s, Err: lastErr}
}

// FormatDate ISO 格式输出
func FormatDate(t time.Time) string {
	return t.Format(isoLayout)
}

// truncateDay 只保留日历日期
func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// daysBetween 两个零点日期之间的整天数
func daysBetween(from, to time.Time) int {
	return int(to.Sub(from) / (24 * time.Hour))
}
