package filter

import "time"

// DateLayout 日期输入框使用的格式
const DateLayout = "2006-01-02"

// StartOfWeek 返回 ref 所在周的第一天零点（周日为一周开始），保留 ref 的时区
func StartOfWeek(ref time.Time) time.Time {
	offset := int(ref.Weekday() - time.Sunday)
	return time.Date(ref.Year(), ref.Month(), ref.Day()-offset, 0, 0, 0, 0, ref.Location())
}

// StartOfDay 返回 t 当天零点
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// ISODateOnly 按 t 自身时区格式化为 YYYY-MM-DD，不转换为 UTC
func ISODateOnly(t time.Time) string {
	return t.Format(DateLayout)
}
