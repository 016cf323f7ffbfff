package filter

// Normalize 将草稿转换为规范化筛选条件。
// 跟进状态展开为两个相互独立的布尔条件，空字符串和空集合直接丢弃。
func Normalize(d Draft) Canonical {
	c := Canonical{
		Search:          d.Search,
		InteractionType: cloneNonEmpty(d.InteractionType),
		Priority:        cloneNonEmpty(d.Priority),
		DateFrom:        d.DateFrom,
		DateTo:          d.DateTo,
		HasContact:      d.HasContact,
		HasOpportunity:  d.HasOpportunity,
		CreatedBy:       d.CreatedBy,
	}

	switch d.FollowUpStatus {
	case FollowUpNeeded:
		c.FollowUpNeeded = true
	case FollowUpOverdue:
		c.FollowUpOverdue = true
	}

	return c
}

// Denormalize 用外部传入的规范化条件重建草稿，缺失字段重置为空值。
// 两个跟进条件同时为 true 时以 overdue 为准。
func Denormalize(c Canonical) Draft {
	d := Draft{
		Search:          c.Search,
		InteractionType: cloneNonEmpty(c.InteractionType),
		Priority:        cloneNonEmpty(c.Priority),
		DateFrom:        c.DateFrom,
		DateTo:          c.DateTo,
		HasContact:      c.HasContact,
		HasOpportunity:  c.HasOpportunity,
		CreatedBy:       c.CreatedBy,
	}

	switch {
	case c.FollowUpOverdue:
		d.FollowUpStatus = FollowUpOverdue
	case c.FollowUpNeeded:
		d.FollowUpStatus = FollowUpNeeded
	}

	return d
}

func cloneNonEmpty(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, len(values))
	copy(out, values)
	return out
}
