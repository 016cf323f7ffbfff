package filter

// ActiveCount 统计草稿中有约束的维度数量。
// date_from 与 date_to 分别计数，完整日期区间计为 2。
func ActiveCount(d Draft) int {
	count := 0
	for _, set := range []bool{
		d.Search != "",
		len(d.InteractionType) > 0,
		len(d.Priority) > 0,
		d.DateFrom != "",
		d.DateTo != "",
		d.FollowUpStatus != FollowUpNone,
		d.HasContact,
		d.HasOpportunity,
		d.CreatedBy != "",
	} {
		if set {
			count++
		}
	}
	return count
}
