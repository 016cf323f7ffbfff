package controllers

import (
	"time"

	"github.com/BerniceZTT/crm_interactions/config"
)

var (
	// 筛选面板可选项
	catalog = config.DefaultOptions()
	// "今天"所在时区
	location = time.Local
	// 测试中替换为固定时间
	nowFunc = time.Now
)

// Configure 注入可选项和时区，在注册路由前调用
func Configure(opts *config.Options, loc *time.Location) {
	if opts != nil {
		catalog = opts
	}
	if loc != nil {
		location = loc
	}
}

// today 按配置时区返回当前时间
func today() time.Time {
	return nowFunc().In(location)
}
