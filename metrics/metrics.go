// Package metrics 服务的 Prometheus 指标
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "crm_interactions"

// Registry 独立的指标注册表，不使用全局 DefaultRegisterer
var Registry = prometheus.NewRegistry()

var (
	// HTTPRequests 按路由、方法、状态码统计请求数
	HTTPRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests processed, by route, method and status code.",
	}, []string{"route", "method", "code"})

	// HTTPDuration 请求耗时
	HTTPDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route", "method"})

	// QuickFilterApplied 快捷筛选使用次数，result 为 applied 或 ignored
	QuickFilterApplied = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "filter",
		Name:      "quick_filter_applied_total",
		Help:      "Quick filter preset applications, by preset id and result.",
	}, []string{"preset", "result"})

	// FilterEmissions 筛选面板发出的 change/clear 事件数
	FilterEmissions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "filter",
		Name:      "emissions_total",
		Help:      "Filter panel events emitted, by event name.",
	}, []string{"event"})
)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		HTTPRequests,
		HTTPDuration,
		QuickFilterApplied,
		FilterEmissions,
	)
}

// Handler 返回 /metrics 处理器
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}
