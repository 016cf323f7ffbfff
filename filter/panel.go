package filter

import (
	"reflect"
	"sync"
	"time"

	"github.com/BerniceZTT/crm_interactions/metrics"
)

// PanelOptions 筛选面板配置
type PanelOptions struct {
	// Clock 提供"今天"，默认 time.Now
	Clock func() time.Time
	// Debounce 搜索防抖时长，默认 DefaultSearchDebounce
	Debounce time.Duration
	// OnChange 每次规范化后触发
	OnChange func(Canonical)
	// OnClear 清空全部筛选后触发
	OnClear func()
}

// Panel 持有一个筛选草稿，处理输入事件并对外发出 change/clear 事件。
// 回调在调用方的 goroutine 或防抖计时器的 goroutine 中执行，回调内不能调用 Close。
type Panel struct {
	mu     sync.Mutex
	emitMu sync.Mutex

	draft  Draft
	synced Canonical
	closed bool

	// searchGen 每次草稿被整体替换或立即发出时递增，过期的防抖回调据此丢弃
	searchGen uint64

	clock    func() time.Time
	search   *Debouncer
	onChange func(Canonical)
	onClear  func()
}

// NewPanel 创建空草稿的筛选面板
func NewPanel(opts PanelOptions) *Panel {
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultSearchDebounce
	}
	return &Panel{
		clock:    opts.Clock,
		search:   NewDebouncer(opts.Debounce),
		onChange: opts.OnChange,
		onClear:  opts.OnClear,
	}
}

// SetSearch 更新搜索文本，静默期结束后才发出 change
func (p *Panel) SetSearch(text string) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.draft.Search = text
	p.searchGen++
	gen := p.searchGen
	p.mu.Unlock()

	p.search.Debounce(func() { p.emitSearchChange(gen) })
}

// Update 修改草稿（勾选、下拉、日期等输入）并立即发出 change
func (p *Panel) Update(mutate func(d *Draft)) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	mutate(&p.draft)
	p.searchGen++
	p.mu.Unlock()

	// 本次发出的条件已包含最新搜索文本
	p.search.Cancel()
	p.emitChange()
}

// ApplyQuickFilter 应用快捷筛选，未知标识不修改草稿也不发出事件
func (p *Panel) ApplyQuickFilter(id QuickFilterID) bool {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return false
	}
	next, ok := ApplyQuickFilter(p.draft, id, p.clock())
	if ok {
		p.draft = next
		p.searchGen++
	}
	p.mu.Unlock()

	if !ok {
		return false
	}
	p.search.Cancel()
	p.emitChange()
	return true
}

// Clear 重置为空草稿并发出 clear
func (p *Panel) Clear() {
	p.search.Cancel()

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.draft = Draft{}
	p.searchGen++
	p.mu.Unlock()

	p.emitMu.Lock()
	defer p.emitMu.Unlock()
	if p.isClosed() {
		return
	}
	metrics.FilterEmissions.WithLabelValues("clear").Inc()
	if p.onClear != nil {
		p.onClear()
	}
}

// Sync 外部已应用的筛选条件变化时整体替换本地草稿，相同条件不做处理。
// 返回草稿是否被替换。
func (p *Panel) Sync(external Canonical) bool {
	incoming := Normalize(Denormalize(external))

	p.mu.Lock()
	if p.closed || reflect.DeepEqual(incoming, p.synced) {
		p.mu.Unlock()
		return false
	}
	p.synced = incoming
	p.draft = Denormalize(incoming)
	p.searchGen++
	p.mu.Unlock()

	p.search.Cancel()
	return true
}

// Close 销毁面板，取消等待中的搜索，之后不再发出任何事件
func (p *Panel) Close() {
	p.mu.Lock()
	p.closed = true
	p.searchGen++
	p.mu.Unlock()

	p.search.Cancel()

	// 等待正在执行的回调结束
	p.emitMu.Lock()
	p.emitMu.Unlock()
}

// Today 面板时钟给出的当前时间
func (p *Panel) Today() time.Time {
	return p.clock()
}

// Draft 当前草稿的副本
func (p *Panel) Draft() Draft {
	p.mu.Lock()
	defer p.mu.Unlock()
	return copyDraft(p.draft)
}

// Canonical 当前草稿的规范化结果
func (p *Panel) Canonical() Canonical {
	p.mu.Lock()
	defer p.mu.Unlock()
	return Normalize(p.draft)
}

// ActiveCount 当前激活的筛选维度数
func (p *Panel) ActiveCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return ActiveCount(p.draft)
}

// ActiveQuickFilters 当前激活的快捷筛选
func (p *Panel) ActiveQuickFilters() []QuickFilterID {
	p.mu.Lock()
	defer p.mu.Unlock()
	return ActiveQuickFilters(p.draft, p.clock())
}

func (p *Panel) emitChange() {
	p.emit(func() bool { return true })
}

// emitSearchChange 防抖到期后发出 change。
// 计时器触发后若草稿已被 Clear、Sync 或其他立即发出的输入取代，则丢弃。
func (p *Panel) emitSearchChange(gen uint64) {
	p.emit(func() bool { return gen == p.searchGen })
}

// emit 在 emitMu 下检查 current（持有 mu 时调用）并发出 change
func (p *Panel) emit(current func() bool) {
	p.emitMu.Lock()
	defer p.emitMu.Unlock()

	p.mu.Lock()
	if p.closed || !current() {
		p.mu.Unlock()
		return
	}
	c := Normalize(p.draft)
	p.mu.Unlock()

	metrics.FilterEmissions.WithLabelValues("change").Inc()
	if p.onChange != nil {
		p.onChange(c)
	}
}

func (p *Panel) isClosed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed
}

func copyDraft(d Draft) Draft {
	d.InteractionType = cloneNonEmpty(d.InteractionType)
	d.Priority = cloneNonEmpty(d.Priority)
	return d
}
