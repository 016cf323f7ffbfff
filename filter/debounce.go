package filter

import (
	"sync"
	"time"
)

// DefaultSearchDebounce 搜索输入的默认防抖时长
const DefaultSearchDebounce = 300 * time.Millisecond

// Debouncer 在最后一次调用后静默 duration 才执行函数，新的调用会取代尚未执行的调用
type Debouncer struct {
	mu       sync.Mutex
	timer    *time.Timer
	seq      uint64
	duration time.Duration
}

// NewDebouncer 创建防抖器
func NewDebouncer(duration time.Duration) *Debouncer {
	return &Debouncer{
		duration: duration,
	}
}

// Debounce 重新计时，到期后执行 fn
func (d *Debouncer) Debounce(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}

	// 已触发但被取代的计时器通过序号丢弃
	d.seq++
	seq := d.seq
	d.timer = time.AfterFunc(d.duration, func() {
		d.mu.Lock()
		current := seq == d.seq
		if current {
			d.timer = nil
		}
		d.mu.Unlock()

		if current {
			fn()
		}
	})
}

// Cancel 取消尚未执行的调用
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.seq++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Pending 是否有等待执行的调用
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}
