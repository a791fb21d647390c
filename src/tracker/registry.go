package tracker

import (
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/aum7/aumchi/src/models"
	"github.com/aum7/aumchi/src/trailing"
)

// Config selects registry behavior that the cbot exposed as inputs.
type Config struct {
	// TriggerOrderOnce latches a line inert after its first firing.
	TriggerOrderOnce bool
	// EnableCloseOrders toggles the close-intent grammar. When false a
	// close comment resolves to no intent, so the line is only tracked if
	// it also trails.
	EnableCloseOrders bool
}

// Status is the tuple pushed to the UI collaborator after any registry
// mutation.
type Status struct {
	TradingEnabled bool
	OrderType      *models.OrderType
	TrailType      *models.OrderType
}

// Registry owns the tracked signal lines, keyed by annotation name. Safe
// for concurrent use: an internal mutex serializes upserts, removals and
// tick evaluation, so bus handlers may run on their publishers' goroutines.
// Collaborator callbacks are always invoked with the mutex released.
type Registry struct {
	cfg   Config
	chart models.Chart
	trail *trailing.Engine

	isTradingEnabled func() bool

	mu    sync.Mutex
	specs map[string]*models.TrackedLine
	order []string

	alertFn  func(models.Alert)
	statusFn func(Status)
}

func NewRegistry(cfg Config, chart models.Chart, trail *trailing.Engine, isTradingEnabled func() bool) *Registry {
	if isTradingEnabled == nil {
		isTradingEnabled = func() bool { return false }
	}

	return &Registry{
		cfg:              cfg,
		chart:            chart,
		trail:            trail,
		isTradingEnabled: isTradingEnabled,
		specs:            make(map[string]*models.TrackedLine),
	}
}

// SetAlertFunc installs the alert-sound collaborator callback.
func (r *Registry) SetAlertFunc(fn func(models.Alert)) {
	r.alertFn = fn
}

// SetStatusFunc installs the UI collaborator callback.
func (r *Registry) SetStatusFunc(fn func(Status)) {
	r.statusFn = fn
}

// Scan bulk-upserts the annotations present at startup.
func (r *Registry) Scan(lines []models.TrendLine) {
	for _, line := range lines {
		r.OnLineUpdated(line)
	}
	r.pushStatus()
}

// OnLineUpdated reconciles one annotation add/change notification. A
// comment that no longer parses to a trackable state untracks the line.
func (r *Registry) OnLineUpdated(line models.TrendLine) {
	orderType, isTrail, isTriggered := models.ParseComment(line.Comment)
	if orderType.IsClose() && !r.cfg.EnableCloseOrders {
		orderType = models.OrderTypeNone
	}

	if orderType == models.OrderTypeNone && !isTrail {
		r.OnLineRemoved(line.Name)
		return
	}

	r.mu.Lock()
	spec, ok := r.specs[line.Name]
	if !ok {
		spec = &models.TrackedLine{}
		r.specs[line.Name] = spec
		r.order = append(r.order, line.Name)
		log.Infof("Registry.OnLineUpdated: new order t-line '%s' with comment '%s'", line.Name, line.Comment)
	} else if spec.Comment != line.Comment {
		log.Infof("Registry.OnLineUpdated: line '%s' comment changed to '%s'", line.Name, line.Comment)
	}

	spec.Line = line
	spec.Comment = line.Comment
	spec.IsTrail = isTrail
	spec.IsTriggered = isTriggered
	spec.OrderType = orderType
	// hit lines stay tracked for trailing but are inert for orders
	if isTriggered {
		spec.OrderType = models.OrderTypeNone
	}
	r.mu.Unlock()

	if isTriggered {
		r.chart.SetLineColor(line.Name, models.LineColorInactive)
	} else if color, ok := models.ColorForOrderType(orderType); ok {
		r.chart.SetLineColor(line.Name, color)
	}

	r.pushStatus()
}

// OnLineRemoved drops a tracked line. Safe to call for names never tracked.
func (r *Registry) OnLineRemoved(name string) {
	if !r.removeSpec(name) {
		return
	}

	log.Infof("Registry.OnLineRemoved: removed order line '%s' from tracked lines", name)
	r.pushStatus()
}

func (r *Registry) removeSpec(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.removeSpecLocked(name)
}

func (r *Registry) removeSpecLocked(name string) bool {
	if _, ok := r.specs[name]; !ok {
		return false
	}

	delete(r.specs, name)
	for i, n := range r.order {
		if n == name {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true
}

// MarkTriggered latches a line inert after a successfully placed order.
// Idempotent: a no-op for unknown or already-triggered lines.
func (r *Registry) MarkTriggered(name string) {
	r.mu.Lock()
	spec, ok := r.specs[name]
	if !ok || spec.IsTriggered {
		r.mu.Unlock()
		return
	}
	r.latchLocked(spec)
	r.mu.Unlock()

	log.Infof("Registry.MarkTriggered: t-line '%s' was triggered : marked as 'hit'", name)
	r.pushStatus()
}

// latchLocked appends the hit marker and clears the intent. Callers hold mu.
func (r *Registry) latchLocked(spec *models.TrackedLine) {
	spec.Comment += " hit"
	spec.IsTriggered = true
	spec.OrderType = models.OrderTypeNone

	r.chart.AppendComment(spec.Line.Name, " hit")
	r.chart.SetLineColor(spec.Line.Name, models.LineColorInactive)
}

// Tick runs one evaluation pass: trailing lines are ratcheted, order-bearing
// lines are checked for crossings. The whole pass holds the registry lock so
// a concurrent annotation update never observes or tears a half-evaluated
// spec. Returned signals preserve insertion order.
func (r *Registry) Tick(snap models.MarketSnapshot) []models.Signal {
	r.mu.Lock()

	names := make([]string, len(r.order))
	copy(names, r.order)

	var signals []models.Signal
	var alerts []models.Alert
	statusChanged := false

	for _, name := range names {
		spec, ok := r.specs[name]
		if !ok {
			continue
		}

		if spec.IsTrail {
			if r.trail.Update(spec, snap) {
				r.chart.MoveLine(name, spec.Line.Time1, spec.Line.Y1, spec.Line.Time2, spec.Line.Y2)
			}
		}

		if spec.OrderType == models.OrderTypeNone {
			continue
		}

		signal, alert, changed := r.checkLineCrossLocked(spec, snap)
		if signal != nil {
			signals = append(signals, *signal)
		}
		if alert != nil {
			alerts = append(alerts, *alert)
		}
		statusChanged = statusChanged || changed
	}
	r.mu.Unlock()

	for _, alert := range alerts {
		r.dispatchAlert(alert)
	}
	if statusChanged {
		r.pushStatus()
	}

	return signals
}

// ActiveOrderType returns the first non-trailing tracked intent, or nil.
func (r *Registry) ActiveOrderType() *models.OrderType {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, name := range r.order {
		spec := r.specs[name]
		if spec.OrderType != models.OrderTypeNone && !spec.IsTrail {
			orderType := spec.OrderType
			return &orderType
		}
	}
	return nil
}

// ActiveTrailType returns the first trailing tracked intent, or nil.
func (r *Registry) ActiveTrailType() *models.OrderType {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, name := range r.order {
		spec := r.specs[name]
		if spec.IsTrail && spec.OrderType != models.OrderTypeNone {
			orderType := spec.OrderType
			return &orderType
		}
	}
	return nil
}

// TrackedLine returns a copy of the spec for name, if tracked.
func (r *Registry) TrackedLine(name string) (models.TrackedLine, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	spec, ok := r.specs[name]
	if !ok {
		return models.TrackedLine{}, false
	}
	return *spec, true
}

func (r *Registry) pushStatus() {
	if r.statusFn == nil {
		return
	}

	r.statusFn(Status{
		TradingEnabled: r.isTradingEnabled(),
		OrderType:      r.ActiveOrderType(),
		TrailType:      r.ActiveTrailType(),
	})
}
