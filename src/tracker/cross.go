package tracker

import (
	log "github.com/sirupsen/logrus"

	"github.com/aum7/aumchi/src/models"
)

// checkLineCrossLocked evaluates one order-bearing spec against the current
// tick. Expired lines are untracked before any price comparison. At most one
// predicate applies per spec. Callers hold mu; alerts are returned instead
// of dispatched so the collaborator callback runs outside the lock, and the
// third return reports whether the status tuple needs a push.
func (r *Registry) checkLineCrossLocked(spec *models.TrackedLine, snap models.MarketSnapshot) (*models.Signal, *models.Alert, bool) {
	if r.cfg.TriggerOrderOnce && spec.IsTriggered {
		return nil, nil, false
	}

	name := spec.Line.Name

	// a line whose end time is in the past no longer carries an order
	if !snap.LastBarTime.Before(spec.Line.Time2) {
		r.removeSpecLocked(name)
		log.Infof("Registry.checkLineCross: t-line '%s' expired at %v : removed from tracked lines", name, spec.Line.Time2)
		return nil, nil, true
	}

	bid := snap.Tick.Bid
	ask := snap.Tick.Ask
	linePrice := spec.Line.CalculateY(snap.LastBarTime)

	var signal *models.Signal
	var alert *models.Alert

	switch spec.OrderType {
	case models.OrderTypeBuy:
		if ask > linePrice {
			signal = &models.Signal{Kind: models.BuySignal, Price: ask, LineName: name}
			log.Infof("Registry.checkLineCross: BUY hit for line '%s' @ ask %v", name, ask)
		}
	case models.OrderTypeAlertBuy:
		if ask > linePrice {
			alert = &models.Alert{OrderType: spec.OrderType, Price: ask, LineName: name}
			log.Infof("Registry.checkLineCross: ALERT BUY hit for line '%s' @ ask %v", name, ask)
		}
	case models.OrderTypeSell:
		if bid < linePrice {
			signal = &models.Signal{Kind: models.SellSignal, Price: bid, LineName: name}
			log.Infof("Registry.checkLineCross: SELL hit for line '%s' @ bid %v", name, bid)
		}
	case models.OrderTypeAlertSell:
		if bid < linePrice {
			alert = &models.Alert{OrderType: spec.OrderType, Price: bid, LineName: name}
			log.Infof("Registry.checkLineCross: ALERT SELL hit for line '%s' @ bid %v", name, bid)
		}
	case models.OrderTypeCloseBuy:
		if bid < linePrice {
			signal = &models.Signal{Kind: models.CloseBuySignal, Price: bid, LineName: name}
			log.Infof("Registry.checkLineCross: CLOSE BUY hit for line '%s' @ bid %v", name, bid)
		}
	case models.OrderTypeCloseSell:
		if ask > linePrice {
			signal = &models.Signal{Kind: models.CloseSellSignal, Price: ask, LineName: name}
			log.Infof("Registry.checkLineCross: CLOSE SELL hit for line '%s' @ ask %v", name, ask)
		}
	}

	if signal != nil && r.cfg.TriggerOrderOnce {
		r.latchLocked(spec)
		log.Infof("Registry.checkLineCross: t-line '%s' was triggered : marked as hit", name)
		return signal, nil, true
	}

	return signal, alert, false
}

func (r *Registry) dispatchAlert(alert models.Alert) {
	if r.alertFn == nil {
		return
	}
	r.alertFn(alert)
}
