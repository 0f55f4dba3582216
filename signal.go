package stockwatch

import (
	"fmt"

	"github.com/dipwatch/stockwatch/date"
)

// Status classifies a record's tracking state.
type Status int

const (
	// NoData means the record has no observations yet.
	NoData Status = iota
	// Observing means the drawdown has not reached the target drop.
	Observing
	// Buy means the cumulative drawdown has reached or exceeded the target
	// drop: the symbol is a buy candidate.
	Buy
)

// String returns the report label for the status.
func (s Status) String() string {
	switch s {
	case NoData:
		return "no data"
	case Buy:
		return "BUY"
	default:
		return "observing"
	}
}

// Evaluation is the signal evaluator's verdict on one record. It is derived
// fresh from the record and never persisted.
type Evaluation struct {
	Status      Status
	On          date.Date // date of the latest observation
	Price       float64   // latest closing price
	ChangePct   Percent   // drawdown from baseline, negative when price fell
	TargetPrice float64
	DistancePct Percent // signed distance of the current price to the target price, one decimal
}

// targetPrice computes round(baseline*(1-drop/100), 2).
func targetPrice(baseline float64, drop Percent) float64 {
	return round2(baseline * (1 - float64(drop)/100))
}

// Evaluate classifies the record. With no observations the status is NoData.
// Otherwise the latest observation decides: a change of -targetDrop or lower
// is a Buy (the boundary is inclusive), anything above it is Observing.
//
// It fails with ErrDivisionUndefined if the computed target price is zero,
// which a validated watch list (target drop below 100%) makes impossible.
func (r *Record) Evaluate() (Evaluation, error) {
	latest, ok := r.Latest()
	if !ok {
		return Evaluation{Status: NoData}, nil
	}

	target := targetPrice(r.baseline, r.targetDrop)
	if target == 0 {
		return Evaluation{}, fmt.Errorf("%w: target price for %q is zero (target drop %v)", ErrDivisionUndefined, r.symbol, r.targetDrop)
	}

	ev := Evaluation{
		Status:      Observing,
		On:          latest.On,
		Price:       latest.Price,
		ChangePct:   latest.ChangePct,
		TargetPrice: target,
		DistancePct: Percent(round1((latest.Price - target) / target * 100)),
	}
	if latest.ChangePct <= -r.targetDrop {
		ev.Status = Buy
	}
	return ev, nil
}
