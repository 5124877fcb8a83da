package calculators

import (
	"fmt"
	"math"

	"github.com/giygas/medcalc/calculators/entities"
	"github.com/giygas/medcalc/units"
	"github.com/giygas/medcalc/validation"
)

// qtInputs checks the units and ranges of a heart rate and QT interval.
func qtInputs(p entities.QTParams) (hr, qt float64, err error) {
	if p.HeartRate == nil {
		return 0, 0, validation.Missing("heart_rate")
	}
	if p.QTInterval == nil {
		return 0, 0, validation.Missing("qt_interval")
	}
	hr, err = units.HeartRateValue(*p.HeartRate)
	if err != nil {
		return 0, 0, fmt.Errorf("heart_rate: %w", err)
	}
	qt, err = units.IntervalValue(*p.QTInterval)
	if err != nil {
		return 0, 0, fmt.Errorf("qt_interval: %w", err)
	}
	if hr <= 0 {
		return 0, 0, validation.OutOfRange("heart_rate", hr)
	}
	if qt <= 0 {
		return 0, 0, validation.OutOfRange("qt_interval", qt)
	}
	return hr, qt, nil
}

func qtcResult(e *explanation, qtc float64) entities.Result {
	e.addf("The patient's corrected QT interval (QTc) is %s msec.\n", num(qtc))
	return e.result(qtc)
}

// QTcRautaharju corrects the QT interval as QT * (120 + HR) / 180.
func QTcRautaharju(p entities.QTParams) (entities.Result, error) {
	hr, qt, err := qtInputs(p)
	if err != nil {
		return entities.Result{}, err
	}

	e := &explanation{}
	e.add("The corrected QT interval using the Rautaharju formula is computed as QTc = QT interval x (120 + HR) / 180, " +
		"where QT interval is in msec, and HR is the heart rate in beats per minute.\n")
	e.addf("The QT interval is %s msec.\n", num(qt))
	e.addf("The patient's heart rate is %s beats per minute.\n", num(hr))

	qtc := units.Round(qt * (120 + hr) / 180)
	e.addf("Hence, plugging in these values, we will get %s x (120 + %s) / 180 = %s.\n", num(qt), num(hr), num(qtc))
	return qtcResult(e, qtc), nil
}

// rrInterval narrates and returns the rounded RR interval in seconds.
func rrInterval(e *explanation, hr float64) (float64, error) {
	rr := units.Round(60 / hr)
	if rr <= 0 {
		return 0, validation.OutOfRange("heart_rate", hr)
	}
	e.addf("The RR interval is computed as 60/(heart rate), and so the RR interval is 60/%s = %s.\n", num(hr), num(rr))
	return rr, nil
}

// QTcBazett corrects the QT interval as QT / sqrt(RR).
func QTcBazett(p entities.QTParams) (entities.Result, error) {
	hr, qt, err := qtInputs(p)
	if err != nil {
		return entities.Result{}, err
	}

	e := &explanation{}
	e.add("The corrected QT interval using the Bazett formula is computed as QTc = QT interval / √ (RR interval), " +
		"where the QT interval is in msec, and RR interval is given as 60/(heart rate).\n")
	e.addf("The patient's heart rate is %s beats per minute.\n", num(hr))
	e.addf("The QT interval is %s msec.\n", num(qt))

	rr, err := rrInterval(e, hr)
	if err != nil {
		return entities.Result{}, err
	}
	qtc := units.Round(qt / math.Sqrt(rr))
	e.addf("Hence, plugging in these values, we will get %s/√(%s) = %s.\n", num(qt), num(rr), num(qtc))
	return qtcResult(e, qtc), nil
}

// QTcHodges corrects the QT interval as QT + 1.75 * (60/RR - 60).
func QTcHodges(p entities.QTParams) (entities.Result, error) {
	hr, qt, err := qtInputs(p)
	if err != nil {
		return entities.Result{}, err
	}

	e := &explanation{}
	e.add("The corrected QT interval using the Hodges formula is computed as QTc = QT interval + 1.75 * [(60 / RR interval) - 60], " +
		"where QT interval is in msec, and RR interval is given as 60/(heart rate).\n")
	e.addf("The patient's heart rate is %s beats per minute.\n", num(hr))
	e.addf("The QT interval is %s msec.\n", num(qt))

	rr, err := rrInterval(e, hr)
	if err != nil {
		return entities.Result{}, err
	}
	qtc := units.Round(qt + 1.75*(60/rr-60))
	e.addf("Hence, plugging in these values, we will get %s + 1.75 * [(60/%s) - 60] = %s.\n", num(qt), num(rr), num(qtc))
	return qtcResult(e, qtc), nil
}
