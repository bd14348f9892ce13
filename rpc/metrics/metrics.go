// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package metrics - prometheus counters for rpc calls
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/bitmark-inc/kittiesd/fault"
)

const namespace = "kittiesd"

// results of one call
const (
	ResultOk         = "ok"
	ResultBalance    = "balance"
	ResultExists     = "exists"
	ResultInvalid    = "invalid"
	ResultLength     = "length"
	ResultNotFound   = "not_found"
	ResultPermission = "permission"
	ResultProcess    = "process"
	ResultRecord     = "record"
	ResultOther      = "other"
)

// Recorder - per method call counts and latencies
type Recorder struct {
	calls    *prometheus.CounterVec
	duration *prometheus.HistogramVec
	kitties  prometheus.Gauge
}

// New - create and register the collectors
func New(registerer prometheus.Registerer) (*Recorder, error) {
	r := &Recorder{
		calls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "rpc",
			Name:      "calls_total",
			Help:      "rpc calls by method and result",
		}, []string{"method", "result"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "rpc",
			Name:      "duration_seconds",
			Help:      "rpc call latency",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),
		kitties: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "kitties",
			Help:      "number of kitties minted",
		}),
	}

	for _, c := range []prometheus.Collector{r.calls, r.duration, r.kitties} {
		if err := registerer.Register(c); nil != err {
			return nil, err
		}
	}
	return r, nil
}

// Observe - record one finished call
func (r *Recorder) Observe(method string, start time.Time, err error) {
	if nil == r {
		return
	}
	r.calls.WithLabelValues(method, Result(err)).Inc()
	r.duration.WithLabelValues(method).Observe(time.Since(start).Seconds())
}

// SetKitties - current kitty count
func (r *Recorder) SetKitties(n uint64) {
	if nil == r {
		return
	}
	r.kitties.Set(float64(n))
}

// Result - label for an error class
func Result(err error) string {
	switch {
	case nil == err:
		return ResultOk
	case fault.IsErrBalance(err):
		return ResultBalance
	case fault.IsErrExists(err):
		return ResultExists
	case fault.IsErrInvalid(err):
		return ResultInvalid
	case fault.IsErrLength(err):
		return ResultLength
	case fault.IsErrNotFound(err):
		return ResultNotFound
	case fault.IsErrPermission(err):
		return ResultPermission
	case fault.IsErrProcess(err):
		return ResultProcess
	case fault.IsErrRecord(err):
		return ResultRecord
	default:
		return ResultOther
	}
}
