// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package browse

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	activeSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "photodir_browse_sessions_active",
		Help: "The number of live browse sessions",
	})
	loadMoreEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "photodir_browse_load_more_total",
		Help: "Load-more transitions by event (started, completed, cancelled)",
	}, []string{"event"})
	recomputeTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "photodir_browse_recomputes_total",
		Help: "Filter/sort recomputations across browse sessions",
	})
	sessionEvictions = promauto.NewCounter(prometheus.CounterOpts{
		Name: "photodir_browse_sessions_evicted_total",
		Help: "Sessions closed by the idle janitor",
	})
)
