// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package photographer

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	searchTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "photodir_searches_total",
		Help: "Stateless searches answered by the service",
	})
	sourceFetches = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "photodir_source_fetches_total",
		Help: "Upstream collection fetches by outcome",
	}, []string{"outcome"})
	snapshotLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "photodir_source_snapshot_lookups_total",
		Help: "Redis snapshot lookups by result (hit, miss, error)",
	}, []string{"result"})
)
