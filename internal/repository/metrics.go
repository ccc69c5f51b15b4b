package repository

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// storeWrites counts full-blob rewrites by outcome.
	storeWrites = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "beo_store_writes_total",
			Help: "Full-collection blob writes by store and result",
		},
		[]string{"store", "result"},
	)

	storeLoadFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "beo_store_load_failures_total",
			Help: "Blob loads that fell back to defaults because of a read or decode error",
		},
		[]string{"store"},
	)

	// storeDirty is 1 while in-memory state is ahead of the persisted blob.
	storeDirty = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "beo_store_dirty",
			Help: "Whether the in-memory state has diverged from the persisted blob",
		},
		[]string{"store"},
	)
)
