// Copyright 2020 Insolar Network Ltd.
// All rights reserved.
// This material is licensed under the Insolar License version 1.0,
// available at https://github.com/insolar/assured-ledger/blob/master/LICENSE.md.

package mst

import (
	"context"

	"go.opencensus.io/stats"
	"go.opencensus.io/stats/view"
)

// Metrics named per spec §6, registered the way network/gateway/metrics.go
// registers opencensus views: a package-level measure plus a view.View
// wired up in init().
var (
	statSignaturesRejected = stats.Int64(
		"mst_signatures_rejected_total",
		"signatures dropped for failing verification or duplicating a public key",
		stats.UnitDimensionless,
	)
	statBatchesCompleted = stats.Int64(
		"mst_batches_completed_total",
		"batches that reached quorum and were handed to the completed sink",
		stats.UnitDimensionless,
	)
	statBatchesExpired = stats.Int64(
		"mst_batches_expired_total",
		"batches removed by eraseByTime before reaching quorum",
		stats.UnitDimensionless,
	)
	statInflightBatches = stats.Int64(
		"mst_inflight_batches",
		"batches currently stored, incomplete and unexpired",
		stats.UnitDimensionless,
	)
)

func init() {
	err := view.Register(
		&view.View{Name: statSignaturesRejected.Name(), Description: statSignaturesRejected.Description(), Measure: statSignaturesRejected, Aggregation: view.Count()},
		&view.View{Name: statBatchesCompleted.Name(), Description: statBatchesCompleted.Description(), Measure: statBatchesCompleted, Aggregation: view.Count()},
		&view.View{Name: statBatchesExpired.Name(), Description: statBatchesExpired.Description(), Measure: statBatchesExpired, Aggregation: view.Count()},
		&view.View{Name: statInflightBatches.Name(), Description: statInflightBatches.Description(), Measure: statInflightBatches, Aggregation: view.LastValue()},
	)
	if err != nil {
		panic(err)
	}
}

var metricsCtx = context.Background()

func recordSignatureRejected() {
	stats.Record(metricsCtx, statSignaturesRejected.M(1))
}

func recordBatchCompleted() {
	stats.Record(metricsCtx, statBatchesCompleted.M(1))
}

func recordBatchExpired() {
	stats.Record(metricsCtx, statBatchesExpired.M(1))
}

func recordInflight(n int) {
	stats.Record(metricsCtx, statInflightBatches.M(int64(n)))
}
