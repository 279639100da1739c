// Copyright 2020 Insolar Network Ltd.
// All rights reserved.
// This material is licensed under the Insolar License version 1.0,
// available at https://github.com/insolar/assured-ledger/blob/master/LICENSE.md.

package configuration

// QuorumScheme selects a mst.CompletionPolicy implementation (spec §6).
type QuorumScheme string

const (
	QuorumSchemeMOfN             QuorumScheme = "m_of_n"
	QuorumSchemeThresholdWeighted QuorumScheme = "threshold_weighted"
)

// MST holds the options spec §6 enumerates for the MST subsystem.
type MST struct {
	QuorumScheme       QuorumScheme
	ExpiryGraceMillis  int64
	GossipPeriodMillis int
	MaxInflightBatches int // 0 means unbounded
}

// NewMST creates default MST configuration: m-of-n quorum, no clock-skew
// grace, a one-second gossip period (spec §6's suggested eraseByTime
// cadence doubles as a sane gossip default), unbounded in-flight batches.
func NewMST() MST {
	return MST{
		QuorumScheme:       QuorumSchemeMOfN,
		ExpiryGraceMillis:  0,
		GossipPeriodMillis: 1000,
		MaxInflightBatches: 0,
	}
}
