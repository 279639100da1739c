// Copyright 2020 Insolar Network Ltd.
// All rights reserved.
// This material is licensed under the Insolar License version 1.0,
// available at https://github.com/insolar/assured-ledger/blob/master/LICENSE.md.

package configuration

// Metrics holds configuration for the opencensus Prometheus exporter.
type Metrics struct {
	ListenAddress string
	Namespace     string
}

func NewMetrics() Metrics {
	return Metrics{
		ListenAddress: ":8888",
		Namespace:     "irohad",
	}
}
