// Copyright 2020 Insolar Network Ltd.
// All rights reserved.
// This material is licensed under the Insolar License version 1.0,
// available at https://github.com/insolar/assured-ledger/blob/master/LICENSE.md.

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"contrib.go.opencensus.io/exporter/prometheus"
	"github.com/ThreeDotsLabs/watermill"
	gochannel "github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"go.opencensus.io/stats/view"

	"github.com/trabucador/iroha/configuration"
	"github.com/trabucador/iroha/cryptography"
	"github.com/trabucador/iroha/gossip"
	"github.com/trabucador/iroha/log"
	"github.com/trabucador/iroha/mst"
	"github.com/trabucador/iroha/pipeline"
)

type inputParams struct {
	configPath string
	nodeID     string
	peers      []string
}

func parseInputParams() inputParams {
	var result inputParams
	rootCmd := &cobra.Command{Use: "irohad"}
	rootCmd.Flags().StringVarP(&result.configPath, "config", "c", "", "path to config file")
	rootCmd.Flags().StringVarP(&result.nodeID, "node-id", "n", "node-1", "this node's gossip peer id")
	rootCmd.Flags().StringSliceVarP(&result.peers, "peers", "p", nil, "gossip peer ids to exchange state with")
	if err := rootCmd.Execute(); err != nil {
		fmt.Println("wrong input params:", err.Error())
	}
	return result
}

func main() {
	params := parseInputParams()

	cfg, err := configuration.Load(params.configPath)
	if err != nil {
		fmt.Println("failed to load configuration, using defaults:", err.Error())
	}

	if err := log.Configure(cfg.Log.Level, cfg.Log.Format); err != nil {
		fmt.Println("failed to configure logger:", err.Error())
	}
	logger := log.Logger()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	stopMetrics := startMetricsExporter(cfg.Metrics)
	defer stopMetrics()

	verifier, err := cryptography.GenerateSecp256k1Service()
	if err != nil {
		logger.Error().Err(err).Msg("failed to generate node key")
		os.Exit(1)
	}
	policy := newCompletionPolicy(cfg.MST)

	memStore := newMemPayloadStore()
	sinks := pipeline.Observer{
		Completed: pipeline.NewChannelSink(16),
		Expired:   pipeline.NewChannelSink(16),
	}

	state := mst.NewSyncState(policy, verifier, cfg.MST.MaxInflightBatches)
	state.SetObserver(sinks)

	transport, err := newTransport(ctx, cfg.Gossip, params.nodeID, params.peers)
	if err != nil {
		logger.Error().Err(err).Msg("failed to start gossip transport")
		os.Exit(1)
	}
	defer transport.Close()

	driver := gossip.NewDriver(transport, state, memStore, policy, verifier, gossipPeriod(cfg.MST))

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		driver.Run(ctx)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		runExpiryLoop(ctx, state, gossipPeriod(cfg.MST))
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		drainSinks(ctx, sinks, logger)
	}()

	logger.Info().Str("node_id", params.nodeID).Msg("irohad started")
	wg.Wait()
	logger.Info().Msg("irohad stopped")
}

func newCompletionPolicy(cfg configuration.MST) mst.CompletionPolicy {
	switch cfg.QuorumScheme {
	case configuration.QuorumSchemeThresholdWeighted:
		return &mst.ThresholdWeightedPolicy{GraceMillis: cfg.ExpiryGraceMillis}
	default:
		return &mst.MOfNPolicy{GraceMillis: cfg.ExpiryGraceMillis}
	}
}

func gossipPeriod(cfg configuration.MST) time.Duration {
	if cfg.GossipPeriodMillis <= 0 {
		return time.Second
	}
	return time.Duration(cfg.GossipPeriodMillis) * time.Millisecond
}

// newTransport builds the default watermill transport over an in-process
// gochannel pub/sub. A real deployment swaps gochannel for an AMQP/Kafka
// watermill driver without touching gossip.Driver. cfg is not consulted:
// gossip.NewLibp2pTransport (p2p build tag) is never selected here.
func newTransport(ctx context.Context, cfg configuration.Gossip, self string, peers []string) (gossip.PeerTransport, error) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermillLogger{})
	return gossip.NewWatermillTransport(ctx, self, peers, pubSub, pubSub)
}

func startMetricsExporter(cfg configuration.Metrics) func() {
	exporter, err := prometheus.NewExporter(prometheus.Options{Namespace: cfg.Namespace})
	if err != nil {
		log.Logger().Warn().Err(err).Msg("failed to start prometheus exporter")
		return func() {}
	}
	view.RegisterExporter(exporter)

	mux := http.NewServeMux()
	mux.Handle("/metrics", exporter)
	srv := &http.Server{Addr: cfg.ListenAddress, Handler: mux}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Logger().Warn().Err(err).Msg("metrics server stopped")
		}
	}()

	return func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}
}

func runExpiryLoop(ctx context.Context, state *mst.SyncState, period time.Duration) {
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if err := state.EraseByTime(now); err != nil {
				log.Logger().Error().Err(err).Msg("expiry sweep failed")
			}
		}
	}
}

func drainSinks(ctx context.Context, sinks pipeline.Observer, logger *zerolog.Logger) {
	completed := sinks.Completed.(*pipeline.ChannelSink).Batches()
	expired := sinks.Expired.(*pipeline.ChannelSink).Batches()

	for {
		select {
		case <-ctx.Done():
			return
		case b := <-completed:
			logger.Info().Str("batch", b.Identity().String()).Msg("batch completed")
		case b := <-expired:
			logger.Info().Str("batch", b.Identity().String()).Msg("batch expired")
		}
	}
}

// watermillLogger adapts this node's zerolog logger to watermill's
// LoggerAdapter interface, the same narrow-adapter idiom the teacher
// wraps its own logger in for third-party libraries.
type watermillLogger struct{}

func (watermillLogger) Error(msg string, err error, fields watermill.LogFields) {
	log.Logger().Error().Err(err).Fields(map[string]interface{}(fields)).Msg(msg)
}
func (watermillLogger) Info(msg string, fields watermill.LogFields) {
	log.Logger().Info().Fields(map[string]interface{}(fields)).Msg(msg)
}
func (watermillLogger) Debug(msg string, fields watermill.LogFields) {
	log.Logger().Debug().Fields(map[string]interface{}(fields)).Msg(msg)
}
func (watermillLogger) Trace(msg string, fields watermill.LogFields) {
	log.Logger().Trace().Fields(map[string]interface{}(fields)).Msg(msg)
}
func (watermillLogger) With(fields watermill.LogFields) watermill.LoggerAdapter {
	return watermillLogger{}
}

// memPayloadStore is a process-local cache of transaction payload bytes
// keyed by hash, letting this node answer gossip.PayloadSource lookups
// for batches it originated or has already seen in full.
type memPayloadStore struct {
	mu  sync.RWMutex
	byH map[[32]byte][]byte
}

func newMemPayloadStore() *memPayloadStore {
	return &memPayloadStore{byH: make(map[[32]byte][]byte)}
}

func (m *memPayloadStore) Put(hash [32]byte, payload []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byH[hash] = payload
}

func (m *memPayloadStore) PayloadByHash(hash [32]byte) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.byH[hash]
	return p, ok
}

var _ gossip.PayloadSource = (*memPayloadStore)(nil)
