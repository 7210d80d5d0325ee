/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package ingress

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/carverauto/fleetsync/pkg/db"
	"github.com/carverauto/fleetsync/pkg/logger"
	"github.com/carverauto/fleetsync/pkg/models"
	"github.com/carverauto/fleetsync/pkg/natsutil"
	"github.com/carverauto/fleetsync/pkg/telemetry"
)

func runJetStreamServer(t *testing.T) *server.Server {
	t.Helper()

	srv, err := server.NewServer(&server.Options{
		Host:      "127.0.0.1",
		Port:      -1,
		JetStream: true,
		StoreDir:  t.TempDir(),
	})
	require.NoError(t, err)

	go srv.Start()

	if !srv.ReadyForConnections(10 * time.Second) {
		srv.Shutdown()
		t.Fatalf("embedded NATS server not ready for connections")
	}

	t.Cleanup(srv.Shutdown)

	return srv
}

// startConsumer runs a consumer against a fresh embedded server and returns
// the JetStream handle used to publish test messages.
func startConsumer(t *testing.T, ingester Ingester) (*Consumer, jetstream.JetStream) {
	t.Helper()

	srv := runJetStreamServer(t)

	nc, err := natsutil.Connect(&models.NATSConfig{URL: srv.ClientURL()}, logger.NewTestLogger())
	require.NoError(t, err)
	t.Cleanup(nc.Close)

	js, err := natsutil.NewJetStream(nc, "")
	require.NoError(t, err)

	c, err := NewConsumer(js, Config{AckWait: models.Duration(time.Second), MaxDeliver: 3}, ingester, logger.NewTestLogger())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	go func() { done <- c.Run(ctx) }()

	t.Cleanup(func() {
		cancel()
		<-done
	})

	require.Eventually(t, func() bool {
		_, err := js.Consumer(context.Background(), DefaultStreamName, DefaultDurable)
		return err == nil
	}, 5*time.Second, 20*time.Millisecond)

	return c, js
}

func TestConfigValidate(t *testing.T) {
	cfg := Config{}
	require.NoError(t, cfg.Validate())
	assert.Empty(t, cfg.StreamName, "disabled config is left alone")

	cfg = Config{Enabled: true}
	require.NoError(t, cfg.Validate())
	assert.Equal(t, DefaultStreamName, cfg.StreamName)
	assert.Equal(t, []string{DefaultSubject}, cfg.Subjects)
	assert.Equal(t, DefaultDurable, cfg.Durable)
	assert.Equal(t, defaultMaxDeliver, cfg.MaxDeliver)

	require.ErrorIs(t, (&Config{Enabled: true, MaxDeliver: -1}).Validate(), errInvalidMaxDeliver)
}

func TestConsumerIngestsPushedTelemetry(t *testing.T) {
	store := db.NewMemoryStore()
	processor := telemetry.NewProcessor(store, logger.NewTestLogger())

	c, js := startConsumer(t, processor)
	ctx := context.Background()

	_, err := js.Publish(ctx, "telemetry.fleet.d1", []byte(`{
		"device_id":"d1","name":"Router 55","status":"online",
		"timestamp":"2025-05-01T12:00:00Z","tx_bytes":1200,"rx_bytes":3400
	}`))
	require.NoError(t, err)

	_, err = js.Publish(ctx, "telemetry.fleet.d1", []byte(`not json`))
	require.NoError(t, err)

	_, err = js.Publish(ctx, "telemetry.fleet.none", []byte(`{"status":"online"}`))
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		s := c.Stats()
		return s.Ingested == 1 && s.Rejected == 2
	}, 5*time.Second, 20*time.Millisecond)

	records := store.Telemetry("d1")
	require.Len(t, records, 1)
	assert.Equal(t, models.SourcePush, records[0].Source)
	assert.Equal(t, int64(1200), records[0].TotalTxBytes)

	device, err := store.GetDevice(ctx, "d1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusOnline, device.CurrentStatus)
}

func TestConsumerRedeliversOnStorageFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	ingester := NewMockIngester(ctrl)

	gomock.InOrder(
		ingester.EXPECT().IngestRaw(gomock.Any(), gomock.Any(), models.SourcePush).
			Return(nil, errors.New("connection reset")),
		ingester.EXPECT().IngestRaw(gomock.Any(), gomock.Any(), models.SourcePush).
			Return(&telemetry.IngestResult{}, nil),
	)

	c, js := startConsumer(t, ingester)

	_, err := js.Publish(context.Background(), "telemetry.fleet.d2", []byte(`{"device_id":"d2"}`))
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		s := c.Stats()
		return s.Redelivered == 1 && s.Ingested == 1
	}, 5*time.Second, 20*time.Millisecond)
}
