package cmd

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/emptypb"

	"github.com/hazzzi/maenggu-run/internal/config"
	pb "github.com/hazzzi/maenggu-run/proto"
)

func TestDaemonLifecycle(t *testing.T) {
	t.Setenv(config.HomeEnv, t.TempDir())
	t.Setenv("MAENGGU_UPDATES_CHECK_ON_STARTUP", "false")
	t.Setenv("MAENGGU_SERVER_HOST", "127.0.0.1")

	port := 0
	d, err := newDaemon(runOptions{foreground: true, port: &port, logLevel: "error"})
	require.NoError(t, err)
	require.NoError(t, d.start())

	running, info, err := config.IsDaemonRunning()
	require.NoError(t, err)
	require.True(t, running)
	assert.Equal(t, d.server.Port(), info.Port)

	conn, err := grpc.NewClient(info.Addr(),
		grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)
	defer conn.Close()
	client := pb.NewPetServiceClient(conn)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	added, err := client.SnackAdd(ctx, &pb.SnackRequest{})
	require.NoError(t, err)
	assert.Equal(t, uint32(1), added.Snacks)

	_, err = client.Shutdown(ctx, &emptypb.Empty{})
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		d.wait(nil)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("shutdown request did not end wait")
	}
	d.stop()

	running, _, err = config.IsDaemonRunning()
	require.NoError(t, err)
	assert.False(t, running)

	state, err := d.store.Load()
	require.NoError(t, err)
	assert.Equal(t, uint32(1), state.Snacks)
	assert.Equal(t, uint32(1), state.Stats.TotalClicks)
}

func TestSecondDaemonRefused(t *testing.T) {
	t.Setenv(config.HomeEnv, t.TempDir())
	t.Setenv("MAENGGU_UPDATES_CHECK_ON_STARTUP", "false")

	port := 0
	first, err := newDaemon(runOptions{port: &port, logLevel: "error"})
	require.NoError(t, err)
	require.NoError(t, first.start())
	defer first.stop()

	_, err = newDaemon(runOptions{port: &port, logLevel: "error"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already running")
}
