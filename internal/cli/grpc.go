package cli

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/hazzzi/maenggu-run/internal/config"
	pb "github.com/hazzzi/maenggu-run/proto"
)

// connectDaemon establishes a gRPC connection to the running daemon.
func connectDaemon() (*grpc.ClientConn, pb.PetServiceClient, error) {
	info, err := config.LoadDaemonInfo()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load daemon info: %w", err)
	}
	if info == nil {
		return nil, nil, fmt.Errorf("daemon not running (start it with: maenggu daemon start)")
	}

	conn, err := grpc.NewClient(info.Addr(), grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to daemon: %w", err)
	}

	return conn, pb.NewPetServiceClient(conn), nil
}

// rpcContext bounds a single request by the --timeout flag.
func rpcContext(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return context.WithTimeout(parent, rpcTimeout)
}
