package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"

	pb "github.com/hazzzi/maenggu-run/proto"
)

const rpcTimeout = 5 * time.Second

func loadStateCmd(client pb.PetServiceClient) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), rpcTimeout)
		defer cancel()

		state, err := client.GetState(ctx, &emptypb.Empty{})
		if err != nil {
			if isConnectionLost(err) {
				return DaemonDisconnectedMsg{}
			}
			return ErrorMsg{Err: fmt.Errorf("failed to load state: %w", err)}
		}
		return StateLoadedMsg{State: state}
	}
}

func loadStatusCmd(client pb.PetServiceClient) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), rpcTimeout)
		defer cancel()

		st, err := client.GetStatus(ctx, &emptypb.Empty{})
		if err != nil {
			// Status only decorates the header.
			return nil
		}
		return StatusLoadedMsg{Status: st}
	}
}

func loadBoundsCmd(client pb.PetServiceClient) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), rpcTimeout)
		defer cancel()

		resp, err := client.GetOverlayBounds(ctx, &emptypb.Empty{})
		if err != nil {
			return nil
		}
		return BoundsLoadedMsg{Bounds: resp.Bounds}
	}
}

// subscribeCmd opens the event stream and pumps events into the program
// from a goroutine until ctx is cancelled or the stream ends.
func subscribeCmd(ctx context.Context, client pb.PetServiceClient, program *programRef) tea.Cmd {
	return func() tea.Msg {
		stream, err := client.Subscribe(ctx, &emptypb.Empty{})
		if err != nil {
			if isConnectionLost(err) {
				return DaemonDisconnectedMsg{}
			}
			return ErrorMsg{Err: fmt.Errorf("failed to subscribe: %w", err)}
		}

		go func() {
			for {
				ev, err := stream.Recv()
				if err != nil {
					if ctx.Err() != nil {
						return
					}
					if isConnectionLost(err) {
						program.Send(DaemonDisconnectedMsg{})
					} else {
						program.Send(StreamEndedMsg{})
					}
					return
				}
				program.Send(EventMsg{Event: ev})
			}
		}()

		return SubscribedMsg{}
	}
}

func addSnackCmd(client pb.PetServiceClient) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), rpcTimeout)
		defer cancel()

		resp, err := client.SnackAdd(ctx, &pb.SnackRequest{})
		if err != nil {
			return ErrorMsg{Err: fmt.Errorf("failed to add snack: %w", err)}
		}
		return SnackAddedMsg{Snacks: resp.Snacks}
	}
}

func spendSnackCmd(client pb.PetServiceClient) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), rpcTimeout)
		defer cancel()

		resp, err := client.SnackSpend(ctx, &pb.SnackRequest{})
		if err != nil {
			return ErrorMsg{Err: fmt.Errorf("failed to feed: %w", err)}
		}
		return SnackSpentMsg{Success: resp.Success, Snacks: resp.Snacks}
	}
}

func summonCmd(client pb.PetServiceClient) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), rpcTimeout)
		defer cancel()

		if _, err := client.Summon(ctx, &emptypb.Empty{}); err != nil {
			return ErrorMsg{Err: fmt.Errorf("failed to summon: %w", err)}
		}
		return SummonedMsg{}
	}
}

func clearErrorAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(_ time.Time) tea.Msg {
		return ClearErrorMsg{}
	})
}

func resetMoodAfter(d time.Duration, seq int) tea.Cmd {
	return tea.Tick(d, func(_ time.Time) tea.Msg {
		return moodResetMsg{seq: seq}
	})
}

// isConnectionLost checks if a gRPC error indicates the server is gone.
func isConnectionLost(err error) bool {
	code := status.Code(err)
	return code == codes.Unavailable || code == codes.Canceled
}
