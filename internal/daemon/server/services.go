package server

import (
	"context"
	"errors"
	"os"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/hazzzi/maenggu-run/internal/buildinfo"
	"github.com/hazzzi/maenggu-run/internal/daemon/events"
	"github.com/hazzzi/maenggu-run/internal/geometry"
	"github.com/hazzzi/maenggu-run/internal/models"
	"github.com/hazzzi/maenggu-run/internal/platform"
	"github.com/hazzzi/maenggu-run/internal/snack"
	pb "github.com/hazzzi/maenggu-run/proto"
)

type petService struct {
	pb.UnimplementedPetServiceServer
	server *Server
}

func (s *petService) LoadSave(ctx context.Context, _ *emptypb.Empty) (*pb.SaveState, error) {
	return modelToProtoState(s.server.manager.Load()), nil
}

func (s *petService) GetState(ctx context.Context, _ *emptypb.Empty) (*pb.SaveState, error) {
	return modelToProtoState(s.server.manager.Snapshot()), nil
}

func (s *petService) SnackAdd(ctx context.Context, req *pb.SnackRequest) (*pb.SnackAddResponse, error) {
	total := s.server.manager.Add(snack.AmountOrDefault(req.Amount))
	return &pb.SnackAddResponse{Snacks: total}, nil
}

func (s *petService) SnackSpend(ctx context.Context, req *pb.SnackRequest) (*pb.SnackSpendResponse, error) {
	ok, total := s.server.manager.SpendTotal(snack.AmountOrDefault(req.Amount))
	return &pb.SnackSpendResponse{
		Success: ok,
		Snacks:  total,
	}, nil
}

func (s *petService) ComputeBounds(ctx context.Context, req *pb.BoundsRequest) (*pb.BoundsResponse, error) {
	monitors := make([]geometry.Monitor, 0, len(req.Monitors))
	for i, m := range req.Monitors {
		if m == nil {
			return nil, status.Errorf(codes.InvalidArgument, "monitor %d is empty", i)
		}
		monitors = append(monitors, protoToModelMonitor(m))
	}

	r, ok := geometry.ComputeBounds(monitors)
	return &pb.BoundsResponse{Bounds: rectOrNil(r, ok)}, nil
}

func (s *petService) GetOverlayBounds(ctx context.Context, _ *emptypb.Empty) (*pb.BoundsResponse, error) {
	tracker := s.server.tracker
	if tracker == nil {
		return nil, status.Error(codes.Unavailable, "display tracking is not running")
	}

	r, ok := tracker.Current()
	resp := &pb.BoundsResponse{Bounds: rectOrNil(r, ok)}
	for _, m := range tracker.Monitors() {
		resp.Monitors = append(resp.Monitors, modelToProtoMonitor(m))
	}
	return resp, nil
}

func (s *petService) ConfigureOverlay(ctx context.Context, req *pb.OverlayRequest) (*emptypb.Empty, error) {
	if req.Handle == 0 {
		return nil, status.Error(codes.InvalidArgument, "window handle is required")
	}
	tracker := s.server.tracker
	if tracker == nil {
		return nil, status.Error(codes.Unavailable, "platform adapter is not available")
	}

	if err := tracker.Adapter().ConfigureOverlay(uintptr(req.Handle)); err != nil {
		if errors.Is(err, platform.ErrUnsupported) {
			return nil, status.Error(codes.Unimplemented, err.Error())
		}
		return nil, status.Errorf(codes.Internal, "configure overlay: %v", err)
	}
	return &emptypb.Empty{}, nil
}

func (s *petService) Summon(ctx context.Context, _ *emptypb.Empty) (*emptypb.Empty, error) {
	s.server.hub.Summon()
	return &emptypb.Empty{}, nil
}

// Subscribe streams events until the client goes away or the server stops.
// The current snack total is sent first so a new UI starts in sync.
func (s *petService) Subscribe(_ *emptypb.Empty, stream pb.PetService_SubscribeServer) error {
	ch, cancel := s.server.hub.Subscribe(events.DefaultBuffer)
	defer cancel()

	initial := &pb.Event{Type: string(events.SnackUpdate), Snacks: s.server.manager.Snapshot().Snacks}
	if err := stream.Send(initial); err != nil {
		return err
	}

	ctx := stream.Context()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-s.server.stopCtx.Done():
			return nil
		case e, ok := <-ch:
			if !ok {
				return nil
			}
			if err := stream.Send(modelToProtoEvent(e)); err != nil {
				return err
			}
		}
	}
}

func (s *petService) GetStatus(ctx context.Context, _ *emptypb.Empty) (*pb.DaemonStatus, error) {
	available, latest, url := s.server.GetUpdateState()

	st := &pb.DaemonStatus{
		Host:            s.server.host,
		Port:            int32(s.server.port),
		Pid:             int32(os.Getpid()),
		Version:         buildinfo.Version,
		StartedAt:       timestamppb.New(s.server.startedAt),
		Subscribers:     int32(s.server.hub.Subscribers()),
		UpdateAvailable: available,
		LatestVersion:   latest,
		ReleaseURL:      url,
	}
	if s.server.tracker != nil {
		st.Adapter = s.server.tracker.Adapter().Name()
	}
	return st, nil
}

func (s *petService) GetReport(ctx context.Context, _ *emptypb.Empty) (*pb.Report, error) {
	return &pb.Report{Markdown: s.server.BuildReport()}, nil
}

func (s *petService) Shutdown(ctx context.Context, _ *emptypb.Empty) (*emptypb.Empty, error) {
	// Give the response a moment to flush before the server stops.
	go func() {
		time.Sleep(100 * time.Millisecond)
		s.server.RequestShutdown()
	}()
	return &emptypb.Empty{}, nil
}

// ============================================================================
// Conversion Functions
// ============================================================================

func modelToProtoState(st models.SaveState) *pb.SaveState {
	return &pb.SaveState{
		Version: uint32(st.Version),
		Snacks:  st.Snacks,
		Stats: pb.SaveStats{
			TotalClicks:     st.Stats.TotalClicks,
			TotalFeedings:   st.Stats.TotalFeedings,
			PeakSnacks:      st.Stats.PeakSnacks,
			SessionPlaytime: st.Stats.SessionPlaytime,
		},
	}
}

func protoToModelMonitor(m *pb.Monitor) geometry.Monitor {
	return geometry.Monitor{
		Name:        m.Name,
		X:           m.X,
		Y:           m.Y,
		Width:       m.Width,
		Height:      m.Height,
		ScaleFactor: m.ScaleFactor,
		Primary:     m.Primary,
	}
}

func modelToProtoMonitor(m geometry.Monitor) *pb.Monitor {
	return &pb.Monitor{
		Name:        m.Name,
		X:           m.X,
		Y:           m.Y,
		Width:       m.Width,
		Height:      m.Height,
		ScaleFactor: m.ScaleFactor,
		Primary:     m.Primary,
	}
}

func modelToProtoRect(r geometry.Rect) *pb.Rect {
	return &pb.Rect{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height}
}

func rectOrNil(r geometry.Rect, ok bool) *pb.Rect {
	if !ok {
		return nil
	}
	return modelToProtoRect(r)
}

func modelToProtoEvent(e events.Event) *pb.Event {
	out := &pb.Event{Type: string(e.Type), Snacks: e.Snacks}
	if e.Bounds != nil {
		out.Bounds = modelToProtoRect(*e.Bounds)
	}
	return out
}
