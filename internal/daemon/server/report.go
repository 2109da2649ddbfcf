package server

import (
	"github.com/hazzzi/maenggu-run/internal/report"
)

// BuildReport collects the diagnostic report from the live daemon state.
// Monitors are enumerated fresh so the report reflects the current layout.
func (s *Server) BuildReport() string {
	info := report.NewInfo()
	info.State = s.manager.Snapshot()

	if s.tracker != nil {
		adapter := s.tracker.Adapter()
		info.Adapter = adapter.Name()
		info.Monitors, info.MonitorsErr = adapter.Monitors()
		if r, ok := s.tracker.Current(); ok {
			info.Bounds = &r
		}
	}

	if s.store != nil {
		info.SavePath = s.store.Path()
		if hash, err := s.store.Hash(); err == nil {
			info.SaveHash = hash
		}
	}

	return report.Build(info)
}
