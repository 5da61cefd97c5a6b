package diagnosis

import (
	"time"

	"diagnosd/pkg/types"
)

// Status builds the /status payload.
func (s *Service) Status() types.StatusResponse {
	now := time.Now()
	resp := types.StatusResponse{
		State:            "ready",
		PredictionsTotal: s.served.Load(),
		FailuresTotal:    s.failed.Load(),
		UnavailableTotal: s.unavailable.Load(),
		UptimeSeconds:    int64(now.Sub(s.start).Seconds()),
		ServerTimeUnix:   now.Unix(),
	}
	if !s.Ready() {
		resp.State = "unavailable"
		resp.Reason = s.reason
		return resp
	}
	info := *s.info
	info.Features = append([]string(nil), s.info.Features...)
	info.Classes = append([]string(nil), s.info.Classes...)
	resp.Model = &info
	return resp
}
