package handler

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/Alia5/inputtrack/apitypes"
	"github.com/Alia5/inputtrack/internal/server/api"
	apierror "github.com/Alia5/inputtrack/internal/server/api/error"
)

// ThresholdStore holds the quick action threshold.
type ThresholdStore interface {
	Threshold() time.Duration
	SetThreshold(time.Duration)
}

// Threshold returns a handler reporting the threshold in milliseconds.
// A payload of milliseconds sets it first.
func Threshold(s ThresholdStore) api.HandlerFunc {
	return func(req *api.Request, res *api.Response, logger *slog.Logger) error {
		if p := strings.TrimSpace(req.Payload); p != "" {
			ms, err := strconv.ParseUint(p, 10, 32)
			if err != nil {
				return apierror.ErrBadRequest(fmt.Sprintf("invalid threshold: %v", err))
			}
			d := time.Duration(ms) * time.Millisecond
			s.SetThreshold(d)
			logger.Info("quick action threshold changed", "threshold", d)
		}
		b, err := json.Marshal(apitypes.ThresholdResponse{ThresholdMs: s.Threshold().Milliseconds()})
		if err != nil {
			return apierror.ErrInternal(fmt.Sprintf("failed to marshal response: %v", err))
		}
		res.JSON = string(b)
		return nil
	}
}
