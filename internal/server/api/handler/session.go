package handler

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/Alia5/inputtrack/apitypes"
	"github.com/Alia5/inputtrack/internal/server/api"
	apierror "github.com/Alia5/inputtrack/internal/server/api/error"
)

// SessionList returns a handler listing open session IDs, oldest first.
func SessionList(s *api.Sessions) api.HandlerFunc {
	return func(req *api.Request, res *api.Response, logger *slog.Logger) error {
		b, err := json.Marshal(apitypes.SessionListResponse{Sessions: s.List()})
		if err != nil {
			return err
		}
		res.JSON = string(b)
		return nil
	}
}

// SessionGet returns a handler reporting the state of the session in the {id} param.
func SessionGet(s *api.Sessions) api.HandlerFunc {
	return func(req *api.Request, res *api.Response, logger *slog.Logger) error {
		id := req.Params["id"]
		sess, ok := s.Get(id)
		if !ok {
			return apierror.ErrNotFound(fmt.Sprintf("session %s not found", id))
		}
		b, err := json.Marshal(sess.Snapshot())
		if err != nil {
			return apierror.ErrInternal(fmt.Sprintf("failed to marshal response: %v", err))
		}
		res.JSON = string(b)
		return nil
	}
}
