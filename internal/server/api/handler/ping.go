package handler

import (
	"encoding/json"
	"log/slog"

	"github.com/Alia5/inputtrack/apitypes"
	"github.com/Alia5/inputtrack/internal/server/api"
)

// ServerName identifies inputtrack in ping responses.
const ServerName = "inputtrack"

// Ping returns a handler reporting the server identity and version.
func Ping(version string) api.HandlerFunc {
	return func(req *api.Request, res *api.Response, logger *slog.Logger) error {
		b, err := json.Marshal(apitypes.PingResponse{Server: ServerName, Version: version})
		if err != nil {
			return err
		}
		res.JSON = string(b)
		return nil
	}
}
