package handler

import "github.com/Alia5/inputtrack/internal/server/api"

// RegisterAll registers every inputtrack route on srv.
func RegisterAll(srv *api.Server, version string) {
	r := srv.Router()
	r.Register("ping", Ping(version))
	r.Register("keys/list", KeysList())
	r.Register("buttons/list", ButtonsList())
	r.Register("threshold", Threshold(srv))
	r.Register("session/list", SessionList(srv.Sessions()))
	r.Register("session/{id}", SessionGet(srv.Sessions()))
	r.RegisterStream("session/open", api.SessionStreamHandler(srv))
}
