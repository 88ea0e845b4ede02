package handler

import (
	"encoding/json"
	"log/slog"

	"github.com/Alia5/inputtrack/apitypes"
	"github.com/Alia5/inputtrack/input/keyboard"
	"github.com/Alia5/inputtrack/input/mouse"
	"github.com/Alia5/inputtrack/internal/server/api"
)

// KeysList returns a handler listing every logical key in ordinal order.
func KeysList() api.HandlerFunc {
	all := keyboard.All()
	payload := apitypes.KeyListResponse{Keys: make([]apitypes.KeyInfo, len(all))}
	for i, k := range all {
		payload.Keys[i] = apitypes.KeyInfo{Index: int(k), Code: k.String()}
	}
	return static(payload)
}

// ButtonsList returns a handler listing every logical pointer button.
func ButtonsList() api.HandlerFunc {
	all := mouse.All()
	payload := apitypes.ButtonListResponse{Buttons: make([]apitypes.ButtonInfo, len(all))}
	for i, b := range all {
		payload.Buttons[i] = apitypes.ButtonInfo{Index: int(b), Name: b.String()}
	}
	return static(payload)
}

func static(v any) api.HandlerFunc {
	b, err := json.Marshal(v)
	return func(req *api.Request, res *api.Response, logger *slog.Logger) error {
		if err != nil {
			return err
		}
		res.JSON = string(b)
		return nil
	}
}
