package apitypes

import (
	"fmt"
)

// ApiError represents an RFC 7807 (problem+json) error response.
type ApiError struct {
	// Status is the HTTP-style status code (e.g., 400, 404, 500)
	Status int `json:"status"`
	// Title is a short, human-readable summary of the problem type
	Title string `json:"title"`
	// Detail is a human-readable explanation specific to this occurrence
	Detail string `json:"detail"`
}

func (e ApiError) Error() string {
	if e.Status == 0 && e.Title == "" {
		return "unknown error"
	}
	if e.Status == 0 {
		return fmt.Sprintf("%s: %s", e.Title, e.Detail)
	}
	return fmt.Sprintf("%d %s: %s", e.Status, e.Title, e.Detail)
}

// --

type PingResponse struct {
	Server  string `json:"server"`
	Version string `json:"version"`
}

type KeyInfo struct {
	Index int    `json:"index"`
	Code  string `json:"code"`
}

type KeyListResponse struct {
	Keys []KeyInfo `json:"keys"`
}

type ButtonInfo struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
}

type ButtonListResponse struct {
	Buttons []ButtonInfo `json:"buttons"`
}

// ThresholdResponse carries the quick action threshold in milliseconds.
type ThresholdResponse struct {
	ThresholdMs int64 `json:"thresholdMs"`
}

type SessionListResponse struct {
	Sessions []string `json:"sessions"`
}

// SessionOpenResponse is the first line written on a session stream.
type SessionOpenResponse struct {
	SessionID string `json:"sessionId"`
}

// SessionStateResponse is a snapshot of one tracking session.
type SessionStateResponse struct {
	SessionID   string     `json:"sessionId"`
	KeysDown    []string   `json:"keysDown"`
	ButtonsDown []string   `json:"buttonsDown"`
	Pointer     [2]float64 `json:"pointer"`
	ThresholdMs int64      `json:"thresholdMs"`
	Dropped     uint64     `json:"dropped"`
	Published   uint64     `json:"published"`
}
