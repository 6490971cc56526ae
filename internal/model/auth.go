package model

import "github.com/golang-jwt/jwt/v5"

// DeviceClaims are the JWT claims for an anonymous device token.
type DeviceClaims struct {
	DeviceID string `json:"deviceId"`
	jwt.RegisteredClaims
}

// RegisterDeviceResponse is returned by POST /v1/auth/device.
type RegisterDeviceResponse struct {
	Token    string `json:"token"`
	DeviceID string `json:"deviceId"`
}

// AnalyzeRequest is the body of POST /v1/analyze.
type AnalyzeRequest struct {
	Image    string `json:"image"`
	MimeType string `json:"mimeType,omitempty"`
}

// StatsResponse bundles a device's stats with the achievement catalog,
// each entry annotated with its unlock state. Rank is the device's
// 1-indexed scoreboard position, -1 when it has no best score yet.
type StatsResponse struct {
	Stats        *UserStats    `json:"stats"`
	Achievements []Achievement `json:"achievements"`
	Rank         int64         `json:"rank"`
}
