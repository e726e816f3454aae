// Package feed provides a WebSocket client for a live attack alert stream.
package feed

import (
	"encoding/json"
	"fmt"

	"pewmap/internal/radar"
)

// alertMessage is the wire shape of one feed message. Messages with other
// types (heartbeats, status frames) are skipped, not errors.
type alertMessage struct {
	Type string `json:"type"`
	Data struct {
		Origin struct {
			Lat float64 `json:"lat"`
			Lng float64 `json:"lng"`
		} `json:"origin"`
		Destination struct {
			Lat float64 `json:"lat"`
			Lng float64 `json:"lng"`
		} `json:"destination"`
		Severity string `json:"severity"`
	} `json:"data"`
}

func validCoord(lat, lng float64) bool {
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}

// ParseMessage decodes one feed frame. It returns (nil, nil) for frames
// that are valid JSON but not attack alerts.
func ParseMessage(raw []byte) (*radar.AttackEvent, error) {
	var msg alertMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		return nil, fmt.Errorf("decode failed: %w", err)
	}
	if msg.Type != "attack" {
		return nil, nil
	}
	if !validCoord(msg.Data.Origin.Lat, msg.Data.Origin.Lng) {
		return nil, fmt.Errorf("origin out of range: %v,%v", msg.Data.Origin.Lat, msg.Data.Origin.Lng)
	}
	if !validCoord(msg.Data.Destination.Lat, msg.Data.Destination.Lng) {
		return nil, fmt.Errorf("destination out of range: %v,%v", msg.Data.Destination.Lat, msg.Data.Destination.Lng)
	}
	return &radar.AttackEvent{
		Origin:      radar.GeoPoint{Lat: msg.Data.Origin.Lat, Lng: msg.Data.Origin.Lng},
		Destination: radar.GeoPoint{Lat: msg.Data.Destination.Lat, Lng: msg.Data.Destination.Lng},
		Severity:    radar.ParseSeverity(msg.Data.Severity),
	}, nil
}
