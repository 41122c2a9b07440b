package redisstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// MeterLiveStatus is the hot snapshot kept per meter.
type MeterLiveStatus struct {
	MeterID       string    `json:"meterId"`
	KWhConsumedAC float64   `json:"kwhConsumedAc"`
	Voltage       float64   `json:"voltage"`
	LastSeen      time.Time `json:"lastSeen"`
}

// VehicleLiveStatus is the hot snapshot kept per vehicle.
type VehicleLiveStatus struct {
	VehicleID      string    `json:"vehicleId"`
	SOC            int       `json:"soc"`
	KWhDeliveredDC float64   `json:"kwhDeliveredDc"`
	BatteryTemp    float64   `json:"batteryTemp"`
	LastSeen       time.Time `json:"lastSeen"`
}

// LiveStatusStore keeps the most recently ingested reading per device.
// Writes are unconditional: the last ingest by arrival order wins, even if it
// carries an older timestamp than the value it replaces.
type LiveStatusStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewLiveStatusStore returns redis-backed store. A zero ttl keeps keys forever.
func NewLiveStatusStore(client *redis.Client, ttl time.Duration) *LiveStatusStore {
	return &LiveStatusStore{client: client, ttl: ttl}
}

func (s *LiveStatusStore) meterKey(meterID string) string {
	return fmt.Sprintf("live:meter:%s", meterID)
}

func (s *LiveStatusStore) vehicleKey(vehicleID string) string {
	return fmt.Sprintf("live:vehicle:%s", vehicleID)
}

// SaveMeter overwrites the meter's live snapshot.
func (s *LiveStatusStore) SaveMeter(ctx context.Context, status MeterLiveStatus) error {
	data, err := json.Marshal(status)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.meterKey(status.MeterID), data, s.ttl).Err()
}

// GetMeter returns the meter's live snapshot.
func (s *LiveStatusStore) GetMeter(ctx context.Context, meterID string) (*MeterLiveStatus, error) {
	result, err := s.client.Get(ctx, s.meterKey(meterID)).Result()
	if err != nil {
		return nil, err
	}
	var status MeterLiveStatus
	if err := json.Unmarshal([]byte(result), &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// SaveVehicle overwrites the vehicle's live snapshot.
func (s *LiveStatusStore) SaveVehicle(ctx context.Context, status VehicleLiveStatus) error {
	data, err := json.Marshal(status)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.vehicleKey(status.VehicleID), data, s.ttl).Err()
}

// GetVehicle returns the vehicle's live snapshot.
func (s *LiveStatusStore) GetVehicle(ctx context.Context, vehicleID string) (*VehicleLiveStatus, error) {
	result, err := s.client.Get(ctx, s.vehicleKey(vehicleID)).Result()
	if err != nil {
		return nil, err
	}
	var status VehicleLiveStatus
	if err := json.Unmarshal([]byte(result), &status); err != nil {
		return nil, err
	}
	return &status, nil
}
