package models

import "time"

// MeterReading represents a single validated electricity meter reading.
type MeterReading struct {
	MeterID       string    `json:"meterId"`
	KWhConsumedAC float64   `json:"kwhConsumedAc"`
	Voltage       float64   `json:"voltage"`
	Timestamp     time.Time `json:"timestamp"`
}

// VehicleReading represents a single validated vehicle reading.
type VehicleReading struct {
	VehicleID      string    `json:"vehicleId"`
	SOC            int       `json:"soc"`
	KWhDeliveredDC float64   `json:"kwhDeliveredDc"`
	BatteryTemp    float64   `json:"batteryTemp"`
	Timestamp      time.Time `json:"timestamp"`
}
