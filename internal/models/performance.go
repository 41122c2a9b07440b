package models

// PerformanceReport correlates a vehicle's DC delivery against its linked
// meter's AC consumption over the trailing window.
type PerformanceReport struct {
	VehicleID        string  `json:"vehicleId"`
	MeterID          string  `json:"meterId"`
	Window           string  `json:"window"`
	TotalACConsumed  float64 `json:"totalAcConsumed"`
	TotalDCDelivered float64 `json:"totalDcDelivered"`
	EfficiencyRatio  float64 `json:"efficiencyRatio"`
	AvgBatteryTemp   float64 `json:"avgBatteryTemp"`
}
