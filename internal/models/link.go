package models

// Link maps a vehicle to the meter it charges from. One meter per vehicle at
// any instant; a meter may serve several vehicles over time.
type Link struct {
	VehicleID string `json:"vehicleId"`
	MeterID   string `json:"meterId"`
}
