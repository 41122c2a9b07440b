package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"fleetgrid/internal/repository"
	"fleetgrid/internal/service"
)

func newAnalyticsService(t *testing.T) (*service.AnalyticsService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	svc := service.NewAnalyticsService(
		repository.NewLinkRepository(db),
		repository.NewMeterHistoryRepository(db),
		repository.NewVehicleHistoryRepository(db),
		zap.NewNop(),
	)
	return svc, mock
}

func expectLink(mock sqlmock.Sqlmock, vehicleID, meterID string) {
	mock.ExpectQuery(`FROM fleet_links`).
		WithArgs(vehicleID).
		WillReturnRows(sqlmock.NewRows([]string{"vehicle_id", "meter_id"}).AddRow(vehicleID, meterID))
}

func expectVehicleAggregate(mock sqlmock.Sqlmock, vehicleID string, totalDC, avgTemp float64) {
	mock.ExpectQuery(`FROM vehicle_telemetry`).
		WithArgs(vehicleID, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"sum", "avg"}).AddRow(totalDC, avgTemp))
}

func expectMeterAggregate(mock sqlmock.Sqlmock, meterID string, totalAC float64) {
	mock.ExpectQuery(`FROM meter_telemetry`).
		WithArgs(meterID, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow(totalAC))
}

func TestVehiclePerformanceNotLinked(t *testing.T) {
	svc, mock := newAnalyticsService(t)

	mock.ExpectQuery(`FROM fleet_links`).
		WithArgs("v-ghost").
		WillReturnRows(sqlmock.NewRows([]string{"vehicle_id", "meter_id"}))

	report, err := svc.VehiclePerformance(context.Background(), "v-ghost")
	require.NoError(t, err)
	require.Nil(t, report)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestVehiclePerformanceScenario(t *testing.T) {
	svc, mock := newAnalyticsService(t)

	expectLink(mock, "v-900", "m-101")
	expectVehicleAggregate(mock, "v-900", 12, 21.5)
	expectMeterAggregate(mock, "m-101", 15)

	report, err := svc.VehiclePerformance(context.Background(), "v-900")
	require.NoError(t, err)
	require.NotNil(t, report)
	require.Equal(t, "v-900", report.VehicleID)
	require.Equal(t, "m-101", report.MeterID)
	require.Equal(t, "24h", report.Window)
	require.Equal(t, 15.0, report.TotalACConsumed)
	require.Equal(t, 12.0, report.TotalDCDelivered)
	require.Equal(t, 0.8, report.EfficiencyRatio)
	require.Equal(t, 21.5, report.AvgBatteryTemp)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestVehiclePerformanceZeroConsumptionYieldsZeroRatio(t *testing.T) {
	svc, mock := newAnalyticsService(t)

	expectLink(mock, "v-900", "m-101")
	expectVehicleAggregate(mock, "v-900", 12, 21.5)
	expectMeterAggregate(mock, "m-101", 0)

	report, err := svc.VehiclePerformance(context.Background(), "v-900")
	require.NoError(t, err)
	require.NotNil(t, report)
	require.Equal(t, 0.0, report.EfficiencyRatio)
	require.Equal(t, 12.0, report.TotalDCDelivered)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestVehiclePerformanceEmptyWindowReportsZeros(t *testing.T) {
	svc, mock := newAnalyticsService(t)

	expectLink(mock, "v-900", "m-101")
	expectVehicleAggregate(mock, "v-900", 0, 0)
	expectMeterAggregate(mock, "m-101", 0)

	report, err := svc.VehiclePerformance(context.Background(), "v-900")
	require.NoError(t, err)
	require.NotNil(t, report)
	require.Zero(t, report.TotalACConsumed)
	require.Zero(t, report.TotalDCDelivered)
	require.Zero(t, report.EfficiencyRatio)
	require.Zero(t, report.AvgBatteryTemp)
}

func TestVehiclePerformanceStorageFailurePropagates(t *testing.T) {
	svc, mock := newAnalyticsService(t)

	mock.ExpectQuery(`FROM fleet_links`).
		WithArgs("v-900").
		WillReturnError(errors.New("connection refused"))

	report, err := svc.VehiclePerformance(context.Background(), "v-900")
	require.Error(t, err)
	require.Nil(t, report)
}
