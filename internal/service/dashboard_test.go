package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/langchou/parkpic/internal/models"
)

func newDashboardEnv(t *testing.T) (*env, *DashboardService) {
	e := newEnv(t)
	e.loginAs(models.User{ID: "1", Email: "pic@example.com", Role: "pic"})
	return e, NewDashboardService(e.api, zap.NewNop())
}

func TestDashboardFetch(t *testing.T) {
	e, svc := newDashboardEnv(t)
	e.mock.SeedParkingLot(models.ParkingLot{ID: 1, Name: "Demo Parking"})
	e.mock.SeedCar(models.Car{ID: 21, Status: models.CarStatusAvailable})
	e.mock.SeedCar(models.Car{ID: 22, Status: models.CarStatusMaintenance})
	e.mock.SeedBooking(models.Booking{ID: 31, CarID: 21, Status: "PENDING_PICKUP"}, "4321")
	e.mock.SeedBooking(models.Booking{ID: 32, CarID: 22, Status: "ACTIVE"}, "")

	dashboard, err := svc.Fetch(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Demo Parking", dashboard.ParkingLot.Name)
	assert.Equal(t, 2, dashboard.Stats.TotalCars)
	assert.Equal(t, 1, dashboard.Stats.AvailableCars)
	assert.Equal(t, 1, dashboard.Stats.MaintenanceCars)
	assert.Equal(t, 1, dashboard.Stats.BookedCars)
	assert.Equal(t, 1, dashboard.Stats.PendingVerifications)
	require.Len(t, dashboard.PendingOTPVerifications, 1)
	assert.Equal(t, int64(31), dashboard.PendingOTPVerifications[0].ID)
	assert.Len(t, dashboard.Bookings, 2)
	assert.Len(t, dashboard.Cars, 2)
}

func TestConfirmPickup(t *testing.T) {
	e, svc := newDashboardEnv(t)
	e.mock.SeedBooking(models.Booking{ID: 31, Status: "PENDING_PICKUP"}, "4321")

	require.NoError(t, svc.ConfirmPickup(context.Background(), 31, "4321"))

	dashboard, err := svc.Fetch(context.Background())
	require.NoError(t, err)
	assert.Empty(t, dashboard.PendingOTPVerifications)
	require.Len(t, dashboard.Bookings, 1)
	assert.Equal(t, "ACTIVE", dashboard.Bookings[0].Status)
}

func TestConfirmPickupWrongOTP(t *testing.T) {
	e, svc := newDashboardEnv(t)
	e.mock.SeedBooking(models.Booking{ID: 31, Status: "PENDING_PICKUP"}, "4321")

	require.Error(t, svc.ConfirmPickup(context.Background(), 31, "9999"))

	// 验证失败：OTP 仍待验证
	dashboard, err := svc.Fetch(context.Background())
	require.NoError(t, err)
	assert.Len(t, dashboard.PendingOTPVerifications, 1)
}

func TestConfirmPickupLocalOTPValidation(t *testing.T) {
	_, svc := newDashboardEnv(t)

	// 不合法的 OTP 在本地拦截，不发请求
	for _, otp := range []string{"", "12", "abcd", "12a4"} {
		err := svc.ConfirmPickup(context.Background(), 31, otp)
		assert.ErrorIs(t, err, ErrInvalidOTP, "otp=%q", otp)
	}
}

func TestValidOTP(t *testing.T) {
	assert.True(t, validOTP("1234"))
	assert.True(t, validOTP("004521"))
	assert.False(t, validOTP("123"))
	assert.False(t, validOTP("12 4"))
	assert.False(t, validOTP("１２３４")) // 全角数字不接受
}
