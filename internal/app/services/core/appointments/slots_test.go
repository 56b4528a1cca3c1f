package appointments

import (
	"consulat-service/internal/app/models"
	"consulat-service/internal/pkg/exceptions"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2024-06-03 is a Monday.
const monday = "2024-06-03"

func testOrg() *models.Organization {
	return &models.Organization{
		ID: "org_1",
		OpeningHours: map[string]models.OpeningHours{
			"monday": {Open: "09:00", Close: "10:00"},
			"sunday": {Closed: true},
		},
	}
}

func testService() *models.OrgService {
	return &models.OrgService{
		ID:                 "svc_1",
		OrgID:              "org_1",
		DepositAppointment: models.AppointmentSettings{DurationMinutes: 20, BreakMinutes: 10, Capacity: 1},
		PickupAppointment:  &models.AppointmentSettings{DurationMinutes: 30, Capacity: 2},
		IsActive:           true,
	}
}

func weekly(agentID string, ranges ...models.TimeRange) models.AgentSchedule {
	return models.AgentSchedule{
		AgentID:        agentID,
		OrgID:          "org_1",
		IsActive:       true,
		WeeklySchedule: []models.DaySchedule{{Day: "monday", TimeRanges: ranges}},
	}
}

func httpStatus(t *testing.T, err error) int {
	t.Helper()
	var customErr *exceptions.CustomError
	require.True(t, errors.As(err, &customErr), "expected CustomError, got %v", err)
	return customErr.StatusCode
}

func TestSettingsFor(t *testing.T) {
	service := testService()

	assert.Equal(t, SlotSettings{DurationMinutes: 20, BreakMinutes: 10, Capacity: 1}, SettingsFor(service, models.AppointmentTypeDeposit))
	assert.Equal(t, SlotSettings{DurationMinutes: 30, BreakMinutes: 0, Capacity: 2}, SettingsFor(service, models.AppointmentTypePickup))

	service.PickupAppointment = nil
	assert.Equal(t, 20, SettingsFor(service, models.AppointmentTypePickup).DurationMinutes, "pickup falls back to deposit settings")

	empty := &models.OrgService{}
	assert.Equal(t, SlotSettings{DurationMinutes: 15, Capacity: 1}, SettingsFor(empty, ""))
}

func TestComputeAvailableSlots(t *testing.T) {
	t.Run("steps by duration plus break inside opening hours", func(t *testing.T) {
		schedules := []models.AgentSchedule{weekly("agent_1", models.TimeRange{Start: "08:00", End: "12:00"})}

		slots, err := ComputeAvailableSlots(testOrg(), testService(), schedules, nil, monday, "")
		require.NoError(t, err)
		assert.Equal(t, []models.AvailableSlot{
			{StartTime: "09:00", EndTime: "09:20", AvailableCount: 1},
			{StartTime: "09:30", EndTime: "09:50", AvailableCount: 1},
		}, slots)
	})

	t.Run("closed day has no slots", func(t *testing.T) {
		schedules := []models.AgentSchedule{weekly("agent_1", models.TimeRange{Start: "08:00", End: "12:00"})}

		slots, err := ComputeAvailableSlots(testOrg(), testService(), schedules, nil, "2024-06-02", "")
		require.NoError(t, err)
		assert.Empty(t, slots)
	})

	t.Run("sums remaining capacity across agents and skips full slots", func(t *testing.T) {
		schedules := []models.AgentSchedule{
			weekly("agent_1", models.TimeRange{Start: "09:00", End: "10:00"}),
			weekly("agent_2", models.TimeRange{Start: "09:00", End: "09:30"}),
		}
		booked := []models.Appointment{
			{AgentID: "agent_1", StartTime: "09:00", Status: models.AppointmentStatusConfirmed},
			{AgentID: "agent_2", StartTime: "09:00", Status: models.AppointmentStatusConfirmed},
			{AgentID: "agent_1", StartTime: "09:30", Status: models.AppointmentStatusCancelled},
		}

		slots, err := ComputeAvailableSlots(testOrg(), testService(), schedules, booked, monday, models.AppointmentTypeDeposit)
		require.NoError(t, err)
		assert.Equal(t, []models.AvailableSlot{
			{StartTime: "09:30", EndTime: "09:50", AvailableCount: 1},
		}, slots)
	})

	t.Run("pickup capacity counts per agent", func(t *testing.T) {
		schedules := []models.AgentSchedule{weekly("agent_1", models.TimeRange{Start: "09:00", End: "10:00"})}
		booked := []models.Appointment{{AgentID: "agent_1", StartTime: "09:00", Status: models.AppointmentStatusConfirmed}}

		slots, err := ComputeAvailableSlots(testOrg(), testService(), schedules, booked, monday, models.AppointmentTypePickup)
		require.NoError(t, err)
		require.Len(t, slots, 2)
		assert.Equal(t, 1, slots[0].AvailableCount)
		assert.Equal(t, 2, slots[1].AvailableCount)
	})

	t.Run("exceptions override the weekly schedule", func(t *testing.T) {
		dayOff := weekly("agent_1", models.TimeRange{Start: "09:00", End: "10:00"})
		dayOff.Exceptions = []models.ScheduleException{{Date: monday, Available: false}}
		shortened := weekly("agent_2", models.TimeRange{Start: "09:00", End: "10:00"})
		shortened.Exceptions = []models.ScheduleException{{Date: monday, Available: true, TimeRanges: []models.TimeRange{{Start: "09:30", End: "10:00"}}}}

		slots, err := ComputeAvailableSlots(testOrg(), testService(), []models.AgentSchedule{dayOff, shortened}, nil, monday, "")
		require.NoError(t, err)
		assert.Equal(t, []models.AvailableSlot{{StartTime: "09:30", EndTime: "09:50", AvailableCount: 1}}, slots)
	})

	t.Run("ignores schedules scoped to another service or inactive", func(t *testing.T) {
		other := weekly("agent_1", models.TimeRange{Start: "09:00", End: "10:00"})
		other.OrgServiceID = "svc_other"
		inactive := weekly("agent_2", models.TimeRange{Start: "09:00", End: "10:00"})
		inactive.IsActive = false

		slots, err := ComputeAvailableSlots(testOrg(), testService(), []models.AgentSchedule{other, inactive}, nil, monday, "")
		require.NoError(t, err)
		assert.Empty(t, slots)
	})

	t.Run("invalid date", func(t *testing.T) {
		_, err := ComputeAvailableSlots(testOrg(), testService(), nil, nil, "03/06/2024", "")
		assert.Equal(t, 400, httpStatus(t, err))
	})
}

func TestPlanBooking(t *testing.T) {
	schedules := []models.AgentSchedule{
		weekly("agent_1", models.TimeRange{Start: "09:00", End: "10:00"}),
		weekly("agent_2", models.TimeRange{Start: "09:00", End: "10:00"}),
	}

	t.Run("selects the least booked agent", func(t *testing.T) {
		service := testService()
		service.DepositAppointment.Capacity = 2
		booked := []models.Appointment{{UserID: "user_9", AgentID: "agent_1", StartTime: "09:00", Status: models.AppointmentStatusConfirmed}}

		plan, err := PlanBooking(testOrg(), service, schedules, booked, monday, "09:00", "", "user_1")
		require.NoError(t, err)
		assert.Equal(t, &BookingPlan{AgentID: "agent_2", EndTime: "09:20"}, plan)
	})

	t.Run("rejects times outside opening hours", func(t *testing.T) {
		_, err := PlanBooking(testOrg(), testService(), schedules, nil, monday, "09:50", "", "user_1")
		assert.Equal(t, 422, httpStatus(t, err))

		_, err = PlanBooking(testOrg(), testService(), schedules, nil, "2024-06-02", "09:00", "", "user_1")
		assert.Equal(t, 422, httpStatus(t, err))
	})

	t.Run("rejects duplicate booking by the same user", func(t *testing.T) {
		booked := []models.Appointment{{UserID: "user_1", AgentID: "agent_1", StartTime: "09:00", Status: models.AppointmentStatusConfirmed}}

		_, err := PlanBooking(testOrg(), testService(), schedules, booked, monday, "09:00", "", "user_1")
		assert.Equal(t, 409, httpStatus(t, err))
	})

	t.Run("rejects fully booked slots", func(t *testing.T) {
		booked := []models.Appointment{
			{UserID: "user_8", AgentID: "agent_1", StartTime: "09:00", Status: models.AppointmentStatusConfirmed},
			{UserID: "user_9", AgentID: "agent_2", StartTime: "09:00", Status: models.AppointmentStatusConfirmed},
		}

		_, err := PlanBooking(testOrg(), testService(), schedules, booked, monday, "09:00", "", "user_1")
		assert.Equal(t, 409, httpStatus(t, err))
	})
}
