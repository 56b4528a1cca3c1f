package appointments

import (
	"consulat-service/internal/app/models"
	"consulat-service/internal/pkg/exceptions"
	"consulat-service/internal/pkg/utils"
	"errors"
	"fmt"
	"sort"
)

const (
	defaultSlotDurationMinutes = 15
	defaultSlotCapacity        = 1
)

// SlotSettings is the slot grid configuration of an org service for one appointment type.
type SlotSettings struct {
	DurationMinutes int
	BreakMinutes    int
	Capacity        int
}

// SettingsFor picks the pickup settings when asked and configured, the deposit ones otherwise.
func SettingsFor(service *models.OrgService, appointmentType string) SlotSettings {
	source := service.DepositAppointment
	if appointmentType == models.AppointmentTypePickup && service.PickupAppointment != nil {
		source = *service.PickupAppointment
	}

	settings := SlotSettings{
		DurationMinutes: source.DurationMinutes,
		BreakMinutes:    source.BreakMinutes,
		Capacity:        source.Capacity,
	}
	if settings.DurationMinutes <= 0 {
		settings.DurationMinutes = defaultSlotDurationMinutes
	}
	if settings.BreakMinutes < 0 {
		settings.BreakMinutes = 0
	}
	if settings.Capacity <= 0 {
		settings.Capacity = defaultSlotCapacity
	}
	return settings
}

type agentRange struct {
	agentID string
	start   int
	end     int
}

type dayPlan struct {
	open     int
	close    int
	isOpen   bool
	settings SlotSettings
	ranges   []agentRange
	bookings map[string]int
}

func (p *dayPlan) covers(r agentRange, start int) bool {
	return r.start <= start && start+p.settings.DurationMinutes <= r.end
}

func (p *dayPlan) agentsCovering(start int) []string {
	seen := make(map[string]bool)
	var agents []string
	for _, r := range p.ranges {
		if p.covers(r, start) && !seen[r.agentID] {
			seen[r.agentID] = true
			agents = append(agents, r.agentID)
		}
	}
	return agents
}

func bookingKey(agentID string, start int) string {
	return fmt.Sprintf("%s|%d", agentID, start)
}

func buildDayPlan(
	org *models.Organization,
	service *models.OrgService,
	schedules []models.AgentSchedule,
	booked []models.Appointment,
	date string,
	appointmentType string,
) (*dayPlan, error) {
	day, err := utils.ParseDateOnly(date)
	if err != nil {
		return nil, exceptions.ErrCannotParseDate(err)
	}
	dayName := utils.DayName(day.Weekday())

	plan := &dayPlan{
		settings: SettingsFor(service, appointmentType),
		bookings: make(map[string]int),
	}

	hours, ok := org.OpeningHours[dayName]
	if !ok || hours.Closed || hours.Open == "" || hours.Close == "" {
		return plan, nil
	}
	if plan.open, err = utils.ParseClockToMinutes(hours.Open); err != nil {
		return nil, err
	}
	if plan.close, err = utils.ParseClockToMinutes(hours.Close); err != nil {
		return nil, err
	}
	plan.isOpen = true

	for _, schedule := range schedules {
		if !schedule.IsActive {
			continue
		}
		if schedule.OrgServiceID != "" && schedule.OrgServiceID != service.ID {
			continue
		}
		for _, tr := range scheduleRangesOn(schedule, date, dayName) {
			start, err := utils.ParseClockToMinutes(tr.Start)
			if err != nil {
				continue
			}
			end, err := utils.ParseClockToMinutes(tr.End)
			if err != nil {
				continue
			}
			start = max(start, plan.open)
			end = min(end, plan.close)
			if start < end {
				plan.ranges = append(plan.ranges, agentRange{agentID: schedule.AgentID, start: start, end: end})
			}
		}
	}

	for _, appointment := range booked {
		if !appointment.IsActive() || appointment.AgentID == "" {
			continue
		}
		start, err := utils.ParseClockToMinutes(appointment.StartTime)
		if err != nil {
			continue
		}
		plan.bookings[bookingKey(appointment.AgentID, start)]++
	}
	return plan, nil
}

// scheduleRangesOn returns the agent's ranges for the date. A dated exception wins over the weekly
// schedule and an unavailable exception means a day off.
func scheduleRangesOn(schedule models.AgentSchedule, date, dayName string) []models.TimeRange {
	for _, exception := range schedule.Exceptions {
		if exception.Date != date {
			continue
		}
		if !exception.Available {
			return nil
		}
		if len(exception.TimeRanges) > 0 {
			return exception.TimeRanges
		}
		break
	}
	for _, day := range schedule.WeeklySchedule {
		if day.Day == dayName {
			return day.TimeRanges
		}
	}
	return nil
}

// ComputeAvailableSlots intersects agent schedules with the organization's opening hours for the
// date, steps through them by duration plus break and keeps the slots where at least one agent is
// still under capacity.
func ComputeAvailableSlots(
	org *models.Organization,
	service *models.OrgService,
	schedules []models.AgentSchedule,
	booked []models.Appointment,
	date string,
	appointmentType string,
) ([]models.AvailableSlot, error) {
	plan, err := buildDayPlan(org, service, schedules, booked, date, appointmentType)
	if err != nil {
		return nil, err
	}

	slots := []models.AvailableSlot{}
	if !plan.isOpen || len(plan.ranges) == 0 {
		return slots, nil
	}

	step := plan.settings.DurationMinutes + plan.settings.BreakMinutes
	startSet := make(map[int]bool)
	for _, r := range plan.ranges {
		for t := r.start; t+plan.settings.DurationMinutes <= r.end; t += step {
			startSet[t] = true
		}
	}
	starts := make([]int, 0, len(startSet))
	for t := range startSet {
		starts = append(starts, t)
	}
	sort.Ints(starts)

	for _, start := range starts {
		available := 0
		for _, agentID := range plan.agentsCovering(start) {
			if booked := plan.bookings[bookingKey(agentID, start)]; booked < plan.settings.Capacity {
				available += plan.settings.Capacity - booked
			}
		}
		if available > 0 {
			slots = append(slots, models.AvailableSlot{
				StartTime:      utils.MinutesToClock(start),
				EndTime:        utils.MinutesToClock(start + plan.settings.DurationMinutes),
				AvailableCount: available,
			})
		}
	}
	return slots, nil
}

// BookingPlan is the outcome of checking a requested start time against the day plan.
type BookingPlan struct {
	AgentID string
	EndTime string
}

// PlanBooking validates a requested start time and selects the least-booked covering agent
// that is still under capacity. Ties go to the agent listed first.
func PlanBooking(
	org *models.Organization,
	service *models.OrgService,
	schedules []models.AgentSchedule,
	booked []models.Appointment,
	date string,
	startTime string,
	appointmentType string,
	userID string,
) (*BookingPlan, error) {
	plan, err := buildDayPlan(org, service, schedules, booked, date, appointmentType)
	if err != nil {
		return nil, err
	}
	if !plan.isOpen {
		return nil, exceptions.ErrSlotOutsideOpeningHours(errors.New("organization closed on " + date))
	}

	start, err := utils.ParseClockToMinutes(startTime)
	if err != nil {
		return nil, exceptions.ErrInputValidation(err)
	}
	if start < plan.open || start+plan.settings.DurationMinutes > plan.close {
		return nil, exceptions.ErrSlotOutsideOpeningHours(fmt.Errorf("%s not within %s-%s", startTime, utils.MinutesToClock(plan.open), utils.MinutesToClock(plan.close)))
	}

	for _, appointment := range booked {
		if appointment.UserID == userID && appointment.StartTime == startTime && appointment.IsActive() {
			return nil, exceptions.ErrAppointmentAlreadyBooked(nil)
		}
	}

	agents := plan.agentsCovering(start)
	if len(agents) == 0 {
		return nil, exceptions.ErrSlotUnavailable(errors.New("no agent scheduled at " + startTime))
	}

	selected := ""
	fewest := plan.settings.Capacity
	for _, agentID := range agents {
		if count := plan.bookings[bookingKey(agentID, start)]; count < fewest {
			fewest = count
			selected = agentID
		}
	}
	if selected == "" {
		return nil, exceptions.ErrSlotUnavailable(errors.New("all agents fully booked at " + startTime))
	}

	return &BookingPlan{
		AgentID: selected,
		EndTime: utils.MinutesToClock(start + plan.settings.DurationMinutes),
	}, nil
}
