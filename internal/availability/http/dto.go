package http

import "github.com/stkrfx/digitaloffices-1/internal/availability"

type SlotBody struct {
	DayOfWeek *int   `json:"dayOfWeek" binding:"required,min=0,max=6"`
	StartTime string `json:"startTime" binding:"required,hhmm"`
	EndTime   string `json:"endTime" binding:"required,hhmm"`
}

type ReplaceScheduleRequest struct {
	Slots []SlotBody `json:"slots" binding:"required,dive"`
}

func (r ReplaceScheduleRequest) toSlots() []availability.Slot {
	slots := make([]availability.Slot, len(r.Slots))
	for i, s := range r.Slots {
		slots[i] = availability.Slot{DayOfWeek: *s.DayOfWeek, StartTime: s.StartTime, EndTime: s.EndTime}
	}
	return slots
}

type SlotResponse struct {
	ID        string `json:"id"`
	DayOfWeek int    `json:"dayOfWeek"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

type ScheduleResponse struct {
	ExpertID string         `json:"expertId"`
	Slots    []SlotResponse `json:"slots"`
}

func NewScheduleResponse(expertID string, slots []availability.Slot) ScheduleResponse {
	items := make([]SlotResponse, len(slots))
	for i, s := range slots {
		items[i] = SlotResponse{ID: s.ID, DayOfWeek: s.DayOfWeek, StartTime: s.StartTime, EndTime: s.EndTime}
	}
	return ScheduleResponse{ExpertID: expertID, Slots: items}
}
