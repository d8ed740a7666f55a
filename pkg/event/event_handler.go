package event

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/planora/planora/internal/rest"
	log "github.com/sirupsen/logrus"
)

// Wire formats follow the original API: zone-less local timestamps, plain
// times of day and calendar dates.
const (
	dateTimeLayout      = "2006-01-02T15:04:05"
	dateTimeShortLayout = "2006-01-02T15:04"
)

type EventDTO struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	StartDate string  `json:"startDate"`
	EndDate   string  `json:"endDate"`
	RuleID    *string `json:"ruleId"`
}

type SingleEventRequest struct {
	Title     string `json:"title"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

type RecurrenceRuleRequest struct {
	DayOfWeek       string `json:"dayOfWeek"`
	RepeatUntilDate string `json:"repeatUntilDate,omitempty"`
	StartTime       string `json:"startTime"`
	EndTime         string `json:"endTime"`
}

type CyclicEventRequest struct {
	Title          string                 `json:"title"`
	StartTime      string                 `json:"startTime"`
	EndTime        string                 `json:"endTime"`
	RecurrenceRule *RecurrenceRuleRequest `json:"recurrenceRule"`
}

type EventUpdateRequest struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// CreateSingleEvent godoc
// @Summary Create a one-off event
// @Description Persists a single event unless its interval overlaps an existing one
// @Tags Events
// @Accept json
// @Produce json
// @Param request body SingleEventRequest true "Event to create"
// @Success 201 {object} EventDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid input"
// @Failure 409 {object} rest.ErrorResponse "Schedule conflict"
// @Router /api/events/single [post]
func (h *Handler) CreateSingleEvent(w http.ResponseWriter, r *http.Request) {
	var req SingleEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rest.WriteError(w, r, http.StatusBadRequest, "Invalid request body format")
		return
	}
	if req.Title == "" {
		rest.WriteError(w, r, http.StatusBadRequest, "Title is required")
		return
	}
	start, err := parseDateTime(req.StartDate)
	if err != nil {
		rest.WriteError(w, r, http.StatusBadRequest, "Please define the start date of the event")
		return
	}
	end, err := parseDateTime(req.EndDate)
	if err != nil {
		rest.WriteError(w, r, http.StatusBadRequest, "Please define the end date of the event")
		return
	}

	created, err := h.service.CreateSingleEvent(r.Context(), req.Title, start, end)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	rest.WriteJSON(w, http.StatusCreated, eventToDTO(created))
}

// CreateCyclicEvent godoc
// @Summary Create a weekly-recurring event
// @Description Persists a recurrence rule and all conflict-free occurrences it generates
// @Tags Events
// @Accept json
// @Produce json
// @Param request body CyclicEventRequest true "Recurring event to create"
// @Success 201 {array} EventDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid input"
// @Failure 409 {object} rest.ErrorResponse "Schedule conflict"
// @Router /api/events/cyclic [post]
func (h *Handler) CreateCyclicEvent(w http.ResponseWriter, r *http.Request) {
	var req CyclicEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rest.WriteError(w, r, http.StatusBadRequest, "Invalid request body format")
		return
	}
	if req.Title == "" {
		rest.WriteError(w, r, http.StatusBadRequest, "Title is required")
		return
	}
	if req.RecurrenceRule == nil {
		rest.WriteError(w, r, http.StatusBadRequest, "Recurrence rule is required")
		return
	}

	rule, err := toRule(req)
	if err != nil {
		rest.WriteError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.service.CreateCyclicEvent(r.Context(), req.Title, rule)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	dtos := make([]EventDTO, 0, len(created))
	for _, e := range created {
		dtos = append(dtos, eventToDTO(e))
	}
	rest.WriteJSON(w, http.StatusCreated, dtos)
}

// GetEventsForDate godoc
// @Summary List events starting on a date
// @Tags Events
// @Produce json
// @Param date query string true "Date in YYYY-MM-DD format"
// @Success 200 {array} EventDTO
// @Failure 400 {object} rest.ErrorResponse "Missing or malformed date"
// @Router /api/events [get]
func (h *Handler) GetEventsForDate(w http.ResponseWriter, r *http.Request) {
	dateString := r.URL.Query().Get("date")
	if dateString == "" {
		rest.WriteError(w, r, http.StatusBadRequest, "Query parameter 'date' is required")
		return
	}
	date, err := time.ParseInLocation(dateLayout, dateString, time.Local)
	if err != nil {
		rest.WriteError(w, r, http.StatusBadRequest, "Date must be in YYYY-MM-DD format")
		return
	}

	events, err := h.service.GetEventsForDate(r.Context(), date)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, eventsToDTOs(events))
}

// FindAll godoc
// @Summary List every stored event
// @Tags Events
// @Produce json
// @Success 200 {array} EventDTO
// @Router /api/events/all [get]
func (h *Handler) FindAll(w http.ResponseWriter, r *http.Request) {
	events, err := h.service.FindAll(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, eventsToDTOs(events))
}

// UpdateEvent godoc
// @Summary Update a single event
// @Description Overwrites title, start and end of a non-recurring event
// @Tags Events
// @Accept json
// @Produce json
// @Param id path string true "Event id"
// @Param request body EventUpdateRequest true "New event data"
// @Success 200 {object} EventDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid input or recurring event"
// @Failure 404 {object} rest.ErrorResponse "Event not found"
// @Failure 409 {object} rest.ErrorResponse "Schedule conflict"
// @Router /api/events/{id} [put]
func (h *Handler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	pathID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		rest.WriteError(w, r, http.StatusBadRequest, "Invalid event id")
		return
	}

	var req EventUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rest.WriteError(w, r, http.StatusBadRequest, "Invalid request body format")
		return
	}
	if req.ID != pathID.String() {
		rest.WriteError(w, r, http.StatusBadRequest, "Path ID must match request body ID")
		return
	}
	if req.Title == "" {
		rest.WriteError(w, r, http.StatusBadRequest, "Title is required")
		return
	}
	start, err := parseDateTime(req.StartDate)
	if err != nil {
		rest.WriteError(w, r, http.StatusBadRequest, "Please define the start date of the event")
		return
	}
	end, err := parseDateTime(req.EndDate)
	if err != nil {
		rest.WriteError(w, r, http.StatusBadRequest, "Please define the end date of the event")
		return
	}

	updated, err := h.service.UpdateEvent(r.Context(), pathID, req.Title, start, end)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, eventToDTO(updated))
}

func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrScheduleConflict):
		rest.WriteError(w, r, http.StatusConflict, err.Error())
	case errors.Is(err, ErrEventNotFound):
		rest.WriteError(w, r, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrRecurringEventUpdate), errors.Is(err, ErrValidation):
		rest.WriteError(w, r, http.StatusBadRequest, err.Error())
	default:
		log.Errorf("event request failed: %v", err)
		rest.WriteError(w, r, http.StatusInternalServerError, "Internal server error")
	}
}

func toRule(req CyclicEventRequest) (RecurrenceRule, error) {
	day, err := ParseDayOfWeek(req.RecurrenceRule.DayOfWeek)
	if err != nil {
		return RecurrenceRule{}, fmt.Errorf("day of week is required: %w", err)
	}

	// The rule's own times take precedence; the top-level ones are a legacy
	// duplicate kept for older clients.
	startRaw := req.RecurrenceRule.StartTime
	if startRaw == "" {
		startRaw = req.StartTime
	}
	endRaw := req.RecurrenceRule.EndTime
	if endRaw == "" {
		endRaw = req.EndTime
	}

	start, err := parseTimeOfDay(startRaw)
	if err != nil {
		return RecurrenceRule{}, fmt.Errorf("invalid rule start time %q", startRaw)
	}
	end, err := parseTimeOfDay(endRaw)
	if err != nil {
		return RecurrenceRule{}, fmt.Errorf("invalid rule end time %q", endRaw)
	}

	rule := RecurrenceRule{DayOfWeek: day, StartTime: start, EndTime: end}
	if req.RecurrenceRule.RepeatUntilDate != "" {
		until, err := time.ParseInLocation(dateLayout, req.RecurrenceRule.RepeatUntilDate, time.Local)
		if err != nil {
			return RecurrenceRule{}, fmt.Errorf("repeat-until date must be in YYYY-MM-DD format")
		}
		rule.RepeatUntil = &until
	}
	return rule, nil
}

func parseDateTime(s string) (time.Time, error) {
	if t, err := time.ParseInLocation(dateTimeLayout, s, time.Local); err == nil {
		return t, nil
	}
	return time.ParseInLocation(dateTimeShortLayout, s, time.Local)
}

func parseTimeOfDay(s string) (time.Time, error) {
	if t, err := time.Parse(timeOfDayLayout, s); err == nil {
		return t, nil
	}
	return time.Parse("15:04", s)
}

func eventToDTO(e Event) EventDTO {
	dto := EventDTO{
		ID:        e.ID.String(),
		Title:     e.Title,
		StartDate: e.StartDate.Format(dateTimeLayout),
		EndDate:   e.EndDate.Format(dateTimeLayout),
	}
	if e.RuleID != nil {
		ruleID := e.RuleID.String()
		dto.RuleID = &ruleID
	}
	return dto
}

func eventsToDTOs(events []Event) []EventDTO {
	dtos := make([]EventDTO, 0, len(events))
	for _, e := range events {
		dtos = append(dtos, eventToDTO(e))
	}
	return dtos
}
