package dto

// AvailabilitySlot is one weekly availability entry on a profile.
type AvailabilitySlot struct {
	Day      string `json:"day" validate:"required,oneof=monday tuesday wednesday thursday friday saturday sunday"`
	TimeSlot string `json:"time_slot" validate:"required,oneof=morning midday afternoon evening"`
}

type UpdateAvailabilityRequest struct {
	Availability []AvailabilitySlot `json:"availability" validate:"required,dive"`
}
