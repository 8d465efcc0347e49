package models

import "time"

type GroupKind string

const (
	KindClub    GroupKind = "club"
	KindThunder GroupKind = "thunder"
)

func (k GroupKind) IsValid() bool {
	return k == KindClub || k == KindThunder
}

// GroupDetail describes a club (persistent) or a thunder (one-off meetup).
// Location and MeetingTime are only meaningful for thunders.
type GroupDetail struct {
	ID          string    `json:"id"`
	Kind        GroupKind `json:"kind"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	Category    string    `json:"category,omitempty"`
	Location    string    `json:"location,omitempty"`
	MeetingTime time.Time `json:"meetingTime,omitempty"`
	MaxMembers  int       `json:"maxMembers,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}
