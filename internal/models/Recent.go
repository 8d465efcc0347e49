package models

import "time"

type RecentClub struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	ImageURL    string `json:"imageUrl"`
	Category    string `json:"category,omitempty"`
	MemberCount int    `json:"memberCount,omitempty"`
}

func (c RecentClub) RecentID() string { return c.ID }

type RecentThunder struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	ImageURL    string    `json:"imageUrl"`
	Location    string    `json:"location,omitempty"`
	MeetingTime time.Time `json:"meetingTime"`
}

func (t RecentThunder) RecentID() string { return t.ID }
