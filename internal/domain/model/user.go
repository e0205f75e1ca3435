package model

import "time"

// User is the full profile document as stored. Relationship data
// (outbound likes, received likes, matches) lives in its own tables
// and is never embedded here.
type User struct {
	ID                string
	FullName          string
	Email             string
	DateOfBirth       string // DD/MM/YYYY
	Gender            string
	Orientation       string
	DatingPreferences []string
	Location          string
	Introduction      string
	Photos            []string
	ProfilePhotos     []string
	CreatedAt         time.Time
}

// PublicProfile is the subset of a profile shown to other users in
// likes inboxes and match lists.
type PublicProfile struct {
	ID            string
	FullName      string
	ProfilePhotos []string
	Introduction  string
	Gender        string
	DateOfBirth   string
	Orientation   string
}

func (u User) Public() PublicProfile {
	return PublicProfile{
		ID:            u.ID,
		FullName:      u.FullName,
		ProfilePhotos: u.ProfilePhotos,
		Introduction:  u.Introduction,
		Gender:        u.Gender,
		DateOfBirth:   u.DateOfBirth,
		Orientation:   u.Orientation,
	}
}
