// Package rostercheck drives a running activities service through full
// signup/unregister cycles and verifies the registry observed over HTTP
// stays consistent.
package rostercheck

import "time"

// Config holds configuration for a roster check run.
type Config struct {
	BaseURL     string        // Base URL of the service
	Activity    string        // Target activity; empty picks the first one listed
	NumStudents int           // Number of synthetic students to enroll
	Workers     int           // Number of concurrent workers
	Timeout     time.Duration // HTTP request timeout
	KeepRoster  bool          // Skip the unregister phase, leaving students enrolled
	Verbose     bool          // Enable verbose logging
}

// Activity mirrors one record of the GET /activities response.
type Activity struct {
	Description     string   `json:"description"`
	Schedule        string   `json:"schedule"`
	MaxParticipants int      `json:"max_participants"`
	Participants    []string `json:"participants"`
}

// MessageResponse mirrors the success envelope of mutation endpoints.
type MessageResponse struct {
	Message string `json:"message"`
}

// DetailResponse mirrors the failure envelope of mutation endpoints.
type DetailResponse struct {
	Detail string `json:"detail"`
}

// Stats holds run statistics.
type Stats struct {
	StudentsGenerated int
	SignupsOK         int
	SignupsFailed     int
	UnregistersOK     int
	UnregistersFailed int
	StartTime         time.Time
	EndTime           time.Time
	Duration          time.Duration
}
