// Package domain contains the core data types for the Circle Hub application.
// This package has no dependencies beyond uuid and is imported by every other
// internal package (repo, catalog, search, service, handler).
package domain

import (
	"strings"

	"github.com/google/uuid"
)

// Club is one entry in the directory describing a student club.
// Key is the stable public identifier used in URLs. ID is a surrogate key
// assigned by the Postgres store and is the zero UUID for file-backed data.
//
// A Club is treated as an immutable value once it enters a catalog.
type Club struct {
	ID           uuid.UUID `json:"-"`
	Key          string    `json:"key"`
	Name         string    `json:"name"`
	Verified     bool      `json:"verified"`
	ProfileImage string    `json:"profile_image,omitempty"`
	Affiliation  string    `json:"affiliation,omitempty"`
	Tags         []string  `json:"tags,omitempty"`

	Activity    ActivityDetails   `json:"activity"`
	Members     MemberComposition `json:"members"`
	Links       ExternalLinks     `json:"links"`
	Recruitment RecruitmentInfo   `json:"recruitment"`

	LastUpdate string `json:"last_update,omitempty"`

	// SecretDescription is searchable but never rendered.
	SecretDescription string `json:"secret_description,omitempty"`
}

// ActivityDetails describes what a club does and what joining costs.
type ActivityDetails struct {
	Summary         string `json:"summary,omitempty"`
	Location        string `json:"location,omitempty"`
	Frequency       string `json:"frequency,omitempty"`
	Fee             string `json:"fee,omitempty"`
	Record          string `json:"record,omitempty"`
	Meal            string `json:"meal,omitempty"`
	MembershipFee   string `json:"membership_fee,omitempty"`
	InitialCost     string `json:"initial_cost,omitempty"`
	FeelingPositive string `json:"feeling_positive,omitempty"`
	FeelingNegative string `json:"feeling_negative,omitempty"`
}

// MemberComposition is the self-reported make-up of a club's membership.
// GradeLevels and Belonging are free-form label → value maps.
type MemberComposition struct {
	TotalMembers string            `json:"total_members,omitempty"`
	GradeLevels  map[string]string `json:"grade_levels,omitempty"`
	Male         string            `json:"male,omitempty"`
	Female       string            `json:"female,omitempty"`
	Belonging    map[string]string `json:"belonging,omitempty"`
	FoundingYear string            `json:"founding_year,omitempty"`
}

// ExternalLinks holds a club's social and web presence.
type ExternalLinks struct {
	Instagram string `json:"instagram,omitempty"`
	LINE      string `json:"line,omitempty"`
	X         string `json:"x,omitempty"`
	Website   string `json:"website,omitempty"`
	Facebook  string `json:"facebook,omitempty"`
	YouTube   string `json:"youtube,omitempty"`
}

// RecruitmentInfo is either a free-text note or a structured welcome schedule.
type RecruitmentInfo struct {
	Text            string `json:"text,omitempty"`
	WelcomeSchedule string `json:"welcome_schedule,omitempty"`
}

// IsZero reports whether no recruitment information was provided.
func (r RecruitmentInfo) IsZero() bool {
	return r.Text == "" && r.WelcomeSchedule == ""
}

// HasTags reports whether the club carries at least one non-empty tag.
func (c Club) HasTags() bool {
	for _, t := range c.Tags {
		if strings.TrimSpace(t) != "" {
			return true
		}
	}
	return false
}

// HasTag reports whether tag is one of the club's tags (exact match).
func (c Club) HasTag(tag string) bool {
	for _, t := range c.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// SearchableText joins the fields free-text search looks at: name,
// affiliation, tags, summary, location and the secret description.
// Empty parts are skipped. The result is not case-folded; the search
// package folds it once per catalog.
func (c Club) SearchableText() string {
	parts := []string{
		c.Name,
		c.Affiliation,
		strings.Join(c.Tags, " "),
		c.Activity.Summary,
		c.Activity.Location,
		c.SecretDescription,
	}
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, " ")
}
