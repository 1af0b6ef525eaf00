package handler

import (
	"github.com/pkordes/circlehub/internal/domain"
	"github.com/pkordes/circlehub/internal/querystate"
	"github.com/pkordes/circlehub/internal/service"
)

// ClubSummary is the card shown in lists, search results and the instant panel.
type ClubSummary struct {
	Key          string   `json:"key"`
	Name         string   `json:"name"`
	Verified     bool     `json:"verified"`
	ProfileImage string   `json:"profile_image,omitempty"`
	Affiliation  string   `json:"affiliation,omitempty"`
	Tags         []string `json:"tags"`
	Summary      string   `json:"summary,omitempty"`
	Location     string   `json:"location,omitempty"`
	Frequency    string   `json:"frequency,omitempty"`
	Href         string   `json:"href"`
}

// Chip is a tag filter toggle.
type Chip struct {
	Tag      string `json:"tag"`
	Selected bool   `json:"selected"`
	Href     string `json:"href"`
}

// ListingResponse is the body of GET /.
type ListingResponse struct {
	SelectedTags []string      `json:"selected_tags"`
	Clubs        []ClubSummary `json:"clubs"`
	Total        int           `json:"total"`
	Chips        []Chip        `json:"chips"`
}

// SearchResponse is the body of GET /search.
type SearchResponse struct {
	Query               string        `json:"query"`
	SelectedTags        []string      `json:"selected_tags"`
	Heading             string        `json:"heading"`
	Clubs               []ClubSummary `json:"clubs"`
	Total               int           `json:"total"`
	Chips               []Chip        `json:"chips"`
	SuggestionsDisabled bool          `json:"suggestions_disabled"`
}

// ClubDetail is the full profile. The secret description is never included.
type ClubDetail struct {
	Key          string                   `json:"key"`
	Name         string                   `json:"name"`
	Verified     bool                     `json:"verified"`
	ProfileImage string                   `json:"profile_image,omitempty"`
	Affiliation  string                   `json:"affiliation,omitempty"`
	Tags         []string                 `json:"tags"`
	Activity     domain.ActivityDetails   `json:"activity"`
	Members      domain.MemberComposition `json:"members"`
	Links        domain.ExternalLinks     `json:"links"`
	Recruitment  *domain.RecruitmentInfo  `json:"recruitment,omitempty"`
	LastUpdate   string                   `json:"last_update,omitempty"`
}

// RenderedHTML holds the sanitised HTML of the multi-line fields.
type RenderedHTML struct {
	Summary         string `json:"summary,omitempty"`
	Record          string `json:"record,omitempty"`
	FeelingPositive string `json:"feeling_positive,omitempty"`
	FeelingNegative string `json:"feeling_negative,omitempty"`
	Recruitment     string `json:"recruitment,omitempty"`
	WelcomeSchedule string `json:"welcome_schedule,omitempty"`
}

// DetailResponse is the body of GET /club/{key}.
type DetailResponse struct {
	Club    ClubDetail    `json:"club"`
	HTML    RenderedHTML  `json:"html"`
	Related []ClubSummary `json:"related"`
}

// SuggestResponse is the body of GET /suggest.
type SuggestResponse struct {
	// Seq echoes the caller's token so it can drop responses to older keystrokes.
	Seq         *int64        `json:"seq,omitempty"`
	Query       string        `json:"query"`
	Phase       string        `json:"phase"`
	Open        bool          `json:"open"`
	Results     []ClubSummary `json:"results"`
	Total       int           `json:"total"`
	ViewAllHref string        `json:"view_all_href"`
}

// TagsResponse is the body of GET /tags.
type TagsResponse struct {
	Tags []string `json:"tags"`
}

func clubToSummary(c domain.Club) ClubSummary {
	return ClubSummary{
		Key:          c.Key,
		Name:         c.Name,
		Verified:     c.Verified,
		ProfileImage: c.ProfileImage,
		Affiliation:  c.Affiliation,
		Tags:         nonNil(c.Tags),
		Summary:      c.Activity.Summary,
		Location:     c.Activity.Location,
		Frequency:    c.Activity.Frequency,
		Href:         querystate.ClubHref(c.Key),
	}
}

func clubsToSummaries(clubs []domain.Club) []ClubSummary {
	out := make([]ClubSummary, len(clubs))
	for i, c := range clubs {
		out[i] = clubToSummary(c)
	}
	return out
}

func chipsToResponse(chips []querystate.Chip) []Chip {
	out := make([]Chip, len(chips))
	for i, c := range chips {
		out[i] = Chip(c)
	}
	return out
}

func clubToDetail(c domain.Club) ClubDetail {
	d := ClubDetail{
		Key:          c.Key,
		Name:         c.Name,
		Verified:     c.Verified,
		ProfileImage: c.ProfileImage,
		Affiliation:  c.Affiliation,
		Tags:         nonNil(c.Tags),
		Activity:     c.Activity,
		Members:      c.Members,
		Links:        c.Links,
		LastUpdate:   c.LastUpdate,
	}
	if !c.Recruitment.IsZero() {
		r := c.Recruitment
		d.Recruitment = &r
	}
	return d
}

func detailToResponse(p service.DetailPage) DetailResponse {
	return DetailResponse{
		Club:    clubToDetail(p.Club),
		HTML:    RenderedHTML(p.HTML),
		Related: clubsToSummaries(p.Related),
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
