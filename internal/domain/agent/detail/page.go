package detail

import (
	"time"

	"voicehub/go_backend/internal/domain/agent"
)

// NoReviewsText is shown in place of the review list when it is empty.
const NoReviewsText = "No reviews yet - be the first to try this agent!"

// Page is the render model of the detail page.
type Page struct {
	State       State        `json:"state"`
	Agent       *AgentCard   `json:"agent,omitempty"`
	Reviews     []ReviewCard `json:"reviews"`
	EmptyText   string       `json:"empty_reviews_text,omitempty"`
	DemoRunning bool         `json:"demo_running"`
	Purchasing  bool         `json:"purchasing"`
}

type AgentCard struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Initials      string   `json:"initials"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Category      string   `json:"category"`
	CategoryLabel string   `json:"category_label"`
	Price         string   `json:"price"`
	Rating        string   `json:"rating"`
	ReviewCount   int      `json:"review_count"`
	DeliveryTime  int      `json:"delivery_time"`
	Languages     []string `json:"languages"`
	Specialties   []string `json:"specialties"`
	Available     bool     `json:"available"`
	AvatarURL     string   `json:"avatar_url,omitempty"`
}

type ReviewCard struct {
	ID        string    `json:"id"`
	Author    string    `json:"author"`
	Rating    int       `json:"rating"`
	Stars     [5]bool   `json:"stars"`
	Comment   string    `json:"comment,omitempty"`
	Date      string    `json:"date"`
	CreatedAt time.Time `json:"created_at"`
}

// Render snapshots the view into its render model.
func (v *View) Render() Page {
	v.mu.Lock()
	defer v.mu.Unlock()

	p := Page{
		State:       v.state,
		Reviews:     []ReviewCard{},
		DemoRunning: v.demoRunning,
		Purchasing:  v.purchasing,
	}
	if v.state != StateReady || v.agent == nil {
		return p
	}

	a := v.agent
	card := &AgentCard{
		ID:            a.ID,
		Name:          a.Name,
		Initials:      agent.Initials(a.Name),
		Title:         a.Title,
		Description:   a.Description,
		Category:      a.Category,
		CategoryLabel: agent.FormatCategory(a.Category),
		Price:         agent.FormatPrice(a.Price),
		Rating:        agent.FormatRating(a.Rating),
		ReviewCount:   a.ReviewCount,
		DeliveryTime:  a.DeliveryTime,
		Languages:     nonNil(a.Languages),
		Specialties:   nonNil(a.Specialties),
		Available:     a.IsOnline,
	}
	if a.AvatarURL != nil {
		card.AvatarURL = *a.AvatarURL
	}
	p.Agent = card

	for _, r := range v.reviews {
		rc := ReviewCard{
			ID:        r.ID,
			Author:    agent.ReviewerName(r),
			Rating:    r.Rating,
			Stars:     agent.Stars(r.Rating),
			Date:      r.CreatedAt.Format("Jan 2, 2006"),
			CreatedAt: r.CreatedAt,
		}
		if r.Comment != nil {
			rc.Comment = *r.Comment
		}
		p.Reviews = append(p.Reviews, rc)
	}
	if len(p.Reviews) == 0 {
		p.EmptyText = NoReviewsText
	}
	return p
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
