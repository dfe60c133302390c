package model

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type BlogInput struct {
	Title     string `json:"title"`
	Slug      string `json:"slug"`
	Excerpt   string `json:"excerpt"`
	Content   string `json:"content"`
	Category  string `json:"category"`
	ImageURL  string `json:"image_url"`
	Published *bool  `json:"published"`
}

type PracticeAreaInput struct {
	Title        string `json:"title"`
	Slug         string `json:"slug"`
	Summary      string `json:"summary"`
	Description  string `json:"description"`
	IconURL      string `json:"icon_url"`
	DisplayOrder int    `json:"display_order"`
}

type TeamMemberInput struct {
	Name         string `json:"name"`
	Position     string `json:"position"`
	Bio          string `json:"bio"`
	PhotoURL     string `json:"photo_url"`
	Email        string `json:"email"`
	DisplayOrder int    `json:"display_order"`
}

type PageInput struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

type SubscribeRequest struct {
	Email string `json:"email"`
}

type InquiryInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

type InquiryStatusInput struct {
	Status string `json:"status"`
}

// BlogFilter carries the list parameters that also form the cache key.
type BlogFilter struct {
	Category      string
	Page          int
	Limit         int
	PublishedOnly bool
}

func (f BlogFilter) Normalize() BlogFilter {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 10
	}
	return f
}
