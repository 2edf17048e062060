package domain

import "time"

// Post is the publishing unit visuals are rendered for.
type Post struct {
	ID          string     `json:"id"`
	CompanyID   string     `json:"company_id"`
	Title       string     `json:"title"`
	Platform    string     `json:"platform"`
	PostType    string     `json:"post_type"`
	ScheduledAt *time.Time `json:"scheduled_at,omitempty"`
}

// Brief is the internal creative brief of a content plan.
type Brief struct {
	Hook       string `json:"hook"`
	KeyMessage string `json:"key_message"`
	CTA        string `json:"cta"`
}

// ContentOutput is the generated copy and image ideas stored for a post.
type ContentOutput struct {
	Brief          Brief        `json:"internal_brief"`
	PrimaryCaption string       `json:"primary_caption"`
	Hashtags       []string     `json:"hashtags"`
	Plans          []VisualPlan `json:"image_ideas"`
	Version        int          `json:"version"`
}

// RenderContext is everything a render pass needs for one post. Brand and
// Output are nil when the company has no brand kit or no content plan yet.
type RenderContext struct {
	Post   Post
	Brand  *BrandProfile
	Output *ContentOutput
}

// PostAsset records a rendered file attached to a post.
type PostAsset struct {
	ID        string    `json:"id"`
	PostID    string    `json:"post_id"`
	FileName  string    `json:"file_name"`
	FileURL   string    `json:"file_url"`
	FileType  string    `json:"file_type"`
	Version   int       `json:"version"`
	CreatedAt time.Time `json:"created_at"`
}
