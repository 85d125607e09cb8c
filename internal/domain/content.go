package domain

import "time"

type BlogPost struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Excerpt     string    `json:"excerpt"`
	Content     string    `json:"content"`
	Author      string    `json:"author"`
	PublishDate time.Time `json:"publish_date"`
	ReadTime    string    `json:"read_time"`
	Tags        []string  `json:"tags"`
	Featured    bool      `json:"featured"`
	Published   bool      `json:"published"`
}

type FAQ struct {
	ID        string `json:"id"`
	Question  string `json:"question"`
	Answer    string `json:"answer"`
	Category  string `json:"category"`
	Order     int    `json:"order"`
	Published bool   `json:"published"`
}

type Testimonial struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Role     string    `json:"role"`
	Company  string    `json:"company"`
	Rating   int       `json:"rating"`
	Comment  string    `json:"comment"`
	Avatar   string    `json:"avatar"`
	Verified bool      `json:"verified"`
	Date     time.Time `json:"date"`
}

type SiteStats struct {
	TotalDownloads  int64 `json:"total_downloads"`
	ActiveUsers     int64 `json:"active_users"`
	SuccessRate     int   `json:"success_rate"`
	CountriesServed int   `json:"countries_served"`
}

type ContactMessage struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

type NewsletterSubscription struct {
	Email        string    `json:"email"`
	SubscribedAt time.Time `json:"subscribed_at"`
}
