package history

import "time"

type QueryEntry struct {
	Query   string    `json:"query"`
	Total   int       `json:"total"`
	Count   int       `json:"count"`
	LastRun time.Time `json:"last_run"`
}

type ArticleEntry struct {
	ID       int64     `json:"id"`
	Title    string    `json:"title"`
	SiteName string    `json:"site_name"`
	PageURL  string    `json:"page_url"`
	Query    string    `json:"query"`
	OpenedAt time.Time `json:"opened_at"`
}
