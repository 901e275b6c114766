package dto

// DailyCount is one point of the posts-per-day trend, date formatted as
// 2006-01-02, ordered ascending.
type DailyCount struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

type StatsResponse struct {
	Users       int64        `json:"users"`
	Confessions int64        `json:"confessions"`
	Comments    int64        `json:"comments"`
	Likes       int64        `json:"likes"`
	PostsPerDay []DailyCount `json:"posts_per_day"`
}
