package api

import "time"

// Profile is the full public profile of an account.
type Profile struct {
	ID               string `json:"id"`
	Username         string `json:"username"`
	FullName         string `json:"full_name"`
	Biography        string `json:"biography"`
	ExternalURL      string `json:"external_url"`
	FollowerCount    int    `json:"follower_count"`
	FollowingCount   int    `json:"following_count"`
	MediaCount       int    `json:"media_count"`
	IsPrivate        bool   `json:"is_private"`
	IsVerified       bool   `json:"is_verified"`
	IsBusiness       bool   `json:"is_business"`
	BusinessCategory string `json:"business_category,omitempty"`
	PublicEmail      string `json:"public_email,omitempty"`
	PublicPhone      string `json:"public_phone,omitempty"`
	ProfilePicURL    string `json:"profile_pic_url"`
	FollowedByViewer bool   `json:"followed_by_viewer"`
}

// User is the short form of an account used in lists, with the contact
// fields filled in only by UserByID.
type User struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	FullName    string `json:"full_name"`
	PublicEmail string `json:"public_email,omitempty"`
	PublicPhone string `json:"public_phone,omitempty"`
}

// Location is the place attached to a post.
type Location struct {
	Name    string  `json:"name"`
	Address string  `json:"address"`
	City    string  `json:"city"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
}

// MediaType values reported for posts and stories.
const (
	MediaPhoto    = "photo"
	MediaVideo    = "video"
	MediaCarousel = "carousel"
)

// Post is a single media post.
type Post struct {
	ID                   string    `json:"id"`
	Code                 string    `json:"code"`
	MediaType            string    `json:"media_type"`
	Caption              string    `json:"caption"`
	AccessibilityCaption string    `json:"accessibility_caption,omitempty"`
	TakenAt              time.Time `json:"taken_at"`
	LikeCount            int       `json:"like_count"`
	CommentCount         int       `json:"comment_count"`
	Location             *Location `json:"location,omitempty"`
	Owner                User      `json:"owner"`
	UserTags             []User    `json:"usertags,omitempty"`
	MediaURLs            []string  `json:"media_urls"`
}

// Comment is a comment left on a post.
type Comment struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	User      User      `json:"user"`
	CreatedAt time.Time `json:"created_at"`
}

// Story is a single story item.
type Story struct {
	ID        string    `json:"id"`
	MediaType string    `json:"media_type"`
	URL       string    `json:"url"`
	TakenAt   time.Time `json:"taken_at"`
}

// page is one slice of a cursor-paginated list.
type page[T any] struct {
	Items      []T    `json:"items"`
	NextCursor string `json:"next_cursor"`
}

type errorBody struct {
	Message string `json:"message"`
}
