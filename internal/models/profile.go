package models

import (
	"time"
)

type AccountType string

const (
	AccountPublic  AccountType = "public"
	AccountPrivate AccountType = "private"
)

// IsPrivate derives the privacy toggle state from the account type.
func (t AccountType) IsPrivate() bool {
	return t == AccountPrivate
}

type SocialStats struct {
	Followers int `json:"followers"`
	Following int `json:"following"`
	Posts     int `json:"posts"`
}

type Profile struct {
	Username      string      `json:"username"`
	Name          string      `json:"name"`
	Bio           string      `json:"bio"`
	AccountType   AccountType `json:"account_type"`
	ProfilePicURL string      `json:"profile_pic_url"`
	BannerPicURL  string      `json:"banner_pic_url"`
	SocialStats   SocialStats `json:"social_stats"`
	CreatedAt     time.Time   `json:"created_at"`
}

// ProfileUpdate is the payload submitted on profile save. Image URLs are
// filled in only after all uploads resolve.
type ProfileUpdate struct {
	Name          string `json:"name"`
	Username      string `json:"username"`
	Bio           string `json:"bio"`
	ProfilePicURL string `json:"profile_pic_url"`
	BannerPicURL  string `json:"banner_pic_url"`
}

// FollowRequest is a pending follow request as listed by the backend. The
// backend stays the source of truth; the local list is only a working copy.
type FollowRequest struct {
	RequesterID string    `json:"requester_id"`
	Username    string    `json:"username"`
	Name        string    `json:"name"`
	RequestedAt time.Time `json:"requested_at"`
}

// UploadTicket is a one-time signed upload descriptor for direct image upload
// to the external media storage.
type UploadTicket struct {
	CloudName string `json:"cloud_name"`
	APIKey    string `json:"api_key"`
	Timestamp int64  `json:"timestamp"`
	Signature string `json:"signature"`
	Folder    string `json:"folder"`
}
