package models

import (
	"time"

	dbmodels "github.com/circleshare/circleshare/circleshare/database/models"
)

// APIResponse is the standard envelope for every JSON response.
type APIResponse struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	Error     *APIError   `json:"error,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

type APIError struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

func NewSuccessResponse(data interface{}, message string) *APIResponse {
	return &APIResponse{
		Success:   true,
		Message:   message,
		Data:      data,
		Timestamp: time.Now(),
	}
}

func NewErrorResponse(code, message string, details map[string]string) *APIResponse {
	return &APIResponse{
		Success: false,
		Error: &APIError{
			Code:    code,
			Message: message,
			Details: details,
		},
		Timestamp: time.Now(),
	}
}

// ItemView is the public projection of an item.
type ItemView struct {
	PublicID           string     `json:"public_id"`
	Name               string     `json:"name"`
	Description        string     `json:"description,omitempty"`
	Category           string     `json:"category,omitempty"`
	OwnerName          string     `json:"owner_name,omitempty"`
	IsGiveaway         bool       `json:"is_giveaway"`
	GiveawayVisibility string     `json:"giveaway_visibility,omitempty"`
	ClaimStatus        string     `json:"claim_status,omitempty"`
	ClaimedAt          *time.Time `json:"claimed_at,omitempty"`
	PhotoURL           string     `json:"photo_url,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
}

func NewItemView(item *dbmodels.Item, photoURL string) *ItemView {
	view := &ItemView{
		PublicID:           item.PublicID,
		Name:               item.Name,
		Description:        item.Description,
		Category:           item.Category,
		IsGiveaway:         item.IsGiveaway,
		GiveawayVisibility: string(item.GiveawayVisibility),
		ClaimStatus:        string(item.ClaimStatus),
		ClaimedAt:          item.ClaimedAt,
		PhotoURL:           photoURL,
		CreatedAt:          item.CreatedAt,
	}
	if item.Owner != nil {
		view.OwnerName = item.Owner.FullName()
	}
	return view
}

// InterestView is one entry of an item's interest pool, visible to the owner.
type InterestView struct {
	MemberID   int64     `json:"member_id"`
	MemberName string    `json:"member_name,omitempty"`
	Message    string    `json:"message,omitempty"`
	Selected   bool      `json:"selected"`
	CreatedAt  time.Time `json:"created_at"`
}

func NewInterestView(interest *dbmodels.GiveawayInterest) *InterestView {
	view := &InterestView{
		MemberID:  interest.MemberID,
		Selected:  interest.Status == dbmodels.InterestStatusSelected,
		CreatedAt: interest.CreatedAt,
	}
	if interest.Message.Valid {
		view.Message = interest.Message.String
	}
	if interest.Member != nil {
		view.MemberName = interest.Member.FullName()
	}
	return view
}
