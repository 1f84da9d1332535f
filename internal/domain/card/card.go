package card

import "time"

type Card struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Link  string `json:"link"`
	Owner string `json:"owner"`
	// Likes is a set: every identity appears at most once, order carries no meaning.
	Likes     []string  `json:"likes"`
	CreatedAt time.Time `json:"createdAt"`
}

type CreateParams struct {
	Name  string `validate:"required,min=2,max=30"`
	Link  string `validate:"required,httpurl"`
	Owner string `validate:"required,len=24,hexadecimal"`
}

type CreateCardRequest struct {
	Name string `json:"name" binding:"required,min=2,max=30"`
	Link string `json:"link" binding:"required,httpurl"`
}

// HasLike reports whether userID is in the liker set.
func (c Card) HasLike(userID string) bool {
	for _, id := range c.Likes {
		if id == userID {
			return true
		}
	}
	return false
}
