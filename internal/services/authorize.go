package services

import "github.com/josetomecore/P6-Quiz/internal/models"

type Decision int

const (
	Deny Decision = iota
	Allow
)

// AuthorizeTip allows admins and the tip's author. Anonymous tips
// (AuthorID 0) are admin-only since no user has ID 0.
func AuthorizeTip(user *Identity, tip *models.Tip) Decision {
	if user == nil || tip == nil {
		return Deny
	}
	if user.IsAdmin || tip.AuthorID == user.ID {
		return Allow
	}
	return Deny
}
