// Package visibility holds the cross-cutting rules deciding what a caller
// may see or mutate. Handlers consult it instead of re-implementing the
// checks per resource.
package visibility

import (
	"github.com/maelvns/featherpost-be/internal/models"
	"github.com/maelvns/featherpost-be/internal/store"
)

// Mask is the sentinel written over fields the viewer may not see.
const Mask = "*"

// MaskUser returns a copy of u fit for the given viewer: the password is
// always masked and the email is masked unless the viewer is the subject.
func MaskUser(u *models.User, viewerID int64) *models.User {
	if u == nil {
		return nil
	}
	masked := *u
	masked.Password = Mask
	masked.PasswordHash = ""
	if masked.ID != viewerID {
		masked.Email = Mask
	}
	return &masked
}

// MaskMessage returns a copy of m with its embedded owner masked for the
// given viewer.
func MaskMessage(m *models.Message, viewerID int64) *models.Message {
	if m == nil {
		return nil
	}
	masked := *m
	masked.User = MaskUser(m.User, viewerID)
	return &masked
}

// CanEditProfile reports whether the caller may write the subject's profile.
// Everyone may read any profile; only the owner may write it.
func CanEditProfile(callerID, subjectID int64) bool {
	return callerID == subjectID
}

// CanModifyMessage reports whether the caller may update or delete m.
func CanModifyMessage(m *models.Message, callerID int64) bool {
	return m != nil && m.User != nil && m.User.ID == callerID
}

// CanViewMessagesOf reports whether the caller may list the target's
// messages: always for their own, otherwise only when following the target.
func CanViewMessagesOf(follows store.FollowStore, callerID, targetID int64) (bool, error) {
	if callerID == targetID {
		return true, nil
	}
	return follows.IsFollowing(callerID, targetID)
}
