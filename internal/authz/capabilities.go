package authz

import (
	"github.com/caioalmeida/mediateam-backend/pkg/enums"
)

// Capabilities enumerates what the caller's role and status allow. The
// frontend renders its menus from this, and middleware enforces the same
// rules server side.
type Capabilities struct {
	ViewRosters     bool `json:"view_rosters"`
	RequestSwap     bool `json:"request_swap"`
	SubmitFeedback  bool `json:"submit_feedback"`
	ManageContent   bool `json:"manage_content"`
	ReviewSwaps     bool `json:"review_swaps"`
	ApproveUsers    bool `json:"approve_users"`
	ManageUserRoles bool `json:"manage_user_roles"`
	DeleteProfiles  bool `json:"delete_profiles"`
}

// For derives capabilities from a role/status pair. A profile that is not
// approved has no capabilities at all, whatever its role.
func For(role enums.UserRole, status enums.UserStatus) Capabilities {
	if status != enums.UserStatusApproved {
		return Capabilities{}
	}

	caps := Capabilities{
		ViewRosters:    true,
		RequestSwap:    true,
		SubmitFeedback: true,
	}

	if role.IsApprover() {
		caps.ManageContent = true
		caps.ReviewSwaps = true
		caps.ApproveUsers = true
	}

	if role == enums.UserRoleModerator {
		caps.ManageUserRoles = true
		caps.DeleteProfiles = true
	}

	return caps
}
