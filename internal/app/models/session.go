package models

// Session is the authenticated caller resolved from a verified session token.
type Session struct {
	UserID    string `json:"userId"`
	SessionID string `json:"sessionId"`
	Role      string `json:"role"`
	OrgID     string `json:"orgId,omitempty"`
	Email     string `json:"email,omitempty"`
}

func (s *Session) IsStaff() bool {
	return s.Role == "agent" || s.Role == "admin" || s.Role == "superadmin"
}

func (s *Session) IsSuperadmin() bool {
	return s.Role == "superadmin"
}

// CanManageOrg reports whether the session is staff of orgID or a superadmin.
func (s *Session) CanManageOrg(orgID string) bool {
	if s.IsSuperadmin() {
		return true
	}
	return s.IsStaff() && s.OrgID != "" && s.OrgID == orgID
}
