package models

import "strconv"

type Membership struct {
	MemberID int64  `json:"memberId"`
	Nickname string `json:"nickname"`
	Role     Role   `json:"role"`
}

type FormattedMember struct {
	UserID   string `json:"userId"`
	Nickname string `json:"nickname"`
}

// SeparatedMembers is the role-partitioned view of a roster as seen by one viewer.
type SeparatedMembers struct {
	Admins       []FormattedMember `json:"admins"`
	Members      []FormattedMember `json:"members"`
	PendingUsers []FormattedMember `json:"pendingUsers"`
	IsAdmin      bool              `json:"isAdmin"`
	IsMember     bool              `json:"isMember"`
	IsPending    bool              `json:"isPending"`
}

func formatMember(m Membership) FormattedMember {
	return FormattedMember{
		UserID:   strconv.FormatInt(m.MemberID, 10),
		Nickname: m.Nickname,
	}
}

// SeparateMembersByRole splits roster into admins, members and pending users,
// keeping the roster order inside each partition, and flags which partition
// viewerID belongs to. Entries with an unknown role are dropped.
//
// An id listed under two roles is classified once per occurrence; the caller
// is responsible for rejecting such rosters if it cares.
func SeparateMembersByRole(roster []Membership, viewerID string) SeparatedMembers {
	out := SeparatedMembers{
		Admins:       make([]FormattedMember, 0),
		Members:      make([]FormattedMember, 0),
		PendingUsers: make([]FormattedMember, 0),
	}

	for _, m := range roster {
		fm := formatMember(m)
		isViewer := fm.UserID == viewerID

		switch m.Role {
		case RoleAdmin:
			out.Admins = append(out.Admins, fm)
			out.IsAdmin = out.IsAdmin || isViewer
		case RoleMember:
			out.Members = append(out.Members, fm)
			out.IsMember = out.IsMember || isViewer
		case RolePending:
			out.PendingUsers = append(out.PendingUsers, fm)
			out.IsPending = out.IsPending || isViewer
		case RoleUnknown:
			continue
		default:
			continue
		}
	}

	return out
}

// MemberIDs returns the user ids of a partition in order.
func MemberIDs(members []FormattedMember) []string {
	ids := make([]string, len(members))
	for i, m := range members {
		ids[i] = m.UserID
	}
	return ids
}
