package repositories

import (
	"context"
	"errors"
	"meetup/internal/models"
)

var ErrNotFound = errors.New("not found")

// GroupRepository is the source of group details and rosters.
// ListMembers returns entries in join order; role changes keep the position.
type GroupRepository interface {
	CreateGroup(ctx context.Context, g *models.GroupDetail, creator models.Membership) error
	GetGroup(ctx context.Context, id string) (*models.GroupDetail, error)
	ListGroups(ctx context.Context, kind models.GroupKind) ([]*models.GroupDetail, error)
	ListMembers(ctx context.Context, groupID string) ([]models.Membership, error)
	GetMember(ctx context.Context, groupID string, memberID int64) (*models.Membership, error)
	UpsertMember(ctx context.Context, groupID string, m models.Membership) error
	DeleteMember(ctx context.Context, groupID string, memberID int64) error
	BanMember(ctx context.Context, groupID string, memberID int64) error
	IsBanned(ctx context.Context, groupID string, memberID int64) (bool, error)
	Close() error
}
