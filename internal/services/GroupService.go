package services

import (
	"context"
	"errors"
	"fmt"
	"github.com/google/uuid"
	"meetup/internal/models"
	"meetup/internal/providers"
	"meetup/internal/repositories"
	"sync"
	"time"
)

type GroupServiceInterface interface {
	ListGroups(ctx context.Context, kind models.GroupKind) ([]*models.GroupDetail, error)
	FetchDetail(ctx context.Context, groupID string) (*models.GroupDetail, error)
	FetchRoster(ctx context.Context, groupID string) ([]models.Membership, error)
	Members(ctx context.Context, groupID, viewerID string) (models.SeparatedMembers, error)
	CreateGroup(ctx context.Context, detail *models.GroupDetail, creatorID int64, nickname string) (*models.GroupDetail, error)
	Join(ctx context.Context, groupID string, memberID int64, nickname string) (models.Role, error)
	Approve(ctx context.Context, groupID string, actorID, memberID int64) error
	Reject(ctx context.Context, groupID string, actorID, memberID int64) error
	Promote(ctx context.Context, groupID string, actorID, memberID int64) error
	Leave(ctx context.Context, groupID string, memberID int64) error
	Ban(ctx context.Context, groupID string, actorID, memberID int64) error
}

type GroupService struct {
	repo   repositories.GroupRepository
	cache  providers.CacheProviderInterface
	logger providers.Logger
	// serializes roster mutations so capacity and last-admin checks hold
	mu  sync.Mutex
	now func() time.Time
}

func NewGroupService(repo repositories.GroupRepository, cache providers.CacheProviderInterface, logger providers.Logger) GroupServiceInterface {
	return &GroupService{
		repo:   repo,
		cache:  cache,
		logger: logger,
		now:    time.Now,
	}
}

func rosterKey(groupID string) string {
	return "roster:" + groupID
}

func (gs *GroupService) ListGroups(ctx context.Context, kind models.GroupKind) ([]*models.GroupDetail, error) {
	if !kind.IsValid() {
		return nil, ErrInvalidKind
	}
	return gs.repo.ListGroups(ctx, kind)
}

func (gs *GroupService) FetchDetail(ctx context.Context, groupID string) (*models.GroupDetail, error) {
	return gs.repo.GetGroup(ctx, groupID)
}

// FetchRoster returns the roster of groupID in join order, served from the
// cache when possible. A miss is filled under gs.mu so a mutation cannot
// invalidate the entry between the read and the store.
func (gs *GroupService) FetchRoster(ctx context.Context, groupID string) ([]models.Membership, error) {
	key := rosterKey(groupID)
	var cached []models.Membership
	if providers.LoadJSON(gs.cache, key, &cached) {
		return cached, nil
	}

	gs.mu.Lock()
	defer gs.mu.Unlock()

	if providers.LoadJSON(gs.cache, key, &cached) {
		return cached, nil
	}
	if _, err := gs.repo.GetGroup(ctx, groupID); err != nil {
		return nil, err
	}
	roster, err := gs.repo.ListMembers(ctx, groupID)
	if err != nil {
		return nil, err
	}

	providers.StoreJSON(gs.cache, key, roster)
	return roster, nil
}

func (gs *GroupService) Members(ctx context.Context, groupID, viewerID string) (models.SeparatedMembers, error) {
	roster, err := gs.FetchRoster(ctx, groupID)
	if err != nil {
		return models.SeparatedMembers{}, err
	}
	return models.SeparateMembersByRole(roster, viewerID), nil
}

func (gs *GroupService) CreateGroup(ctx context.Context, detail *models.GroupDetail, creatorID int64, nickname string) (*models.GroupDetail, error) {
	if !detail.Kind.IsValid() {
		return nil, ErrInvalidKind
	}

	g := *detail
	g.ID = uuid.NewString()
	g.CreatedAt = gs.now().UTC()

	creator := models.Membership{MemberID: creatorID, Nickname: nickname, Role: models.RoleAdmin}
	if err := gs.repo.CreateGroup(ctx, &g, creator); err != nil {
		return nil, fmt.Errorf("create %s: %w", g.Kind, err)
	}

	gs.logger.Infof(providers.TypePost, "Created %s %s by %d", g.Kind, g.ID, creatorID)
	return &g, nil
}

// Join adds memberID to the roster. Clubs require approval, so the member
// starts as pending; thunders admit directly while seats remain.
func (gs *GroupService) Join(ctx context.Context, groupID string, memberID int64, nickname string) (models.Role, error) {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	group, err := gs.repo.GetGroup(ctx, groupID)
	if err != nil {
		return models.RoleUnknown, err
	}

	banned, err := gs.repo.IsBanned(ctx, groupID, memberID)
	if err != nil {
		return models.RoleUnknown, err
	}
	if banned {
		return models.RoleUnknown, ErrBanned
	}

	roster, err := gs.repo.ListMembers(ctx, groupID)
	if err != nil {
		return models.RoleUnknown, err
	}
	seated := 0
	for _, m := range roster {
		if m.MemberID == memberID {
			return models.RoleUnknown, ErrAlreadyMember
		}
		if m.Role == models.RoleAdmin || m.Role == models.RoleMember {
			seated++
		}
	}

	role := models.RolePending
	if group.Kind == models.KindThunder {
		if group.MaxMembers > 0 && seated >= group.MaxMembers {
			return models.RoleUnknown, ErrGroupFull
		}
		role = models.RoleMember
	}

	err = gs.repo.UpsertMember(ctx, groupID, models.Membership{MemberID: memberID, Nickname: nickname, Role: role})
	if err != nil {
		return models.RoleUnknown, err
	}
	gs.invalidate(groupID)
	gs.logger.Infof(providers.TypePost, "Member %d joined %s as %s", memberID, groupID, role)
	return role, nil
}

func (gs *GroupService) requireAdmin(ctx context.Context, groupID string, actorID int64) error {
	actor, err := gs.repo.GetMember(ctx, groupID, actorID)
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrForbidden
	}
	if err != nil {
		return err
	}
	if actor.Role != models.RoleAdmin {
		return ErrForbidden
	}
	return nil
}

func (gs *GroupService) target(ctx context.Context, groupID string, memberID int64) (*models.Membership, error) {
	m, err := gs.repo.GetMember(ctx, groupID, memberID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrNotMember
	}
	return m, err
}

// transition moves memberID from one role to another on behalf of an admin.
func (gs *GroupService) transition(ctx context.Context, groupID string, actorID, memberID int64, from, to models.Role) error {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	if err := gs.requireAdmin(ctx, groupID, actorID); err != nil {
		return err
	}
	m, err := gs.target(ctx, groupID, memberID)
	if err != nil {
		return err
	}
	if m.Role != from {
		return ErrInvalidTransition
	}

	m.Role = to
	if err := gs.repo.UpsertMember(ctx, groupID, *m); err != nil {
		return err
	}
	gs.invalidate(groupID)
	gs.logger.Infof(providers.TypePost, "Member %d of %s moved %s -> %s by %d", memberID, groupID, from, to, actorID)
	return nil
}

func (gs *GroupService) Approve(ctx context.Context, groupID string, actorID, memberID int64) error {
	return gs.transition(ctx, groupID, actorID, memberID, models.RolePending, models.RoleMember)
}

func (gs *GroupService) Promote(ctx context.Context, groupID string, actorID, memberID int64) error {
	return gs.transition(ctx, groupID, actorID, memberID, models.RoleMember, models.RoleAdmin)
}

func (gs *GroupService) Reject(ctx context.Context, groupID string, actorID, memberID int64) error {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	if err := gs.requireAdmin(ctx, groupID, actorID); err != nil {
		return err
	}
	m, err := gs.target(ctx, groupID, memberID)
	if err != nil {
		return err
	}
	if m.Role != models.RolePending {
		return ErrInvalidTransition
	}
	if err := gs.repo.DeleteMember(ctx, groupID, memberID); err != nil {
		return err
	}
	gs.invalidate(groupID)
	gs.logger.Infof(providers.TypePost, "Join request of %d to %s rejected by %d", memberID, groupID, actorID)
	return nil
}

func (gs *GroupService) Leave(ctx context.Context, groupID string, memberID int64) error {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	if _, err := gs.repo.GetGroup(ctx, groupID); err != nil {
		return err
	}
	roster, err := gs.repo.ListMembers(ctx, groupID)
	if err != nil {
		return err
	}

	var self *models.Membership
	admins := 0
	for i := range roster {
		if roster[i].Role == models.RoleAdmin {
			admins++
		}
		if roster[i].MemberID == memberID {
			self = &roster[i]
		}
	}
	if self == nil {
		return ErrNotMember
	}
	if self.Role == models.RoleAdmin && admins == 1 {
		return ErrLastAdmin
	}

	if err := gs.repo.DeleteMember(ctx, groupID, memberID); err != nil {
		return err
	}
	gs.invalidate(groupID)
	gs.logger.Infof(providers.TypePost, "Member %d left %s", memberID, groupID)
	return nil
}

// Ban removes memberID and prevents them from joining again. Admins cannot
// be banned, including by themselves.
func (gs *GroupService) Ban(ctx context.Context, groupID string, actorID, memberID int64) error {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	if actorID == memberID {
		return ErrForbidden
	}
	if err := gs.requireAdmin(ctx, groupID, actorID); err != nil {
		return err
	}
	m, err := gs.target(ctx, groupID, memberID)
	if err != nil {
		return err
	}
	if m.Role == models.RoleAdmin {
		return ErrForbidden
	}

	if err := gs.repo.BanMember(ctx, groupID, memberID); err != nil {
		return err
	}
	gs.invalidate(groupID)
	gs.logger.Infof(providers.TypePost, "Member %d banned from %s by %d", memberID, groupID, actorID)
	return nil
}

func (gs *GroupService) invalidate(groupID string) {
	gs.cache.Del(rosterKey(groupID))
}
