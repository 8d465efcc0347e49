package sqlite

import (
	"context"
	"meetup/internal/models"
	"meetup/internal/repositories"
	"meetup/internal/structures"
	"meetup/internal/testutil"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) *GroupRepo {
	t.Helper()
	repo, err := NewGroupRepo(filepath.Join(t.TempDir(), "groups.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func seedGroup(t *testing.T, repo *GroupRepo, id string, kind models.GroupKind) {
	t.Helper()
	g := &models.GroupDetail{
		ID:        id,
		Kind:      kind,
		Name:      "group " + id,
		Category:  "outdoor",
		CreatedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	require.NoError(t, repo.CreateGroup(context.Background(), g, models.Membership{MemberID: 1, Nickname: "owner", Role: models.RoleAdmin}))
}

func TestGroupRepo_CreateAndGet(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	meet := time.Date(2026, 5, 1, 18, 30, 0, 0, time.UTC)
	g := &models.GroupDetail{
		ID:          "t1",
		Kind:        models.KindThunder,
		Name:        "Friday run",
		Location:    "Riverside",
		MeetingTime: meet,
		MaxMembers:  4,
		CreatedAt:   time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, repo.CreateGroup(ctx, g, models.Membership{MemberID: 9, Nickname: "host", Role: models.RoleAdmin}))

	got, err := repo.GetGroup(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, models.KindThunder, got.Kind)
	assert.Equal(t, "Friday run", got.Name)
	assert.Equal(t, "Riverside", got.Location)
	assert.True(t, meet.Equal(got.MeetingTime))
	assert.Equal(t, 4, got.MaxMembers)

	roster, err := repo.ListMembers(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, []models.Membership{{MemberID: 9, Nickname: "host", Role: models.RoleAdmin}}, roster)
}

func TestGroupRepo_GetMissing(t *testing.T) {
	repo := newTestRepo(t)
	_, err := repo.GetGroup(context.Background(), "nope")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestGroupRepo_CreateDuplicateRollsBack(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	seedGroup(t, repo, "c1", models.KindClub)

	err := repo.CreateGroup(ctx, &models.GroupDetail{ID: "c1", Kind: models.KindClub, Name: "dup", CreatedAt: time.Now()},
		models.Membership{MemberID: 2, Nickname: "x", Role: models.RoleAdmin})
	assert.Error(t, err)

	_, err = repo.GetMember(ctx, "c1", 2)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestGroupRepo_ListGroupsByKind(t *testing.T) {
	repo := newTestRepo(t)
	seedGroup(t, repo, "c1", models.KindClub)
	seedGroup(t, repo, "c2", models.KindClub)
	seedGroup(t, repo, "t1", models.KindThunder)

	clubs, err := repo.ListGroups(context.Background(), models.KindClub)
	require.NoError(t, err)
	assert.Len(t, clubs, 2)

	thunders, err := repo.ListGroups(context.Background(), models.KindThunder)
	require.NoError(t, err)
	require.Len(t, thunders, 1)
	assert.Equal(t, "t1", thunders[0].ID)
}

func TestGroupRepo_RosterKeepsJoinOrderAcrossRoleChanges(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	seedGroup(t, repo, "c1", models.KindClub)

	require.NoError(t, repo.UpsertMember(ctx, "c1", models.Membership{MemberID: 5, Nickname: "e", Role: models.RolePending}))
	require.NoError(t, repo.UpsertMember(ctx, "c1", models.Membership{MemberID: 3, Nickname: "c", Role: models.RolePending}))
	require.NoError(t, repo.UpsertMember(ctx, "c1", models.Membership{MemberID: 5, Nickname: "e", Role: models.RoleMember}))

	roster, err := repo.ListMembers(ctx, "c1")
	require.NoError(t, err)
	require.Len(t, roster, 3)
	assert.Equal(t, int64(1), roster[0].MemberID)
	assert.Equal(t, int64(5), roster[1].MemberID)
	assert.Equal(t, models.RoleMember, roster[1].Role)
	assert.Equal(t, int64(3), roster[2].MemberID)
}

func TestGroupRepo_DeleteMember(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	seedGroup(t, repo, "c1", models.KindClub)
	require.NoError(t, repo.UpsertMember(ctx, "c1", models.Membership{MemberID: 2, Nickname: "b", Role: models.RoleMember}))

	require.NoError(t, repo.DeleteMember(ctx, "c1", 2))
	assert.ErrorIs(t, repo.DeleteMember(ctx, "c1", 2), repositories.ErrNotFound)
}

func TestGroupRepo_BanMember(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	seedGroup(t, repo, "c1", models.KindClub)
	require.NoError(t, repo.UpsertMember(ctx, "c1", models.Membership{MemberID: 2, Nickname: "b", Role: models.RoleMember}))

	banned, err := repo.IsBanned(ctx, "c1", 2)
	require.NoError(t, err)
	assert.False(t, banned)

	require.NoError(t, repo.BanMember(ctx, "c1", 2))

	banned, err = repo.IsBanned(ctx, "c1", 2)
	require.NoError(t, err)
	assert.True(t, banned)
	_, err = repo.GetMember(ctx, "c1", 2)
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	banned, _ = repo.IsBanned(ctx, "other", 2)
	assert.False(t, banned)
}

func TestGroupRepo_BanUnknownMemberFails(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	seedGroup(t, repo, "c1", models.KindClub)

	assert.ErrorIs(t, repo.BanMember(ctx, "c1", 77), repositories.ErrNotFound)
	banned, _ := repo.IsBanned(ctx, "c1", 77)
	assert.False(t, banned)
}

func TestNewGroupRepositoryProvider(t *testing.T) {
	conf := &structures.Config{Groups: structures.GroupsConfig{DatabasePath: filepath.Join(t.TempDir(), "g.db")}}
	repo, cleanup, err := NewGroupRepositoryProvider(conf, &testutil.MockLogger{})
	require.NoError(t, err)
	defer cleanup()

	_, err = repo.ListGroups(context.Background(), models.KindClub)
	assert.NoError(t, err)
}
