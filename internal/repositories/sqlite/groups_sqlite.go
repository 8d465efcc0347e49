package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"meetup/internal/models"
	"meetup/internal/providers"
	"meetup/internal/repositories"
	"meetup/internal/structures"
	"time"

	_ "modernc.org/sqlite"
)

type GroupRepo struct{ db *sql.DB }

func NewGroupRepo(path string) (*GroupRepo, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &GroupRepo{db: db}, nil
}

// NewGroupRepositoryProvider opens the groups database named in the config.
func NewGroupRepositoryProvider(conf *structures.Config, logger providers.Logger) (repositories.GroupRepository, func(), error) {
	repo, err := NewGroupRepo(conf.Groups.DatabasePath)
	if err != nil {
		return nil, nil, fmt.Errorf("open groups database: %w", err)
	}
	logger.Infof(providers.TypeApp, "Groups database %s opened", conf.Groups.DatabasePath)
	return repo, func() { _ = repo.Close() }, nil
}

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
	CREATE TABLE IF NOT EXISTS meetup_groups (
	  id TEXT PRIMARY KEY,
	  kind TEXT NOT NULL,
	  name TEXT NOT NULL,
	  description TEXT,
	  image_url TEXT,
	  category TEXT,
	  location TEXT,
	  meeting_time TIMESTAMP,
	  max_members INTEGER NOT NULL DEFAULT 0,
	  created_at TIMESTAMP NOT NULL
	);
	CREATE TABLE IF NOT EXISTS members (
	  seq INTEGER PRIMARY KEY AUTOINCREMENT,
	  group_id TEXT NOT NULL,
	  member_id INTEGER NOT NULL,
	  nickname TEXT NOT NULL,
	  role TEXT NOT NULL,
	  updated_at TIMESTAMP NOT NULL,
	  UNIQUE(group_id, member_id)
	);
	CREATE TABLE IF NOT EXISTS bans (
	  group_id TEXT NOT NULL,
	  member_id INTEGER NOT NULL,
	  created_at TIMESTAMP NOT NULL,
	  PRIMARY KEY (group_id, member_id)
	);
	`)
	return err
}

func (s *GroupRepo) Close() error { return s.db.Close() }

func nullTime(t time.Time) sql.NullTime {
	if t.IsZero() {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}

func (s *GroupRepo) CreateGroup(ctx context.Context, g *models.GroupDetail, creator models.Membership) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
	INSERT INTO meetup_groups (id, kind, name, description, image_url, category, location, meeting_time, max_members, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, g.ID, string(g.Kind), g.Name, g.Description, g.ImageURL, g.Category, g.Location, nullTime(g.MeetingTime), g.MaxMembers, g.CreatedAt.UTC())
	if err != nil {
		return err
	}

	if err := upsertMember(ctx, tx, g.ID, creator); err != nil {
		return err
	}
	return tx.Commit()
}

const groupColumns = `id, kind, name, description, image_url, category, location, meeting_time, max_members, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanGroup(row rowScanner) (*models.GroupDetail, error) {
	var g models.GroupDetail
	var kind string
	var desc, image, category, location sql.NullString
	var meeting sql.NullTime
	if err := row.Scan(&g.ID, &kind, &g.Name, &desc, &image, &category, &location, &meeting, &g.MaxMembers, &g.CreatedAt); err != nil {
		return nil, err
	}
	g.Kind = models.GroupKind(kind)
	g.Description = desc.String
	g.ImageURL = image.String
	g.Category = category.String
	g.Location = location.String
	if meeting.Valid {
		g.MeetingTime = meeting.Time
	}
	return &g, nil
}

func (s *GroupRepo) GetGroup(ctx context.Context, id string) (*models.GroupDetail, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+groupColumns+` FROM meetup_groups WHERE id = ?`, id)
	g, err := scanGroup(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repositories.ErrNotFound
	}
	return g, err
}

func (s *GroupRepo) ListGroups(ctx context.Context, kind models.GroupKind) ([]*models.GroupDetail, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+groupColumns+` FROM meetup_groups WHERE kind = ? ORDER BY created_at DESC, id ASC`, string(kind))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*models.GroupDetail, 0)
	for rows.Next() {
		g, err := scanGroup(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

func (s *GroupRepo) ListMembers(ctx context.Context, groupID string) ([]models.Membership, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT member_id, nickname, role FROM members WHERE group_id = ? ORDER BY seq ASC`, groupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.Membership, 0)
	for rows.Next() {
		var m models.Membership
		var role string
		if err := rows.Scan(&m.MemberID, &m.Nickname, &role); err != nil {
			return nil, err
		}
		m.Role = models.ParseRole(role)
		out = append(out, m)
	}
	return out, rows.Err()
}

func (s *GroupRepo) GetMember(ctx context.Context, groupID string, memberID int64) (*models.Membership, error) {
	var m models.Membership
	var role string
	err := s.db.QueryRowContext(ctx, `SELECT member_id, nickname, role FROM members WHERE group_id = ? AND member_id = ?`, groupID, memberID).
		Scan(&m.MemberID, &m.Nickname, &role)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repositories.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	m.Role = models.ParseRole(role)
	return &m, nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func upsertMember(ctx context.Context, db execer, groupID string, m models.Membership) error {
	_, err := db.ExecContext(ctx, `
	INSERT INTO members (group_id, member_id, nickname, role, updated_at)
	VALUES (?, ?, ?, ?, ?)
	ON CONFLICT(group_id, member_id)
	DO UPDATE SET nickname = excluded.nickname, role = excluded.role, updated_at = excluded.updated_at
	`, groupID, m.MemberID, m.Nickname, m.Role.String(), time.Now().UTC())
	return err
}

func (s *GroupRepo) UpsertMember(ctx context.Context, groupID string, m models.Membership) error {
	return upsertMember(ctx, s.db, groupID, m)
}

func deleteMember(ctx context.Context, db execer, groupID string, memberID int64) error {
	res, err := db.ExecContext(ctx, `DELETE FROM members WHERE group_id = ? AND member_id = ?`, groupID, memberID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

func (s *GroupRepo) DeleteMember(ctx context.Context, groupID string, memberID int64) error {
	return deleteMember(ctx, s.db, groupID, memberID)
}

// BanMember removes the member from the roster and records the ban atomically.
func (s *GroupRepo) BanMember(ctx context.Context, groupID string, memberID int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if err := deleteMember(ctx, tx, groupID, memberID); err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, `INSERT OR IGNORE INTO bans (group_id, member_id, created_at) VALUES (?, ?, ?)`, groupID, memberID, time.Now().UTC())
	if err != nil {
		return err
	}
	return tx.Commit()
}

func (s *GroupRepo) IsBanned(ctx context.Context, groupID string, memberID int64) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM bans WHERE group_id = ? AND member_id = ?`, groupID, memberID).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
