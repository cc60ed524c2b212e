package services

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/fuel/internal/clock/clocktest"
	"github.com/dmitrijs2005/fuel/internal/common"
	"github.com/dmitrijs2005/fuel/internal/dbx"
	"github.com/dmitrijs2005/fuel/internal/server/config"
	"github.com/dmitrijs2005/fuel/internal/server/models"
	"github.com/dmitrijs2005/fuel/internal/server/repositories/profiles"
	"github.com/dmitrijs2005/fuel/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/fuel/internal/server/repositories/users"
)

var errBoom = errors.New("boom")

var testNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func newUserService(t *testing.T, db *sql.DB, rm *fakeRepoManager) *UserService {
	t.Helper()
	cfg := &config.Config{
		SecretKey:                    "k",
		AccessTokenValidityDuration:  time.Hour,
		RefreshTokenValidityDuration: 2 * time.Hour,
	}
	return NewUserService(db, rm, cfg, clocktest.NewFake(testNow))
}

// ---- users ----

type fakeUsersRepo struct {
	byEmail map[string]*models.User
	byID    map[string]*models.User

	createErr error
	getErr    error
	nameErr   error

	created []*models.User
	renamed map[string]string
}

func newFakeUsers(us ...*models.User) *fakeUsersRepo {
	f := &fakeUsersRepo{byEmail: map[string]*models.User{}, byID: map[string]*models.User{}, renamed: map[string]string{}}
	for _, u := range us {
		f.byEmail[u.Email] = u
		f.byID[u.ID] = u
	}
	return f
}

func (f *fakeUsersRepo) Create(_ context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if _, dup := f.byEmail[u.Email]; dup {
		return nil, common.ErrorAlreadyExists
	}
	u.ID = "u-new"
	u.CreatedAt, u.UpdatedAt = testNow, testNow
	f.created = append(f.created, u)
	f.byEmail[u.Email] = u
	f.byID[u.ID] = u
	return u, nil
}

func (f *fakeUsersRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	u, ok := f.byEmail[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return u, nil
}

func (f *fakeUsersRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	u, ok := f.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsersRepo) UpdateName(_ context.Context, id, name string) error {
	if f.nameErr != nil {
		return f.nameErr
	}
	f.renamed[id] = name
	return nil
}

// ---- profiles ----

type fakeProfilesRepo struct {
	byUser    map[string]*models.Profile
	createErr error
	getErr    error
	updateErr error

	created []*models.Profile
	updated []*models.Profile
}

func newFakeProfiles(ps ...*models.Profile) *fakeProfilesRepo {
	f := &fakeProfilesRepo{byUser: map[string]*models.Profile{}}
	for _, p := range ps {
		f.byUser[p.UserID] = p
	}
	return f
}

func (f *fakeProfilesRepo) Create(_ context.Context, p *models.Profile) (*models.Profile, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	p.ID = "p-" + p.UserID
	f.created = append(f.created, p)
	f.byUser[p.UserID] = p
	return p, nil
}

func (f *fakeProfilesRepo) GetByUserID(_ context.Context, userID string) (*models.Profile, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	p, ok := f.byUser[userID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProfilesRepo) Update(_ context.Context, p *models.Profile) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	cp := *p
	f.updated = append(f.updated, &cp)
	f.byUser[p.UserID] = &cp
	return nil
}

// ---- refresh tokens ----

type fakeRefreshRepo struct {
	findOut *models.RefreshToken
	findErr error

	delErr    error
	createErr error

	created []string
	deleted []string
	purged  time.Time
}

func (f *fakeRefreshRepo) Create(_ context.Context, userID, token string, _ time.Duration) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, userID+":"+token)
	return nil
}

func (f *fakeRefreshRepo) Find(context.Context, string) (*models.RefreshToken, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.findOut, nil
}

func (f *fakeRefreshRepo) Delete(_ context.Context, token string) error {
	if f.delErr != nil {
		return f.delErr
	}
	f.deleted = append(f.deleted, token)
	return nil
}

func (f *fakeRefreshRepo) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	f.purged = now
	return 2, nil
}

// ---- manager ----

type fakeRepoManager struct {
	u *fakeUsersRepo
	p *fakeProfilesRepo
	r *fakeRefreshRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error    { return nil }
func (m *fakeRepoManager) Users(dbx.DBTX) users.Repository                 { return m.u }
func (m *fakeRepoManager) Profiles(dbx.DBTX) profiles.Repository           { return m.p }
func (m *fakeRepoManager) RefreshTokens(dbx.DBTX) refreshtokens.Repository { return m.r }

func ptr[T any](v T) *T { return &v }
