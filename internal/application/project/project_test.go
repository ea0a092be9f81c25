package project

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/openplanhq/trackd/internal/domain"
	domerrors "github.com/openplanhq/trackd/internal/domain/errors"
)

type fakeProjects struct {
	rows map[domain.ProjectID]*domain.Project
}

func (f *fakeProjects) Create(_ context.Context, p *domain.Project) error {
	f.rows[p.ID] = p
	return nil
}

func (f *fakeProjects) GetByID(_ context.Context, id domain.ProjectID) (*domain.Project, error) {
	if p, ok := f.rows[id]; ok {
		return p, nil
	}
	return nil, nil
}

func (f *fakeProjects) GetByKey(_ context.Context, key string) (*domain.Project, error) {
	for _, p := range f.rows {
		if p.Key == key {
			return p, nil
		}
	}
	return nil, nil
}

type fakeUsers struct {
	rows map[domain.UserID]*domain.User
}

func (f *fakeUsers) Create(_ context.Context, u *domain.User) error {
	f.rows[u.ID] = u
	return nil
}

func (f *fakeUsers) GetByID(_ context.Context, id domain.UserID) (*domain.User, error) {
	if u, ok := f.rows[id]; ok {
		return u, nil
	}
	return nil, nil
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range f.rows {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUsers) UpdateDisplayName(_ context.Context, id domain.UserID, name string) error {
	if u, ok := f.rows[id]; ok {
		u.DisplayName = name
	}
	return nil
}

type fakeMemberships struct {
	rows []*domain.Membership
}

func (f *fakeMemberships) EnsureMember(_ context.Context, projectID domain.ProjectID, userID domain.UserID, role string) (bool, error) {
	for _, m := range f.rows {
		if m.ProjectID == projectID && m.UserID == userID {
			return false, nil
		}
	}
	f.rows = append(f.rows, &domain.Membership{ProjectID: projectID, UserID: userID, Role: role, JoinedAt: time.Now()})
	return true, nil
}

func (f *fakeMemberships) ListByProject(_ context.Context, projectID domain.ProjectID) ([]*domain.Membership, error) {
	var out []*domain.Membership
	for _, m := range f.rows {
		if m.ProjectID == projectID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMemberships) HasMemberEmail(_ context.Context, projectID domain.ProjectID, email string) (bool, error) {
	return false, nil
}

func TestCreateProjectValidatesKey(t *testing.T) {
	uc := NewCreateProject(&fakeProjects{rows: map[domain.ProjectID]*domain.Project{}})

	cases := []struct {
		name string
		key  string
		ok   bool
	}{
		{"Apollo", "PROJ", true},
		{"Apollo", "proj", true}, // uppercased before validation
		{"Apollo", "P", false},   // too short
		{"Apollo", "1PROJ", false},
		{"Apollo", "VERYLONGKEY", false},
		{"", "PROJ", false},
	}
	for _, tc := range cases {
		_, err := uc.Execute(context.Background(), CreateProjectInput{Name: tc.name, Key: tc.key})
		if tc.ok && err != nil {
			t.Errorf("key %q: unexpected error %v", tc.key, err)
		}
		if !tc.ok && !errors.Is(err, domerrors.ErrValidation) {
			t.Errorf("key %q: err = %v, want ErrValidation", tc.key, err)
		}
	}
}

func TestCreateProjectRejectsDuplicateKey(t *testing.T) {
	uc := NewCreateProject(&fakeProjects{rows: map[domain.ProjectID]*domain.Project{}})
	if _, err := uc.Execute(context.Background(), CreateProjectInput{Name: "Apollo", Key: "PROJ"}); err != nil {
		t.Fatal(err)
	}
	if _, err := uc.Execute(context.Background(), CreateProjectInput{Name: "Artemis", Key: "proj"}); !errors.Is(err, domerrors.ErrConflict) {
		t.Errorf("duplicate key err = %v, want ErrConflict", err)
	}
}

func TestListMembersJoinsUsers(t *testing.T) {
	projects := &fakeProjects{rows: map[domain.ProjectID]*domain.Project{}}
	users := &fakeUsers{rows: map[domain.UserID]*domain.User{}}
	memberships := &fakeMemberships{}

	p := &domain.Project{ID: domain.NewProjectID(uuid.New()), Key: "PROJ", Name: "Apollo"}
	projects.rows[p.ID] = p
	u := &domain.User{ID: domain.NewUserID(uuid.New()), Email: "alice@x.com", DisplayName: "Alice"}
	users.rows[u.ID] = u
	if _, err := memberships.EnsureMember(context.Background(), p.ID, u.ID, domain.RoleMember); err != nil {
		t.Fatal(err)
	}

	uc := NewListMembers(projects, memberships, users)
	res, err := uc.Execute(context.Background(), ListMembersInput{ProjectID: p.ID})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Members) != 1 {
		t.Fatalf("members = %d, want 1", len(res.Members))
	}
	m := res.Members[0]
	if m.User == nil || m.User.Email != "alice@x.com" || m.Membership.Role != domain.RoleMember {
		t.Errorf("member = %+v, want alice with role member", m)
	}

	if _, err := uc.Execute(context.Background(), ListMembersInput{ProjectID: domain.NewProjectID(uuid.New())}); !errors.Is(err, domerrors.ErrNotFound) {
		t.Errorf("unknown project err = %v, want ErrNotFound", err)
	}
}
