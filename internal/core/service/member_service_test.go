package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/gympulse/gym-management-api/internal/core/domain"
	"github.com/gympulse/gym-management-api/internal/core/ports"
)

type stubMemberRepo struct {
	nextID  int64
	members map[int64]*domain.Member
}

func newStubMemberRepo() *stubMemberRepo {
	return &stubMemberRepo{members: make(map[int64]*domain.Member)}
}

func cloneMember(m *domain.Member) *domain.Member {
	if m == nil {
		return nil
	}
	clone := *m
	return &clone
}

func (r *stubMemberRepo) Create(_ context.Context, member *domain.Member) (*domain.Member, error) {
	r.nextID++
	copy := cloneMember(member)
	copy.ID = r.nextID
	r.members[copy.ID] = cloneMember(copy)
	return copy, nil
}

func (r *stubMemberRepo) FindByID(_ context.Context, id int64) (*domain.Member, error) {
	if m, ok := r.members[id]; ok {
		return cloneMember(m), nil
	}
	return nil, domain.ErrMemberNotFound
}

func (r *stubMemberRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	for _, m := range r.members {
		if m.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubMemberRepo) List(_ context.Context, activeOnly bool) ([]*domain.Member, error) {
	out := make([]*domain.Member, 0, len(r.members))
	for _, m := range r.members {
		if activeOnly && !m.IsActive {
			continue
		}
		out = append(out, cloneMember(m))
	}
	return out, nil
}

func (r *stubMemberRepo) Update(_ context.Context, member *domain.Member) (*domain.Member, error) {
	if _, ok := r.members[member.ID]; !ok {
		return nil, domain.ErrMemberNotFound
	}
	r.members[member.ID] = cloneMember(member)
	return cloneMember(member), nil
}

func (r *stubMemberRepo) SetActive(_ context.Context, id int64, active bool) error {
	if m, ok := r.members[id]; ok {
		m.IsActive = active
		return nil
	}
	return domain.ErrMemberNotFound
}

func (r *stubMemberRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.members[id]; !ok {
		return domain.ErrMemberNotFound
	}
	delete(r.members, id)
	return nil
}

func memberInput(email string) ports.CreateMemberInput {
	return ports.CreateMemberInput{
		FirstName:      "Jamie",
		LastName:       "Doe",
		Email:          email,
		Phone:          "+15550001111",
		MembershipType: string(domain.MembershipBasic),
		StartDate:      "2025-06-01",
	}
}

func TestMemberService_CreateAndGet(t *testing.T) {
	repo := newStubMemberRepo()
	svc := NewMemberService(repo, zerolog.Nop())
	ctx := context.Background()

	created, err := svc.Create(ctx, memberInput("jamie@gym.test"))
	if err != nil {
		t.Fatalf("create member: %v", err)
	}
	if created.ID == 0 || !created.IsActive {
		t.Fatalf("expected active member with id, got %+v", created)
	}

	got, err := svc.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("get member: %v", err)
	}
	if got.Email != "jamie@gym.test" {
		t.Fatalf("unexpected member: %+v", got)
	}
}

func TestMemberService_Create_DuplicateEmail(t *testing.T) {
	repo := newStubMemberRepo()
	svc := NewMemberService(repo, zerolog.Nop())
	ctx := context.Background()

	if _, err := svc.Create(ctx, memberInput("jamie@gym.test")); err != nil {
		t.Fatalf("create member: %v", err)
	}
	if _, err := svc.Create(ctx, memberInput("jamie@gym.test")); !errors.Is(err, domain.ErrDuplicateMemberEmail) {
		t.Fatalf("expected ErrDuplicateMemberEmail, got %v", err)
	}
}

func TestMemberService_Create_UnknownMembership(t *testing.T) {
	svc := NewMemberService(newStubMemberRepo(), zerolog.Nop())

	in := memberInput("jamie@gym.test")
	in.MembershipType = "PLATINUM"
	if _, err := svc.Create(context.Background(), in); err == nil {
		t.Fatalf("expected error for unknown membership type")
	}
}

func TestMemberService_Update_PartialFields(t *testing.T) {
	repo := newStubMemberRepo()
	svc := NewMemberService(repo, zerolog.Nop())
	ctx := context.Background()

	created, err := svc.Create(ctx, memberInput("jamie@gym.test"))
	if err != nil {
		t.Fatalf("create member: %v", err)
	}

	phone := "+15559998888"
	membership := string(domain.MembershipVIP)
	updated, err := svc.Update(ctx, created.ID, ports.UpdateMemberInput{
		Phone:          &phone,
		MembershipType: &membership,
	})
	if err != nil {
		t.Fatalf("update member: %v", err)
	}
	if updated.Phone != phone || updated.MembershipType != domain.MembershipVIP {
		t.Fatalf("updates not applied: %+v", updated)
	}
	if updated.FirstName != "Jamie" {
		t.Fatalf("untouched field changed: %+v", updated)
	}
}

func TestMemberService_List_ActiveOnly(t *testing.T) {
	repo := newStubMemberRepo()
	svc := NewMemberService(repo, zerolog.Nop())
	ctx := context.Background()

	a, _ := svc.Create(ctx, memberInput("a@gym.test"))
	if _, err := svc.Create(ctx, memberInput("b@gym.test")); err != nil {
		t.Fatalf("create member: %v", err)
	}
	if err := svc.Deactivate(ctx, a.ID); err != nil {
		t.Fatalf("deactivate member: %v", err)
	}

	active, err := svc.List(ctx, true)
	if err != nil {
		t.Fatalf("list members: %v", err)
	}
	if len(active) != 1 {
		t.Fatalf("expected 1 active member, got %d", len(active))
	}

	all, err := svc.List(ctx, false)
	if err != nil {
		t.Fatalf("list members: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 members, got %d", len(all))
	}
}

func TestMemberService_Delete(t *testing.T) {
	repo := newStubMemberRepo()
	svc := NewMemberService(repo, zerolog.Nop())
	ctx := context.Background()

	created, err := svc.Create(ctx, memberInput("jamie@gym.test"))
	if err != nil {
		t.Fatalf("create member: %v", err)
	}
	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete member: %v", err)
	}
	if _, err := svc.GetByID(ctx, created.ID); !errors.Is(err, domain.ErrMemberNotFound) {
		t.Fatalf("expected ErrMemberNotFound after delete, got %v", err)
	}
}
