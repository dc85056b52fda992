package registrations

import (
	"context"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	events map[string]EventCapacity
	regs   []Registration
	nextID int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{events: make(map[string]EventCapacity)}
}

func (f *fakeRepo) addEvent(eventID, name string, maxParticipants *int) {
	f.events[eventID] = EventCapacity{EventID: eventID, Name: name, MaxParticipants: maxParticipants}
}

func (f *fakeRepo) LockEvent(ctx context.Context, eventID string) (*EventCapacity, error) {
	event, ok := f.events[eventID]
	if !ok {
		return nil, ErrEventNotFound
	}
	return &event, nil
}

func (f *fakeRepo) Exists(ctx context.Context, eventID, userEmail string) (bool, error) {
	for _, reg := range f.regs {
		if reg.EventID == eventID && reg.UserEmail == userEmail {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepo) CountForEvent(ctx context.Context, eventID string) (int, error) {
	count := 0
	for _, reg := range f.regs {
		if reg.EventID == eventID {
			count++
		}
	}
	return count, nil
}

func (f *fakeRepo) Create(ctx context.Context, reg Registration) (int64, error) {
	f.nextID++
	reg.ID = f.nextID
	reg.RegistrationDate = time.Now()
	f.regs = append(f.regs, reg)
	return reg.ID, nil
}

func (f *fakeRepo) ListForEvent(ctx context.Context, eventID string) ([]Registration, error) {
	var out []Registration
	for _, reg := range f.regs {
		if reg.EventID == eventID {
			out = append(out, reg)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].RegistrationDate.After(out[j].RegistrationDate)
	})
	return out, nil
}

func (f *fakeRepo) WithTx(ctx context.Context, fn func(context.Context, Repository) error) error {
	return fn(ctx, f)
}

type recordingMailer struct {
	sent []string
	fail bool
}

func (m *recordingMailer) SendRegistrationConfirmation(ctx context.Context, to, userName, eventName string) error {
	if m.fail {
		return fmt.Errorf("provider down")
	}
	m.sent = append(m.sent, to)
	return nil
}

func newTestService(repo Repository, mailer ConfirmationSender) *Service {
	return NewService(repo, mailer, zerolog.Nop())
}

func TestRegisterHappyPath(t *testing.T) {
	repo := newFakeRepo()
	repo.addEvent("conf", "Conference", nil)
	mailer := &recordingMailer{}
	service := newTestService(repo, mailer)

	id, err := service.Register(context.Background(), "conf", "Ada", "555-0100", "Ada@Example.COM")
	require.NoError(t, err)
	require.Equal(t, int64(1), id)

	listed, err := service.ListForEvent(context.Background(), "conf")
	require.NoError(t, err)
	require.Len(t, listed, 1)
	require.Equal(t, "ada@example.com", listed[0].UserEmail, "caller email is lowercased")
	require.Equal(t, []string{"ada@example.com"}, mailer.sent)
}

func TestRegisterEventNotFound(t *testing.T) {
	service := newTestService(newFakeRepo(), nil)

	_, err := service.Register(context.Background(), "ghost", "Ada", "", "ada@example.com")
	require.ErrorIs(t, err, ErrEventNotFound)
}

func TestRegisterNameRequired(t *testing.T) {
	repo := newFakeRepo()
	repo.addEvent("conf", "Conference", nil)
	service := newTestService(repo, nil)

	_, err := service.Register(context.Background(), "conf", "   ", "", "ada@example.com")
	require.ErrorIs(t, err, ErrNameRequired)
	require.Empty(t, repo.regs)
}

func TestRegisterDuplicate(t *testing.T) {
	repo := newFakeRepo()
	repo.addEvent("conf", "Conference", nil)
	service := newTestService(repo, nil)
	ctx := context.Background()

	_, err := service.Register(ctx, "conf", "Ada", "", "ada@example.com")
	require.NoError(t, err)

	_, err = service.Register(ctx, "conf", "Ada", "", "ADA@example.com")
	require.ErrorIs(t, err, ErrAlreadyRegistered)
	require.Len(t, repo.regs, 1)
}

func TestRegisterCapacity(t *testing.T) {
	capacity := 3
	repo := newFakeRepo()
	repo.addEvent("conf", "Conference", &capacity)
	service := newTestService(repo, nil)
	ctx := context.Background()

	for i := 0; i < capacity; i++ {
		_, err := service.Register(ctx, "conf", "Gopher", "", fmt.Sprintf("gopher%d@example.com", i))
		require.NoError(t, err, "registration %d of %d should fit", i+1, capacity)
	}

	_, err := service.Register(ctx, "conf", "Late", "", "late@example.com")
	require.ErrorIs(t, err, ErrEventFull)

	count, err := service.CountForEvent(ctx, "conf")
	require.NoError(t, err)
	require.Equal(t, capacity, count)
}

func TestRegisterMailerFailureDoesNotBlock(t *testing.T) {
	repo := newFakeRepo()
	repo.addEvent("conf", "Conference", nil)
	service := newTestService(repo, &recordingMailer{fail: true})

	id, err := service.Register(context.Background(), "conf", "Ada", "", "ada@example.com")
	require.NoError(t, err)
	require.NotZero(t, id)
}

func TestListForEventNewestFirst(t *testing.T) {
	repo := newFakeRepo()
	repo.addEvent("conf", "Conference", nil)
	service := newTestService(repo, nil)
	ctx := context.Background()

	_, err := service.Register(ctx, "conf", "First", "", "first@example.com")
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)
	_, err = service.Register(ctx, "conf", "Second", "", "second@example.com")
	require.NoError(t, err)

	listed, err := service.ListForEvent(ctx, "conf")
	require.NoError(t, err)
	require.Len(t, listed, 2)
	require.Equal(t, "second@example.com", listed[0].UserEmail)
}
