package profile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
)

var (
	ErrNotFound    = errors.New("profile not found")
	ErrEmailExists = errors.New("email already exists")
)

// Notifications shown after a successful mutation.
const (
	MessageAdded   = "Data is added"
	MessageUpdated = "Data is updated"
	MessageDeleted = "Data is deleted"
)

// Pictures stores uploaded picture bytes and hands back a browsable handle.
type Pictures interface {
	Save(ctx context.Context, data []byte) (string, error)
	Delete(ctx context.Context, handle string) error
}

type SubmitResult struct {
	Profile  Profile
	Message  string
	Updated  bool
	Replaced int
}

type DeleteResult struct {
	Deleted bool
	Message string
}

// Service runs form submissions against the store. Mutations are
// serialized so that the email check and the write observe the same
// collection.
type Service struct {
	mu        sync.Mutex
	store     *Store
	session   *Session
	validator *Validator
	pictures  Pictures
}

func NewService(store *Store, session *Session, validator *Validator, pictures Pictures) *Service {
	return &Service{
		store:     store,
		session:   session,
		validator: validator,
		pictures:  pictures,
	}
}

// Load reads the persisted collection into memory.
func (s *Service) Load(ctx context.Context) []Profile {
	profiles := s.store.Load(ctx)
	slog.Info("profiles loaded", "count", len(profiles))
	return profiles
}

func (s *Service) List() []Profile {
	return s.store.List()
}

func (s *Service) Table(state TableState) TablePage {
	return state.Apply(s.store.List())
}

// Editing returns the current edit target, if any.
func (s *Service) Editing() (Profile, int, bool) {
	return s.session.Target()
}

// Validate runs the form rules the way Submit would, without side effects.
func (s *Service) Validate(c Candidate) Errors {
	return s.validator.Validate(s.withSessionPicture(c))
}

// BeginEdit puts the session into editing mode for the profile at a
// storage position and returns it as the form's initial values.
func (s *Service) BeginEdit(position int) (Profile, error) {
	p, ok := s.store.At(position)
	if !ok {
		return Profile{}, ErrNotFound
	}
	s.session.Begin(p, position)
	slog.Debug("editing profile", "position", position, "email", p.Email)
	return p, nil
}

// Submit validates c and either adds it or, while editing, replaces every
// profile carrying the target's email.
func (s *Service) Submit(ctx context.Context, c Candidate) (SubmitResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	target, _, editing := s.session.Target()
	c = s.withSessionPicture(c)
	if errs := s.validator.Validate(c); len(errs) > 0 {
		return SubmitResult{}, &ValidationError{Errors: errs}
	}

	if s.emailTaken(c.Email) && (!editing || c.Email != target.Email) {
		return SubmitResult{}, ErrEmailExists
	}

	handle := c.ExistingPicture
	if c.Picture != nil {
		saved, err := s.pictures.Save(ctx, c.Picture.Data)
		if err != nil {
			return SubmitResult{}, fmt.Errorf("save picture: %w", err)
		}
		handle = saved
	}
	p := c.toProfile(handle)

	if !editing {
		if err := s.store.Add(ctx, p); err != nil {
			s.discardPicture(ctx, c, handle)
			return SubmitResult{}, err
		}
		slog.Info("profile added", "email", p.Email)
		return SubmitResult{Profile: p, Message: MessageAdded}, nil
	}

	replaced, err := s.store.Update(ctx, target.Email, p)
	if err != nil {
		s.discardPicture(ctx, c, handle)
		return SubmitResult{}, err
	}
	s.session.Reset()
	if replaced == 0 {
		s.discardPicture(ctx, c, handle)
	} else if target.ProfilePicture != handle {
		s.releasePicture(ctx, target.ProfilePicture)
	}
	slog.Info("profile updated", "email", target.Email, "newEmail", p.Email, "replaced", replaced)
	return SubmitResult{Profile: p, Message: MessageUpdated, Updated: true, Replaced: replaced}, nil
}

// Delete removes the profile at a storage position. An out-of-range
// position is a silent no-op.
func (s *Service) Delete(ctx context.Context, position int) (DeleteResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, _ := s.store.At(position)
	deleted, err := s.store.DeleteAt(ctx, position)
	if err != nil {
		return DeleteResult{}, err
	}
	if !deleted {
		return DeleteResult{}, nil
	}
	s.releasePicture(ctx, p.ProfilePicture)
	slog.Info("profile deleted", "position", position, "email", p.Email)
	return DeleteResult{Deleted: true, Message: MessageDeleted}, nil
}

// withSessionPicture lets an edit keep the target's picture when no new
// file is chosen. Outside an edit the client cannot supply a handle.
func (s *Service) withSessionPicture(c Candidate) Candidate {
	c.ExistingPicture = ""
	if target, _, editing := s.session.Target(); editing {
		c.ExistingPicture = target.ProfilePicture
	}
	return c
}

func (s *Service) emailTaken(email string) bool {
	for _, p := range s.store.List() {
		if p.Email == email {
			return true
		}
	}
	return false
}

// releasePicture deletes a stored picture once no profile refers to it.
func (s *Service) releasePicture(ctx context.Context, handle string) {
	if handle == "" {
		return
	}
	for _, p := range s.store.List() {
		if p.ProfilePicture == handle {
			return
		}
	}
	if err := s.pictures.Delete(ctx, handle); err != nil {
		slog.Warn("could not release picture", "handle", handle, "error", err)
	}
}

func (s *Service) discardPicture(ctx context.Context, c Candidate, handle string) {
	if c.Picture == nil || handle == "" {
		return
	}
	if err := s.pictures.Delete(ctx, handle); err != nil {
		slog.Warn("could not discard picture", "handle", handle, "error", err)
	}
}

func (c Candidate) toProfile(handle string) Profile {
	country := strings.TrimSpace(c.Country)
	if country == "" {
		country = DefaultCountry
	}
	return Profile{
		Name:           c.Name,
		Email:          c.Email,
		Phone:          c.Phone,
		DOB:            c.DOB,
		City:           c.City,
		District:       c.District,
		Province:       c.Province,
		Country:        country,
		ProfilePicture: handle,
	}
}
