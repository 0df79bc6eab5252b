package logic

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"storefront/storage"
)

// Profile is the sign-in form input. Nothing in it is verified.
type Profile struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

type Address struct {
	Label      string `json:"label,omitempty"`
	Line1      string `json:"line1"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code,omitempty"`
	Country    string `json:"country,omitempty"`
}

// PaymentMethod is a display-only card stub; no card data is kept.
type PaymentMethod struct {
	Brand  string `json:"brand"`
	Last4  string `json:"last4"`
	Expiry string `json:"expiry,omitempty"`
}

// User is the mock identity held by an active session.
type User struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Email          string          `json:"email,omitempty"`
	Phone          string          `json:"phone,omitempty"`
	Addresses      []Address       `json:"addresses"`
	PaymentMethods []PaymentMethod `json:"payment_methods"`
}

func (u User) clone() User {
	u.Addresses = append([]Address{}, u.Addresses...)
	u.PaymentMethods = append([]PaymentMethod{}, u.PaymentMethods...)
	return u
}

// SessionState holds at most one user, persisted under storage.KeyUser.
type SessionState struct {
	gw     storage.Gateway
	logger *zap.Logger
	user   *User
	newID  func() string
}

func LoadSessionState(ctx context.Context, gw storage.Gateway, logger *zap.Logger) (*SessionState, error) {
	s := &SessionState{gw: gw, logger: loggerOrNop(logger), newID: uuid.NewString}

	var saved *User
	ok, err := loadBlob(ctx, gw, s.logger, storage.KeyUser, &saved)
	if err != nil {
		return nil, err
	}
	if ok && saved != nil && saved.ID != "" {
		u := saved.clone()
		s.user = &u
	}
	return s, nil
}

// Current returns a copy of the signed-in user.
func (s *SessionState) Current() (User, bool) {
	if s.user == nil {
		return User{}, false
	}
	return s.user.clone(), true
}

// SignedIn reports whether a session is active.
func (s *SessionState) SignedIn() bool {
	return s.user != nil
}

// SignIn fabricates a user from p and replaces any current session.
func (s *SessionState) SignIn(ctx context.Context, p Profile) (User, error) {
	email := strings.TrimSpace(p.Email)
	u := User{
		ID:             s.newID(),
		Name:           displayName(strings.TrimSpace(p.Name), email),
		Email:          email,
		Phone:          strings.TrimSpace(p.Phone),
		Addresses:      []Address{},
		PaymentMethods: []PaymentMethod{},
	}
	if err := s.commit(ctx, &u); err != nil {
		return User{}, err
	}
	s.logger.Info("user signed in", zap.String("user_id", u.ID))
	return u.clone(), nil
}

func displayName(name, email string) string {
	if name != "" {
		return name
	}
	if local, _, ok := strings.Cut(email, "@"); ok && local != "" {
		return local
	}
	return "Guest"
}

// SignOut ends the session. Signing out with no session is a no-op.
func (s *SessionState) SignOut(ctx context.Context) error {
	if s.user == nil {
		return nil
	}
	id := s.user.ID
	if err := s.commit(ctx, nil); err != nil {
		return err
	}
	s.logger.Info("user signed out", zap.String("user_id", id))
	return nil
}

// AddAddress appends to the signed-in user's address book.
func (s *SessionState) AddAddress(ctx context.Context, a Address) (User, error) {
	if s.user == nil {
		return User{}, NewUnauthenticated(ErrMsgNotSignedIn)
	}
	if strings.TrimSpace(a.Line1) == "" || strings.TrimSpace(a.City) == "" {
		return User{}, NewInvalidArgument(ErrMsgAddressIncomplete)
	}
	next := s.user.clone()
	next.Addresses = append(next.Addresses, a)
	if err := s.commit(ctx, &next); err != nil {
		return User{}, err
	}
	return next.clone(), nil
}

// AddPaymentMethod appends a card stub to the signed-in user.
func (s *SessionState) AddPaymentMethod(ctx context.Context, m PaymentMethod) (User, error) {
	if s.user == nil {
		return User{}, NewUnauthenticated(ErrMsgNotSignedIn)
	}
	if strings.TrimSpace(m.Brand) == "" || len(m.Last4) != 4 {
		return User{}, NewInvalidArgument(ErrMsgPaymentIncomplete)
	}
	next := s.user.clone()
	next.PaymentMethods = append(next.PaymentMethods, m)
	if err := s.commit(ctx, &next); err != nil {
		return User{}, err
	}
	return next.clone(), nil
}

func (s *SessionState) commit(ctx context.Context, u *User) error {
	if err := saveBlob(ctx, s.gw, storage.KeyUser, u); err != nil {
		return err
	}
	s.user = u
	return nil
}
