package store

import (
	"context"
	"slices"

	"nuovo/internal/domain/entity"
	domainerrors "nuovo/internal/domain/errors"
	"nuovo/internal/util"
)

// Register creates a new account. Customers get empty relationship slices;
// admins carry none at all.
func (s *Store) Register(ctx context.Context, name, email, password string, isAdmin bool) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[email]; exists {
		return nil, domainerrors.ErrEmailTaken
	}

	taken := make([]string, 0, len(s.users))
	for _, u := range s.users {
		taken = append(taken, u.UserID)
	}

	user := &entity.User{
		UserID:   util.GenerateID(taken),
		Name:     name,
		Email:    email,
		Password: password,
		IsAdmin:  isAdmin,
		Status:   entity.StatusLogout,
	}
	if !isAdmin {
		user.FollowedBrand = []string{}
		user.WishList = []string{}
		user.Notifications = []entity.Notification{}
	}
	s.users[email] = user

	return cloneUser(user), s.flush()
}

// Authenticate verifies the plaintext credentials and marks the account
// logged in.
func (s *Store) Authenticate(ctx context.Context, email, password string) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[email]
	if !ok || user.Password != password {
		return nil, domainerrors.ErrInvalidCredentials
	}

	user.Status = entity.StatusLogin

	return cloneUser(user), s.flush()
}

// Logout marks the account logged out.
func (s *Store) Logout(ctx context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[email]
	if !ok {
		return domainerrors.ErrUserNotFound
	}
	user.Status = entity.StatusLogout

	return s.flush()
}

// User returns a copy of the account record.
func (s *Store) User(email string) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[email]
	if !ok {
		return nil, domainerrors.ErrUserNotFound
	}

	return cloneUser(user), nil
}

// UserSummary is the admin-facing users listing row. Counts stand in for the
// relationship contents so passwords and notification bodies never leave the
// store.
type UserSummary struct {
	Name               string `json:"name"`
	Email              string `json:"email"`
	FollowedBrandCount int    `json:"followed_brand_count"`
	WishListCount      int    `json:"wish_list_count"`
	NotificationsCount int    `json:"notifications_count"`
}

// UserSummaries lists every account in stable email order.
func (s *Store) UserSummaries() []UserSummary {
	s.mu.Lock()
	defer s.mu.Unlock()

	emails := make([]string, 0, len(s.users))
	for email := range s.users {
		emails = append(emails, email)
	}
	slices.Sort(emails)

	summaries := make([]UserSummary, 0, len(emails))
	for _, email := range emails {
		u := s.users[email]
		summaries = append(summaries, UserSummary{
			Name:               u.Name,
			Email:              u.Email,
			FollowedBrandCount: len(u.FollowedBrand),
			WishListCount:      len(u.WishList),
			NotificationsCount: len(u.Notifications),
		})
	}

	return summaries
}

// UpdateProfile changes the account name and/or email. Changing email moves
// the record to its new key; the numeric user_id is stable so cross-entity
// references stay intact.
func (s *Store) UpdateProfile(ctx context.Context, email, newName, newEmail string) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[email]
	if !ok {
		return nil, domainerrors.ErrUserNotFound
	}

	if newEmail != "" && newEmail != email {
		if _, taken := s.users[newEmail]; taken {
			return nil, domainerrors.ErrEmailTaken
		}
		delete(s.users, email)
		user.Email = newEmail
		s.users[newEmail] = user
	}
	if newName != "" {
		user.Name = newName
	}

	return cloneUser(user), s.flush()
}

// ChangePassword replaces the password after verifying the old one.
func (s *Store) ChangePassword(ctx context.Context, email, oldPassword, newPassword string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[email]
	if !ok {
		return domainerrors.ErrUserNotFound
	}
	if user.Password != oldPassword {
		return domainerrors.ErrIncorrectPassword
	}
	user.Password = newPassword

	return s.flush()
}

// DeleteUser removes the account and sweeps its user_id out of every brand's
// followers list and every product's wishlister list, so no dangling
// references remain anywhere in the store. O(B+P) by necessity: the flat
// format has no reverse index.
func (s *Store) DeleteUser(ctx context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[email]
	if !ok {
		return domainerrors.ErrUserNotFound
	}

	for _, brand := range s.brands {
		brand.FollowersList = removeString(brand.FollowersList, user.UserID)
	}
	for _, product := range s.products {
		product.WishlisterUsers = removeString(product.WishlisterUsers, user.UserID)
	}
	delete(s.users, email)

	return s.flush()
}

// removeString deletes the first occurrence of v, preserving order.
func removeString(list []string, v string) []string {
	if i := slices.Index(list, v); i >= 0 {
		return slices.Delete(list, i, i+1)
	}

	return list
}

func cloneUser(u *entity.User) *entity.User {
	c := *u
	c.FollowedBrand = slices.Clone(u.FollowedBrand)
	c.WishList = slices.Clone(u.WishList)
	c.Notifications = slices.Clone(u.Notifications)
	c.FollowedSubcategories = slices.Clone(u.FollowedSubcategories)

	return &c
}
