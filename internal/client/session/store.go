// Package session holds the process-wide reactive session state. The store
// has a fixed, enumerated set of slices, a single writer method per slice,
// and a subscription mechanism so readers can render on partial state.
package session

import (
	"sync"

	"github.com/verdantly/verdantly/internal/client/models"
)

// Slice identifies one independently-updatable part of the session state.
type Slice string

const (
	SliceLogged            Slice = "logged"
	SliceUserID            Slice = "user_id"
	SliceProfile           Slice = "profile"
	SliceVendorInitialized Slice = "vendor_initialized"
	SliceLikedArticles     Slice = "liked_articles"
	SliceSavedArticles     Slice = "saved_articles"
	SliceAccountType       Slice = "account_type"
)

// Store starts logged-out and empty. All mutation goes through the Set*
// methods (one writer per slice); subscribers are notified per slice write,
// in the order the writes were issued.
type Store struct {
	mu sync.Mutex

	logged            bool
	userID            string
	profile           models.UserProfile
	avatarPath        string
	vendorInitialized bool
	liked             []string
	saved             []string
	accountType       string

	subs    map[int]func(Slice)
	nextSub int
}

func NewStore() *Store {
	return &Store{subs: make(map[int]func(Slice))}
}

// Subscribe registers fn to be called after every slice write. The returned
// function removes the subscription. Callbacks run synchronously on the
// writer's goroutine and must not write back into the store.
func (s *Store) Subscribe(fn func(Slice)) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

func (s *Store) notify(slice Slice) {
	s.mu.Lock()
	fns := make([]func(Slice), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(slice)
	}
}

func (s *Store) SetLogged(v bool) {
	s.mu.Lock()
	s.logged = v
	s.mu.Unlock()
	s.notify(SliceLogged)
}

func (s *Store) SetUserID(id string) {
	s.mu.Lock()
	s.userID = id
	s.mu.Unlock()
	s.notify(SliceUserID)
}

func (s *Store) SetProfile(p models.UserProfile) {
	s.mu.Lock()
	s.profile = p
	s.mu.Unlock()
	s.notify(SliceProfile)
}

func (s *Store) SetVendorInitialized(v bool) {
	s.mu.Lock()
	s.vendorInitialized = v
	s.mu.Unlock()
	s.notify(SliceVendorInitialized)
}

func (s *Store) SetLikedArticles(ids []string) {
	s.mu.Lock()
	s.liked = append([]string(nil), ids...)
	s.mu.Unlock()
	s.notify(SliceLikedArticles)
}

func (s *Store) SetSavedArticles(ids []string) {
	s.mu.Lock()
	s.saved = append([]string(nil), ids...)
	s.mu.Unlock()
	s.notify(SliceSavedArticles)
}

func (s *Store) SetAccountType(t string) {
	s.mu.Lock()
	s.accountType = t
	s.mu.Unlock()
	s.notify(SliceAccountType)
}

func (s *Store) SetAvatarPath(p string) {
	s.mu.Lock()
	s.avatarPath = p
	s.mu.Unlock()
	s.notify(SliceProfile)
}

// ApplyBootstrap populates the store from a successful login result as a
// fixed ordered sequence of independent slice writes: login flag, user id,
// full profile, vendor flag, liked list (if supplied), saved list (if
// supplied), account type. Each write is visible to subscribers as soon as
// it is issued.
//
// The liked/saved lists are only overwritten when the server explicitly
// supplied them; an absent list never clears a previously known one.
func (s *Store) ApplyBootstrap(bs *models.SessionBootstrap) {
	s.SetLogged(true)
	s.SetUserID(bs.User.ID)
	s.SetProfile(bs.User)
	s.SetVendorInitialized(bs.User.VendorAccountInitialized)
	if bs.User.LikedArticles.Present {
		s.SetLikedArticles(bs.User.LikedArticles.Value)
	}
	if bs.User.SavedArticles.Present {
		s.SetSavedArticles(bs.User.SavedArticles.Value)
	}
	s.SetAccountType(bs.AccountType)
}

// ApplyProfileEdit merges a confirmed profile edit into the live profile as
// one logical update: the editable fields and, when non-empty, the durable
// avatar path land together under a single profile notification.
func (s *Store) ApplyProfileEdit(fields models.EditableFields, avatarPath string) {
	s.mu.Lock()
	s.profile.FirstName = fields.FirstName
	s.profile.LastName = fields.LastName
	s.profile.Username = fields.Username
	s.profile.Birthday = fields.Birthday
	s.profile.PhoneNumber = fields.PhoneNumber
	if avatarPath != "" {
		s.avatarPath = avatarPath
	}
	s.mu.Unlock()
	s.notify(SliceProfile)
}

// Reset tears the session down to the initial logged-out state. This is the
// explicit inverse of login; nothing else clears the store.
func (s *Store) Reset() {
	s.mu.Lock()
	s.logged = false
	s.userID = ""
	s.profile = models.UserProfile{}
	s.avatarPath = ""
	s.vendorInitialized = false
	s.liked = nil
	s.saved = nil
	s.accountType = ""
	s.mu.Unlock()
	s.notify(SliceLogged)
}

func (s *Store) Logged() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.logged
}

func (s *Store) UserID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.userID
}

// Profile returns a copy of the live profile. Holders of the copy never see
// later store writes, and edits to the copy are invisible to the store.
func (s *Store) Profile() models.UserProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile
}

func (s *Store) AvatarPath() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.avatarPath
}

func (s *Store) VendorInitialized() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.vendorInitialized
}

func (s *Store) LikedArticles() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.liked...)
}

func (s *Store) SavedArticles() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.saved...)
}

func (s *Store) AccountType() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accountType
}
