package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/verdantly/verdantly/internal/client/api"
	"github.com/verdantly/verdantly/internal/client/assets"
	"github.com/verdantly/verdantly/internal/client/models"
	"github.com/verdantly/verdantly/internal/client/session"
	"github.com/verdantly/verdantly/internal/common"
)

// ---- fake asset store ----

type fakeAssets struct {
	PersistRet string
	PersistErr error

	LastPersistURI string
	PersistCalls   int
}

func (f *fakeAssets) Persist(ctx context.Context, uri string) (string, error) {
	f.PersistCalls++
	f.LastPersistURI = uri
	if f.PersistErr != nil {
		return "", f.PersistErr
	}
	return f.PersistRet, nil
}

func loggedInStore() *session.Store {
	store := session.NewStore()
	store.ApplyBootstrap(&models.SessionBootstrap{
		User: models.UserProfile{
			ID:          "u1",
			FirstName:   "A",
			LastName:    "B",
			Username:    "ab",
			Birthday:    "2000-01-01",
			PhoneNumber: "555",
		},
		AccountType: "reader",
	})
	return store
}

func newProfileService(store *session.Store, fc *fakeClient, fa *fakeAssets) *ProfileService {
	return NewProfileService(fc, fa, store, testLogger())
}

func TestBeginEdit_RequiresLogin(t *testing.T) {
	svc := newProfileService(session.NewStore(), &fakeClient{}, &fakeAssets{})
	require.ErrorIs(t, svc.BeginEdit(), common.ErrorNotLoggedIn)
	require.Equal(t, StateViewing, svc.State())
}

func TestBeginEdit_SeedsDraftFromCurrentProfile(t *testing.T) {
	store := loggedInStore()
	svc := newProfileService(store, &fakeClient{}, &fakeAssets{})

	require.NoError(t, svc.BeginEdit())
	require.Equal(t, StateEditing, svc.State())

	draft, ok := svc.Draft()
	require.True(t, ok)
	require.Equal(t, "A", draft.Fields.FirstName)
	require.Equal(t, "ab", draft.Fields.Username)
	require.Empty(t, draft.PendingAsset)
}

func TestBeginEdit_ReentryReseedsAndDiscardsEdits(t *testing.T) {
	store := loggedInStore()
	svc := newProfileService(store, &fakeClient{}, &fakeAssets{})

	require.NoError(t, svc.BeginEdit())
	require.NoError(t, svc.SetFields(models.EditableFields{FirstName: "Edited"}))
	require.NoError(t, svc.AttachAsset("file:///tmp/pic.jpg"))

	// profile changed elsewhere in the meantime
	store.ApplyProfileEdit(models.EditableFields{
		FirstName: "Fresh", LastName: "B", Username: "ab",
		Birthday: "2000-01-01", PhoneNumber: "555",
	}, "")

	require.NoError(t, svc.BeginEdit())

	draft, ok := svc.Draft()
	require.True(t, ok)
	require.Equal(t, "Fresh", draft.Fields.FirstName)
	require.Empty(t, draft.PendingAsset)
}

func TestEditOps_WithoutDraft(t *testing.T) {
	svc := newProfileService(loggedInStore(), &fakeClient{}, &fakeAssets{})

	require.ErrorIs(t, svc.SetFields(models.EditableFields{}), ErrNoActiveDraft)
	require.ErrorIs(t, svc.AttachAsset("file:///x"), ErrNoActiveDraft)
	require.ErrorIs(t, svc.Save(context.Background()), ErrNoActiveDraft)
}

func TestSave_NoAssetChange_SkipsPersist(t *testing.T) {
	store := loggedInStore()
	fc := &fakeClient{}
	fa := &fakeAssets{}
	svc := newProfileService(store, fc, fa)

	require.NoError(t, svc.BeginEdit())
	fields := models.EditableFields{
		FirstName: "C", LastName: "D", Username: "cd",
		Birthday: "1999-09-09", PhoneNumber: "777",
	}
	require.NoError(t, svc.SetFields(fields))
	require.NoError(t, svc.Save(context.Background()))

	require.Zero(t, fa.PersistCalls)
	require.Equal(t, 1, fc.UpdateCalls)
	require.Equal(t, "u1", fc.LastUpdateUserID)
	require.Equal(t, fields, fc.LastUpdateFields)

	require.Equal(t, "C", store.Profile().FirstName)
	require.Equal(t, StateViewing, svc.State())
	_, ok := svc.Draft()
	require.False(t, ok)
}

func TestSave_UnchangedFieldsStillSent(t *testing.T) {
	store := loggedInStore()
	fc := &fakeClient{}
	svc := newProfileService(store, fc, &fakeAssets{})

	require.NoError(t, svc.BeginEdit())
	require.NoError(t, svc.Save(context.Background()))

	// no dirty-field diffing: the full editable set goes out as-is
	require.Equal(t, 1, fc.UpdateCalls)
	require.Equal(t, "A", fc.LastUpdateFields.FirstName)
}

func TestSave_WithAsset_MigratesBeforeUpdate(t *testing.T) {
	store := loggedInStore()

	var order []string
	fc := &fakeClient{}
	fa := &fakeAssets{PersistRet: "/docs/pic.jpg"}
	svc := NewProfileService(
		callOrderClient{fc, func() { order = append(order, "update") }},
		callOrderAssets{fa, func() { order = append(order, "persist") }},
		store, testLogger())

	require.NoError(t, svc.BeginEdit())
	require.NoError(t, svc.AttachAsset("file:///tmp/pic.jpg"))
	require.NoError(t, svc.Save(context.Background()))

	require.Equal(t, []string{"persist", "update"}, order)
	require.Equal(t, "file:///tmp/pic.jpg", fa.LastPersistURI)
	require.Equal(t, "/docs/pic.jpg", store.AvatarPath())
}

func TestSave_PersistFailure_AbortsBeforeNetwork(t *testing.T) {
	store := loggedInStore()
	before := store.Profile()

	fc := &fakeClient{}
	fa := &fakeAssets{PersistErr: assets.ErrPersistFailed}
	svc := newProfileService(store, fc, fa)

	require.NoError(t, svc.BeginEdit())
	require.NoError(t, svc.SetFields(models.EditableFields{FirstName: "Edited"}))
	require.NoError(t, svc.AttachAsset("file:///tmp/pic.jpg"))

	err := svc.Save(context.Background())
	require.ErrorIs(t, err, assets.ErrPersistFailed)

	// no network call, no merge, draft fully intact
	require.Zero(t, fc.UpdateCalls)
	require.Equal(t, before, store.Profile())
	require.Equal(t, StateEditing, svc.State())

	draft, ok := svc.Draft()
	require.True(t, ok)
	require.Equal(t, "Edited", draft.Fields.FirstName)
	require.Equal(t, "file:///tmp/pic.jpg", draft.PendingAsset)
}

func TestSave_UpdateFailure_KeepsDraftAndStore(t *testing.T) {
	store := loggedInStore()
	before := store.Profile()

	fc := &fakeClient{UpdateErr: api.ErrUpdateRejected}
	svc := newProfileService(store, fc, &fakeAssets{})

	require.NoError(t, svc.BeginEdit())
	require.NoError(t, svc.SetFields(models.EditableFields{FirstName: "Edited"}))

	err := svc.Save(context.Background())
	require.ErrorIs(t, err, api.ErrUpdateRejected)

	require.Equal(t, before, store.Profile())
	require.Equal(t, StateEditing, svc.State())

	draft, ok := svc.Draft()
	require.True(t, ok)
	require.Equal(t, "Edited", draft.Fields.FirstName)
}

func TestSave_UpdateFailureAfterPersist_RetrySkipsMigration(t *testing.T) {
	store := loggedInStore()

	fc := &fakeClient{UpdateErr: api.ErrUpdateRejected}
	fa := &fakeAssets{PersistRet: "/docs/pic.jpg"}
	svc := newProfileService(store, fc, fa)

	require.NoError(t, svc.BeginEdit())
	require.NoError(t, svc.AttachAsset("file:///tmp/pic.jpg"))
	require.Error(t, svc.Save(context.Background()))
	require.Equal(t, 1, fa.PersistCalls)

	// the source was consumed by the move; the retry reuses the durable copy
	fc.UpdateErr = nil
	require.NoError(t, svc.Save(context.Background()))
	require.Equal(t, 1, fa.PersistCalls)
	require.Equal(t, "/docs/pic.jpg", store.AvatarPath())
}

func TestCancel_DiscardsDraft(t *testing.T) {
	svc := newProfileService(loggedInStore(), &fakeClient{}, &fakeAssets{})

	require.NoError(t, svc.BeginEdit())
	require.NoError(t, svc.SetFields(models.EditableFields{FirstName: "Edited"}))
	svc.Cancel()

	require.Equal(t, StateViewing, svc.State())
	_, ok := svc.Draft()
	require.False(t, ok)
}

// ---- call-order wrappers ----

type callOrderClient struct {
	*fakeClient
	onUpdate func()
}

func (c callOrderClient) UpdateProfile(ctx context.Context, userID string, fields models.EditableFields) error {
	c.onUpdate()
	return c.fakeClient.UpdateProfile(ctx, userID, fields)
}

type callOrderAssets struct {
	*fakeAssets
	onPersist func()
}

func (a callOrderAssets) Persist(ctx context.Context, uri string) (string, error) {
	a.onPersist()
	return a.fakeAssets.Persist(ctx, uri)
}
