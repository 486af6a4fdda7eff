package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/verdantly/verdantly/internal/client/api"
	"github.com/verdantly/verdantly/internal/client/models"
	"github.com/verdantly/verdantly/internal/client/session"
	"github.com/verdantly/verdantly/internal/common"
	"github.com/verdantly/verdantly/internal/logging"
)

// EditState is the profile screen's lifecycle state.
type EditState string

const (
	StateViewing EditState = "viewing"
	StateEditing EditState = "editing"
	StateSaving  EditState = "saving"
)

// ErrNoActiveDraft is returned by edit operations outside of Editing state.
var ErrNoActiveDraft = errors.New("no active draft")

// Draft is an uncommitted local copy of the editable profile fields plus an
// optional pending asset reference. PendingAsset holds the picker's
// ephemeral URI until it has been migrated; DurableAsset holds the stable
// path afterwards. A draft never commits with only an ephemeral reference.
type Draft struct {
	Fields       models.EditableFields
	PendingAsset string
	DurableAsset string
}

// AssetStore migrates ephemeral picker files into durable storage.
type AssetStore interface {
	Persist(ctx context.Context, ephemeralURI string) (string, error)
}

// ProfileService is the draft/commit state machine for profile edits:
// Viewing -> Editing -> (Saving -> Viewing) | (Viewing on cancel).
// The draft is a copy; nothing is visible to the rest of the app until a
// commit has been acknowledged by the backend.
type ProfileService struct {
	client api.Client
	assets AssetStore
	store  *session.Store
	log    logging.Logger

	mu    sync.Mutex
	state EditState
	draft *Draft
}

func NewProfileService(client api.Client, assets AssetStore, store *session.Store, log logging.Logger) *ProfileService {
	return &ProfileService{
		client: client,
		assets: assets,
		store:  store,
		log:    log,
		state:  StateViewing,
	}
}

func (p *ProfileService) State() EditState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Draft returns a copy of the current draft and whether one exists.
func (p *ProfileService) Draft() (Draft, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.draft == nil {
		return Draft{}, false
	}
	return *p.draft, true
}

// BeginEdit enters Editing, seeding a fresh draft from the current session
// profile. Re-entering while already editing reseeds the draft and discards
// any earlier uncommitted edits.
func (p *ProfileService) BeginEdit() error {
	if !p.store.Logged() {
		return common.ErrorNotLoggedIn
	}

	profile := p.store.Profile()

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state == StateSaving {
		return fmt.Errorf("commit in progress: %w", ErrNoActiveDraft)
	}
	p.draft = &Draft{
		Fields: models.EditableFields{
			FirstName:   profile.FirstName,
			LastName:    profile.LastName,
			Username:    profile.Username,
			Birthday:    profile.Birthday,
			PhoneNumber: profile.PhoneNumber,
		},
	}
	p.state = StateEditing
	return nil
}

// SetFields replaces the draft's editable fields.
func (p *ProfileService) SetFields(fields models.EditableFields) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state != StateEditing || p.draft == nil {
		return ErrNoActiveDraft
	}
	p.draft.Fields = fields
	return nil
}

// AttachAsset records an ephemeral picker URI on the draft. The bytes are
// migrated to durable storage only during Save.
func (p *ProfileService) AttachAsset(ephemeralURI string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state != StateEditing || p.draft == nil {
		return ErrNoActiveDraft
	}
	p.draft.PendingAsset = ephemeralURI
	p.draft.DurableAsset = ""
	return nil
}

// Cancel discards the draft and returns to Viewing.
func (p *ProfileService) Cancel() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.draft = nil
	p.state = StateViewing
}

// Save commits the draft:
//
//  1. If an ephemeral asset is attached, migrate it to durable storage.
//     Failure aborts the whole commit and returns to Editing with the
//     draft intact.
//  2. Send the editable fields to the backend. Unchanged fields are sent
//     too; there is no dirty-field diffing.
//  3. Only after the acknowledgment, merge fields and durable asset path
//     into the session store as one logical update and discard the draft.
//
// On any failure nothing is merged and the draft remains editable, so the
// user can retry without re-entering data.
func (p *ProfileService) Save(ctx context.Context) error {
	p.mu.Lock()
	if p.state != StateEditing || p.draft == nil {
		p.mu.Unlock()
		return ErrNoActiveDraft
	}
	p.state = StateSaving
	draft := *p.draft
	p.mu.Unlock()

	if draft.PendingAsset != "" {
		durable, err := p.assets.Persist(ctx, draft.PendingAsset)
		if err != nil {
			p.mu.Lock()
			p.state = StateEditing
			p.mu.Unlock()
			return fmt.Errorf("persist asset: %w", err)
		}
		draft.DurableAsset = durable
		draft.PendingAsset = ""

		// The ephemeral source is gone; remember the durable path so a
		// retry after a failed update does not re-run the migration.
		p.mu.Lock()
		p.draft.DurableAsset = durable
		p.draft.PendingAsset = ""
		p.mu.Unlock()
	}

	if err := p.client.UpdateProfile(ctx, p.store.UserID(), draft.Fields); err != nil {
		p.mu.Lock()
		p.state = StateEditing
		p.mu.Unlock()
		return fmt.Errorf("update profile: %w", err)
	}

	p.store.ApplyProfileEdit(draft.Fields, draft.DurableAsset)

	p.mu.Lock()
	p.draft = nil
	p.state = StateViewing
	p.mu.Unlock()

	p.log.Info(ctx, "profile updated", "user_id", p.store.UserID())
	return nil
}
