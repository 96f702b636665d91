package media

import (
	"context"
	"fmt"
	"io"

	"github.com/dmitrijs2005/rentadmin/internal/client/client"
	"github.com/dmitrijs2005/rentadmin/internal/client/models"
	"github.com/dmitrijs2005/rentadmin/internal/client/sources"
	"github.com/dmitrijs2005/rentadmin/internal/logging"
)

// Stager keeps local copies of images for entities without an identifier.
type Stager interface {
	Stage(ctx context.Context, name string, r io.Reader) (string, error)
	Open(ref string) (io.ReadCloser, string, error)
	Release(ref string) error
}

// Attacher is the part of the remote API the session needs.
type Attacher interface {
	AttachImages(ctx context.Context, kind models.Kind, id string, files []client.Upload) ([]string, error)
	DetachImage(ctx context.Context, kind models.Kind, id string, ref string) ([]string, error)
	Delete(ctx context.Context, kind models.Kind, id string) error
}

type State int

const (
	StateEmpty State = iota
	StateLocalOnly
	StatePersisted
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateLocalOnly:
		return "local-only"
	case StatePersisted:
		return "persisted"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

type Option func(*Session)

// WithMaxImages caps the set size. Staged images beyond the cap push out the
// oldest ones; a saved entity must have images removed before adding more.
func WithMaxImages(n int) Option {
	return func(s *Session) { s.max = n }
}

func WithLogger(l logging.Logger) Option {
	return func(s *Session) { s.log = l }
}

// Session is the image set of one entity form.
type Session struct {
	kind        models.Kind
	id          string
	refs        []string
	active      int
	speculative bool
	max         int

	api   Attacher
	stage Stager
	log   logging.Logger
}

// NewSession starts a session for the entity kind/id. id is empty for a new
// entity. existing holds the entity's durable references; ephemeral ones are
// ignored.
func NewSession(kind models.Kind, id string, existing []string, api Attacher, stage Stager, opts ...Option) *Session {
	s := &Session{
		kind:  kind,
		id:    id,
		max:   kind.MaxImages(),
		api:   api,
		stage: stage,
		log:   logging.Nop(),
	}
	for _, o := range opts {
		o(s)
	}
	s.refs = models.DurableRefs(existing)
	return s
}

func (s *Session) Kind() models.Kind { return s.kind }

// EntityID is the server identifier, empty before the first save.
func (s *Session) EntityID() string { return s.id }

// Speculative reports whether Finalize created the entity and no Commit
// followed yet.
func (s *Session) Speculative() bool { return s.speculative }

// Refs returns a copy of the current image set in carousel order.
func (s *Session) Refs() []string {
	return append([]string{}, s.refs...)
}

// DurableRefs returns the set without ephemeral references.
func (s *Session) DurableRefs() []string {
	return models.DurableRefs(s.refs)
}

// Active is the carousel position, 0 on an empty set.
func (s *Session) Active() int { return s.active }

func (s *Session) State() State {
	if len(s.refs) == 0 {
		return StateEmpty
	}
	if s.HasPending() {
		return StateLocalOnly
	}
	return StatePersisted
}

// HasPending reports whether any ephemeral reference awaits upload.
func (s *Session) HasPending() bool {
	for _, r := range s.refs {
		if models.IsEphemeralRef(r) {
			return true
		}
	}
	return false
}

func (s *Session) Select(i int) error {
	if i < 0 || i >= len(s.refs) {
		return fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, i, len(s.refs))
	}
	s.active = i
	return nil
}

func (s *Session) Next() {
	if n := len(s.refs); n > 0 {
		s.active = (s.active + 1) % n
	}
}

func (s *Session) Prev() {
	if n := len(s.refs); n > 0 {
		s.active = (s.active - 1 + n) % n
	}
}

// SetDurable replaces the set with ref, an already hosted image, or empties it
// when ref is "". Staged images are released. Nothing is sent until submit.
func (s *Session) SetDurable(ctx context.Context, ref string) {
	stale := s.pending()
	s.refs = nil
	if ref != "" {
		s.refs = []string{ref}
	}
	s.active = 0
	s.releaseAll(ctx, stale)
}

// Add attaches srcs. With an identifier the files are uploaded at once, along
// with any staged leftovers, and the server's list replaces the set.
// Without one they are staged locally and appended. On error the set is
// unchanged.
func (s *Session) Add(ctx context.Context, srcs []sources.Source) error {
	if len(srcs) == 0 {
		return nil
	}
	if s.id != "" {
		return s.addRemote(ctx, srcs)
	}
	return s.addLocal(ctx, srcs)
}

func (s *Session) addLocal(ctx context.Context, srcs []sources.Source) error {
	if s.max > 0 && len(srcs) > s.max {
		srcs = srcs[len(srcs)-s.max:]
	}

	staged := make([]string, 0, len(srcs))
	for _, src := range srcs {
		ref, err := s.stageOne(ctx, src)
		if err != nil {
			s.releaseAll(ctx, staged)
			return err
		}
		staged = append(staged, ref)
	}

	next := append(append([]string{}, s.refs...), staged...)
	kept := s.trim(next)
	s.releaseAll(ctx, dropped(next, kept))

	s.refs = kept
	s.active = len(kept) - len(staged)

	s.log.Debug(ctx, "images staged", "kind", s.kind, "count", len(staged))
	return nil
}

func (s *Session) stageOne(ctx context.Context, src sources.Source) (string, error) {
	rc, err := src.Open(ctx)
	if err != nil {
		return "", err
	}
	defer rc.Close()
	return s.stage.Stage(ctx, src.Name(), rc)
}

func (s *Session) addRemote(ctx context.Context, srcs []sources.Source) error {
	pending := s.pending()
	if s.max > 0 {
		room := s.max - len(s.DurableRefs())
		if len(srcs) > room {
			return fmt.Errorf("%w: %s holds at most %d", ErrLimitReached, s.kind.Singular(), s.max)
		}
		if keep := room - len(srcs); len(pending) > keep {
			pending = pending[len(pending)-keep:]
		}
	}

	uploads, closeAll, err := s.openPending(pending)
	if err != nil {
		return err
	}
	defer func() { closeAll() }()

	for _, src := range srcs {
		rc, err := src.Open(ctx)
		if err != nil {
			return err
		}
		uploads = append(uploads, client.Upload{Name: src.Name(), Content: rc})
		closeAll = chain(closeAll, rc)
	}

	images, err := s.api.AttachImages(ctx, s.kind, s.id, uploads)
	if err != nil {
		return err
	}

	stale := s.pending()
	s.refs = append([]string{}, images...)
	s.active = max(0, len(s.refs)-1)
	s.releaseAll(ctx, stale)

	s.log.Debug(ctx, "images attached", "kind", s.kind, "id", s.id, "total", len(s.refs))
	return nil
}

// Remove drops the image at index i. Durable images of a saved entity are
// detached on the server and the server's list replaces the set.
func (s *Session) Remove(ctx context.Context, i int) error {
	if i < 0 || i >= len(s.refs) {
		return fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, i, len(s.refs))
	}
	ref := s.refs[i]

	if s.id == "" || models.IsEphemeralRef(ref) {
		next := make([]string, 0, len(s.refs)-1)
		next = append(next, s.refs[:i]...)
		next = append(next, s.refs[i+1:]...)
		s.refs = next
		s.clamp()
		s.releaseAll(ctx, []string{ref})
		return nil
	}

	images, err := s.api.DetachImage(ctx, s.kind, s.id, ref)
	if err != nil {
		return err
	}

	stale := s.pending()
	s.refs = append([]string{}, images...)
	s.clamp()
	s.releaseAll(ctx, stale)

	s.log.Debug(ctx, "image detached", "kind", s.kind, "id", s.id, "total", len(s.refs))
	return nil
}

// Finalize runs on submit. An entity without identifier is created first
// through create (its payload must not carry images); then every staged image
// is uploaded and the server's list becomes the set.
func (s *Session) Finalize(ctx context.Context, create func(ctx context.Context) (string, error)) error {
	if s.id == "" {
		id, err := create(ctx)
		if err != nil {
			return fmt.Errorf("create %s: %w", s.kind.Singular(), err)
		}
		s.id = id
		s.speculative = true
		s.log.Info(ctx, "entity created", "kind", s.kind, "id", id)
	}

	pending := s.pending()
	if len(pending) == 0 {
		return nil
	}

	uploads, closeAll, err := s.openPending(pending)
	if err != nil {
		return &UploadError{EntityID: s.id, Err: err}
	}
	defer closeAll()

	images, err := s.api.AttachImages(ctx, s.kind, s.id, uploads)
	if err != nil {
		return &UploadError{EntityID: s.id, Err: err}
	}

	s.refs = append([]string{}, images...)
	s.clamp()
	s.releaseAll(ctx, pending)

	s.log.Debug(ctx, "staged images uploaded", "kind", s.kind, "id", s.id, "total", len(s.refs))
	return nil
}

// Commit marks the entity as saved; Discard will no longer delete it.
func (s *Session) Commit() {
	s.speculative = false
}

// Discard releases every staged image and deletes the entity if Finalize
// created it and it was never committed.
func (s *Session) Discard(ctx context.Context) error {
	s.releaseAll(ctx, s.pending())
	s.refs = nil
	s.active = 0

	if !s.speculative {
		return nil
	}
	s.speculative = false

	if err := s.api.Delete(ctx, s.kind, s.id); err != nil {
		s.log.Warn(ctx, "unsaved entity not deleted", "kind", s.kind, "id", s.id, "error", err)
		return &OrphanError{Kind: s.kind, EntityID: s.id, Err: err}
	}

	s.log.Info(ctx, "unsaved entity deleted", "kind", s.kind, "id", s.id)
	s.id = ""
	return nil
}

func (s *Session) pending() []string {
	var out []string
	for _, r := range s.refs {
		if models.IsEphemeralRef(r) {
			out = append(out, r)
		}
	}
	return out
}

func (s *Session) openPending(refs []string) ([]client.Upload, func(), error) {
	uploads := make([]client.Upload, 0, len(refs))
	closeAll := func() {}

	for _, ref := range refs {
		rc, name, err := s.stage.Open(ref)
		if err != nil {
			closeAll()
			return nil, nil, err
		}
		uploads = append(uploads, client.Upload{Name: name, Content: rc})
		closeAll = chain(closeAll, rc)
	}
	return uploads, closeAll, nil
}

func (s *Session) releaseAll(ctx context.Context, refs []string) {
	for _, ref := range refs {
		if !models.IsEphemeralRef(ref) {
			continue
		}
		if err := s.stage.Release(ref); err != nil {
			s.log.Warn(ctx, "release staged image", "ref", ref, "error", err)
		}
	}
}

func (s *Session) trim(refs []string) []string {
	out := append([]string{}, refs...)
	if s.max > 0 && len(out) > s.max {
		out = out[len(out)-s.max:]
	}
	return out
}

func (s *Session) clamp() {
	if s.active >= len(s.refs) {
		s.active = max(0, len(s.refs)-1)
	}
}

func chain(prev func(), c io.Closer) func() {
	return func() {
		_ = c.Close()
		prev()
	}
}

// dropped lists the members of all that are missing from kept.
func dropped(all, kept []string) []string {
	in := make(map[string]struct{}, len(kept))
	for _, k := range kept {
		in[k] = struct{}{}
	}
	var out []string
	for _, a := range all {
		if _, ok := in[a]; !ok {
			out = append(out, a)
		}
	}
	return out
}
