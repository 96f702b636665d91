// Package forms holds the field state of the car, driver and term forms and
// runs their submit and cancel flows on top of a media session.
package forms

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/dmitrijs2005/rentadmin/internal/client/media"
	"github.com/dmitrijs2005/rentadmin/internal/client/models"
	"github.com/dmitrijs2005/rentadmin/internal/client/sources"
	"github.com/dmitrijs2005/rentadmin/internal/logging"
)

// API is the part of the remote API a form needs.
type API interface {
	media.Attacher
	Create(ctx context.Context, kind models.Kind, payload any) (string, error)
	Update(ctx context.Context, kind models.Kind, id string, payload any) error
}

// OrphanRecorder stores entities that a cancel could not clean up.
type OrphanRecorder interface {
	Record(ctx context.Context, o models.Orphan) error
}

// Field is one displayed name/value pair.
type Field struct {
	Name  string
	Value string
}

type entity interface {
	set(field, value string) error
	fields() []Field
	validate() error
	// payload builds the request body; images are omitted when withImages
	// is false.
	payload(images []string, withImages bool) any
}

// Factory builds forms wired to shared collaborators.
type Factory struct {
	API         API
	Stage       media.Stager
	Orphans     OrphanRecorder
	CountryCode string
	Now         func() time.Time
	Log         logging.Logger
}

func (f *Factory) now() time.Time {
	if f.Now == nil {
		return time.Now()
	}
	return f.Now()
}

func (f *Factory) logger() logging.Logger {
	if f.Log == nil {
		return logging.Nop()
	}
	return f.Log
}

func (f *Factory) build(kind models.Kind, id string, images []string, e entity) *Form {
	log := f.logger().With("form", kind.Singular())
	return &Form{
		kind:    kind,
		editing: id != "",
		entity:  e,
		session: media.NewSession(kind, id, images, f.API, f.Stage, media.WithLogger(log)),
		api:     f.API,
		orphans: f.Orphans,
		log:     log,
	}
}

func (f *Factory) NewCar() *Form {
	return f.build(models.KindCar, "", nil, &carEntity{car: models.NewCar(f.now()), cc: f.CountryCode})
}

func (f *Factory) EditCar(c models.Car) *Form {
	return f.build(models.KindCar, c.GetID(), c.ImageRefs(), &carEntity{car: c.WithoutImages(), cc: f.CountryCode})
}

func (f *Factory) NewDriver() *Form {
	return f.build(models.KindDriver, "", nil, &driverEntity{driver: models.NewDriver(), cc: f.CountryCode})
}

func (f *Factory) EditDriver(d models.Driver) *Form {
	if d.Status == "" {
		d.Status = models.DriverAvailable
	}
	return f.build(models.KindDriver, d.GetID(), d.ImageRefs(), &driverEntity{driver: d.WithoutImages(), cc: f.CountryCode})
}

func (f *Factory) NewTerm() *Form {
	return f.build(models.KindTerm, "", nil, &termEntity{})
}

func (f *Factory) EditTerm(t models.Term) *Form {
	return f.build(models.KindTerm, t.GetID(), nil, &termEntity{term: t})
}

// Form is one open entity form. Network operations are serialized by a busy
// flag; an overlapping call fails with ErrBusy.
type Form struct {
	kind    models.Kind
	editing bool
	entity  entity
	session *media.Session
	api     API
	orphans OrphanRecorder
	log     logging.Logger

	busy atomic.Bool
}

func (f *Form) acquire() error {
	if !f.busy.CompareAndSwap(false, true) {
		return ErrBusy
	}
	return nil
}

func (f *Form) release() { f.busy.Store(false) }

func (f *Form) Kind() models.Kind { return f.kind }

// EntityID is empty until the entity exists on the server.
func (f *Form) EntityID() string { return f.session.EntityID() }

// Title describes the form for prompts.
func (f *Form) Title() string {
	if f.editing {
		return fmt.Sprintf("edit %s %s", f.kind.Singular(), f.session.EntityID())
	}
	if id := f.session.EntityID(); id != "" {
		return fmt.Sprintf("new %s (unsaved %s)", f.kind.Singular(), id)
	}
	return "new " + f.kind.Singular()
}

// Set parses and stores a field value.
func (f *Form) Set(field, value string) error {
	if err := f.acquire(); err != nil {
		return err
	}
	defer f.release()

	if f.kind == models.KindDriver && field == photoURLField {
		ref, err := parsePhotoURL(value)
		if err != nil {
			return err
		}
		f.session.SetDurable(context.Background(), ref)
		return nil
	}
	return f.entity.set(field, value)
}

func (f *Form) Fields() []Field {
	return f.entity.fields()
}

func (f *Form) AddImages(ctx context.Context, srcs []sources.Source) error {
	if !f.kind.HasImages() {
		return ErrNoImages
	}
	if err := f.acquire(); err != nil {
		return err
	}
	defer f.release()
	return f.session.Add(ctx, srcs)
}

func (f *Form) RemoveImage(ctx context.Context, i int) error {
	if !f.kind.HasImages() {
		return ErrNoImages
	}
	if err := f.acquire(); err != nil {
		return err
	}
	defer f.release()
	return f.session.Remove(ctx, i)
}

func (f *Form) SelectImage(i int) error {
	if !f.kind.HasImages() {
		return ErrNoImages
	}
	return f.session.Select(i)
}

func (f *Form) NextImage() error {
	if !f.kind.HasImages() {
		return ErrNoImages
	}
	f.session.Next()
	return nil
}

func (f *Form) PrevImage() error {
	if !f.kind.HasImages() {
		return ErrNoImages
	}
	f.session.Prev()
	return nil
}

// Images returns the current image set and the active carousel index.
func (f *Form) Images() ([]string, int, error) {
	if !f.kind.HasImages() {
		return nil, 0, ErrNoImages
	}
	return f.session.Refs(), f.session.Active(), nil
}

// Submit validates the form and saves it. A new entity is created without
// images, its staged images are uploaded, and it is then updated with the
// final image list. An existing entity is updated with its durable images.
func (f *Form) Submit(ctx context.Context) error {
	if err := f.acquire(); err != nil {
		return err
	}
	defer f.release()

	if err := f.entity.validate(); err != nil {
		return err
	}

	existed := f.session.EntityID() != ""
	hadPending := f.session.HasPending()
	hadDurable := len(f.session.DurableRefs()) > 0

	err := f.session.Finalize(ctx, func(ctx context.Context) (string, error) {
		return f.api.Create(ctx, f.kind, f.entity.payload(nil, false))
	})
	if err != nil {
		return err
	}

	if existed || hadPending || hadDurable {
		id := f.session.EntityID()
		if err := f.api.Update(ctx, f.kind, id, f.entity.payload(f.session.DurableRefs(), true)); err != nil {
			return err
		}
	}

	f.session.Commit()
	f.log.Info(ctx, "form saved", "id", f.session.EntityID())
	return nil
}

// Cancel abandons the form. A speculatively created entity is deleted; if
// that fails it is recorded in the orphan ledger and the *media.OrphanError
// is returned.
func (f *Form) Cancel(ctx context.Context) error {
	if err := f.acquire(); err != nil {
		return err
	}
	defer f.release()

	err := f.session.Discard(ctx)

	var oe *media.OrphanError
	if errors.As(err, &oe) && f.orphans != nil {
		o := models.Orphan{Kind: oe.Kind, EntityID: oe.EntityID, Reason: oe.Err.Error()}
		if rerr := f.orphans.Record(ctx, o); rerr != nil {
			f.log.Error(ctx, "orphan not recorded", "id", oe.EntityID, "error", rerr)
			return errors.Join(err, rerr)
		}
	}
	return err
}
