package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dmitrijs2005/rentadmin/internal/client/client"
	"github.com/dmitrijs2005/rentadmin/internal/client/forms"
	"github.com/dmitrijs2005/rentadmin/internal/client/media"
	"github.com/dmitrijs2005/rentadmin/internal/client/models"
	"github.com/dmitrijs2005/rentadmin/internal/client/repositories/orphans"
	"github.com/dmitrijs2005/rentadmin/internal/client/sources"
	"github.com/dmitrijs2005/rentadmin/internal/client/staging"
	"github.com/dmitrijs2005/rentadmin/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCatalog struct {
	records   map[models.Kind][]models.Record
	listCalls int
	deleted   []string
	orphans   []models.Orphan
	history   []models.ResolvedOrphan
	purged    []string
}

func (f *fakeCatalog) List(_ context.Context, kind models.Kind) ([]models.Record, error) {
	f.listCalls++
	return f.records[kind], nil
}

func (f *fakeCatalog) Get(_ context.Context, kind models.Kind, id string) (models.Record, error) {
	for _, r := range f.records[kind] {
		if r.GetID() == id {
			return r, nil
		}
	}
	return nil, &client.RejectionError{Op: "get", StatusCode: 404, Message: "Not found"}
}

func (f *fakeCatalog) Delete(_ context.Context, _ models.Kind, id string) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeCatalog) Orphans(context.Context) ([]models.Orphan, error) {
	return f.orphans, nil
}

func (f *fakeCatalog) Purged(context.Context) ([]models.ResolvedOrphan, error) {
	return f.history, nil
}

func (f *fakeCatalog) PurgeOrphan(_ context.Context, kind models.Kind, id string) error {
	for i, o := range f.orphans {
		if o.Kind == kind && o.EntityID == id {
			f.orphans = append(f.orphans[:i], f.orphans[i+1:]...)
			f.purged = append(f.purged, id)
			return nil
		}
	}
	return orphans.ErrNotFound
}

type fakeAPI struct {
	nextID    string
	images    map[string][]string
	ops       []string
	updates   []any
	attachErr error
	deleteErr error
}

func (f *fakeAPI) Create(context.Context, models.Kind, any) (string, error) {
	f.ops = append(f.ops, "create")
	return f.nextID, nil
}

func (f *fakeAPI) Update(_ context.Context, _ models.Kind, _ string, payload any) error {
	f.ops = append(f.ops, "update")
	f.updates = append(f.updates, payload)
	return nil
}

func (f *fakeAPI) Delete(context.Context, models.Kind, string) error {
	f.ops = append(f.ops, "delete")
	return f.deleteErr
}

func (f *fakeAPI) AttachImages(_ context.Context, _ models.Kind, id string, files []client.Upload) ([]string, error) {
	f.ops = append(f.ops, "attach")
	if f.attachErr != nil {
		return nil, f.attachErr
	}
	for _, u := range files {
		f.images[id] = append(f.images[id], "https://cdn.example/"+u.Name)
	}
	return append([]string{}, f.images[id]...), nil
}

func (f *fakeAPI) DetachImage(_ context.Context, _ models.Kind, id string, ref string) ([]string, error) {
	f.ops = append(f.ops, "detach")
	var rest []string
	for _, r := range f.images[id] {
		if r != ref {
			rest = append(rest, r)
		}
	}
	f.images[id] = rest
	return append([]string{}, rest...), nil
}

type fakeLedger struct {
	rows []models.Orphan
}

func (f *fakeLedger) Record(_ context.Context, o models.Orphan) error {
	f.rows = append(f.rows, o)
	return nil
}

type testEnv struct {
	app     *App
	catalog *fakeCatalog
	api     *fakeAPI
	ledger  *fakeLedger
	store   *staging.Store
	lines   *[]string
}

func newTestEnv(t *testing.T, input string) *testEnv {
	t.Helper()

	store, err := staging.NewStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	cat := &fakeCatalog{records: map[models.Kind][]models.Record{}}
	api := &fakeAPI{nextID: "42", images: map[string][]string{}}
	ledger := &fakeLedger{}

	app := &App{
		log:     logging.Nop(),
		store:   store,
		catalog: cat,
		forms: &forms.Factory{
			API:         api,
			Stage:       store,
			Orphans:     ledger,
			CountryCode: "+250",
			Log:         logging.Nop(),
		},
		resolver: sources.NewResolver(sources.S3Config{}),
		scanner:  bufio.NewScanner(strings.NewReader(input)),
		out:      io.Discard,
		tab:      models.KindCar,
	}

	return &testEnv{app: app, catalog: cat, api: api, ledger: ledger, store: store, lines: capturePrint(t)}
}

func (e *testEnv) output() string {
	return strings.Join(*e.lines, "\n")
}

func writeImages(t *testing.T, names ...string) []string {
	t.Helper()
	dir := t.TempDir()
	paths := make([]string, len(names))
	for i, n := range names {
		paths[i] = filepath.Join(dir, n)
		require.NoError(t, os.WriteFile(paths[i], []byte("img-"+n), 0o600))
	}
	return paths
}

func fillCar(t *testing.T, a *App) {
	t.Helper()
	ctx := context.Background()
	for _, kv := range [][]string{
		{"name", "Corolla"},
		{"model", "Toyota"},
		{"year", "2020"},
		{"whatsapp_number", "0788", "123", "456"},
		{"price_per_day", "45"},
	} {
		require.NoError(t, a.Set(ctx, kv))
	}
}

func TestApp_NewCarWithImages(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, "")
	a := env.app

	require.NoError(t, a.New(ctx))
	fillCar(t, a)

	require.NoError(t, a.ImgAdd(ctx, writeImages(t, "front.jpg", "side.png")))
	assert.Empty(t, env.api.ops, "local images are only staged")
	assert.Equal(t, 2, env.store.Len())
	assert.Contains(t, env.output(), "(staged)")

	require.NoError(t, a.Submit(ctx))

	assert.Equal(t, []string{"create", "attach", "update"}, env.api.ops)
	assert.Nil(t, a.form)
	assert.Equal(t, 1, env.catalog.listCalls)
	assert.Equal(t, 0, env.store.Len())
	assert.Contains(t, env.output(), "Saved car 42.")

	car, ok := env.api.updates[0].(models.Car)
	require.True(t, ok)
	require.NotNil(t, car.Images)
	assert.Equal(t, models.ImageList{"https://cdn.example/front.jpg", "https://cdn.example/side.png"}, *car.Images)
	assert.Equal(t, "+250788123456", car.WhatsAppNumber)
}

func TestApp_EditDriverRemovesPhoto(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, "")
	a := env.app

	photo := "https://cdn.example/p.jpg"
	env.api.images["7"] = []string{photo}
	env.catalog.records[models.KindDriver] = []models.Record{
		models.Driver{ID: "7", Name: "Jean", Phone: "+250788000000", Status: models.DriverAvailable, PhotoURL: &photo},
	}

	require.NoError(t, a.Tab(ctx, []string{"drivers"}))
	require.NoError(t, a.Edit(ctx, []string{"7"}))
	assert.Equal(t, "drivers | edit driver 7", a.status())

	require.NoError(t, a.ImgRm(ctx, []string{"1"}))
	assert.Contains(t, env.output(), "images: none")

	require.NoError(t, a.Submit(ctx))
	assert.Equal(t, []string{"detach", "update"}, env.api.ops)

	d, ok := env.api.updates[0].(models.Driver)
	require.True(t, ok)
	require.NotNil(t, d.PhotoURL)
	assert.Equal(t, "", *d.PhotoURL)
}

func TestApp_FailedUploadThenCancelRecordsOrphan(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, "")
	a := env.app

	require.NoError(t, a.New(ctx))
	fillCar(t, a)
	require.NoError(t, a.ImgAdd(ctx, writeImages(t, "front.jpg")))

	env.api.attachErr = &client.TransportError{Op: "attach images", Err: client.ErrUnavailable}
	err := a.Submit(ctx)
	var ue *media.UploadError
	require.ErrorAs(t, err, &ue)
	assert.Contains(t, describe(err), "entity 42 was saved without its images")
	require.NotNil(t, a.form)
	assert.Equal(t, "cars | new car (unsaved 42)", a.status())

	env.api.deleteErr = errors.New("connection reset")
	err = a.Cancel(ctx)
	var oe *media.OrphanError
	require.ErrorAs(t, err, &oe)
	assert.Nil(t, a.form)
	assert.Contains(t, describe(err), "run 'purge cars 42' to retry")

	require.Len(t, env.ledger.rows, 1)
	assert.Equal(t, models.KindCar, env.ledger.rows[0].Kind)
	assert.Equal(t, "42", env.ledger.rows[0].EntityID)
}

func TestApp_TabSwitching(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, "")
	a := env.app

	require.NoError(t, a.New(ctx))
	require.ErrorIs(t, a.Tab(ctx, nil), ErrFormOpen)
	require.ErrorIs(t, a.New(ctx), ErrFormOpen)

	require.NoError(t, a.Cancel(ctx))
	assert.Empty(t, env.api.ops)
	assert.Contains(t, env.output(), "Form discarded.")

	require.NoError(t, a.Tab(ctx, nil))
	assert.Equal(t, models.KindDriver, a.tab)
	require.NoError(t, a.Tab(ctx, []string{"terms"}))
	assert.Equal(t, models.KindTerm, a.tab)
	require.NoError(t, a.Tab(ctx, nil))
	assert.Equal(t, models.KindCar, a.tab)

	require.ErrorIs(t, a.Tab(ctx, []string{"boats"}), models.ErrUnknownKind)
	assert.Contains(t, env.output(), "No drivers yet.")
}

func TestApp_NoFormCommands(t *testing.T) {
	ctx := context.Background()
	a := newTestEnv(t, "").app

	require.ErrorIs(t, a.Show(ctx), ErrNoForm)
	require.ErrorIs(t, a.Set(ctx, []string{"name", "x"}), ErrNoForm)
	require.ErrorIs(t, a.ImgNext(ctx), ErrNoForm)
	require.ErrorIs(t, a.Submit(ctx), ErrNoForm)
	require.ErrorIs(t, a.Cancel(ctx), ErrNoForm)
}

func TestApp_TermContentAndNoImages(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, "Deposit is required.\nFuel is not included.\n\n")
	a := env.app
	a.tab = models.KindTerm

	require.NoError(t, a.New(ctx))
	require.NoError(t, a.Set(ctx, []string{"title", "Payment", "policy"}))
	require.NoError(t, a.Set(ctx, []string{"content"}))
	require.NoError(t, a.Set(ctx, []string{"display_order", "2"}))

	fields := map[string]string{}
	for _, f := range a.form.Fields() {
		fields[f.Name] = f.Value
	}
	assert.Equal(t, "Payment policy", fields["title"])
	assert.Equal(t, "Deposit is required.\nFuel is not included.", fields["content"])

	require.ErrorIs(t, a.ImgAdd(ctx, []string{"x.jpg"}), forms.ErrNoImages)
	require.ErrorIs(t, a.ImgNext(ctx), forms.ErrNoImages)

	require.NoError(t, a.Submit(ctx))
	assert.Equal(t, []string{"create"}, env.api.ops)
}

func TestApp_ImageNavigation(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, "")
	a := env.app

	require.NoError(t, a.New(ctx))
	require.NoError(t, a.ImgAdd(ctx, writeImages(t, "a.jpg", "b.jpg", "c.jpg")))

	_, active, err := a.form.Images()
	require.NoError(t, err)
	assert.Equal(t, 0, active)

	require.NoError(t, a.ImgPrev(ctx))
	_, active, _ = a.form.Images()
	assert.Equal(t, 2, active)

	require.NoError(t, a.Img(ctx, []string{"2"}))
	_, active, _ = a.form.Images()
	assert.Equal(t, 1, active)

	require.ErrorIs(t, a.Img(ctx, []string{"9"}), media.ErrIndexOutOfRange)
	require.Error(t, a.ImgRm(ctx, []string{"x"}))

	require.NoError(t, a.ImgRm(ctx, []string{"2"}))
	refs, _, _ := a.form.Images()
	assert.Len(t, refs, 2)
	assert.Equal(t, 2, env.store.Len())
}

func TestApp_DeleteRefreshesList(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, "")
	a := env.app
	env.catalog.records[models.KindCar] = []models.Record{
		models.Car{ID: "3", Name: "Rav4", Model: "Toyota", Year: 2019, PricePerDay: "60", Location: "Kigali"},
	}

	require.NoError(t, a.Edit(ctx, []string{"3"}))
	require.ErrorIs(t, a.Delete(ctx, []string{"3"}), ErrFormOpen)
	require.NoError(t, a.Cancel(ctx))

	require.NoError(t, a.Delete(ctx, []string{"3"}))
	assert.Equal(t, []string{"3"}, env.catalog.deleted)
	assert.Equal(t, 1, env.catalog.listCalls)
	assert.Contains(t, env.output(), "Deleted car 3.")
}

func TestApp_OrphansAndPurge(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, "")
	a := env.app
	env.catalog.orphans = []models.Orphan{{Kind: models.KindCar, EntityID: "42", Reason: "connection reset"}}

	require.NoError(t, a.Orphans(ctx, nil))
	assert.Contains(t, env.output(), "connection reset")

	require.NoError(t, a.Purge(ctx, []string{"cars", "42"}))
	assert.Equal(t, []string{"42"}, env.catalog.purged)
	assert.Contains(t, env.output(), "Purged car 42.")

	require.ErrorIs(t, a.Purge(ctx, []string{"cars", "42"}), orphans.ErrNotFound)
	require.ErrorIs(t, a.Purge(ctx, []string{"boats", "1"}), models.ErrUnknownKind)

	require.NoError(t, a.Orphans(ctx, nil))
	assert.Contains(t, env.output(), "No orphans.")
	require.NoError(t, a.Orphans(ctx, []string{"history"}))
	assert.Contains(t, env.output(), "No purged orphans.")
}

func TestApp_CloseDiscardsFormAndStaging(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, "")
	a := env.app

	require.NoError(t, a.New(ctx))
	require.NoError(t, a.ImgAdd(ctx, writeImages(t, "a.jpg")))

	require.NoError(t, a.Close(ctx))
	assert.Nil(t, a.form)
	assert.NoDirExists(t, env.store.Dir())
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"validation", &forms.ValidationError{Field: "phone", Message: "is required"}, "invalid phone: is required"},
		{"unauthorized", &client.TransportError{Op: "list cars", StatusCode: 401, Err: client.ErrUnauthorized}, "the server rejected the admin password"},
		{"rejection", &client.RejectionError{Op: "create car", Message: "Year out of range"}, "Year out of range"},
		{"joined", errors.Join(errors.New("a"), errors.New("b")), "a; b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, describe(tt.err))
		})
	}

	got := describe(&client.TransportError{Op: "list cars", Err: client.ErrUnavailable})
	assert.True(t, strings.HasPrefix(got, "server unavailable: "))
}
