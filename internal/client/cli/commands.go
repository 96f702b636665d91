package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/rentadmin/internal/client/forms"
	"github.com/dmitrijs2005/rentadmin/internal/client/models"
)

func (a *App) Help() {
	printlnFn(`Commands:
  tab [cars|drivers|terms]   switch tab (cycles without argument)
  list                       reload the current tab
  new                        open a form for a new entity
  edit <id>                  open a form for an existing entity
  set <field> <value>        set a form field ("" clears it)
  show                       print the open form
  img-add <path|s3://..>...  add images to the open form
  img-rm <n>                 remove image n
  img-next | img-prev        move through the images
  img <n>                    select image n
  submit                     save the open form
  cancel                     discard the open form
  delete <id>                delete an entity of the current tab
  orphans [history]          list unsaved entities that could not be deleted
  purge <kind> <id>          retry deleting an orphan
  exit | quit                leave the console`)
}

func (a *App) Tab(ctx context.Context, args []string) error {
	if a.form != nil {
		return ErrFormOpen
	}

	next := nextKind(a.tab)
	if len(args) > 0 {
		k, err := models.ParseKind(args[0])
		if err != nil {
			return err
		}
		next = k
	}

	a.tab = next
	return a.List(ctx)
}

func nextKind(k models.Kind) models.Kind {
	for i, kind := range models.Kinds {
		if kind == k {
			return models.Kinds[(i+1)%len(models.Kinds)]
		}
	}
	return models.Kinds[0]
}

func (a *App) List(ctx context.Context) error {
	records, err := a.catalog.List(ctx, a.tab)
	if err != nil {
		return err
	}

	if len(records) == 0 {
		printlnFn(fmt.Sprintf("No %s yet.", a.tab))
		return nil
	}
	for _, r := range records {
		printlnFn(fmt.Sprintf("%5s  %s", r.GetID(), r.Summary()))
	}
	return nil
}

func (a *App) New(ctx context.Context) error {
	if a.form != nil {
		return ErrFormOpen
	}

	switch a.tab {
	case models.KindCar:
		a.form = a.forms.NewCar()
	case models.KindDriver:
		a.form = a.forms.NewDriver()
	case models.KindTerm:
		a.form = a.forms.NewTerm()
	default:
		return fmt.Errorf("%w: %q", models.ErrUnknownKind, a.tab)
	}
	return a.Show(ctx)
}

func (a *App) Edit(ctx context.Context, args []string) error {
	if a.form != nil {
		return ErrFormOpen
	}

	rec, err := a.catalog.Get(ctx, a.tab, args[0])
	if err != nil {
		return err
	}

	switch r := rec.(type) {
	case models.Car:
		a.form = a.forms.EditCar(r)
	case models.Driver:
		a.form = a.forms.EditDriver(r)
	case models.Term:
		a.form = a.forms.EditTerm(r)
	default:
		return fmt.Errorf("%w: %T", models.ErrUnknownKind, rec)
	}
	return a.Show(ctx)
}

func (a *App) Set(ctx context.Context, args []string) error {
	if a.form == nil {
		return ErrNoForm
	}

	field := args[0]
	value := strings.Join(args[1:], " ")
	if value == `""` {
		value = ""
	}

	if len(args) == 1 && a.form.Kind() == models.KindTerm && field == "content" {
		text, err := GetMultiline(a.scanner, "Content:", a.out)
		if err != nil {
			return err
		}
		value = text
	}

	return a.form.Set(field, value)
}

func (a *App) Show(ctx context.Context) error {
	if a.form == nil {
		return ErrNoForm
	}

	printlnFn(a.form.Title())
	for _, f := range a.form.Fields() {
		printlnFn(fmt.Sprintf("  %-16s %s", f.Name, f.Value))
	}
	a.showImages()
	return nil
}

func (a *App) showImages() {
	refs, active, err := a.form.Images()
	if err != nil {
		return
	}
	if len(refs) == 0 {
		printlnFn("  images: none")
		return
	}

	printlnFn(fmt.Sprintf("  images: %d", len(refs)))
	for i, ref := range refs {
		marker := " "
		if i == active {
			marker = "*"
		}
		line := fmt.Sprintf("  %s %d. %s", marker, i+1, ref)
		if models.IsEphemeralRef(ref) {
			line += " (staged)"
		}
		printlnFn(line)
	}
}

func (a *App) ImgAdd(ctx context.Context, args []string) error {
	if a.form == nil {
		return ErrNoForm
	}
	if !a.form.Kind().HasImages() {
		return forms.ErrNoImages
	}

	srcs, err := a.resolver.ResolveAll(ctx, args)
	if err != nil {
		return err
	}
	if err := a.form.AddImages(ctx, srcs); err != nil {
		return err
	}
	a.showImages()
	return nil
}

func (a *App) ImgRm(ctx context.Context, args []string) error {
	if a.form == nil {
		return ErrNoForm
	}

	n, err := imageNumber(args[0])
	if err != nil {
		return err
	}
	if err := a.form.RemoveImage(ctx, n-1); err != nil {
		return err
	}
	a.showImages()
	return nil
}

func (a *App) ImgNext(ctx context.Context) error {
	if a.form == nil {
		return ErrNoForm
	}
	if err := a.form.NextImage(); err != nil {
		return err
	}
	a.showImages()
	return nil
}

func (a *App) ImgPrev(ctx context.Context) error {
	if a.form == nil {
		return ErrNoForm
	}
	if err := a.form.PrevImage(); err != nil {
		return err
	}
	a.showImages()
	return nil
}

func (a *App) Img(ctx context.Context, args []string) error {
	if a.form == nil {
		return ErrNoForm
	}

	n, err := imageNumber(args[0])
	if err != nil {
		return err
	}
	if err := a.form.SelectImage(n - 1); err != nil {
		return err
	}
	a.showImages()
	return nil
}

func imageNumber(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("image number %q: %w", s, err)
	}
	return n, nil
}

func (a *App) Submit(ctx context.Context) error {
	if a.form == nil {
		return ErrNoForm
	}

	if err := a.form.Submit(ctx); err != nil {
		return err
	}

	printlnFn(fmt.Sprintf("Saved %s %s.", a.form.Kind().Singular(), a.form.EntityID()))
	a.form = nil
	return a.List(ctx)
}

func (a *App) Cancel(ctx context.Context) error {
	if a.form == nil {
		return ErrNoForm
	}

	err := a.form.Cancel(ctx)
	if errors.Is(err, forms.ErrBusy) {
		return err
	}
	a.form = nil
	if err != nil {
		return err
	}

	printlnFn("Form discarded.")
	return nil
}

func (a *App) Delete(ctx context.Context, args []string) error {
	id := args[0]
	if a.form != nil && a.form.Kind() == a.tab && a.form.EntityID() == id {
		return ErrFormOpen
	}

	if err := a.catalog.Delete(ctx, a.tab, id); err != nil {
		return err
	}

	printlnFn(fmt.Sprintf("Deleted %s %s.", a.tab.Singular(), id))
	return a.List(ctx)
}

func (a *App) Orphans(ctx context.Context, args []string) error {
	if len(args) > 0 && args[0] == "history" {
		return a.purged(ctx)
	}

	list, err := a.catalog.Orphans(ctx)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		printlnFn("No orphans.")
		return nil
	}
	for _, o := range list {
		printlnFn(fmt.Sprintf("%-8s %5s  %s  %s", o.Kind, o.EntityID, o.CreatedAt.Format(time.DateTime), o.Reason))
	}
	return nil
}

func (a *App) purged(ctx context.Context) error {
	list, err := a.catalog.Purged(ctx)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		printlnFn("No purged orphans.")
		return nil
	}
	for _, o := range list {
		printlnFn(fmt.Sprintf("%-8s %5s  recorded %s  purged %s", o.Kind, o.EntityID,
			o.RecordedAt.Format(time.DateTime), o.ResolvedAt.Format(time.DateTime)))
	}
	return nil
}

func (a *App) Purge(ctx context.Context, args []string) error {
	kind, err := models.ParseKind(args[0])
	if err != nil {
		return err
	}
	if err := a.catalog.PurgeOrphan(ctx, kind, args[1]); err != nil {
		return err
	}

	printlnFn(fmt.Sprintf("Purged %s %s.", kind.Singular(), args[1]))
	return nil
}
