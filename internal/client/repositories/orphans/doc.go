// Package orphans is the local ledger of speculatively created entities
// whose cleanup delete failed after their form was cancelled.
//
// Rows are keyed by (kind, entity_id). Recording the same entity twice keeps
// the first timestamp and updates the reason. Resolving an orphan moves it
// into resolved_orphans inside one transaction.
//
// Typical Usage
//
//	repo := orphans.NewSQLiteRepository(db)
//	_ = repo.Record(ctx, models.Orphan{Kind: models.KindCar, EntityID: "42", Reason: err.Error()})
//	list, _ := repo.List(ctx)
//	_ = repo.Resolve(ctx, models.KindCar, "42")
package orphans
