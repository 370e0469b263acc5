// Package records is the SQLite persistence of workout records.
//
// # Data Model
//
// Each row holds the JSON payload, the client timestamp and a native boolean
// synced flag. The synced column is indexed so that the unsynced lookup is an
// equality match on false. List queries skip rows whose payload no longer
// decodes and hand them to the OnMalformed callback instead.
//
// Typical Usage
//
//	repo := records.NewSQLiteRepository(db)
//	id, _ := repo.Insert(ctx, rec)
//	pending, _ := repo.GetUnsynced(ctx)
//	_ = repo.MarkSynced(ctx, id)
package records
