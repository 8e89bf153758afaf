package repository

import "errors"

// ErrNotFound is a repository-specific sentinel error. It is returned when a
// query for a single entity (e.g., GetSession) finds no rows.
//
// The service layer checks for this error and translates it into a
// domain-level error (app_errors.ErrNotFound), keeping the business logic
// decoupled from the data access implementation and from driver errors like
// sql.ErrNoRows or redis.Nil.
var ErrNotFound = errors.New("repository: not found")
