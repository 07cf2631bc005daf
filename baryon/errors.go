package baryon

import "errors"

// ErrNoDarkMatterGroups is returned when Associate is called with a
// dark-matter label array that has no surviving groups to associate
// against.
var ErrNoDarkMatterGroups = errors.New("baryon: no dark-matter groups to associate against")
