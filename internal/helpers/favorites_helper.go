package helpers

import "strings"

// SplitFavorites parses the comma-joined favorites column into the list
// of stored driver ids, dropping empty fragments.
func SplitFavorites(favorites string) []string {
	if favorites == "" {
		return nil
	}

	var ids []string
	for _, id := range strings.Split(favorites, ",") {
		id = strings.TrimSpace(id)
		if id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

// AppendFavorite adds driverID to the comma-joined favorites list.
// Adding an id that is already present is a no-op; the second return
// value reports whether the list actually changed.
func AppendFavorite(favorites, driverID string) (string, bool) {
	current := SplitFavorites(favorites)
	for _, id := range current {
		if id == driverID {
			return favorites, false
		}
	}

	current = append(current, driverID)
	return strings.Join(current, ","), true
}
