package models

// Region represents a top-level administrative division (e.g. Lombardia).
// Regions are seeded at startup and read-only to the application.
type Region struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Province represents a sub-division of a region (e.g. Milano).
type Province struct {
	ID       int64  `json:"id"`
	RegionID int64  `json:"regionId"`
	Name     string `json:"name"`
}
