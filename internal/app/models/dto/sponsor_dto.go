package dto

// UpsertSponsorRequest is the admin payload for creating or replacing a
// sponsor banner. Scope is country-wide when region and province are
// empty, regional when only province is empty, provincial otherwise.
type UpsertSponsorRequest struct {
	Country  string  `json:"country" binding:"required"`
	Region   *string `json:"region"`
	Province *string `json:"province"`
	Text     string  `json:"text" binding:"required"`
	Link     *string `json:"link"`
	ImageURL *string `json:"imageUrl"`
	Active   *bool   `json:"active"`
}
