package model

// Hotel represents a row in the `hotels` table.
//
// Fields:
//  ID       – primary key identifier.
//  Name     – hotel name shown to participants.
//  ImageURL – cover image for the browse endpoints.
type Hotel struct {
	ID       uint64 // hotels.id
	Name     string // hotels.name
	ImageURL string // hotels.image_url
}
