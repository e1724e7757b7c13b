package db

// Canonical shop field names, shared by the index schemas, the hash
// payloads, the Postgres columns, and the result entries. The category
// field carries the main category first followed by sub-categories, so
// a tag match hits either.
const (
	FieldID            = "id"
	FieldName          = "name"
	FieldAddress       = "address"
	FieldPhone         = "phone"
	FieldLat           = "lat"
	FieldLon           = "lon"
	FieldCategory      = "category"
	FieldTier          = "partnership_tier"
	FieldFeatured      = "is_featured"
	FieldFeaturedUntil = "featured_until"
	FieldStatus        = "status"
)

// CategorySeparator joins multiple categories in the category field.
const CategorySeparator = ","
