package protocol

// Profile is one of the permission profiles associated with the logged user.
type Profile struct {
	ID   FlexInt `json:"id"`
	Name string  `json:"name"`
	// Entities lists the entity scopes the profile grants access to.
	Entities []ProfileEntity `json:"entities,omitempty"`
}

// ProfileEntity is an entity scope granted by a profile.
type ProfileEntity struct {
	ID FlexInt `json:"id"`
	// IsRecursive extends the grant to all child entities.
	IsRecursive bool   `json:"is_recursive"`
	Name        string `json:"name,omitempty"`
}
