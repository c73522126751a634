package protocol

// Entity is an organizational scope of the GLPI instance. Every item belongs to
// exactly one entity; recursive items are also visible from child entities.
type Entity struct {
	ID   FlexInt `json:"id"`
	Name string  `json:"name"`
}

// ActiveEntities reports the entity scope the session currently operates in.
type ActiveEntities struct {
	// ID is the id of the active entity, or "all" semantics when every entity is
	// active; the API then reports 0.
	ID FlexInt `json:"id"`
	// ActiveEntityRecursive tells whether child entities are in scope as well.
	ActiveEntityRecursive bool `json:"active_entity_recursive"`
	// ActiveEntities lists every entity id in scope.
	ActiveEntities []Entity `json:"active_entities,omitempty"`
}
