package component

// PlayerTag marks the entity the camera follows and the hot reload
// targets.
type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()
