package components

// Group is a pure structural container. It implements no capabilities;
// its node exists to parent other nodes and carry a name in paths.
type Group struct{}
