package allocation

// MoveCommand is one drag-end gesture expressed as a value: move ItemID
// from container From to container To, landing at Index in the target's
// order. Gesture capture lives in the UI layer; the engine only ever sees
// these commands.
type MoveCommand struct {
	ItemID string
	From   string
	To     string
	Index  int
}
