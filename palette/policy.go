package palette

// OverwritePolicy controls how InsertRange resolves a target slot
// that is already occupied, per spec §4.5.
type OverwritePolicy int

const (
	OverwriteError OverwritePolicy = iota
	OverwriteSkip
	OverwriteMove
	OverwriteOverwrite
	OverwriteRemove
)

// RoomPolicy controls how InsertRange handles a target exceeding the
// palette's column/line/page limits, per spec §4.5.
type RoomPolicy int

const (
	RoomError RoomPolicy = iota
	RoomStop
	RoomWrapLine
	RoomWrapPage
)

// CursorBehavior is one of the five ways a composite may leave the
// palette cursor once it finishes, per spec §4.5. The exact set
// ("exact set is not observable outside their effect on cursor
// position") is fixed here to the five named in spec.md.
type CursorBehavior int

const (
	CursorStay CursorBehavior = iota
	CursorForward
	CursorBackward
	CursorToFirstNew
	CursorToLastNew
)
