// Package game models the quiz game aggregate and its state machine.
//
// A game walks the player up a ladder of levels, one question per level. The
// package is pure: transitions take the current snapshot and a timestamp and
// return the next snapshot together with the balance credit the caller must
// apply in the same unit of work. Nothing here reads clocks or storage.
//
// Status is never stored. It is derived from FinishedAt, IsFailed,
// CurrentLevel and the elapsed time between creation and finish, so a finished
// game reports the same status forever.
package game
