// Package gameplay runs game transitions against storage.
//
// Every mutation takes the player's lock, opens one storage transaction,
// re-reads state inside it, applies a pure game.Rules transition and commits
// the game update together with any balance credit.
package gameplay
