// Package question models trivia questions and level-balanced selection.
//
// A game draws exactly one question per difficulty level. Questions are owned
// by the catalogue and never mutated by gameplay.
package question
