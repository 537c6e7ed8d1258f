// Package input translates key events into formula edits.
//
// The package is deliberately backend-agnostic: the terminal front end
// converts its own key events into input.Event values, and the Handler
// maps those onto engine operations. Printable runes go through a Palette
// that decides whether a key inserts a plain symbol (a Leaf) or a function
// with argument slots, for example '/' inserting \frac with the cursor
// landing in the numerator.
//
// The default palette:
//
//   - digits, latin letters, and common operator characters insert
//     themselves as symbols
//   - '*' inserts \cdot
//   - '/' inserts \frac{}{}
//   - '^' and '_' insert superscript and subscript slots
//   - '|' inserts an absolute-value slot
//   - '#' inserts \sqrt{}
package input
