// Package errors provides coded, readable errors for the patchwork CLI and
// server.
//
// Every error has a code (e.g. "E001") registered with a category, a short
// message and a longer explanation. Library packages return plain Go
// errors; callers at the edge translate them with FromApply or FromError
// and print them with Format:
//
//	err := errors.FromApply(doc.Apply(patches)).
//	    WithSuggestion("Rebuild the live tree from a snapshot.")
//	fmt.Fprint(os.Stderr, err.Format())
//	// ERROR E001: Patch target not found
//	//
//	//   apply ChangeText at index 9: patch target index not present in live tree
//	//
//	//   Hint: Rebuild the live tree from a snapshot.
//
// Colors are used only when stderr is a terminal.
package errors
