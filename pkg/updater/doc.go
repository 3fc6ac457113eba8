// Package updater drives a live tree from successive virtual trees.
//
// An Updater owns the current virtual tree and, optionally, a live host
// that mirrors it. Each call to Update diffs the current tree against the
// next one, applies the patches to the host and publishes them to
// subscribers under a monotonically increasing sequence number. The whole
// diff and apply cycle runs under one lock, so patches are always computed
// against the tree the host actually shows.
//
// If applying patches to the host fails, the live tree no longer matches
// the virtual tree and the Updater refuses further updates:
//
//	u := updater.New(view(state), doc, updater.WithLogger(logger))
//	seq, patches, err := u.Update(ctx, view(next))
//	if errors.Is(err, updater.ErrFailed) {
//	    // rebuild the host from u.Current()
//	}
//
// Recently published patch frames are kept in a History so stream clients
// that missed a few sequence numbers can catch up without a full snapshot.
package updater
