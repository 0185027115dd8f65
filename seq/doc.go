// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package seq provides bit-packed biological sequences.
//
// A Packed stores a 1-indexed run of alphabet codes in machine words,
// BitsPerWord/b codes per word, least-significant bits first.  All
// structural edits (insert, delete, splice, push/pop, filter) are expressed
// with two internal primitives: resize, which only reallocates when more
// words are needed, and shiftedCopy, which moves a run of symbols between
// arbitrary bit offsets and handles overlapping moves in either direction.
//
// Bits past the last symbol of a Packed are padding.  They may hold stale
// symbols after a shrink and are never read as data.
//
// Positional transforms (Reverse, Complement, ReverseComplement,
// Canonicalize, Map, Shuffle) accept any Sequence, so they work on owned
// sequences and on Views alike.
//
// A View is a window onto a Packed that shares its storage: writes through
// the view are writes to the parent, and structural edits of the parent are
// visible through the view.  A view whose window no longer fits inside its
// parent reports a BoundsError on every access.  Use Packed.Slice for an
// independent copy.
//
// None of the types in this package are safe for concurrent mutation.
package seq
