// Package textutil provides title matching helpers: case-folded substring
// search for list filtering, and token fingerprints with cosine similarity
// for spotting near-duplicate titles.
//
// Tokenization case-folds text, splits on anything that is not a letter or
// digit, and drops single-character tokens.
package textutil
