// Package catalog derives the filter views over the article collection: the
// category-to-keyword index shown as filter options and the filtered,
// newest-first article lists.
//
// Everything here is a pure function of the collection; Cache adds
// revision-keyed memoization on top so unrelated reads do not recompute the
// index. Matching is exact-string on purpose: normalizing case or whitespace
// would change observable filtering behavior.
package catalog
