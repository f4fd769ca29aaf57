// Package foldex is an embeddable search engine over folder trees and shared content.
//
// Content is flattened into records and indexed by two in-memory backends: a
// prefix token index and a weighted fuzzy matcher. Queries run against both
// and the results are fused into one ranked list. Hangul queries, including
// bare initial consonants, take a jamo-aware route.
//
// # Indexing
//
//	eng, _ := foldex.New(foldex.WithFuzzyThreshold(0.5))
//	defer eng.Close()
//	_, _ = eng.IndexFolders(ctx, []foldex.Folder{{
//	    ID: "f1", Name: "Recipes",
//	    Items: []foldex.Item{{ID: "i1", Name: "Tomato Stew"}},
//	}})
//
// Every Index call replaces the whole record set. Searches running
// concurrently see either the previous set or the new one, never a mix.
//
// # Searching
//
//	recs, _ := eng.Search(ctx, "stew", &foldex.SearchOptions{Limit: 10})
//	names, _ := eng.Suggestions(ctx, "rec", 5)
package foldex
