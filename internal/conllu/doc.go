// Package conllu reads dependency-annotated sentences in the CoNLL-U format
// and exposes them as ordered trees for the edit distance engine.
//
// Each sentence is a block of tab separated token rows terminated by a blank
// line. Comment lines start with '#'; the sent_id and text comments are kept.
// Multiword token ranges (1-2) and empty nodes (1.1) are skipped, since they
// take no part in the basic dependency tree.
//
//	p := conllu.New()
//	sentences, err := p.ReadFile("gold.conllu")
//	if err != nil {
//		return err
//	}
//	forest, err := ted.BuildForest(sentences[0].Roots()...)
package conllu
