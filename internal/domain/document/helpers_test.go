package document_test

import "strings"

func countOf(s, sub string) int { return strings.Count(s, sub) }

func indexOf(s, sub string) int { return strings.Index(s, sub) }
