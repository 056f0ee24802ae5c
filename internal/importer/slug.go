package importer

import (
	"fmt"

	"github.com/gosimple/slug"
)

// UniqueSlug slugifies base and probes the store for a free slug,
// appending -1, -2, ... in order until one is found. excludeID lets an
// existing product keep its own slug. The check-then-insert pattern is
// not race-free under concurrent imports.
func UniqueSlug(st Store, base string, excludeID int64) (string, error) {
	root := slug.Make(base)
	if root == "" {
		root = "produkt"
	}

	candidate := root
	for i := 1; ; i++ {
		exists, err := st.SlugExists(candidate, excludeID)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", root, i)
	}
}
