// Package build runs one gallery batch.
//
// A batch reads the site document once, then for every configured slug loads
// the content file, renders the section and trigger fragments and splices
// them in. After all slugs it bumps the version marker and writes the
// document back once, keeping a .bak copy when the input is overwritten.
//
// Missing or malformed content only skips the affected slug. The only
// condition that aborts before any work is a missing input document.
package build
