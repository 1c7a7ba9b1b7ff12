// Package config loads and saves category tree files and reads the
// application settings.
//
// # Tree files
//
// A tree file holds one root node in YAML (.yaml, .yml) or CUE (.cue):
//
//	children:
//	  - property: genre
//	    use_heading: true
//	  - property: director
//	    bucket_size: 10
//
// Every file is checked against the embedded CUE schema (#Node in
// schema.cue) before it is turned into category nodes, and the resulting
// tree is then checked with category.Validate. Every error returned by
// LoadTree matches category.ErrInvalidCategoryConfig under errors.Is,
// except for I/O errors reading the file.
//
// Labels are runtime-only and are neither read nor written.
//
// # Settings
//
// LoadSettings reads mediatree.yaml (or an explicit file) through viper.
// Every key can be overridden with a MEDIATREE_ prefixed environment
// variable, e.g. MEDIATREE_DATABASE=/var/lib/mediatree.db.
package config
