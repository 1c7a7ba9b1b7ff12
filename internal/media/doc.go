// Package media holds the host-side item schema: one Record per ripped
// disc found under a media root, and the property table the category
// builder reads it through.
//
// Records are built from two XML documents. The disc descriptor
// (*.dvdid.xml, next to the VIDEO_TS folder) names the disc and its id;
// the cached metadata document, looked up by that id in the metadata
// cache directory, carries title, genres, people, ratings, release date
// and cover references. Metadata documents are ISO-8859-1 encoded.
//
// All string values handed to the builder are NFC normalized so that
// composed and decomposed spellings of the same name group together.
package media
