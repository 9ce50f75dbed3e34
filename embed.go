// Package contactbook provides embedded runtime resources for the contact book.
package contactbook

import (
	"embed"
	"io/fs"
)

//go:embed schemas/*.json
var rawSchemas embed.FS

// Schemas is the embedded schemas filesystem with the "schemas/" prefix stripped.
var Schemas = mustSub(rawSchemas, "schemas")

// ContactsSchema is the file name of the persisted contacts JSON schema.
const ContactsSchema = "contacts.schema.json"

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}
	return sub
}
