// Package normalisers contains adapters that extract plain text from
// source documents before chunking. PDF extraction shells out to the
// external pdftotext collaborator; every other format is read as
// plain text.
package normalisers
