// Package sqlite provides the durable transcript store backed by a
// local SQLite database.
//
// The retrieval core never touches this package: conversation history
// is owned by the calling session, and persisting it here only serves
// the caller-facing surfaces (resuming chats, listing and clearing
// sessions).
package sqlite
