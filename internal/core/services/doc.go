// Package services contains the core business logic for document
// indexing, retrieval, and conversational question answering. Services
// depend only on ports and domain types, never on adapters.
package services
