// Package rag ties the catalog together: it ingests documents into the vector
// index, retrieves the chunks most similar to a student question, composes an
// augmented prompt with conversation history, and hands it to the language
// model.
//
// A Session owns all per-conversation state, so multiple conversations can
// run side by side over one shared index.
package rag
