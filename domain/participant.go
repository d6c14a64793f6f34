// Package domain contains core concepts of the relay.
// This file defines Participant identity and language rules.
// No runtime, network, or UI logic should be added here.
package domain

// LangCode is a BCP 47 language tag as declared by a participant (e.g. "fr-FR").
type LangCode string

// DefaultLang applies until a participant declares a language via a join message.
// Participant ids are assigned at accept time and never reused for the
// connection's lifetime; the registry owns the id → language association.
const DefaultLang LangCode = "en-US"
