// Package connectors holds pure mappers from provider API objects to
// domain.RawItem values. Mappers perform no network calls: a caller fetches
// the object with the provider's client and hands it to the mapper, which
// produces an item ready for ingestion.
package connectors
