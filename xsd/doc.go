// Package xsd (de)serialises the XML-Schema primitive datatypes used as RDF
// literal datatypes: boolean, integer, decimal, dateTime, date and time.
//
// Copyright 2026 Geoknoesis LLC (www.geoknoesis.com)
//
// Serialisers are total. Deserialisers are partial and never panic: each
// returns its value together with an ok flag, and malformed input yields
// (zero, false). Callers decide how to react to a missing value; the strict
// error handling lives in the quad-ingestion layer, not here.
package xsd
