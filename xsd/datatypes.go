package xsd

// Namespace is the XML-Schema datatype namespace.
const Namespace = "http://www.w3.org/2001/XMLSchema#"

// Recognised datatype IRIs.
const (
	Boolean  = Namespace + "boolean"
	DateTime = Namespace + "dateTime"
	Date     = Namespace + "date"
	TimeIRI  = Namespace + "time"
	Decimal  = Namespace + "decimal"
	Integer  = Namespace + "integer"
	String   = Namespace + "string"
	AnyURI   = Namespace + "anyURI"
)
