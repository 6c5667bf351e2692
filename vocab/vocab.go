// Package vocab defines the IRI constants of the standard vocabularies
// the renumber tool recognizes.
package vocab

// RDF core namespace.
const (
	RDFNamespace = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"

	// RDFType is the rdf:type predicate.
	RDFType = RDFNamespace + "type"
)

// SKOS namespace for thesaurus vocabularies.
const (
	SKOSNamespace = "http://www.w3.org/2004/02/skos/core#"

	// SKOSConcept is the class of thesaurus concepts, the usual target
	// of a renumbering run.
	SKOSConcept = SKOSNamespace + "Concept"

	// SKOSBroader links a concept to a broader concept. Broader
	// references may occur before the referenced concept is defined.
	SKOSBroader = SKOSNamespace + "broader"

	// SKOSNarrower links a concept to a narrower concept.
	SKOSNarrower = SKOSNamespace + "narrower"

	// SKOSPrefLabel is the preferred lexical label of a concept.
	SKOSPrefLabel = SKOSNamespace + "prefLabel"
)

// Dublin Core namespaces for provenance metadata.
const (
	DCTermsNamespace   = "http://purl.org/dc/terms/"
	DCElementNamespace = "http://purl.org/dc/elements/1.1/"

	// DCTermsCreated is the dct:created date property.
	DCTermsCreated = DCTermsNamespace + "created"

	// DCTermsModified is the dct:modified date property.
	DCTermsModified = DCTermsNamespace + "modified"

	// DCDate is the legacy dc:date property.
	DCDate = DCElementNamespace + "date"
)

// XSD datatype IRIs.
const (
	XSDNamespace = "http://www.w3.org/2001/XMLSchema#"

	XSDDate     = XSDNamespace + "date"
	XSDDateTime = XSDNamespace + "dateTime"
)
