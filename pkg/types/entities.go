// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Sentinel values substituted for absent attributes when reading entities out
// of the graph store. Derived networks never carry null attribute values.
// Per prd003-derivation R5.1-R5.2.
const (
	// UnknownText replaces an absent text attribute (title, abstract, source).
	UnknownText = ""

	// UnknownYear replaces an absent publication year.
	UnknownYear = -1
)

// Paper holds the attributes of a document node read from the graph store.
// Per prd003-derivation R1.2: identity is the DOI; papers without a DOI never
// enter a derived network.
type Paper struct {
	// DOI is the document identifier and the node key in derived networks.
	DOI string `json:"doi" yaml:"doi"`

	// Title is the document title, UnknownText when absent.
	Title string `json:"title" yaml:"title"`

	// Year is the publication year, UnknownYear when absent.
	Year int `json:"year" yaml:"year"`

	// Source is the publication venue, UnknownText when absent.
	Source string `json:"source" yaml:"source"`

	// Abstract is the document abstract, UnknownText when absent.
	Abstract string `json:"abstract" yaml:"abstract"`
}

// Author holds the attributes of an author node. Identity is the exact name
// string; no fuzzy matching is applied. Per prd003-derivation R2.1.
type Author struct {
	// Name is the author name and the node key in collaboration networks.
	Name string `json:"name" yaml:"name"`

	// ORCID is the author identifier, UnknownText when absent.
	ORCID string `json:"orcid" yaml:"orcid"`
}

// Institution holds the attributes of an institution node.
// Per prd003-derivation R3.1.
type Institution struct {
	// Name is the institution name and the node key.
	Name string `json:"name" yaml:"name"`

	// Address is the institution address, UnknownText when absent. Distinct
	// addresses drive the geographic-diversity quality criterion.
	Address string `json:"address" yaml:"address"`
}

// Keyword holds the attributes of a keyword node.
// Per prd003-derivation R4.1.
type Keyword struct {
	// Name is the keyword text and the node key.
	Name string `json:"name" yaml:"name"`
}

// Funder holds the attributes of a funder node. Funders participate only in
// the primary schema (FUNDED_BY); no derived network is built over them.
type Funder struct {
	// Name is the funder name.
	Name string `json:"name" yaml:"name"`
}
