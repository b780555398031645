// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"errors"
	"fmt"
)

// NetworkKind identifies which derived bibliometric network to build.
// Per prd003-derivation R1.1.
type NetworkKind string

const (
	NetworkCoCitation               NetworkKind = "co-citation"
	NetworkAuthorCollaboration      NetworkKind = "author-collaboration"
	NetworkInstitutionCollaboration NetworkKind = "institution-collaboration"
	NetworkKeywordCoOccurrence      NetworkKind = "keyword-co-occurrence"
)

// AllNetworkKinds lists every supported kind in pipeline order.
var AllNetworkKinds = []NetworkKind{
	NetworkCoCitation,
	NetworkAuthorCollaboration,
	NetworkInstitutionCollaboration,
	NetworkKeywordCoOccurrence,
}

// ErrUnknownNetworkKind reports a network kind outside the supported set.
// Requesting an unsupported kind is a configuration error, not a data error.
var ErrUnknownNetworkKind = errors.New("unknown network kind")

// ParseNetworkKind resolves a user-supplied kind name, accepting the short
// aliases used on the command line ("author", "institution", "keyword").
func ParseNetworkKind(s string) (NetworkKind, error) {
	switch s {
	case string(NetworkCoCitation), "cocitation":
		return NetworkCoCitation, nil
	case string(NetworkAuthorCollaboration), "author":
		return NetworkAuthorCollaboration, nil
	case string(NetworkInstitutionCollaboration), "institution":
		return NetworkInstitutionCollaboration, nil
	case string(NetworkKeywordCoOccurrence), "keyword":
		return NetworkKeywordCoOccurrence, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownNetworkKind, s)
}

// Slug returns the file-name form of the kind (e.g. "co_citation"), used for
// every artifact written under the output directory.
func (k NetworkKind) Slug() string {
	switch k {
	case NetworkCoCitation:
		return "co_citation"
	case NetworkAuthorCollaboration:
		return "author_collaboration"
	case NetworkInstitutionCollaboration:
		return "institution_collaboration"
	case NetworkKeywordCoOccurrence:
		return "keyword_co_occurrence"
	}
	return string(k)
}

// EdgeType returns the derived relationship type materialized in the store
// for this kind. Author and institution collaboration share a relationship
// type; node labels disambiguate them.
func (k NetworkKind) EdgeType() string {
	switch k {
	case NetworkCoCitation:
		return "CO_CITED_WITH"
	case NetworkAuthorCollaboration, NetworkInstitutionCollaboration:
		return "COLLABORATED_WITH"
	case NetworkKeywordCoOccurrence:
		return "CO_OCCURS_WITH"
	}
	return ""
}

// CommunityAlgorithm names a community-detection strategy.
// Per prd005-analytics R5.1: the requested algorithm selects the entry point
// of the fallback chain; it does not guarantee which algorithm runs.
type CommunityAlgorithm string

const (
	AlgorithmLouvain          CommunityAlgorithm = "louvain"
	AlgorithmLabelPropagation CommunityAlgorithm = "label-propagation"
	AlgorithmGreedyModularity CommunityAlgorithm = "greedy-modularity"
	AlgorithmTrivial          CommunityAlgorithm = "trivial"
)

// ErrUnknownAlgorithm reports a community algorithm outside the supported set.
var ErrUnknownAlgorithm = errors.New("unknown community algorithm")

// ParseCommunityAlgorithm resolves a user-supplied algorithm name. Underscored
// spellings are accepted for compatibility with other tooling.
func ParseCommunityAlgorithm(s string) (CommunityAlgorithm, error) {
	switch s {
	case string(AlgorithmLouvain):
		return AlgorithmLouvain, nil
	case string(AlgorithmLabelPropagation), "label_propagation":
		return AlgorithmLabelPropagation, nil
	case string(AlgorithmGreedyModularity), "greedy_modularity":
		return AlgorithmGreedyModularity, nil
	case string(AlgorithmTrivial):
		return AlgorithmTrivial, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAlgorithm, s)
}
