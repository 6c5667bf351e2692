package rdf

import (
	"net/url"
	"strings"
)

// resolveIRI resolves a relative IRI against a base IRI per RFC 3986.
func resolveIRI(baseStr, relative string) string {
	baseURL, err := url.Parse(baseStr)
	if err != nil {
		return concatResolve(baseStr, relative)
	}
	relURL, err := url.Parse(relative)
	if err != nil {
		return concatResolve(baseStr, relative)
	}
	if relURL.Scheme != "" {
		return relative
	}
	return baseURL.ResolveReference(relURL).String()
}

// concatResolve is the fallback for bases net/url cannot parse.
func concatResolve(baseStr, relative string) string {
	if strings.HasSuffix(baseStr, "/") {
		return baseStr + relative
	}
	lastSlash := strings.LastIndex(baseStr, "/")
	if lastSlash >= 0 {
		return baseStr[:lastSlash+1] + relative
	}
	return baseStr + "/" + relative
}
