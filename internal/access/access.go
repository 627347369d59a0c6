// Package access decides, per request, whether the admin session is required.
package access

import (
	"net/http"
	"path"
	"strings"
)

type Class string

const (
	ClassPublicAsset        Class = "public-asset"
	ClassPublicRead         Class = "public-read"
	ClassPublicWriteContact Class = "public-write-contact"
	ClassAuthExchange       Class = "auth-exchange"
	ClassProtected          Class = "protected"
	ClassUnclassified       Class = "unclassified"
)

type Decision string

const (
	Allow         Decision = "allow"
	RedirectLogin Decision = "redirect-login"
	RedirectAdmin Decision = "redirect-admin"
)

const (
	LoginPath = "/auth/login"
	AdminPath = "/admin"
)

type match int

const (
	exact match = iota
	prefix
)

type rule struct {
	method  string // empty matches any method
	pattern string
	match   match
	class   Class
}

// rules are evaluated in order; the first match wins. Prefixes are literal:
// "/api/projects" also covers "/api/projectsX".
var rules = []rule{
	{http.MethodGet, "/", exact, ClassPublicAsset},
	{http.MethodGet, "/api/blogs", prefix, ClassPublicRead},
	{http.MethodGet, "/api/projects", prefix, ClassPublicRead},
	{http.MethodGet, "/api/profile", prefix, ClassPublicRead},
	{http.MethodPost, "/api/contact", exact, ClassPublicWriteContact},
	{"", "/api/auth/", prefix, ClassAuthExchange},
	{"", LoginPath, exact, ClassAuthExchange},
	{"", AdminPath, prefix, ClassProtected},
	{"", "/api/", prefix, ClassProtected},
}

func (r rule) matches(method, p string) bool {
	if r.method != "" && r.method != method {
		return false
	}
	if r.match == exact {
		return p == r.pattern
	}
	return strings.HasPrefix(p, r.pattern)
}

// Classify returns the class of the first rule matching method and path.
func Classify(method, p string) Class {
	for _, r := range rules {
		if r.matches(method, p) {
			return r.class
		}
	}
	return ClassUnclassified
}

// Decide is a pure function of its inputs.
func Decide(method, p string, sessionValid bool) Decision {
	if sessionValid && p == LoginPath {
		return RedirectAdmin
	}
	if sessionValid {
		return Allow
	}
	if Classify(method, p) == ClassProtected {
		return RedirectLogin
	}
	return Allow
}

var assetExtensions = map[string]struct{}{
	".svg": {}, ".png": {}, ".jpg": {}, ".jpeg": {}, ".gif": {}, ".webp": {},
}

// Excluded reports paths the gate never inspects: image files and framework assets.
// An image extension never exempts a path under a protected prefix.
func Excluded(p string) bool {
	if p == "/favicon.ico" || strings.HasPrefix(p, "/static/") {
		return true
	}
	if _, ok := assetExtensions[strings.ToLower(path.Ext(p))]; !ok {
		return false
	}
	// An empty method matches only method-agnostic rules, so any protected prefix wins.
	return Classify("", p) != ClassProtected
}
