package hoist

import (
	"regexp"
	"slices"
)

// allowedIdentifiers are globals a mock factory may read. The list is fixed
// and sorted: ECMAScript built-ins, the Node.js globals and the CommonJS
// module wrapper names.
var allowedIdentifiers = []string{
	"AbortController",
	"AbortSignal",
	"AggregateError",
	"Array",
	"ArrayBuffer",
	"Atomics",
	"BigInt",
	"BigInt64Array",
	"BigUint64Array",
	"Blob",
	"Boolean",
	"BroadcastChannel",
	"Buffer",
	"DOMException",
	"DataView",
	"Date",
	"Error",
	"EvalError",
	"Event",
	"EventTarget",
	"FinalizationRegistry",
	"Float32Array",
	"Float64Array",
	"FormData",
	"Function",
	"Generator",
	"GeneratorFunction",
	"Headers",
	"Infinity",
	"Int16Array",
	"Int32Array",
	"Int8Array",
	"InternalError",
	"Intl",
	"JSON",
	"Map",
	"Math",
	"MessageChannel",
	"MessageEvent",
	"MessagePort",
	"NaN",
	"Number",
	"Object",
	"Performance",
	"Promise",
	"Proxy",
	"RangeError",
	"ReferenceError",
	"Reflect",
	"RegExp",
	"Request",
	"Response",
	"Set",
	"SharedArrayBuffer",
	"String",
	"Symbol",
	"SyntaxError",
	"TextDecoder",
	"TextEncoder",
	"TypeError",
	"URIError",
	"URL",
	"URLSearchParams",
	"Uint16Array",
	"Uint32Array",
	"Uint8Array",
	"Uint8ClampedArray",
	"WeakMap",
	"WeakRef",
	"WeakSet",
	"WebAssembly",
	"__dirname",
	"__filename",
	"arguments",
	"atob",
	"btoa",
	"clearImmediate",
	"clearInterval",
	"clearTimeout",
	"console",
	"decodeURI",
	"decodeURIComponent",
	"encodeURI",
	"encodeURIComponent",
	"escape",
	"eval",
	"expect",
	"exports",
	"fetch",
	"global",
	"globalThis",
	"isFinite",
	"isNaN",
	"jest",
	"module",
	"parseFloat",
	"parseInt",
	"performance",
	"process",
	"queueMicrotask",
	"require",
	"setImmediate",
	"setInterval",
	"setTimeout",
	"structuredClone",
	"undefined",
	"unescape",
}

var (
	mockPrefix      = regexp.MustCompile(`(?i)^mock`)
	coverageVarName = regexp.MustCompile(`^(?:__)?cov`)
)

// AllowedIdentifiers returns a copy of the global allow-list.
func AllowedIdentifiers() []string {
	return slices.Clone(allowedIdentifiers)
}

func isAllowListed(name string) bool {
	_, found := slices.BinarySearch(allowedIdentifiers, name)
	return found
}

// isConventionName reports whether name opts out of the scope check by
// naming convention: a `mock` prefix or a coverage counter.
func isConventionName(name string) bool {
	return mockPrefix.MatchString(name) || coverageVarName.MatchString(name)
}
