package api

// Dialect identifies which transport convention an inbound envelope uses.
type Dialect int

const (
	// DialectJSONRPC is the A2A JSON-RPC convention.
	DialectJSONRPC Dialect = iota
	// DialectActivity is the Bot Framework Activity convention.
	DialectActivity
	// DialectInvalid is an envelope matching neither convention.
	DialectInvalid
)

// String returns the dialect name for logs.
func (d Dialect) String() string {
	switch d {
	case DialectJSONRPC:
		return "jsonrpc"
	case DialectActivity:
		return "activity"
	default:
		return "invalid"
	}
}

// Classify inspects a parsed JSON body and determines its dialect.
// An envelope is JSON-RPC iff it carries a "jsonrpc" key and a truthy
// "method"; otherwise it is an Activity when it has a usable "type",
// and invalid when it has neither. Pure classification, no side effects.
func Classify(body map[string]any) Dialect {
	if _, hasVersion := body["jsonrpc"]; hasVersion && truthy(body["method"]) {
		return DialectJSONRPC
	}
	if truthy(body["type"]) {
		return DialectActivity
	}
	return DialectInvalid
}

func truthy(v any) bool {
	switch value := v.(type) {
	case nil:
		return false
	case string:
		return value != ""
	case bool:
		return value
	case float64:
		return value != 0
	default:
		return true
	}
}
