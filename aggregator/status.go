package aggregator

import "fmt"

// RequestFilter narrows the request listing to one request status.
// Its string value is the wire form the listing endpoint expects.
type RequestFilter string

const (
	FilterAll         RequestFilter = "all"
	FilterApproved    RequestFilter = "approved"
	FilterAvailable   RequestFilter = "available"
	FilterPending     RequestFilter = "pending"
	FilterProcessing  RequestFilter = "processing"
	FilterUnavailable RequestFilter = "unavailable"
	FilterFailed      RequestFilter = "failed"
)

// RequestFilters lists every accepted filter, in the order the tool
// schema advertises them.
var RequestFilters = []RequestFilter{
	FilterAll,
	FilterApproved,
	FilterAvailable,
	FilterPending,
	FilterProcessing,
	FilterUnavailable,
	FilterFailed,
}

// ParseRequestFilter maps a string onto a RequestFilter. The empty
// string means "no filter" and parses to the zero value.
func ParseRequestFilter(s string) (RequestFilter, error) {
	if s == "" {
		return "", nil
	}
	for _, f := range RequestFilters {
		if s == string(f) {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown request filter %q", s)
}

// String returns the wire value sent to the listing endpoint.
func (f RequestFilter) String() string {
	return string(f)
}

// availabilityNames maps Overseerr media status codes to the
// availability strings surfaced in tool results.
var availabilityNames = map[int]string{
	1: "UNKNOWN",
	2: "PENDING",
	3: "PROCESSING",
	4: "PARTIALLY_AVAILABLE",
	5: "AVAILABLE",
}

// Availability maps a media status code onto its availability string.
// A nil code counts as 1 and anything unmapped falls back to UNKNOWN,
// so the mapping is total.
func Availability(code *int) string {
	c := 1
	if code != nil {
		c = *code
	}
	if name, ok := availabilityNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}
